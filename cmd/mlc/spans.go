package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mlc/internal/diagfmt"
	"mlc/internal/driver"
	"mlc/internal/multiline"
)

func newSpansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spans <file.py>",
		Short: "Print the bracket span tree of a Python file",
		Long: `Spans prints every bracket pair of the file as a tree, with the
positions of the opening and closing characters and whether the pair
spans more than one line.`,
		Args: cobra.ExactArgs(1),
		RunE: runSpans,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runSpans(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := driver.Spans(args[0], 0)
	if err != nil {
		var structural *multiline.StructuralError
		if !errors.As(err, &structural) || res == nil {
			return fmt.Errorf("span building failed: %w", err)
		}
		report := diagfmt.Report{Path: res.File.Path, File: res.File, Structural: structural}
		if err := diagfmt.Short(cmd.ErrOrStderr(), []diagfmt.Report{report}, diagfmt.PathModeAuto, ""); err != nil {
			return err
		}
		return &exitError{code: driver.ExitFatal}
	}

	switch format {
	case "json":
		return diagfmt.FormatSpansJSON(cmd.OutOrStdout(), res.Tokens, res.Roots)
	default:
		return diagfmt.FormatSpansPretty(cmd.OutOrStdout(), res.Tokens, res.Roots)
	}
}
