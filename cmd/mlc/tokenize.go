package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mlc/internal/diagfmt"
	"mlc/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize <file.py>",
		Short: "Print the token stream of a Python file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	res, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Предупреждения токенизатора в stderr, поток токенов в stdout
	if res.Bag.Len() > 0 {
		report := diagfmt.Report{Path: res.File.Path, File: res.File, Diagnostics: res.Bag.Items()}
		if err := diagfmt.Short(cmd.ErrOrStderr(), []diagfmt.Report{report}, diagfmt.PathModeAuto, ""); err != nil {
			return err
		}
	}

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens)
	}
}
