package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mlc/internal/config"
	"mlc/internal/diagfmt"
	"mlc/internal/driver"
	"mlc/internal/source"
	"mlc/internal/version"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Python files for multi-line container style",
		Long: `Check walks the given files and directories (default: the current
directory) and reports PL101, PL102 and PL110 violations. Files that cannot
be tokenized into balanced brackets are reported as structural errors.`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheck,
	}

	cmd.Flags().String("format", "", "output format (pretty|short|json|sarif), default from config")
	cmd.Flags().StringSlice("select", nil, "diagnostic code prefixes to report")
	cmd.Flags().StringSlice("ignore", nil, "diagnostic code prefixes to suppress")
	cmd.Flags().IntP("jobs", "j", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("cache", true, "reuse cached results for unchanged files")
	cmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	cmd.Flags().Bool("exit-zero", false, "exit with status 0 even if violations are found")
	cmd.Flags().Bool("show-source", false, "print the offending source line under each diagnostic")
	cmd.Flags().String("path-mode", "auto", "path display mode (auto|relative|absolute|basename)")
	cmd.Flags().Bool("include-clean", false, "list files without findings in JSON output")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := resolveCheckConfig(cmd, paths[0])
	if err != nil {
		return err
	}

	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q (expected auto|relative|absolute|basename)", pathModeStr)
	}
	uiMode, err := readUIMode(cmd)
	if err != nil {
		return err
	}
	exitZero, err := cmd.Flags().GetBool("exit-zero")
	if err != nil {
		return fmt.Errorf("failed to get exit-zero flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	opts := driver.Options{
		Config:         cfg,
		Selector:       cfg.Selector(),
		MaxDiagnostics: cfg.MaxDiagnostics,
		Jobs:           cfg.Jobs,
	}
	if cfg.Cache {
		cache, cacheErr := driver.OpenDiskCache("mlc")
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	interactive := (cfg.Format == "pretty" || cfg.Format == "short") && shouldUseTUI(uiMode, cmd.OutOrStdout())

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if interactive {
		fileSet, results, err = runCheckWithUI(cmd.Context(), paths, opts, cmd.OutOrStdout())
	} else {
		fileSet, results, err = driver.LintPaths(cmd.Context(), paths, opts)
	}
	if err != nil {
		return err
	}

	baseDir := ""
	if fileSet != nil {
		baseDir = fileSet.BaseDir()
	}
	if err := renderResults(cmd, cfg.Format, results, pathMode, baseDir); err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	if !quiet(cmd) && (cfg.Format == "pretty" || cfg.Format == "short") {
		fmt.Fprintln(errOut, summaryLine(driver.Summarize(results)))
	}
	if showTimings {
		fmt.Fprint(errOut, driver.AggregateTimings(results).Summary())
	}

	if code := driver.ExitCode(results, exitZero); code != driver.ExitClean {
		return &exitError{code: code}
	}
	return nil
}

// resolveCheckConfig loads the configuration for the first path and applies
// command-line overrides on top of it.
func resolveCheckConfig(cmd *cobra.Command, firstPath string) (*config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(firstPath, explicit)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("select") {
		if cfg.Select, err = flags.GetStringSlice("select"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("ignore") {
		if cfg.Ignore, err = flags.GetStringSlice("ignore"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("jobs") {
		if cfg.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("cache") {
		if cfg.Cache, err = flags.GetBool("cache"); err != nil {
			return nil, err
		}
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		if cfg.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func renderResults(cmd *cobra.Command, format string, results []driver.FileResult, mode diagfmt.PathMode, baseDir string) error {
	out := cmd.OutOrStdout()
	reports := driver.Reports(results)

	switch format {
	case "short":
		return diagfmt.Short(out, reports, mode, baseDir)
	case "json":
		includeClean, err := cmd.Flags().GetBool("include-clean")
		if err != nil {
			return err
		}
		return diagfmt.JSON(out, reports, diagfmt.JSONOpts{
			PathMode:     mode,
			IncludeClean: includeClean,
			BaseDir:      baseDir,
		})
	case "sarif":
		return diagfmt.Sarif(out, reports, diagfmt.SarifRunMeta{
			ToolName:       "mlc",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
			PathMode:       mode,
			BaseDir:        baseDir,
		})
	default:
		showSource, err := cmd.Flags().GetBool("show-source")
		if err != nil {
			return err
		}
		useColor, err := resolveColor(cmd, out)
		if err != nil {
			return err
		}
		return diagfmt.Pretty(out, reports, diagfmt.PrettyOpts{
			Color:      useColor,
			Context:    1,
			PathMode:   mode,
			ShowSource: showSource,
			BaseDir:    baseDir,
		})
	}
}

func summaryLine(s driver.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "checked %d %s", s.Files, plural(s.Files, "file", "files"))
	if s.Cached > 0 {
		fmt.Fprintf(&sb, " (%d cached)", s.Cached)
	}
	parts := make([]string, 0, 3)
	if s.Diagnostics > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", s.Diagnostics, plural(s.Diagnostics, "issue", "issues")))
	}
	if s.Structural > 0 {
		parts = append(parts, fmt.Sprintf("%d structural %s", s.Structural, plural(s.Structural, "error", "errors")))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	if len(parts) == 0 {
		sb.WriteString(": all clean")
		return sb.String()
	}
	sb.WriteString(": ")
	sb.WriteString(strings.Join(parts, ", "))
	return sb.String()
}

func plural(n uint32, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
