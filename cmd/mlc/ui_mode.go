package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(cmd *cobra.Command) (uiMode, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return uiModeOff, fmt.Errorf("failed to get ui flag: %w", err)
	}
	switch uiMode(value) {
	case uiModeAuto, uiModeOn, uiModeOff:
		return uiMode(value), nil
	default:
		return uiModeOff, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides whether the progress UI draws on out.
// "on" still needs a terminal: drawing into a pipe garbles the report.
func shouldUseTUI(mode uiMode, out io.Writer) bool {
	if mode == uiModeOff {
		return false
	}
	if !isTerminalWriter(out) {
		return false
	}
	if mode == uiModeOn {
		return true
	}
	return os.Getenv("CI") == "" && os.Getenv("TERM") != "dumb"
}
