// Package outwriter has output and writer logic. Every renderer is a
// pure projection of the result structures; nothing here mutates them.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"debtscan/internal/contract"
	"debtscan/schema"
)

// getMaxTablePathWidth calculates the maximum width for file paths in
// table output based on terminal width and table configuration.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns plus borders and padding.
	const baseWidth = 40

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// severityLabel picks colored or plain severity text per config.
func severityLabel(s schema.Severity, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(s)
	}
	return contract.GetPlainLabel(s)
}
