// Package output provides terminal output formatting utilities for the
// releasekit CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintStep prints a colored step header (e.g., "Building package...").
func PrintStep(out io.Writer, message string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s\n", cyan(message))
}

// PrintSuccess prints a green checkmark line for a completed step.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("Warning:"), message)
}

// PrintError prints a red error line with its category.
func PrintError(out io.Writer, category, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red(category+":"), message)
}

// PrintRemediation prints indented remediation steps below an error.
func PrintRemediation(out io.Writer, steps []string) {
	if len(steps) == 0 {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	for _, step := range steps {
		fmt.Fprintf(out, "  %s %s\n", dim("→"), step)
	}
}

// PrintDivider prints a dim full-width separator line.
func PrintDivider(out io.Writer) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(out, dim(strings.Repeat("─", GetTerminalWidth())))
}
