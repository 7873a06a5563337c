// Package ci emits pipeline output variables. Values are appended as
// name=value lines to the file named by $GITHUB_OUTPUT (when running under
// GitHub Actions) and echoed to standard output either way.
package ci

import (
	"fmt"
	"io"
	"os"
)

// Writer emits name=value outputs for the calling pipeline.
type Writer struct {
	// OutputPath is the pipeline output file. Empty disables file writes.
	OutputPath string
	// Echo receives the echoed lines. Nil defaults to stdout.
	Echo io.Writer
}

// NewWriter returns a Writer bound to $GITHUB_OUTPUT.
func NewWriter() *Writer {
	return &Writer{OutputPath: os.Getenv("GITHUB_OUTPUT")}
}

func (w *Writer) echo() io.Writer {
	if w.Echo != nil {
		return w.Echo
	}
	return os.Stdout
}

// Set emits a single output variable.
func (w *Writer) Set(name, value string) error {
	if w.OutputPath != "" {
		f, err := os.OpenFile(w.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening pipeline output file: %w", err)
		}
		defer f.Close()
		if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
			return fmt.Errorf("writing pipeline output: %w", err)
		}
	}

	fmt.Fprintf(w.echo(), "%s=%s\n", name, value)
	return nil
}

// SetBool emits a boolean output as "true"/"false".
func (w *Writer) SetBool(name string, value bool) error {
	if value {
		return w.Set(name, "true")
	}
	return w.Set(name, "false")
}
