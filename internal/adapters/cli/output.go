// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs human-readable text.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
)

// OutputAdapter implements domain.OutputPort for CLI output.
//
// In JSON format only structured payloads are emitted, so that stdout
// stays a single parseable document: informational and progress
// messages are dropped.
type OutputAdapter struct {
	writer io.Writer
	format OutputFormat
	quiet  bool
}

// NewOutputAdapter creates a new output adapter writing to stdout.
func NewOutputAdapter(format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: os.Stdout,
		format: format,
		quiet:  quiet,
	}
}

// NewOutputAdapterWithWriter creates a new output adapter with a custom writer for testing.
func NewOutputAdapterWithWriter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Success outputs a success message with optional structured data.
func (o *OutputAdapter) Success(message string, data interface{}) error {
	if o.format == JSONFormat {
		if data != nil {
			return o.outputJSON(data)
		}

		return nil
	}

	if message != "" && !o.quiet {
		_, _ = fmt.Fprintln(o.writer, message)
	}

	return nil
}

// Error outputs an error message. Errors are emitted even in quiet mode.
func (o *OutputAdapter) Error(message string) error {
	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"error": message})
	}

	_, _ = fmt.Fprintf(o.writer, "Error: %s\n", message)

	return nil
}

// Info outputs an informational message.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet || o.format == JSONFormat {
		return nil
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// Progress outputs progress information for long-running operations.
func (o *OutputAdapter) Progress(message string) error {
	if o.quiet || o.format == JSONFormat {
		return nil
	}

	_, _ = fmt.Fprintf(o.writer, "\r%s", message)

	return nil
}

// Table outputs tabular data.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]interface{}{
			"headers": headers,
			"rows":    rows,
		})
	}

	w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)

	defer func() { _ = w.Flush() }()

	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = strings.Repeat("-", len(headers[i]))
	}

	_, _ = fmt.Fprintln(w, strings.Join(separators, "\t"))

	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return nil
}

// IsQuiet returns true if output should be suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

func (o *OutputAdapter) outputJSON(data interface{}) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

// OutputFromContext creates an OutputAdapter from CLI context flags.
func OutputFromContext(jsonFlag, quietFlag bool) domain.OutputPort {
	format := TextFormat
	if jsonFlag {
		format = JSONFormat
	}

	return NewOutputAdapter(format, quietFlag)
}
