// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/salesreport/internal/analysis"
	"github.com/tomtom215/salesreport/internal/table"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query or analysis failure
	ExitCommandError = 2 // Bad flags, configuration or database connection
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter prints command results as text or JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Success writes data. Tables and metrics have a text rendering; anything
// else prints as indented JSON in both formats.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == FormatJSON {
		return writeJSON(f.Writer, data)
	}

	switch v := data.(type) {
	case *table.Table:
		return writeTable(f.Writer, v)
	case analysis.Metrics:
		return writeMetrics(f.Writer, v)
	case map[string]analysis.Metrics:
		for i, name := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				fmt.Fprintln(f.Writer)
			}
			fmt.Fprintf(f.Writer, "== %s ==\n", name)
			if err := writeMetrics(f.Writer, v[name]); err != nil {
				return err
			}
		}
		return nil
	case map[string]*table.Table:
		for i, name := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				fmt.Fprintln(f.Writer)
			}
			fmt.Fprintf(f.Writer, "== %s ==\n", name)
			if err := writeTable(f.Writer, v[name]); err != nil {
				return err
			}
		}
		return nil
	case string:
		_, err := fmt.Fprintln(f.Writer, v)
		return err
	default:
		return writeJSON(f.Writer, data)
	}
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// writeTable prints t as aligned columns followed by a row count.
func writeTable(w io.Writer, t *table.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range t.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw)
	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatCell(cell))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", t.Len())
	return err
}

// writeMetrics prints one metric per line, keys sorted. Nested values such
// as quartiles print as compact JSON.
func writeMetrics(w io.Writer, m analysis.Metrics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(tw, "%s\t%s\n", k, formatCell(m[k]))
	}
	return tw.Flush()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
