// Package output renders console feedback for suideploy.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger provides colored output functions for CLI feedback.
type Logger struct {
	out      io.Writer
	errOut   io.Writer
	verbose  bool
	jsonMode bool
}

// NewLogger creates a Logger writing to stdout and stderr.
func NewLogger() *Logger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr)
}

// NewLoggerWithWriters creates a Logger with explicit destinations.
func NewLoggerWithWriters(out, errOut io.Writer) *Logger {
	return &Logger{out: out, errOut: errOut}
}

// SetNoColor disables colored output globally.
func (l *Logger) SetNoColor(noColor bool) {
	color.NoColor = noColor
}

// SetVerbose enables debug output.
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// SetJSONMode suppresses all text output so that stdout carries only JSON.
func (l *Logger) SetJSONMode(jsonMode bool) {
	l.jsonMode = jsonMode
}

// IsVerbose reports whether debug output is enabled.
func (l *Logger) IsVerbose() bool { return l.verbose }

// IsJSONMode reports whether text output is suppressed.
func (l *Logger) IsJSONMode() bool { return l.jsonMode }

// Writer returns the standard output destination.
func (l *Logger) Writer() io.Writer { return l.out }

// ErrWriter returns the error output destination.
func (l *Logger) ErrWriter() io.Writer { return l.errOut }

func (l *Logger) colored(w io.Writer, attr color.Attribute, prefix, format string, args ...interface{}) {
	if l.jsonMode {
		return
	}
	color.New(attr).Fprintf(w, prefix+format+"\n", args...)
}

// Info prints an informational message in default color.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.jsonMode {
		return
	}
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Warn prints a warning message in yellow.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.colored(l.errOut, color.FgYellow, "Warning: ", format, args...)
}

// Error prints an error message in red. Errors are printed in JSON mode too,
// on stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(l.errOut, "Error: "+format+"\n", args...)
}

// Success prints a success message in green with checkmark.
func (l *Logger) Success(format string, args ...interface{}) {
	l.colored(l.out, color.FgGreen, "✓ ", format, args...)
}

// Debug prints a debug message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.colored(l.errOut, color.FgHiBlack, "[DEBUG] ", format, args...)
}

// DefaultLogger is the package-level default logger instance.
var DefaultLogger = NewLogger()

// Info prints an informational message using the default logger.
func Info(format string, args ...interface{}) {
	DefaultLogger.Info(format, args...)
}

// Warn prints a warning message using the default logger.
func Warn(format string, args ...interface{}) {
	DefaultLogger.Warn(format, args...)
}

// Debug prints a debug message using the default logger.
func Debug(format string, args ...interface{}) {
	DefaultLogger.Debug(format, args...)
}
