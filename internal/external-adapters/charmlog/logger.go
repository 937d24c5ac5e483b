// Package charmlog adapts charmbracelet/log to the domain Logger interface.
// This is in external-adapters to isolate the external dependency.
package charmlog

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/jetprov/jetprov/internal/domain/interfaces"
)

// Logger wraps a charmbracelet logger behind interfaces.Logger.
type Logger struct {
	l *log.Logger
}

// New creates a CLI logger writing to stderr. Verbose enables debug level.
func New(verbose bool) *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "jetprov",
		ReportTimestamp: true,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return &Logger{l: l}
}

// Debug logs debug-level messages
func (c *Logger) Debug(msg string, fields ...interfaces.Field) {
	c.l.Debug(msg, kv(fields)...)
}

// Info logs informational messages
func (c *Logger) Info(msg string, fields ...interfaces.Field) {
	c.l.Info(msg, kv(fields)...)
}

// Warn logs warning messages
func (c *Logger) Warn(msg string, fields ...interfaces.Field) {
	c.l.Warn(msg, kv(fields)...)
}

// Error logs error messages
func (c *Logger) Error(msg string, fields ...interfaces.Field) {
	c.l.Error(msg, kv(fields)...)
}

func kv(fields []interfaces.Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}
