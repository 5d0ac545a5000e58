// Package logger provides verbose logging for the bizlens CLI.
// When verbose mode is enabled via the --verbose flag, messages are written
// to stderr to help users follow each request to the analysis service.
// Output is produced by zerolog, as human-readable console lines by default
// or as JSON objects when the json format is selected.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format string

// Supported formats.
const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatConsole
	log               = build(os.Stderr, FormatConsole)
)

// build creates the underlying zerolog logger. Caller must hold mu for writing
// unless called during package initialisation.
func build(w io.Writer, f Format) zerolog.Logger {
	if f == FormatJSON {
		return zerolog.New(w).With().Timestamp().Logger()
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return zerolog.New(cw)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build(output, format)
}

// SetFormat selects console or JSON output. Unknown formats fall back to console.
func SetFormat(f Format) {
	mu.Lock()
	defer mu.Unlock()
	if f != FormatJSON {
		f = FormatConsole
	}
	format = f
	log = build(output, format)
}

// Debug prints a message if verbose mode is enabled.
func Debug(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Debug().Msgf(msg, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Info().Str("section", name).Msg("=== " + name + " ===")
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Info().Msgf(msg, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Warn().Msgf(msg, args...)
	}
}

// WithFields returns a logger carrying the given string fields.
// Messages are still gated by verbose mode.
func WithFields(fields map[string]string) *Entry {
	return &Entry{fields: fields}
}

// Entry is a set of fields attached to subsequent messages.
type Entry struct {
	fields map[string]string
}

// Debug prints a message with the entry's fields if verbose mode is enabled.
func (e *Entry) Debug(msg string, args ...any) {
	e.emit(zerolog.DebugLevel, msg, args...)
}

// Info prints a message with the entry's fields if verbose mode is enabled.
func (e *Entry) Info(msg string, args ...any) {
	e.emit(zerolog.InfoLevel, msg, args...)
}

// Warn prints a message with the entry's fields if verbose mode is enabled.
func (e *Entry) Warn(msg string, args ...any) {
	e.emit(zerolog.WarnLevel, msg, args...)
}

func (e *Entry) emit(level zerolog.Level, msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	ev := log.WithLevel(level)
	for k, v := range e.fields {
		ev = ev.Str(k, v)
	}
	ev.Msgf(msg, args...)
}
