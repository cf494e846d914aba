package utils

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger provides leveled, printf-style logging throughout the application.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a Logger at debug level writing to stdout/stderr.
func NewLogger() *Logger {
	return NewLoggerWithLevel("debug")
}

// NewLoggerWithLevel creates a console Logger. Errors go to stderr, everything
// else to stdout. Unknown levels fall back to info.
func NewLoggerWithLevel(level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	w := levelSplitWriter{
		out: zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"},
		err: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"},
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

type levelSplitWriter struct {
	out io.Writer
	err io.Writer
}

func (w levelSplitWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w levelSplitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}
