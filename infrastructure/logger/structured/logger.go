// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: JSON output with level filtering and optional rotated log files via lumberjack

package structured

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Logger.
type Options struct {
	// Level is one of debug, info, warn or error. Unknown values fall back to info.
	Level string

	// File, when set, receives the log output through a rotating writer instead of stdout.
	File string

	// Output overrides the destination, mainly for tests.
	Output io.Writer
}

// Logger implements the Logger interface on top of logrus
type Logger struct {
	entry *logrus.Logger
}

// New creates a structured logger
func New(opts Options) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(ParseLevel(opts.Level))

	switch {
	case opts.Output != nil:
		l.SetOutput(opts.Output)
	case opts.File != "":
		l.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	default:
		l.SetOutput(os.Stdout)
	}

	return &Logger{entry: l}
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}
