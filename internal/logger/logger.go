package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with additional functionality
type Logger struct {
	*logrus.Logger
}

// New creates a new logger instance writing text to stderr
func New(level string) *Logger {
	return NewWithOptions(level, "text", os.Stderr)
}

// NewWithOptions creates a logger with the given level, format ("text" or
// "json") and destination. Unknown levels fall back to info.
func NewWithOptions(level, format string, out io.Writer) *Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	}

	log.SetOutput(out)

	return &Logger{Logger: log}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithOptions("panic", "text", io.Discard)
}

// WithComponent tags log entries with a component name
func WithComponent(log logrus.FieldLogger, component string) *logrus.Entry {
	return log.WithField("component", component)
}

// WithStatement tags log entries with a statement ID
func WithStatement(log logrus.FieldLogger, id string) *logrus.Entry {
	return log.WithField("statement_id", id)
}
