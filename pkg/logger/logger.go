package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	// logger is the global logger instance
	logger *Logger
	once   sync.Once
)

// Logger wraps logrus with printf-style helpers and color support
type Logger struct {
	*logrus.Logger
	green *color.Color
}

// New returns the process-wide logger, creating it on first use
func New() *Logger {
	once.Do(func() {
		logger = &Logger{
			Logger: logrus.New(),
			green:  color.New(color.FgGreen),
		}
		configure(logger)
	})
	return logger
}

func configure(l *Logger) {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006/01/02 15:04:05",
			FullTimestamp:   true,
			ForceColors:     true,
			DisableSorting:  true,
		})
	}

	level := logrus.InfoLevel
	if os.Getenv("DEBUG") == "true" {
		level = logrus.DebugLevel
	} else if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	l.SetLevel(level)
	if level == logrus.DebugLevel {
		l.Info("Debug logging enabled")
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatal(fmt.Sprintf(format, args...))
}

// Success prints a green status line, used for startup banners
func (l *Logger) Success(format string, args ...interface{}) {
	l.Logger.Info(l.green.Sprintf(format, args...))
}

// Audit returns an entry carrying the given fields. Upload accept/reject
// decisions go through here so they stay machine-parsable.
func (l *Logger) Audit(fields logrus.Fields) *logrus.Entry {
	return l.WithFields(fields).WithField("audit", true)
}

// IsDebugEnabled returns whether debug logging is enabled
func (l *Logger) IsDebugEnabled() bool {
	return l.GetLevel() == logrus.DebugLevel
}
