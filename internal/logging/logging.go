// Package logging provides the leveled logger used by hdrtool.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level represents log severity levels.
type Level = logrus.Level

const (
	LevelDebug = logrus.DebugLevel
	LevelInfo  = logrus.InfoLevel
	LevelWarn  = logrus.WarnLevel
	LevelError = logrus.ErrorLevel
)

// Logger provides leveled logging.
type Logger struct {
	l *logrus.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// New creates a logger writing text records to w at info level.
func New(w io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(LevelInfo)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return &Logger{l: l}
}

// Default returns the process-wide logger writing to stderr.
func Default() *Logger {
	once.Do(func() {
		defaultLogger = New(os.Stderr)
	})
	return defaultLogger
}

// SetLevelFromString sets the level by name, unknown names select info.
func (l *Logger) SetLevelFromString(levelStr string) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		l.l.SetLevel(LevelDebug)
	case "warn", "warning":
		l.l.SetLevel(LevelWarn)
	case "error":
		l.l.SetLevel(LevelError)
	default:
		l.l.SetLevel(LevelInfo)
	}
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	return l.l.GetLevel()
}

// WithFile returns an entry tagged with a file path.
func (l *Logger) WithFile(path string) *logrus.Entry {
	return l.l.WithField("file", path)
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.l.Debugf(format, args...)
}

// Infof logs an info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, args...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.l.Warnf(format, args...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, args...)
}
