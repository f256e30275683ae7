// Package logger provides the shared logging facility.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet logger with mutable output routing.
type Logger struct {
	mu      sync.Mutex
	logger  *log.Logger
	console bool
	fileOut *os.File
}

var defaultLogger = New()

// New creates a Logger writing to stdout at info level.
func New() *Logger {
	l := &Logger{console: true}
	l.logger = log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.InfoLevel,
	})
	return l
}

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// Component returns a sub-logger with a component prefix, e.g. "driver".
func (l *Logger) Component(name string) *log.Logger {
	return l.logger.WithPrefix(name)
}

// SetLevel sets the minimum level from a string ("debug", "info", "warn", "error").
// Unknown values keep the current level.
func (l *Logger) SetLevel(level string) {
	if lv, err := log.ParseLevel(level); err == nil {
		l.logger.SetLevel(lv)
	}
}

// SetConsole enables or disables console output.
func (l *Logger) SetConsole(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = enabled
	l.updateOutput()
}

// SetFile enables logging to the given file path in addition to the console.
// Passing enabled=false closes any open log file.
func (l *Logger) SetFile(enabled bool, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileOut != nil {
		l.fileOut.Close()
		l.fileOut = nil
	}

	if enabled && path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		l.fileOut = f
	}

	l.updateOutput()
	return nil
}

func (l *Logger) updateOutput() {
	var writers []io.Writer
	if l.console {
		writers = append(writers, os.Stdout)
	}
	if l.fileOut != nil {
		writers = append(writers, l.fileOut)
	}

	switch len(writers) {
	case 0:
		l.logger.SetOutput(io.Discard)
	case 1:
		l.logger.SetOutput(writers[0])
	default:
		l.logger.SetOutput(io.MultiWriter(writers...))
	}
}

// Debug logs at debug level with printf formatting.
func (l *Logger) Debug(format string, args ...interface{}) { l.logger.Debugf(format, args...) }

// Info logs at info level with printf formatting.
func (l *Logger) Info(format string, args ...interface{}) { l.logger.Infof(format, args...) }

// Warn logs at warn level with printf formatting.
func (l *Logger) Warn(format string, args ...interface{}) { l.logger.Warnf(format, args...) }

// Error logs at error level with printf formatting.
func (l *Logger) Error(format string, args ...interface{}) { l.logger.Errorf(format, args...) }

// Close releases the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileOut != nil {
		err := l.fileOut.Close()
		l.fileOut = nil
		return err
	}
	return nil
}

// Package-level helpers on the default logger.
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }

// SetLevel sets the default logger's level.
func SetLevel(level string) { defaultLogger.SetLevel(level) }

// Component returns a prefixed sub-logger off the default logger.
func Component(name string) *log.Logger { return defaultLogger.Component(name) }
