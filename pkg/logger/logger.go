// Package logger provides the logging interface used across warpcookie.
// Backends write through the standard library logger or zerolog; tests use
// MockLogger to assert what was logged.
//
// Cookie values are never handed to a Logger. Callers log names, domains
// and origins only.
package logger

import (
	"fmt"
	"io"
	"log"
)

// Logger defines the interface for leveled logging.
type Logger interface {
	// Debug logs diagnostic detail (e.g., "cookie expired: [name: sid]...").
	Debug(format string, args ...interface{})

	// Info logs an informational message (e.g., "cookie store not set in context").
	Info(format string, args ...interface{})

	// Warning logs a warning message.
	Warning(format string, args ...interface{})

	// Error logs an error message.
	Error(format string, args ...interface{})

	// Close releases resources held by the logger.
	// Safe to call multiple times. Returns nil for loggers without resources.
	Close() error
}

// StandardLogger wraps the stdlib *log.Logger.
type StandardLogger struct {
	logger *log.Logger
	debug  bool
	// tags is prepended to every message, e.g. "request=abc ".
	tags   string
	closer io.Closer
}

// NewStandardLogger creates a logger that wraps the given *log.Logger.
// Debug messages are dropped unless debug is true.
func NewStandardLogger(l *log.Logger, debug bool) *StandardLogger {
	return &StandardLogger{logger: l, debug: debug}
}

// NewFileLogger creates a StandardLogger appending timestamped lines to f.
// Close closes f.
func NewFileLogger(f io.WriteCloser, debug bool) *StandardLogger {
	s := NewStandardLogger(log.New(f, "", log.LstdFlags), debug)
	s.closer = f
	return s
}

// With returns a logger that adds key=value in front of every message.
// The returned logger shares the output and does not close it.
func (s *StandardLogger) With(key, value string) Logger {
	return &StandardLogger{logger: s.logger, debug: s.debug, tags: s.tags + key + "=" + value + " "}
}

// Debug logs a diagnostic message with [DEBUG] prefix when enabled.
func (s *StandardLogger) Debug(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.logger.Printf("[DEBUG] "+s.tags+format, args...)
}

// Info logs an informational message with [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+s.tags+format, args...)
}

// Warning logs a warning message with [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+s.tags+format, args...)
}

// Error logs an error message with [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+s.tags+format, args...)
}

// Close closes the file of a NewFileLogger and is a no-op otherwise.
func (s *StandardLogger) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}

// With tags l with the key/value pair when its backend supports tagging
// and returns l unchanged otherwise.
func With(l Logger, key, value string) Logger {
	if t, ok := l.(interface {
		With(key, value string) Logger
	}); ok {
		return t.With(key, value)
	}
	return l
}

// NopLogger is a logger that discards all messages.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(format string, args ...interface{})   {}
func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Close() error                               { return nil }

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// MockLogger implements Logger for testing purposes.
// It records all log calls for verification in tests.
type MockLogger struct {
	DebugCalls   []string
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

// NewMockLogger creates a new MockLogger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Debug records the formatted message.
func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.DebugCalls = append(m.DebugCalls, fmt.Sprintf(format, args...))
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

// Close records that Close was called.
func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return nil
}

var _ Logger = (*MockLogger)(nil)
