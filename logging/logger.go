// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package logging provides the pluggable structured logger shared by the
// go-netdev protocol clients.
//
// Both the RESTCONF and NETCONF clients accept any implementation of the
// Logger interface. Two implementations ship with the library:
//   - DefaultLogger: wraps Go's standard log package with a level threshold
//   - NoOpLogger: discards everything (the default)
package logging

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// MaxLogValueLength limits the length of individual log values. Longer
// values are truncated to keep device payloads from flooding log output.
const MaxLogValueLength = 1024

// Logger is the interface for structured, leveled logging with key-value
// pairs. The context is passed through so adapters for context-aware
// loggers (slog, zap with fields from ctx) can use it.
//
// Example adapter:
//
//	type SlogAdapter struct {
//	    logger *slog.Logger
//	}
//
//	func (s *SlogAdapter) Debug(ctx context.Context, msg string, keysAndValues ...any) {
//	    s.logger.DebugContext(ctx, msg, keysAndValues...)
//	}
//	// ... Info, Warn, Error likewise
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// Level is the severity threshold for DefaultLogger.
type Level int

const (
	// LevelDebug enables all log output (most verbose)
	LevelDebug Level = iota

	// LevelInfo enables Info, Warn, and Error output
	LevelInfo

	// LevelWarn enables Warn and Error output
	LevelWarn

	// LevelError enables only Error output
	LevelError

	// LevelNone disables all output
	LevelNone
)

// String returns the string representation of a Level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(l))
	}
}

// DefaultLogger wraps Go's standard log package with a configurable level.
//
// Output format: [LEVEL] message key1=value1 key2=value2
type DefaultLogger struct {
	level Level
}

// NewDefaultLogger creates a DefaultLogger with the specified level.
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{level: level}
}

// Debug logs a debug message with structured key-value pairs.
func (l *DefaultLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	if l.level <= LevelDebug {
		l.write(LevelDebug, msg, keysAndValues...)
	}
}

// Info logs an informational message with structured key-value pairs.
func (l *DefaultLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	if l.level <= LevelInfo {
		l.write(LevelInfo, msg, keysAndValues...)
	}
}

// Warn logs a warning message with structured key-value pairs.
func (l *DefaultLogger) Warn(_ context.Context, msg string, keysAndValues ...any) {
	if l.level <= LevelWarn {
		l.write(LevelWarn, msg, keysAndValues...)
	}
}

// Error logs an error message with structured key-value pairs.
func (l *DefaultLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	if l.level <= LevelError {
		l.write(LevelError, msg, keysAndValues...)
	}
}

func (l *DefaultLogger) write(level Level, msg string, keysAndValues ...any) {
	estimated := len(msg) + 8 + len(keysAndValues)*24
	var builder strings.Builder
	builder.Grow(estimated)

	builder.WriteString("[")
	builder.WriteString(level.String())
	builder.WriteString("] ")
	builder.WriteString(msg)

	for i := 0; i < len(keysAndValues); i += 2 {
		builder.WriteString(" ")
		builder.WriteString(SanitizeValue(keysAndValues[i]))
		builder.WriteString("=")
		if i+1 < len(keysAndValues) {
			builder.WriteString(SanitizeValue(keysAndValues[i+1]))
		} else {
			// Odd-length list - mark the missing value explicitly
			builder.WriteString("<MISSING>")
		}
	}

	log.Println(builder.String())
}

// SanitizeValue formats a log value and neutralizes characters that could
// forge log entries (newlines, ANSI escapes, other control characters).
// Values longer than MaxLogValueLength are truncated.
func SanitizeValue(val any) string {
	str := fmt.Sprintf("%v", val)

	if len(str) > MaxLogValueLength {
		str = str[:MaxLogValueLength] + "...[TRUNCATED]"
	}

	var builder strings.Builder
	builder.Grow(len(str))

	for i := 0; i < len(str); {
		r, size := utf8.DecodeRuneInString(str[i:])
		if r == utf8.RuneError && size <= 1 {
			builder.WriteRune('.')
			i++
			continue
		}

		switch {
		case r == '\n' || r == '\r' || r == '\t' || r == '\f':
			builder.WriteRune(' ')
		case r < 32 || r == 127:
			// Remaining control characters, including ESC
			builder.WriteRune('.')
		default:
			builder.WriteString(str[i : i+size])
		}
		i += size
	}

	return builder.String()
}

// NoOpLogger discards all log messages. This is the default logger used
// by the go-netdev clients when no custom logger is configured.
type NoOpLogger struct{}

// Debug discards the log message.
func (n *NoOpLogger) Debug(_ context.Context, _ string, _ ...any) {}

// Info discards the log message.
func (n *NoOpLogger) Info(_ context.Context, _ string, _ ...any) {}

// Warn discards the log message.
func (n *NoOpLogger) Warn(_ context.Context, _ string, _ ...any) {}

// Error discards the log message.
func (n *NoOpLogger) Error(_ context.Context, _ string, _ ...any) {}
