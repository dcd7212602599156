// Package logger provides the process-wide component logger.
// Every log line carries a component tag ("dispatch", "actions", "transport")
// so one bot's output can be filtered per concern without external tooling.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level classifies log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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
	default:
		return "?"
	}
}

// ParseLevel maps a config string to a Level. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu       sync.Mutex
	minLevel = LevelInfo
	out      io.Writer = os.Stderr
)

// SetLevel sets the minimum level that will be emitted.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetOutput redirects log output (tests use this to capture lines).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func emit(level Level, component, msg string, fields map[string]interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	fmt.Fprintf(&b, " %-5s [%s] %s", level, component, msg)

	if len(fields) > 0 {
		// Stable key order so lines are greppable and test-friendly
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}
	b.WriteByte('\n')
	io.WriteString(out, b.String())
}

// DebugC logs a debug message for a component.
func DebugC(component, msg string) { emit(LevelDebug, component, msg, nil) }

// DebugCF logs a debug message with structured fields.
func DebugCF(component, msg string, fields map[string]interface{}) {
	emit(LevelDebug, component, msg, fields)
}

// InfoC logs an info message for a component.
func InfoC(component, msg string) { emit(LevelInfo, component, msg, nil) }

// InfoCF logs an info message with structured fields.
func InfoCF(component, msg string, fields map[string]interface{}) {
	emit(LevelInfo, component, msg, fields)
}

// WarnC logs a warning for a component.
func WarnC(component, msg string) { emit(LevelWarn, component, msg, nil) }

// WarnCF logs a warning with structured fields.
func WarnCF(component, msg string, fields map[string]interface{}) {
	emit(LevelWarn, component, msg, fields)
}

// ErrorC logs an error for a component.
func ErrorC(component, msg string) { emit(LevelError, component, msg, nil) }

// ErrorCF logs an error with structured fields.
func ErrorCF(component, msg string, fields map[string]interface{}) {
	emit(LevelError, component, msg, fields)
}
