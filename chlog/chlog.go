// Package chlog defines the minimal logging seam used by the rest of this
// module: an injected Sink rather than a package-level logger, matching
// the dependency-injection style the codec and pool packages already use
// (explicit construction, no hidden globals).
package chlog

import (
	"fmt"
	"log"
)

// Level is the severity of one logged event.
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
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one structured log entry: a short message plus loosely typed
// fields (block counts, method names, byte sizes) a caller may want to
// correlate.
type Event struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// Sink receives logged events. Callers that don't want logging pass
// NoopSink{}; callers that want it wire in any Sink implementation,
// including one backed by an external structured logger.
type Sink interface {
	Log(Event)
}

// NoopSink discards every event. It is the default sink for all
// constructors in this module that accept one.
type NoopSink struct{}

// Log implements Sink by discarding ev.
func (NoopSink) Log(Event) {}

// StdSink adapts the standard library's log.Logger to Sink, formatting
// each event as "level: message key=value ...".
type StdSink struct {
	Logger *log.Logger
}

// NewStdSink wraps l. A nil l uses log.Default().
func NewStdSink(l *log.Logger) StdSink {
	if l == nil {
		l = log.Default()
	}

	return StdSink{Logger: l}
}

// Log implements Sink by writing ev through the wrapped *log.Logger.
func (s StdSink) Log(ev Event) {
	msg := fmt.Sprintf("%s: %s", ev.Level, ev.Message)

	for k, v := range ev.Fields {
		msg += fmt.Sprintf(" %s=%v", k, v)
	}

	s.Logger.Print(msg)
}

// Debug logs a debug-level event to s with the given fields, a no-op if s
// is nil.
func Debug(s Sink, msg string, fields map[string]any) { emit(s, LevelDebug, msg, fields) }

// Info logs an info-level event to s with the given fields.
func Info(s Sink, msg string, fields map[string]any) { emit(s, LevelInfo, msg, fields) }

// Warn logs a warn-level event to s with the given fields.
func Warn(s Sink, msg string, fields map[string]any) { emit(s, LevelWarn, msg, fields) }

// Error logs an error-level event to s with the given fields.
func Error(s Sink, msg string, fields map[string]any) { emit(s, LevelError, msg, fields) }

func emit(s Sink, level Level, msg string, fields map[string]any) {
	if s == nil {
		return
	}

	s.Log(Event{Level: level, Message: msg, Fields: fields})
}
