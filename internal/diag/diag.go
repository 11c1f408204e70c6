// Package diag carries diagnostics from the conversion core to whoever
// runs it. The core never logs; it hands events to a Reporter.
package diag

import "fmt"

// Level is the severity of an event.
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
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Kind classifies events that callers may want to count or filter.
type Kind string

const (
	KindGeneral       Kind = ""
	KindNoMatch       Kind = "no-match"
	KindRejected      Kind = "rejected"
	KindMatched       Kind = "matched"
	KindNoLocation    Kind = "no-location"
	KindNoKey         Kind = "no-key"
	KindDuplicateKey  Kind = "duplicate-key"
	KindMissingSource Kind = "missing-source"
	KindWritten       Kind = "written"
)

// Event is a single diagnostic.
type Event struct {
	Level   Level
	Kind    Kind
	Message string
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(Event)
}

// Debugf reports a debug event.
func Debugf(r Reporter, kind Kind, format string, args ...any) {
	emit(r, LevelDebug, kind, format, args...)
}

// Infof reports an info event.
func Infof(r Reporter, kind Kind, format string, args ...any) {
	emit(r, LevelInfo, kind, format, args...)
}

// Warnf reports a warning.
func Warnf(r Reporter, kind Kind, format string, args ...any) {
	emit(r, LevelWarn, kind, format, args...)
}

func emit(r Reporter, level Level, kind Kind, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(Event{Level: level, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Recorder keeps every event it receives. Useful in tests and for
// end-of-run summaries.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Report(e Event) { r.Events = append(r.Events, e) }

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
