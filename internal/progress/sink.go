package progress

import (
	"fmt"
	"sync"
)

// Kind classifies a progress event.
type Kind int

const (
	// KindInfo is a plain informational line.
	KindInfo Kind = iota
	// KindSection starts a new output section.
	KindSection
	// KindItem is one entry of a list (a found plugin, an added path).
	KindItem
	// KindSuccess reports a completed operation.
	KindSuccess
	// KindWarning reports a non-fatal problem.
	KindWarning
	// KindError reports a fatal problem.
	KindError
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSection:
		return "section"
	case KindItem:
		return "item"
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one progress message.
type Event struct {
	// Kind determines how the event is rendered.
	Kind Kind

	// Message is the human-readable text.
	Message string

	// Fields carries the values behind Message, such as a count or a
	// component name. Nil for plain text events.
	Fields Fields
}

// Fields holds structured event values keyed by name.
type Fields map[string]any

// Sink receives progress events.
type Sink interface {
	Emit(ev Event)
}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event) {}

// Emitf emits an event of kind with fields attached.
func Emitf(s Sink, kind Kind, fields Fields, format string, args ...any) {
	s.Emit(Event{Kind: kind, Message: fmt.Sprintf(format, args...), Fields: fields})
}

// Infof emits a KindInfo event.
func Infof(s Sink, format string, args ...any) {
	s.Emit(Event{Kind: KindInfo, Message: fmt.Sprintf(format, args...)})
}

// Sectionf emits a KindSection event.
func Sectionf(s Sink, format string, args ...any) {
	s.Emit(Event{Kind: KindSection, Message: fmt.Sprintf(format, args...)})
}

// Itemf emits a KindItem event.
func Itemf(s Sink, format string, args ...any) {
	s.Emit(Event{Kind: KindItem, Message: fmt.Sprintf(format, args...)})
}

// Successf emits a KindSuccess event.
func Successf(s Sink, format string, args ...any) {
	s.Emit(Event{Kind: KindSuccess, Message: fmt.Sprintf(format, args...)})
}

// Warnf emits a KindWarning event.
func Warnf(s Sink, format string, args ...any) {
	s.Emit(Event{Kind: KindWarning, Message: fmt.Sprintf(format, args...)})
}

// Errorf emits a KindError event.
func Errorf(s Sink, format string, args ...any) {
	s.Emit(Event{Kind: KindError, Message: fmt.Sprintf(format, args...)})
}

// Recorder is a Sink that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit implements Sink.
func (r *Recorder) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of all recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns the messages of recorded events of the given kind.
func (r *Recorder) Messages(kind Kind) []string {
	var out []string
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			out = append(out, ev.Message)
		}
	}
	return out
}
