package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ConsoleSink renders events as lines of text, colouring them when the
// destination is a terminal.
type ConsoleSink struct {
	w io.Writer

	section *color.Color
	success *color.Color
	warning *color.Color
	failure *color.Color
	item    *color.Color
}

// ConsoleOption configures a ConsoleSink.
type ConsoleOption func(*ConsoleSink)

// WithColor forces colour output on or off.
func WithColor(enabled bool) ConsoleOption {
	return func(s *ConsoleSink) {
		for _, c := range s.colors() {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewConsoleSink creates a ConsoleSink writing to w. Colour is enabled only
// for os.Stdout and os.Stderr when they are terminals and NO_COLOR is unset.
func NewConsoleSink(w io.Writer, opts ...ConsoleOption) *ConsoleSink {
	s := &ConsoleSink{
		w:       w,
		section: color.New(color.Bold, color.FgCyan),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.Bold, color.FgRed),
		item:    color.New(color.Faint),
	}

	WithColor(isTerminal(w))(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ConsoleSink) colors() []*color.Color {
	return []*color.Color{s.section, s.success, s.warning, s.failure, s.item}
}

// isTerminal reports whether w is a standard stream attached to a TTY.
func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// Emit implements Sink.
func (s *ConsoleSink) Emit(ev Event) {
	var line string
	switch ev.Kind {
	case KindSection:
		line = "\n" + s.section.Sprint(ev.Message)
	case KindItem:
		line = s.item.Sprint("  - ") + ev.Message
	case KindSuccess:
		line = s.success.Sprint("✅ " + ev.Message)
	case KindWarning:
		line = s.warning.Sprint("⚠️  " + ev.Message)
	case KindError:
		line = s.failure.Sprint("❌ " + ev.Message)
	default:
		line = ev.Message
	}
	fmt.Fprintln(s.w, line) //nolint:errcheck // progress output is best effort
}
