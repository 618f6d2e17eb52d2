package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	Infof(rec, "scanning %s", "/var/www")
	Warnf(rec, "missing %d files", 2)
	Itemf(rec, "akismet")

	events := rec.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Kind != KindInfo || events[0].Message != "scanning /var/www" {
		t.Errorf("unexpected first event %+v", events[0])
	}

	warnings := rec.Messages(KindWarning)
	if len(warnings) != 1 || warnings[0] != "missing 2 files" {
		t.Errorf("unexpected warnings %v", warnings)
	}

	if events[0].Fields != nil {
		t.Errorf("plain event has fields %v", events[0].Fields)
	}

	Emitf(rec, KindItem, Fields{"name": "Akismet", "version": "5.3"}, "Found: %s", "Akismet")
	last := rec.Events()[3]
	if last.Message != "Found: Akismet" || last.Fields["version"] != "5.3" {
		t.Errorf("unexpected event %+v", last)
	}
}

func TestConsoleSink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		emit func(Sink)
		want string
	}{
		{"info is printed verbatim", func(s Sink) { Infof(s, "hello") }, "hello\n"},
		{"items are indented", func(s Sink) { Itemf(s, "build/out.log") }, "  - build/out.log\n"},
		{"sections start with a blank line", func(s Sink) { Sectionf(s, "Plugins") }, "\nPlugins\n"},
		{"success is marked", func(s Sink) { Successf(s, "done") }, "✅ done\n"},
		{"warnings are marked", func(s Sink) { Warnf(s, "careful") }, "⚠️  careful\n"},
		{"errors are marked", func(s Sink) { Errorf(s, "failed") }, "❌ failed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			sink := NewConsoleSink(&buf, WithColor(false))
			tt.emit(sink)

			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("buffers are never coloured by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		Warnf(NewConsoleSink(&buf), "plain")
		if strings.Contains(buf.String(), "\x1b[") {
			t.Errorf("expected no escape codes, got %q", buf.String())
		}
	})
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if KindWarning.String() != "warning" {
		t.Errorf("expected warning, got %q", KindWarning.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("expected unknown, got %q", Kind(99).String())
	}
}
