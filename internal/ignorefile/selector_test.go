package ignorefile

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/nao1215/wpkit/internal/table"
)

// records builds a record sequence from action/path pairs.
func records(pairs ...[2]string) iter.Seq2[table.Record, error] {
	return func(yield func(table.Record, error) bool) {
		for i, p := range pairs {
			rec := table.Record{
				Line: i + 2,
				Values: map[string]string{
					DefaultActionColumn: p[0],
					DefaultPathColumn:   p[1],
				},
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func TestSelectorSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pairs [][2]string
		want  []string
	}{
		{
			name:  "ignore marker and empty action are selected",
			pairs: [][2]string{{"Ignore", "build/out.log"}, {"", "tmp/cache"}, {"Keep", "src/main.go"}},
			want:  []string{"build/out.log", "tmp/cache"},
		},
		{
			name:  "marker comparison is case-sensitive",
			pairs: [][2]string{{"ignore", "a"}, {"IGNORE", "b"}, {"Ignore", "c"}},
			want:  []string{"c"},
		},
		{
			name:  "empty paths are skipped even when selected",
			pairs: [][2]string{{"Ignore", ""}, {"", ""}},
			want:  nil,
		},
		{
			name:  "source order is preserved",
			pairs: [][2]string{{"", "z"}, {"", "a"}, {"", "z"}},
			want:  []string{"z", "a", "z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewSelector().Select(records(tt.pairs...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectorCustomColumns(t *testing.T) {
	t.Parallel()

	s := &Selector{ActionColumn: "Decision", PathColumn: "File", Marker: "skip"}
	if got := s.Columns(); !slices.Equal(got, []string{"Decision", "File"}) {
		t.Errorf("unexpected columns %q", got)
	}

	path, ok := s.Match(table.Record{Values: map[string]string{"Decision": "skip", "File": "x.log"}})
	if !ok || path != "x.log" {
		t.Errorf("expected x.log to match, got %q %v", path, ok)
	}
}

func TestSelectorStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	seq := func(yield func(table.Record, error) bool) {
		if !yield(table.Record{Values: map[string]string{DefaultPathColumn: "a"}}, nil) {
			return
		}
		yield(table.Record{}, boom)
	}

	_, err := NewSelector().Select(seq)
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
