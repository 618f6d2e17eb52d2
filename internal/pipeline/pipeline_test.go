package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/wpkit/internal/model"
)

// traceStep appends its name to a shared trace, runs after, and returns err.
type traceStep struct {
	name  string
	trace *[]string
	err   error
	after func()
}

func (s *traceStep) Name() string { return s.name }

func (s *traceStep) Do(_ context.Context, _ *model.ScanResult) error {
	*s.trace = append(*s.trace, s.name)
	if s.after != nil {
		s.after()
	}
	return s.err
}

func recordStep(name string, trace *[]string, err error) Step {
	return &traceStep{name: name, trace: trace, err: err}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken")

	tests := []struct {
		name      string
		failAt    string
		wantErr   error
		wantTrace []string
		wantSteps []string
	}{
		{
			name:      "all steps succeed",
			wantTrace: []string{"verify", "version", "plugins", "themes"},
			wantSteps: []string{"verify", "version", "plugins", "themes"},
		},
		{
			name:      "stops at first failure",
			failAt:    "verify",
			wantErr:   errBroken,
			wantTrace: []string{"verify"},
			wantSteps: nil,
		},
		{
			name:      "later failure keeps earlier steps",
			failAt:    "plugins",
			wantErr:   errBroken,
			wantTrace: []string{"verify", "version", "plugins"},
			wantSteps: []string{"verify", "version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var trace []string
			p := New()
			for _, name := range []string{"verify", "version", "plugins", "themes"} {
				var err error
				if name == tt.failAt {
					err = errBroken
				}
				p.AddSteps(recordStep(name, &trace, err))
			}

			result := model.NewScanResult("/srv/wp")
			err := p.Execute(context.Background(), result)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			if !slices.Equal(trace, tt.wantTrace) {
				t.Errorf("ran %v, want %v", trace, tt.wantTrace)
			}
			if !slices.Equal(result.Steps, tt.wantSteps) {
				t.Errorf("result.Steps = %v, want %v", result.Steps, tt.wantSteps)
			}
			if len(result.Warnings) != 0 {
				t.Errorf("unexpected warnings %q", result.Warnings)
			}
			if result.Cancelled {
				t.Error("result marked cancelled")
			}
		})
	}
}

func TestPipelineExecuteCancelled(t *testing.T) {
	t.Parallel()

	t.Run("before the first step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var trace []string
		p := New()
		p.AddSteps(recordStep("verify", &trace, nil))

		result := model.NewScanResult("/srv/wp")
		if err := p.Execute(ctx, result); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
		if len(trace) != 0 {
			t.Errorf("steps ran after cancel: %v", trace)
		}
		if !result.Cancelled {
			t.Error("result not marked cancelled")
		}
	})

	t.Run("between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var trace []string
		p := New()
		p.AddSteps(
			&traceStep{name: "verify", trace: &trace, after: cancel},
			recordStep("version", &trace, nil),
		)

		result := model.NewScanResult("/srv/wp")
		if err := p.Execute(ctx, result); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
		if !slices.Equal(trace, []string{"verify"}) {
			t.Errorf("ran %v, want only verify", trace)
		}
		if !slices.Equal(result.Steps, []string{"verify"}) {
			t.Errorf("result.Steps = %v, want [verify]", result.Steps)
		}
	})
}

func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New()
	if names := p.StepNames(); len(names) != 0 {
		t.Errorf("empty pipeline has steps %v", names)
	}

	var trace []string
	p.AddSteps(recordStep("a", &trace, nil), recordStep("b", &trace, nil))
	p.AddSteps(recordStep("c", &trace, nil))
	if got, want := p.StepNames(), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("StepNames() = %v, want %v", got, want)
	}
}

func TestPipelineLogsStepOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var trace []string
	p := New(WithLogger(logger))
	p.AddSteps(recordStep("verify", &trace, nil), recordStep("themes", &trace, nil))
	if err := p.Execute(context.Background(), model.NewScanResult("/srv/wp")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "steps=\"[verify themes]\"") {
		t.Errorf("step order not logged: %s", buf.String())
	}
}
