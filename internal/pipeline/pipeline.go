package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/wpkit/internal/model"
)

// Step is one stage of a scan.
type Step interface {
	// Name identifies the step in logs and ScanResult.Steps.
	Name() string

	// Do adds to result. Recoverable problems belong in result.Warnings;
	// an error means the scan cannot continue.
	Do(ctx context.Context, result *model.ScanResult) error
}

// Pipeline runs steps in order against one ScanResult.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddSteps appends steps in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Name())
	}
	return names
}

// Execute runs every step against result and stops at the first error.
// The context is checked before each step: a cancelled scan sets
// result.Cancelled and returns ctx.Err(). Names of completed steps are
// appended to result.Steps.
func (p *Pipeline) Execute(ctx context.Context, result *model.ScanResult) error {
	p.logger.Debug("scan started", "root", result.Root, "steps", p.StepNames())
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("scan cancelled", "before", step.Name(), "root", result.Root, "reason", err)
			result.Cancelled = true
			return err
		}

		start := time.Now()
		err := step.Do(ctx, result)
		elapsed := time.Since(start)

		if err != nil {
			p.logger.Error("scan step failed", "step", step.Name(), "root", result.Root, "elapsed", elapsed, "error", err)
			return err
		}

		p.logger.Debug("scan step done", "step", step.Name(), "elapsed", elapsed)
		result.Steps = append(result.Steps, step.Name())
	}
	return nil
}
