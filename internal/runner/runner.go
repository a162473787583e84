// Package runner owns the tick loop that drives latent commands to
// completion. Commands run in order, one in flight at a time: the runner
// starts the head of the queue, polls Update once per tick, and advances
// past it when it reports finished.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/latent"
)

const (
	// DefaultTickInterval is the poll period used when Options leaves it zero.
	DefaultTickInterval = 50 * time.Millisecond
	// DefaultStepTimeout is the per-step deadline used when neither the
	// Options nor the step itself set one. Commands have no internal
	// timeout, so this backstop is what keeps a lost completion from
	// hanging the run forever.
	DefaultStepTimeout = 30 * time.Second
)

// Options configures a Runner.
type Options struct {
	TickInterval time.Duration
	StepTimeout  time.Duration
}

// Item pairs a command with the runner policy that applies to it.
type Item struct {
	Command *latent.Command
	// Timeout overrides the runner's default step deadline. Zero means
	// use the default.
	Timeout time.Duration
}

// Runner polls queued commands to completion.
type Runner struct {
	opts Options
}

// New creates a Runner, filling in defaults for unset options.
func New(opts Options) *Runner {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = DefaultStepTimeout
	}
	return &Runner{opts: opts}
}

// Run drives the queued commands in order. It returns an error when a step
// times out, when a command is misused, or when the context is cancelled;
// a failed verdict on its own does not abort the run (the reporter carries
// that outcome).
func (r *Runner) Run(ctx context.Context, items []Item) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Runner started.", "steps", len(items), "tick", r.opts.TickInterval)

	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	for _, item := range items {
		cmd := item.Command
		stepLogger := logger.With("step", cmd.Description())

		timeout := item.Timeout
		if timeout <= 0 {
			timeout = r.opts.StepTimeout
		}
		deadline := time.Now().Add(timeout)

		if err := cmd.Start(ctx); err != nil {
			return fmt.Errorf("failed to start step %q: %w", cmd.Description(), err)
		}

		for !cmd.Update() {
			if time.Now().After(deadline) {
				return fmt.Errorf("step %q timed out after %v waiting for completion", cmd.Description(), timeout)
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("run aborted during step %q: %w", cmd.Description(), ctx.Err())
			case <-ticker.C:
			}
		}

		stepLogger.Debug("Step finished.", "verdict", cmd.Verdict().String(), "actual", cmd.Actual().String())
	}

	logger.Debug("Runner finished.")
	return nil
}
