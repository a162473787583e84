// Package pause provides a pure-latent command: it completes with OK after
// a fixed duration and talks to no external service. Suites use it to let
// server-side state settle between steps; it also exercises the multi-tick
// path of the runner with no network involved.
package pause

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/latent"
	"github.com/vk/latentgrid/internal/registry"
	"github.com/vk/latentgrid/internal/status"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the pause command.
type Input struct {
	Duration string `hcl:"duration"`
}

// Register registers the command factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("pause", &registry.Factory{
		NewInput: func() any { return new(Input) },
		Build:    buildCommand,
	})
}

func buildCommand(deps *registry.Deps, input any, step *config.Step) (*latent.Command, error) {
	args := input.(*Input)

	duration, err := time.ParseDuration(args.Duration)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duration: %w", err)
	}
	if duration < 0 {
		return nil, fmt.Errorf("duration cannot be negative, got %v", duration)
	}

	desc := fmt.Sprintf("%s: pause of %v elapses", step.Name, duration)
	start := func(ctx context.Context, complete latent.CompleteFunc) {
		time.AfterFunc(duration, func() {
			complete(status.OK)
		})
	}
	return latent.New(desc, step.Expect, start, deps.Reporter), nil
}
