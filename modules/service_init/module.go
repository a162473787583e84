// Package service_init provides the command that opens a service session,
// the first step of nearly every suite.
package service_init

import (
	"context"
	"fmt"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/latent"
	"github.com/vk/latentgrid/internal/registry"
	"github.com/vk/latentgrid/internal/sdkclient"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the command factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("service_init", &registry.Factory{
		Build: buildCommand,
	})
}

// buildCommand wires an InitializeAsync call into a latent command. The
// command passes when the session opens with the step's expected code.
func buildCommand(deps *registry.Deps, input any, step *config.Step) (*latent.Command, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("service client dependency was not injected; set a service URL")
	}

	desc := fmt.Sprintf("%s: service session initializes without errors", step.Name)
	start := func(ctx context.Context, complete latent.CompleteFunc) {
		deps.Client.InitializeAsync(ctx, sdkclient.CompletionFunc(complete))
	}
	return latent.New(desc, step.Expect, start, deps.Reporter), nil
}
