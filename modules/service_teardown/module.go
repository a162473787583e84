// Package service_teardown provides the command that closes the service
// session opened by service_init.
package service_teardown

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
	r.Register("service_teardown", &registry.Factory{
		Build: buildCommand,
	})
}

func buildCommand(deps *registry.Deps, input any, step *config.Step) (*latent.Command, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("service client dependency was not injected; set a service URL")
	}

	desc := fmt.Sprintf("%s: service session shuts down cleanly", step.Name)
	start := func(ctx context.Context, complete latent.CompleteFunc) {
		deps.Client.ShutdownAsync(ctx, sdkclient.CompletionFunc(complete))
	}
	return latent.New(desc, step.Expect, start, deps.Reporter), nil
}
