// Package mod_fetch provides the catalogue commands: fetching a game's mod
// list and subscribing to a single mod.
package mod_fetch

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

// FetchInput defines the arguments for the mod_fetch command.
type FetchInput struct {
	GameID int64 `hcl:"game_id"`
}

// SubscribeInput defines the arguments for the mod_subscribe command.
type SubscribeInput struct {
	ModID int64 `hcl:"mod_id"`
}

// Register registers both command factories with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("mod_fetch", &registry.Factory{
		NewInput: func() any { return new(FetchInput) },
		Build:    buildFetch,
	})
	r.Register("mod_subscribe", &registry.Factory{
		NewInput: func() any { return new(SubscribeInput) },
		Build:    buildSubscribe,
	})
}

func buildFetch(deps *registry.Deps, input any, step *config.Step) (*latent.Command, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("service client dependency was not injected; set a service URL")
	}
	args := input.(*FetchInput)

	desc := fmt.Sprintf("%s: mod catalogue for game %d is retrievable", step.Name, args.GameID)
	start := func(ctx context.Context, complete latent.CompleteFunc) {
		deps.Client.FetchUpdatesAsync(ctx, args.GameID, sdkclient.CompletionFunc(complete))
	}
	return latent.New(desc, step.Expect, start, deps.Reporter), nil
}

func buildSubscribe(deps *registry.Deps, input any, step *config.Step) (*latent.Command, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("service client dependency was not injected; set a service URL")
	}
	args := input.(*SubscribeInput)

	desc := fmt.Sprintf("%s: subscription to mod %d succeeds", step.Name, args.ModID)
	start := func(ctx context.Context, complete latent.CompleteFunc) {
		deps.Client.SubscribeAsync(ctx, args.ModID, sdkclient.CompletionFunc(complete))
	}
	return latent.New(desc, step.Expect, start, deps.Reporter), nil
}
