// Package http_probe provides a command that probes a raw HTTP endpoint
// and maps the response status into the service's code taxonomy. Combined
// with a step-level `expect`, it asserts on any endpoint the service
// exposes outside the session API.
package http_probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/latent"
	"github.com/vk/latentgrid/internal/registry"
	"github.com/vk/latentgrid/internal/status"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the http_probe command.
type Input struct {
	URL    string `hcl:"url"`
	Method string `hcl:"method,optional"`
}

// Register registers the command factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("http_probe", &registry.Factory{
		NewInput: func() any { return new(Input) },
		Build:    buildCommand,
	})
}

func buildCommand(deps *registry.Deps, input any, step *config.Step) (*latent.Command, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("service client dependency was not injected; set a service URL")
	}
	args := input.(*Input)

	method := strings.ToUpper(args.Method)
	if method == "" {
		method = http.MethodGet
	}

	httpClient := deps.Client.HTTPClient()
	desc := fmt.Sprintf("%s: %s %s responds as expected", step.Name, method, args.URL)

	start := func(ctx context.Context, complete latent.CompleteFunc) {
		logger := ctxlog.FromContext(ctx).With("command", "http_probe", "method", method, "url", args.URL)
		go func() {
			resp, err := httpClient.R().
				SetContext(ctx).
				Execute(method, args.URL)
			if err != nil {
				logger.Debug("Probe request failed at transport level.", "error", err)
				complete(status.NetworkError)
				return
			}
			logger.Debug("Probe response received.", "status", resp.StatusCode())
			complete(status.FromHTTP(resp.StatusCode()))
		}()
	}
	return latent.New(desc, step.Expect, start, deps.Reporter), nil
}
