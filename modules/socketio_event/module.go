// Package socketio_event provides a command that waits for a named event
// on the service's realtime socket.io channel. The step passes when the
// event arrives before the runner's deadline.
package socketio_event

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/latent"
	"github.com/vk/latentgrid/internal/registry"
	"github.com/vk/latentgrid/internal/status"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the socketio_event command.
type Input struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	Event              string `hcl:"event"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Register registers the command factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("socketio_event", &registry.Factory{
		NewInput: func() any { return new(Input) },
		Build:    buildCommand,
	})
}

func buildCommand(deps *registry.Deps, input any, step *config.Step) (*latent.Command, error) {
	args := input.(*Input)

	parsedURL, err := url.Parse(args.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	desc := fmt.Sprintf("%s: realtime event '%s' arrives", step.Name, args.Event)

	start := func(ctx context.Context, complete latent.CompleteFunc) {
		logger := ctxlog.FromContext(ctx).With("command", "socketio_event", "url", args.URL, "event", args.Event)

		opts := socket.DefaultOptions()
		if parsedURL.Path != "" {
			opts.SetPath(parsedURL.Path)
		}
		if args.InsecureSkipVerify {
			logger.Warn("Skipping TLS certificate verification")
			opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
		}
		opts.SetTransports(types.NewSet(transports.WebSocket))

		manager := socket.NewManager(baseURL, opts)
		io := manager.Socket(args.Namespace, opts)

		// One finish path for both outcomes; the command ignores any
		// duplicate, so a late connect_error after the event is harmless.
		finish := func(code status.Code) {
			io.Disconnect()
			complete(code)
		}

		io.On(types.EventName("connect"), func(...any) {
			logger.Debug("Realtime channel connected.", "sid", io.Id())
		})
		io.On(types.EventName("connect_error"), func(errs ...any) {
			logger.Debug("Realtime connection failed.", "error", fmt.Sprint(errs...))
			finish(status.NetworkError)
		})
		io.On(types.EventName(args.Event), func(data ...any) {
			logger.Debug("Awaited event received.")
			finish(status.OK)
		})

		io.Connect()
	}

	return latent.New(desc, step.Expect, start, deps.Reporter), nil
}
