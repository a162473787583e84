// Package registry holds the compiled command factories a binary ships
// with, keyed by the command kind suite files reference. Modules register
// themselves at startup; registration problems are programmer errors and
// panic, while suite files referencing unknown kinds fail validation with
// a regular error.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/hclloader"
	"github.com/vk/latentgrid/internal/latent"
	"github.com/vk/latentgrid/internal/report"
	"github.com/vk/latentgrid/internal/runner"
	"github.com/vk/latentgrid/internal/sdkclient"
)

// Module is the interface all command modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Deps are the shared collaborators a factory wires into its commands.
type Deps struct {
	// Client is the content-distribution service client. Nil when the run
	// was configured without a service URL; commands that need it must
	// check.
	Client *sdkclient.Client
	// Reporter receives each command's verdict.
	Reporter report.Reporter
}

// Factory builds latent commands for one command kind.
type Factory struct {
	// NewInput returns a fresh input struct for the step's arguments
	// block, or nil when the kind takes no arguments.
	NewInput func() any
	// Build wires a decoded input into a ready-to-start command.
	Build func(deps *Deps, input any, step *config.Step) (*latent.Command, error)
}

// Registry maps command kinds to their factories.
type Registry struct {
	factories map[string]*Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]*Factory)}
}

// Register adds a factory for a command kind. Registering the same kind
// twice is a programmer error.
func (r *Registry) Register(kind string, factory *Factory) {
	if _, exists := r.factories[kind]; exists {
		panic(fmt.Sprintf("command factory for kind '%s' already registered", kind))
	}
	if factory == nil || factory.Build == nil {
		panic(fmt.Sprintf("command factory for kind '%s' must provide a Build function", kind))
	}
	slog.Debug("Registering command factory.", "kind", kind)
	r.factories[kind] = factory
}

// Lookup returns the factory for a kind.
func (r *Registry) Lookup(kind string) (*Factory, bool) {
	factory, ok := r.factories[kind]
	return factory, ok
}

// Kinds returns the number of registered command kinds.
func (r *Registry) Kinds() int {
	return len(r.factories)
}

// Validate checks that every step in the model references a registered kind.
func (r *Registry) Validate(model *config.Model) error {
	for _, suite := range model.Suites {
		for _, step := range suite.Steps {
			if _, ok := r.factories[step.Kind]; !ok {
				return fmt.Errorf("suite %q step %q references unknown command kind '%s'", suite.Name, step.Name, step.Kind)
			}
		}
	}
	return nil
}

// BuildSuite decodes every step's arguments and builds the suite's command
// queue in declaration order.
func (r *Registry) BuildSuite(ctx context.Context, deps *Deps, suite *config.Suite) ([]runner.Item, error) {
	logger := ctxlog.FromContext(ctx)
	items := make([]runner.Item, 0, len(suite.Steps))
	for _, step := range suite.Steps {
		logger.Debug("Building step command.", "suite", suite.Name, "step", step.Name, "kind", step.Kind)
		factory, ok := r.factories[step.Kind]
		if !ok {
			return nil, fmt.Errorf("unknown command kind '%s'", step.Kind)
		}

		var input any
		if factory.NewInput != nil {
			input = factory.NewInput()
		}
		if input != nil {
			if err := hclloader.DecodeArguments(step.Arguments, input); err != nil {
				return nil, fmt.Errorf("step %q: %w", step.Name, err)
			}
		}

		cmd, err := factory.Build(deps, input, step)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		items = append(items, runner.Item{Command: cmd, Timeout: step.Timeout})
	}
	return items, nil
}
