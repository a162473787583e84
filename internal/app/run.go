package app

import (
	"context"
	"fmt"

	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/registry"
	"github.com/vk/latentgrid/internal/runner"
)

// Run executes every loaded suite in order. It returns an error when a suite
// cannot be built or aborts (timeout, cancellation), and when any step's
// verdict is a failure, so the process exit code reflects the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.appConfig.HealthcheckPort > 0 {
		go a.startHealthcheckServer(a.appConfig.HealthcheckPort)
	}

	if a.client != nil {
		defer a.client.Close()
	}

	if len(a.model.Suites) == 0 {
		a.logger.Warn("No suites found, nothing to execute.")
		return nil
	}

	r := runner.New(runner.Options{
		TickInterval: a.appConfig.TickInterval,
		StepTimeout:  a.appConfig.StepTimeout,
	})
	deps := &registry.Deps{Client: a.client, Reporter: a.reporter}

	for _, suite := range a.model.Suites {
		a.logger.Info("🚀 Running suite...", "suite", suite.Name, "steps", len(suite.Steps))

		items, err := a.registry.BuildSuite(ctx, deps, suite)
		if err != nil {
			return fmt.Errorf("failed to build suite %q: %w", suite.Name, err)
		}

		if err := r.Run(ctx, items); err != nil {
			return fmt.Errorf("suite %q aborted: %w", suite.Name, err)
		}
		a.logger.Info("✅ Suite finished.", "suite", suite.Name)
	}

	a.logger.Info("🏁 Run finished.", "summary", a.summary.String())
	if !a.summary.AllPassed() {
		return fmt.Errorf("run finished with %d failed step(s)", a.summary.Failed())
	}
	return nil
}
