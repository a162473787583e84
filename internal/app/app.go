package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/hclloader"
	"github.com/vk/latentgrid/internal/registry"
	"github.com/vk/latentgrid/internal/report"
	"github.com/vk/latentgrid/internal/sdkclient"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	appConfig *Config
	registry  *registry.Registry
	model     *config.Model
	client    *sdkclient.Client
	summary   *report.Summary
	recorder  *report.Recorder
	reporter  report.Reporter
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Failures to load or validate configuration are fatal startup errors and
// panic; callers recover at the entrypoint.
func NewApp(outW io.Writer, appConfig *Config, loader *hclloader.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.SuitePath)
	if err != nil {
		panic(fmt.Errorf("failed to load suites: %w", err))
	}
	logger.Debug("Suites loaded into unified model.", "suites", len(model.Suites))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All command modules registered.", "kinds", reg.Kinds())

	if err := reg.Validate(model); err != nil {
		// A suite referencing an unregistered kind cannot run anything.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	var client *sdkclient.Client
	if appConfig.ServiceURL != "" {
		client, err = sdkclient.New(sdkclient.Options{
			ServiceURL:  appConfig.ServiceURL,
			APIKey:      appConfig.APIKey,
			GameID:      appConfig.GameID,
			Environment: appConfig.Environment,
		})
		if err != nil {
			panic(fmt.Errorf("failed to create service client: %w", err))
		}
		logger.Debug("Service client configured.", "url", appConfig.ServiceURL)
	} else {
		logger.Warn("No service URL configured; steps that need the service client will fail to build.")
	}

	summary := &report.Summary{}
	recorder := &report.Recorder{}
	return &App{
		outW:      outW,
		logger:    logger,
		appConfig: appConfig,
		registry:  reg,
		model:     model,
		client:    client,
		summary:   summary,
		recorder:  recorder,
		reporter:  report.Tee(report.NewLogReporter(logger, summary), recorder),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Summary returns the run's verdict tally.
func (a *App) Summary() *report.Summary {
	return a.summary
}

// Results returns every recorded step outcome. This is primarily for testing.
func (a *App) Results() []report.Entry {
	return a.recorder.Entries()
}
