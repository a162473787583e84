// Package hclloader is the HCL-specific configuration loader. It discovers
// suite files, parses them, and translates them into the format-agnostic
// config model.
package hclloader

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/fsutil"
	"github.com/vk/latentgrid/internal/schema"
	"github.com/vk/latentgrid/internal/status"
)

// Loader parses HCL suite files into the config model.
type Loader struct{}

// NewLoader creates a new HCL suite loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the suite loading process for one or more paths, each
// of which may be a single .hcl file or a directory tree.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to discover suite files under %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered suite files.", "count", len(files))

	model := &config.Model{}
	seenSuites := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse suite file %s: %w", file, diags)
		}

		var root schema.FileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode suite file %s: %w", file, diags)
		}

		for _, rawSuite := range root.Suites {
			if previous, exists := seenSuites[rawSuite.Name]; exists {
				return nil, fmt.Errorf("suite %q in %s is already defined in %s", rawSuite.Name, file, previous)
			}
			seenSuites[rawSuite.Name] = file

			suite, err := l.translateSuite(rawSuite)
			if err != nil {
				return nil, fmt.Errorf("invalid suite %q in %s: %w", rawSuite.Name, file, err)
			}
			model.Suites = append(model.Suites, suite)
		}
	}

	logger.Debug("Suite model built.", "suites", len(model.Suites))
	return model, nil
}

// translateSuite converts the HCL-specific suite schema into the agnostic model.
func (l *Loader) translateSuite(s *schema.Suite) (*config.Suite, error) {
	suite := &config.Suite{Name: s.Name}
	seenSteps := make(map[string]bool)

	for _, rawStep := range s.Steps {
		if seenSteps[rawStep.Name] {
			return nil, fmt.Errorf("duplicate step name %q", rawStep.Name)
		}
		seenSteps[rawStep.Name] = true

		step, err := l.translateStep(rawStep)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", rawStep.Name, err)
		}
		suite.Steps = append(suite.Steps, step)
	}

	return suite, nil
}

// translateStep converts the HCL-specific step schema into the agnostic model.
func (l *Loader) translateStep(s *schema.Step) (*config.Step, error) {
	step := &config.Step{
		Kind:   s.Kind,
		Name:   s.Name,
		Expect: status.OK,
	}
	if s.Arguments != nil {
		step.Arguments = s.Arguments.Body
	}

	if s.Expect != "" {
		code, err := status.Parse(s.Expect)
		if err != nil {
			return nil, fmt.Errorf("invalid expect value: %w", err)
		}
		step.Expect = code
	}

	if s.Timeout != "" {
		timeout, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value: %w", err)
		}
		step.Timeout = timeout
	}

	return step, nil
}
