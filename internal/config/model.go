// Package config holds the format-agnostic representation of the suite
// files a run executes. The HCL-specific parsing lives in hclloader; the
// rest of the application only sees this model.
package config

import (
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/latentgrid/internal/status"
)

// Model is the unified representation of everything loaded from disk.
type Model struct {
	Suites []*Suite
}

// Suite is an ordered list of steps executed front to back.
type Suite struct {
	Name  string
	Steps []*Step
}

// Step is the format-agnostic representation of a `step` block.
type Step struct {
	// Kind names the command implementation that handles this step.
	Kind string
	// Name is the step's instance label within its suite.
	Name string
	// Arguments is the raw body of the step's arguments block, decoded
	// into the command's own input struct at build time. Nil when the
	// step has no arguments block.
	Arguments hcl.Body
	// Expect is the completion code the step treats as a pass.
	Expect status.Code
	// Timeout overrides the runner's per-step deadline. Zero means use
	// the runner default.
	Timeout time.Duration
}
