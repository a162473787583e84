// Package schema defines the HCL shapes of suite files as gohcl structs.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// StepArgs represents the content of the 'arguments' block within a step.
// It stays undecoded here; each command decodes it into its own input type.
type StepArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Step represents a `step` block from a suite file. It is a runnable
// instance of a registered command kind.
type Step struct {
	Kind      string    `hcl:"command,label"`
	Name      string    `hcl:"step_name,label"`
	Arguments *StepArgs `hcl:"arguments,block"`
	Expect    string    `hcl:"expect,optional"`
	Timeout   string    `hcl:"timeout,optional"`
}

// Suite represents a `suite` block: an ordered sequence of steps.
type Suite struct {
	Name  string  `hcl:"suite_name,label"`
	Steps []*Step `hcl:"step,block"`
}

// FileRoot represents the top-level structure of a suite file.
type FileRoot struct {
	Suites []*Suite `hcl:"suite,block"`
	Remain hcl.Body `hcl:",remain"`
}
