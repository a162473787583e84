package hclloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
)

// DecodeArguments binds a step's raw arguments body into a command's input
// struct. The eval context exposes the process environment under `env`, so
// suite files can reference secrets without embedding them:
//
//	arguments {
//	  url = env.SERVICE_URL
//	}
func DecodeArguments(body hcl.Body, target any) error {
	if body == nil {
		return nil
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environmentVal(),
		},
	}

	diags := gohcl.DecodeBody(body, evalCtx, target)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode arguments: %w", diags)
	}
	return nil
}

// environmentVal converts the process environment into a cty object value.
func environmentVal() cty.Value {
	env := os.Environ()
	vars := make(map[string]cty.Value, len(env))
	for _, entry := range env {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
