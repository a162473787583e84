package error_handling

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/testutil"
)

func TestMissingServiceClient_FailsSuiteBuild(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"needs_client.hcl": `
suite "needs_client" {
  step "service_init" "boot" {
  }
}
`,
	}

	// No service URL configured, so a step that needs the client cannot
	// be built.
	result := testutil.RunSuiteTest(t, files, nil)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "failed to build suite")
	require.Contains(t, result.Err.Error(), "service client dependency was not injected")
}

func TestUnknownCommandKind_RejectedAtStartup(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"unknown.hcl": `
suite "s" {
  step "nonexistent_kind" "x" {
  }
}
`,
	}

	result := testutil.RunSuiteTest(t, files, nil)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "application startup panicked")
	require.Contains(t, result.Err.Error(), "unknown command kind 'nonexistent_kind'")
}

func TestMissingRequiredArgument_FailsSuiteBuild(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"missing_arg.hcl": `
suite "s" {
  step "pause" "no_duration" {
    arguments {
    }
  }
}
`,
	}

	result := testutil.RunSuiteTest(t, files, nil)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "failed to build suite")
	require.Contains(t, result.Err.Error(), `step "no_duration"`)
}
