package error_handling

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/app"
	"github.com/vk/latentgrid/internal/status"
	"github.com/vk/latentgrid/internal/testutil"
)

func TestRejectedCredentials_FailTheRun(t *testing.T) {
	t.Parallel()

	service := testutil.NewFakeService(t)
	service.RequireAPIKey = "the-real-key"

	files := map[string]string{
		"init.hcl": `
suite "auth" {
  step "service_init" "boot" {
  }
}
`,
	}

	result := testutil.RunSuiteTest(t, files, &app.Config{
		ServiceURL: service.URL(),
		APIKey:     "a-wrong-key",
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "1 failed step(s)")
	testutil.AssertStepFailed(t, result, "boot", status.Unauthorized)
}

func TestFailedStep_DoesNotSkipLaterSteps(t *testing.T) {
	t.Parallel()

	service := testutil.NewFakeService(t)
	service.FetchStatus = 500

	files := map[string]string{
		"run.hcl": `
suite "partial" {
  step "mod_fetch" "catalogue" {
    arguments {
      game_id = 3
    }
  }

  step "service_teardown" "shutdown" {
  }
}
`,
	}

	result := testutil.RunSuiteTest(t, files, &app.Config{ServiceURL: service.URL()})

	// A failed verdict is recorded, not fatal: the suite keeps going and
	// the run's error reflects the final tally.
	require.Error(t, result.Err)
	testutil.AssertStepFailed(t, result, "catalogue", status.Internal)
	testutil.AssertStepPassed(t, result, "shutdown")
	require.Equal(t, 1, result.App.Summary().Passed())
	require.Equal(t, 1, result.App.Summary().Failed())
}
