package suite_features

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/app"
	"github.com/vk/latentgrid/internal/testutil"
)

// A step's expect attribute redefines what counts as a pass: conformance
// suites assert on failure codes as often as on success.
func TestExpectAttribute_MakesFailureCodeAPass(t *testing.T) {
	t.Parallel()

	service := testutil.NewFakeService(t)
	service.RequireAPIKey = "real-key"

	files := map[string]string{
		"negative.hcl": `
suite "negative" {
  step "service_init" "rejected_boot" {
    expect = "unauthorized"
  }
}
`,
	}

	result := testutil.RunSuiteTest(t, files, &app.Config{
		ServiceURL: service.URL(),
		APIKey:     "stale-key",
	})

	require.NoError(t, result.Err)
	testutil.AssertStepPassed(t, result, "rejected_boot")
}

func TestHTTPProbe_ExpectsNotFound(t *testing.T) {
	// No t.Parallel: t.Setenv below forbids it.
	service := testutil.NewFakeService(t)

	files := map[string]string{
		"probe.hcl": `
suite "probe" {
  step "http_probe" "absent_endpoint" {
    arguments {
      url = "` + "${env.PROBE_BASE_URL}" + `/v1/definitely/absent"
    }
    expect = "not_found"
  }
}
`,
	}

	t.Setenv("PROBE_BASE_URL", service.URL())

	result := testutil.RunSuiteTest(t, files, &app.Config{ServiceURL: service.URL()})

	require.NoError(t, result.Err)
	testutil.AssertStepPassed(t, result, "absent_endpoint")
}
