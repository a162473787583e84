package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/report"
	"github.com/vk/latentgrid/internal/status"
)

// findEntry locates the single recorded outcome whose description contains
// descSubstring.
func findEntry(t *testing.T, result *HarnessResult, descSubstring string) report.Entry {
	t.Helper()
	require.NotNil(t, result.App, "harness run never produced an app")

	var matches []report.Entry
	for _, entry := range result.App.Results() {
		if strings.Contains(entry.Description, descSubstring) {
			matches = append(matches, entry)
		}
	}
	require.Len(t, matches, 1, "expected exactly one reported step matching %q, got %d", descSubstring, len(matches))
	return matches[0]
}

// AssertStepPassed checks that a step matching descSubstring was reported
// with a passing verdict.
func AssertStepPassed(t *testing.T, result *HarnessResult, descSubstring string) {
	t.Helper()
	entry := findEntry(t, result, descSubstring)
	require.True(t, entry.Passed(),
		"step %q should have passed, got actual=%s expected=%s", descSubstring, entry.Actual, entry.Expected)
}

// AssertStepFailed checks that a step matching descSubstring was reported
// as failed with the given actual code.
func AssertStepFailed(t *testing.T, result *HarnessResult, descSubstring string, actual status.Code) {
	t.Helper()
	entry := findEntry(t, result, descSubstring)
	require.False(t, entry.Passed(), "step %q should have failed", descSubstring)
	require.Equal(t, actual, entry.Actual, "step %q actual code", descSubstring)
}

// AssertStepNotReported checks that no verdict matching descSubstring was
// recorded, e.g. for steps skipped after an aborted run.
func AssertStepNotReported(t *testing.T, result *HarnessResult, descSubstring string) {
	t.Helper()
	require.NotNil(t, result.App, "harness run never produced an app")
	for _, entry := range result.App.Results() {
		require.NotContains(t, entry.Description, descSubstring)
	}
}
