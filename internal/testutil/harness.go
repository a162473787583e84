// Package testutil provides the shared harness for integration tests: suite
// fixtures written to a temp dir, an isolated app run with captured logs,
// and a fake content-distribution service to run against.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/app"
	"github.com/vk/latentgrid/internal/hclloader"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunSuiteTest provides a standardized harness for running integration tests
// using a default background context.
func RunSuiteTest(t *testing.T, files map[string]string, cfg *app.Config) *HarnessResult {
	t.Helper()
	return RunSuiteTestWithContext(context.Background(), t, files, cfg)
}

// RunSuiteTestWithContext writes the suite fixtures to a temporary
// directory, builds an app around them, and executes the run with a
// caller-provided context. A nil cfg runs with harness defaults; a non-nil
// cfg keeps its service settings while the harness fills in the suite path,
// logging, and fast tick values.
func RunSuiteTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg *app.Config) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-suite-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	if cfg == nil {
		cfg = &app.Config{}
	}
	cfg.SuitePath = tmpDir
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Millisecond
	}
	if cfg.StepTimeout == 0 {
		cfg.StepTimeout = 5 * time.Second
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, cfg, hclloader.NewLoader())
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			App:       nil,
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("LATENTGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
