// Package testutil provides the harness used by end-to-end tests: a
// temporary configuration tree, an App built from it and a module that
// records every hook invocation.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/elemdirectives/internal/app"
	"github.com/vk/elemdirectives/internal/registry"
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

// RunIntegrationTest runs the files through a fresh App with a background
// context.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, modules...)
}

// RunIntegrationTestWithContext writes files below a temporary root, builds
// an App reading the scenario from "scenario/" and manifests from
// "modules/", and runs it. Relative names like "modules/x/manifest.hcl"
// create their subdirectories. A scenario/main.toml switches the scenario
// loader to TOML.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	scenarioDir := filepath.Join(tmpDir, "scenario")
	modulesDir := filepath.Join(tmpDir, "modules")
	require.NoError(t, os.Mkdir(scenarioDir, 0755))
	require.NoError(t, os.Mkdir(modulesDir, 0755))

	scenarioPath := scenarioDir
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
		if name == "scenario/main.toml" {
			scenarioPath = filePath
		}
	}

	cfg := &app.Config{
		ScenarioPath: scenarioPath,
		ModulesPath:  modulesDir,
		LogLevel:     "debug",
		LogFormat:    "text",
	}

	logBuffer := &SafeBuffer{}
	testApp, err := app.NewApp(logBuffer, cfg, nil, modules...)
	if err == nil {
		err = testApp.Run(ctx)
	}

	if os.Getenv("ELEMDIRECTIVES_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
	}
}
