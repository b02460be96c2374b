// Package testutil runs compilation passes over throwaway corpus
// directories for integration tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/app"
	"github.com/vk/annograph/internal/compiler"
	"github.com/vk/annograph/internal/registry"
)

// ManifestDir is the directory, relative to the corpus root, searched for
// HCL module manifests.
const ManifestDir = "modules"

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
	Dir       string
	LogOutput string
	Report    *compiler.Report
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files into a fresh corpus directory and compiles
// it. Paths in files are relative to the corpus root, e.g. "config.yaml",
// "source/doc.xml" or "modules/pos.hcl". Without modules the compiled-in
// core modules are registered.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		file := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
		require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	}

	cfg, err := app.NewConfig(app.Config{
		CorpusDir:     dir,
		ManifestPaths: []string{filepath.Join(dir, ManifestDir)},
		LogLevel:      "debug",
		LogFormat:     "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Dir: dir}
	defer func() {
		result.LogOutput = logBuffer.String()
		if os.Getenv("ANNOGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	}()

	result.App, result.Err = app.NewApp(&SafeBuffer{}, logBuffer, cfg, modules...)
	if result.Err != nil {
		return result
	}
	result.Report, result.Err = result.App.Compile(ctx)
	return result
}
