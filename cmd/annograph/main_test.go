package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/cli"
)

func TestRun_Targets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("metadata:\n  id: demo\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "source"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "source", "doc.xml"), []byte("<text/>"), 0o600))

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, run(out, logs, []string{"--dir", dir, "targets"}))
	require.Contains(t, out.String(), "segment:tokenize")
	require.Contains(t, out.String(), "xml_import:parse")
}

func TestRun_StartupError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "broken.hcl")
	require.NoError(t, os.WriteFile(manifest, []byte("module \"x\" {\n  annotator \"y\" {\n"), 0o600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--dir", dir, "--manifests", manifest})
	require.Error(t, err)
	require.Contains(t, err.Error(), "startup failed")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(out, &bytes.Buffer{}, []string{"-h"}))
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}
