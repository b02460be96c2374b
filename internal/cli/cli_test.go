package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name        string
		args        []string
		wantExit    bool
		wantErrCode int
		wantCommand string
		check       func(t *testing.T, inv *Invocation)
	}{
		{
			name:        "default command",
			args:        []string{"--dir", dir},
			wantCommand: "targets",
			check: func(t *testing.T, inv *Invocation) {
				assert.Equal(t, dir, inv.Config.CorpusDir)
				assert.Equal(t, dir, inv.Config.DataDir)
				assert.Equal(t, "warn", inv.Config.LogLevel)
				assert.Equal(t, "text", inv.Config.LogFormat)
			},
		},
		{
			name:        "annotations with modules",
			args:        []string{"-d", dir, "annotations", "segment", "cwb"},
			wantCommand: "annotations",
		},
		{
			name:        "all global flags",
			args:        []string{"-d", dir, "--data-dir", filepath.Join(dir, "data"), "-m", filepath.Join(dir, "a.hcl"), "-m", filepath.Join(dir, "b.hcl"), "--language", "swe", "--log-level", "debug", "--log-format", "json", "plan"},
			wantCommand: "plan",
			check: func(t *testing.T, inv *Invocation) {
				assert.Equal(t, filepath.Join(dir, "data"), inv.Config.DataDir)
				assert.Equal(t, []string{filepath.Join(dir, "a.hcl"), filepath.Join(dir, "b.hcl")}, inv.Config.ManifestPaths)
				assert.Equal(t, "swe", inv.Config.Language)
				assert.Equal(t, "debug", inv.Config.LogLevel)
				assert.Equal(t, "json", inv.Config.LogFormat)
			},
		},
		{
			name:     "help",
			args:     []string{"--help"},
			wantExit: true,
		},
		{
			name:        "invalid log level",
			args:        []string{"--log-level", "loud"},
			wantErrCode: 2,
		},
		{
			name:        "unknown command",
			args:        []string{"frobnicate"},
			wantErrCode: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			inv, shouldExit, err := Parse(tc.args, out)

			if tc.wantErrCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantErrCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, shouldExit)
			if tc.wantExit {
				assert.Contains(t, out.String(), "Usage: annograph")
				return
			}
			require.NotNil(t, inv)
			assert.True(t, strings.HasPrefix(inv.Command(), tc.wantCommand), inv.Command())
			if tc.check != nil {
				tc.check(t, inv)
			}
		})
	}
}
