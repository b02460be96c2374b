package manifest_modules_test

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/compiler"
	"github.com/vk/annograph/internal/testutil"
)

const corpusConfig = `
metadata:
  id: demo
  language: swe
`

const posManifest = `
module "pos" {
  description = "Part-of-speech tagging"

  config "pos.model" {
    default     = "pos/model.bin"
    description = "Tagger model"
  }

  annotator "tag" {
    description = "Part-of-speech tags"

    param "word" {
      kind  = "annotation"
      value = "<token:word>"
    }
    param "model" {
      kind  = "model"
      value = "[pos.model]"
    }
    param "out" {
      kind  = "output"
      value = "<token>:pos.pos"
      class = "token:pos"
    }
  }
}
`

// TestManifestModule_CompilesNextToCoreModules checks that an annotator
// declared in HCL resolves classes provided by compiled-in modules and picks
// up the config defaults its manifest declares.
func TestManifestModule_CompilesNextToCoreModules(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"config.yaml":     corpusConfig,
		"source/a.xml":    "<text/>",
		"modules/pos.hcl": posManifest,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, compiler.StatusCompiled, result.Report.Outcomes["pos:tag"])

	r, ok := result.Report.Targets.Rule("pos:tag")
	require.True(t, ok)
	assert.Equal(t, "segment.token:word", r.Params["word"])
	assert.Equal(t, "segment.token:pos.pos", r.Params["out"])
	assert.Equal(t, path.Join(result.Dir, "models", "pos", "model.bin"), r.Params["model"])
	assert.Contains(t, r.Outputs, path.Join(result.Dir, "sparv-workdir", "annotations", "{doc}", "segment.token", "pos.pos"))
	assert.Contains(t, result.LogOutput, "Manifest modules registered.")
}

func TestManifestModule_InvalidKindFailsStartup(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"config.yaml": corpusConfig,
		"modules/broken.hcl": `
module "broken" {
  annotator "x" {
    param "out" {
      kind  = "outptu"
      value = "broken.x"
    }
  }
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "unknown parameter kind")
	assert.Nil(t, result.Report)
}
