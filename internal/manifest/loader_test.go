package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

const sensaldoManifest = `
module "sensaldo" {
  description = "Sentiment annotation with SenSALDO"

  class "token:sentiment_label" {
    annotation = "<token>:sensaldo.sentiment_label"
  }

  config "sensaldo.model" {
    default     = "sensaldo/sensaldo.pickle"
    description = "Path to the SenSALDO model"
  }

  config "sensaldo.threshold" {
    default = 0.5
  }

  annotator "annotate" {
    description = "Assign sentiment values to tokens"
    language    = ["swe"]
    order       = 2

    param "sense" {
      kind  = "annotation"
      value = "<token>:saldo.sense"
    }
    param "out" {
      kind  = "output"
      value = "<token>:sensaldo.sentiment_label"
      class = "token:sentiment_label"
    }
    param "model" {
      kind  = "model"
      value = "[sensaldo.model]"
    }
    param "lowest" {
      kind    = "value"
      default = ["neg", 3]
    }
  }

  annotator "build_model" {
    role = "modelbuilder"

    param "out" {
      kind  = "model_output"
      value = "sensaldo/sensaldo.pickle"
    }
  }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sensaldo.hcl", sensaldoManifest)
	writeFile(t, dir, "ignored.txt", "not a manifest")

	m, err := NewLoader().Load(context.Background(), dir, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Len(t, m.Modules, 1)

	mod := m.Modules[0]
	assert.Equal(t, "sensaldo", mod.Name)
	assert.Equal(t, []Class{{Name: "token:sentiment_label", Annotation: "<token>:sensaldo.sentiment_label"}}, mod.Classes)
	require.Len(t, mod.Configs, 2)
	assert.Equal(t, "sensaldo/sensaldo.pickle", mod.Configs[0].Default)
	assert.Equal(t, 0.5, mod.Configs[1].Default)

	require.Len(t, mod.Annotators, 2)
	annotate := mod.Annotators[0]
	assert.Equal(t, "sensaldo:annotate", annotate.FullName())
	assert.Equal(t, placeholder.RoleAnnotator, annotate.Role)
	assert.Equal(t, []string{"swe"}, annotate.Languages)
	require.NotNil(t, annotate.Order)
	assert.Equal(t, 2, *annotate.Order)
	require.Len(t, annotate.Params, 4)
	assert.Equal(t, placeholder.KindOutput, annotate.Params[1].Kind)
	assert.Equal(t, "token:sentiment_label", annotate.Params[1].Class)
	assert.Equal(t, []any{"neg", 3}, annotate.Params[3].Default)
	assert.Nil(t, annotate.Params[0].Default)

	assert.Equal(t, placeholder.RoleModelBuilder, mod.Annotators[1].Role)
	assert.Nil(t, mod.Annotators[1].Order)
}

func TestManifest_Register(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sensaldo.hcl", sensaldoManifest)

	m, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	reg := registry.NewBuilder().Register(m).Build()
	assert.Equal(t, 2, reg.Len())
	_, ok := reg.Lookup("sensaldo:build_model")
	assert.True(t, ok)
	assert.Equal(t, map[string][]string{"token:sentiment_label": {"<token>:sensaldo.sentiment_label"}}, reg.ModuleClasses())
	assert.Equal(t, "sensaldo/sensaldo.pickle", reg.ConfigDefaults()["sensaldo.model"])
	assert.Equal(t, "Sentiment annotation with SenSALDO", reg.Modules()["sensaldo"])
	assert.Len(t, m.Descriptors(), 2)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: `module "x" {`,
			wantErr: "failed to parse manifest",
		},
		{
			name: "unknown kind",
			content: `
module "x" {
  annotator "f" {
    param "p" {
      kind = "bogus"
    }
  }
}`,
			wantErr: `unknown parameter kind "bogus"`,
		},
		{
			name: "unknown role",
			content: `
module "x" {
  annotator "f" {
    role = "painter"
  }
}`,
			wantErr: `unknown annotator role "painter"`,
		},
		{
			name: "importer without source type",
			content: `
module "x" {
  annotator "f" {
    role = "importer"
  }
}`,
			wantErr: "needs a source_type",
		},
		{
			name: "duplicate parameter",
			content: `
module "x" {
  annotator "f" {
    param "p" {
      kind = "corpus"
    }
    param "p" {
      kind = "language"
    }
  }
}`,
			wantErr: "duplicate parameter 'p'",
		},
		{
			name: "duplicate annotator",
			content: `
module "x" {
  annotator "f" {}
}
module "x" {
  annotator "f" {}
}`,
			wantErr: "annotator 'x:f' already declared",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "m.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
