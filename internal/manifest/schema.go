package manifest

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks of a manifest file.
type fileRoot struct {
	Modules []*moduleBlock `hcl:"module,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type moduleBlock struct {
	Name        string            `hcl:"name,label"`
	Description string            `hcl:"description,optional"`
	Classes     []*classBlock     `hcl:"class,block"`
	Configs     []*configBlock    `hcl:"config,block"`
	Annotators  []*annotatorBlock `hcl:"annotator,block"`
}

type classBlock struct {
	Name       string `hcl:"name,label"`
	Annotation string `hcl:"annotation"`
}

type configBlock struct {
	Key         string         `hcl:"key,label"`
	Default     hcl.Expression `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
}

type annotatorBlock struct {
	Function            string        `hcl:"function,label"`
	Role                string        `hcl:"role,optional"`
	Description         string        `hcl:"description,optional"`
	Language            []string      `hcl:"language,optional"`
	Order               *int          `hcl:"order,optional"`
	SourceType          string        `hcl:"source_type,optional"`
	ImportOutputs       []string      `hcl:"import_outputs,optional"`
	ImportOutputsConfig string        `hcl:"import_outputs_config,optional"`
	Params              []*paramBlock `hcl:"param,block"`
}

type paramBlock struct {
	Name         string         `hcl:"name,label"`
	Kind         string         `hcl:"kind"`
	Value        string         `hcl:"value,optional"`
	Values       []string       `hcl:"values,optional"`
	Default      hcl.Expression `hcl:"default,optional"`
	Description  string         `hcl:"description,optional"`
	Class        string         `hcl:"class,optional"`
	AllDocs      bool           `hcl:"all_docs,optional"`
	Common       bool           `hcl:"common,optional"`
	Data         bool           `hcl:"data,optional"`
	IsInput      bool           `hcl:"is_input,optional"`
	AbsolutePath bool           `hcl:"absolute_path,optional"`
}
