package placeholder

import "fmt"

// Kind identifies what a parameter placeholder stands for.
type Kind int

const (
	KindInvalid Kind = iota
	KindOutput
	KindAnnotation
	KindModel
	KindModelOutput
	KindConfig
	KindCorpus
	KindLanguage
	KindDocument
	KindAllDocuments
	KindSource
	KindExport
	KindExportInput
	KindExportAnnotations
	KindBinary
	KindValue
)

var kindNames = map[Kind]string{
	KindOutput:            "output",
	KindAnnotation:        "annotation",
	KindModel:             "model",
	KindModelOutput:       "model_output",
	KindConfig:            "config",
	KindCorpus:            "corpus",
	KindLanguage:          "language",
	KindDocument:          "document",
	KindAllDocuments:      "all_documents",
	KindSource:            "source",
	KindExport:            "export",
	KindExportInput:       "export_input",
	KindExportAnnotations: "export_annotations",
	KindBinary:            "binary",
	KindValue:             "value",
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindOutput; k <= KindValue; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the manifest spelling of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a manifest spelling into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown parameter kind %q", s)
}

// NeedsValue reports whether a parameter of this kind is unusable without a
// symbolic value. Such a parameter left empty marks an extension point that
// only a custom rule can bind.
func (k Kind) NeedsValue() bool {
	switch k {
	case KindOutput, KindAnnotation, KindModel, KindModelOutput, KindConfig,
		KindExport, KindExportInput, KindExportAnnotations, KindBinary:
		return true
	}
	return false
}

// Role is the part an annotator descriptor plays in the pipeline.
type Role int

const (
	RoleAnnotator Role = iota
	RoleImporter
	RoleExporter
	RoleInstaller
	RoleModelBuilder
)

var roleNames = map[Role]string{
	RoleAnnotator:    "annotator",
	RoleImporter:     "importer",
	RoleExporter:     "exporter",
	RoleInstaller:    "installer",
	RoleModelBuilder: "modelbuilder",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole converts a manifest spelling into a Role. An empty string means
// annotator.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleAnnotator, nil
	}
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleAnnotator, fmt.Errorf("unknown annotator role %q", s)
}
