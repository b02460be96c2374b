// Package csvexport declares the CSV exporter.
package csvexport

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the CSV exporter.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("csv_export", "CSV export of annotated corpus")

	b.RegisterConfig(registry.ConfigDecl{Module: "csv_export", Key: "csv_export.delimiter", Default: "\t", Description: "Delimiter separating fields"})
	b.RegisterConfig(registry.ConfigDecl{Module: "csv_export", Key: "csv_export.annotations", Default: []any{}, Description: "Sparv annotations to include"})
	b.RegisterConfig(registry.ConfigDecl{Module: "csv_export", Key: "csv_export.source_annotations", Description: "Source annotations to include"})

	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "csv_export",
		Function:    "csv",
		Role:        placeholder.RoleExporter,
		Description: "CSV export",
		Params: []placeholder.Param{
			{Name: "doc", Kind: placeholder.KindDocument},
			{Name: "out", Kind: placeholder.KindExport, Value: "csv/{doc}.csv"},
			{Name: "token", Kind: placeholder.KindAnnotation, Value: "<token>"},
			{Name: "word", Kind: placeholder.KindAnnotation, Value: "<token:word>"},
			{Name: "sentence", Kind: placeholder.KindAnnotation, Value: "<sentence>"},
			{Name: "annotations", Kind: placeholder.KindExportAnnotations, Value: "csv_export.annotations", IsInput: true},
			{Name: "source_annotations", Kind: placeholder.KindExportAnnotations, Value: "csv_export.source_annotations"},
			{Name: "remove_namespaces", Kind: placeholder.KindConfig, Value: "export.remove_export_namespaces", Default: false},
			{Name: "delimiter", Kind: placeholder.KindConfig, Value: "csv_export.delimiter"},
		},
	})
}
