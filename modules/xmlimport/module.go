// Package xmlimport declares the XML source importer.
package xmlimport

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the XML importer.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("xml_import", "Import of XML source files")

	b.RegisterConfig(registry.ConfigDecl{Module: "xml_import", Key: "xml_import.elements", Default: []any{}, Description: "List of elements and attributes in source document"})
	b.RegisterConfig(registry.ConfigDecl{Module: "xml_import", Key: "xml_import.skip", Default: []any{}, Description: "Elements and attributes to skip"})
	b.RegisterConfig(registry.ConfigDecl{Module: "xml_import", Key: "xml_import.prefix", Description: "Prefix to add to imported annotations"})
	b.RegisterConfig(registry.ConfigDecl{Module: "xml_import", Key: "xml_import.encoding", Default: "UTF-8", Description: "Encoding of source documents"})

	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:              "xml_import",
		Function:            "parse",
		Role:                placeholder.RoleImporter,
		Description:         "XML import",
		SourceType:          "xml",
		ImportOutputsConfig: "xml_import.elements",
		Params: []placeholder.Param{
			{Name: "doc", Kind: placeholder.KindDocument},
			{Name: "source_dir", Kind: placeholder.KindSource},
			{Name: "elements", Kind: placeholder.KindConfig, Value: "xml_import.elements"},
			{Name: "skip", Kind: placeholder.KindConfig, Value: "xml_import.skip"},
			{Name: "prefix", Kind: placeholder.KindConfig, Value: "xml_import.prefix"},
			{Name: "encoding", Kind: placeholder.KindConfig, Value: "xml_import.encoding"},
		},
	})
}
