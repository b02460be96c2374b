// Package cwb declares the Corpus Workbench .info export and its date
// annotators.
package cwb

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the .info exporter, the date annotators and the
// installer.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("cwb", "Exports, encodes and aligns corpora for Corpus Workbench")

	b.RegisterConfig(registry.ConfigDecl{Module: "cwb", Key: "cwb.remote_host", Description: "Remote host to install CWB files to"})
	b.RegisterConfig(registry.ConfigDecl{Module: "cwb", Key: "cwb.remote_registry", Default: "", Description: "CWB registry path on remote host"})
	b.RegisterConfig(registry.ConfigDecl{Module: "cwb", Key: "cwb.remote_datadir", Default: "", Description: "CWB datadir path on remote host"})
	b.RegisterConfig(registry.ConfigDecl{Module: "cwb", Key: "cwb.cwb_datadir", Description: "Path to CWB data directory"})
	b.RegisterConfig(registry.ConfigDecl{Module: "cwb", Key: "korp.protected", Default: false, Description: "Whether the corpus is password protected"})

	datefirst := placeholder.Param{Name: "out_datefirst", Kind: placeholder.KindOutput, Value: "cwb.datefirst", Common: true, Data: true}
	datelast := placeholder.Param{Name: "out_datelast", Kind: placeholder.KindOutput, Value: "cwb.datelast", Common: true, Data: true}

	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "cwb",
		Function:    "info",
		Role:        placeholder.RoleExporter,
		Description: "CWB .info file",
		Params: []placeholder.Param{
			{Name: "out", Kind: placeholder.KindExport, Value: "[cwb.cwb_datadir]/[metadata.id]/.info", AbsolutePath: true},
			{Name: "sentences", Kind: placeholder.KindAnnotation, Value: "misc.<sentence>_count", Common: true, Data: true},
			{Name: "firstdate", Kind: placeholder.KindAnnotation, Value: "cwb.datefirst", Common: true, Data: true},
			{Name: "lastdate", Kind: placeholder.KindAnnotation, Value: "cwb.datelast", Common: true, Data: true},
			{Name: "protected", Kind: placeholder.KindConfig, Value: "korp.protected"},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "cwb",
		Function:    "info_date",
		Description: "datefirst and datelast files for .info",
		Order:       placeholder.Order(1),
		Params: []placeholder.Param{
			{Name: "docs", Kind: placeholder.KindAllDocuments},
			datefirst,
			datelast,
			{Name: "datefrom", Kind: placeholder.KindAnnotation, Value: "[dateformat.out_annotation]:dateformat.datefrom", AllDocs: true},
			{Name: "dateto", Kind: placeholder.KindAnnotation, Value: "[dateformat.out_annotation]:dateformat.dateto", AllDocs: true},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "cwb",
		Function:    "info_date_unknown",
		Description: "Empty datefirst and datelast files for .info",
		Order:       placeholder.Order(2),
		Params:      []placeholder.Param{datefirst, datelast},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "cwb",
		Function:    "install_info",
		Role:        placeholder.RoleInstaller,
		Description: "Install CWB .info file on remote host",
		Params: []placeholder.Param{
			{Name: "info", Kind: placeholder.KindExportInput, Value: "[cwb.cwb_datadir]/[metadata.id]/.info", AbsolutePath: true},
			{Name: "marker", Kind: placeholder.KindOutput, Value: "cwb.install_info_marker", Common: true, Data: true},
			{Name: "host", Kind: placeholder.KindConfig, Value: "cwb.remote_host"},
			{Name: "target_dir", Kind: placeholder.KindConfig, Value: "cwb.remote_datadir"},
		},
	})
}
