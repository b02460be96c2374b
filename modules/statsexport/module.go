// Package statsexport declares word frequency list exporters. The variants
// write the same file and are told apart by their order values.
package statsexport

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

const freqList = "frequency_list/stats_[metadata.id].csv"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the exporters and the installer.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("stats_export", "Word frequency list generation")

	b.RegisterConfig(registry.ConfigDecl{Module: "stats_export", Key: "stats_export.include_all_compounds", Default: false,
		Description: "Whether to include compound analyses for every word or just for the words that are lacking a sense annotation"})
	b.RegisterConfig(registry.ConfigDecl{Module: "stats_export", Key: "stats_export.delimiter", Default: "\t", Description: "Delimiter separating columns"})
	b.RegisterConfig(registry.ConfigDecl{Module: "stats_export", Key: "stats_export.cutoff", Default: 1,
		Description: "The minimum frequency a word must have in order to be included in the result"})
	b.RegisterConfig(registry.ConfigDecl{Module: "stats_export", Key: "stats_export.remote_host", Default: "", Description: "Remote host to install to"})
	b.RegisterConfig(registry.ConfigDecl{Module: "stats_export", Key: "stats_export.remote_dir", Default: "", Description: "Path on remote host to install to"})

	common := func(extra ...placeholder.Param) []placeholder.Param {
		params := []placeholder.Param{
			{Name: "source_files", Kind: placeholder.KindAllDocuments},
			{Name: "word", Kind: placeholder.KindAnnotation, Value: "<token:word>", AllDocs: true},
		}
		params = append(params, extra...)
		return append(params,
			placeholder.Param{Name: "out", Kind: placeholder.KindExport, Value: freqList},
			placeholder.Param{Name: "delimiter", Kind: placeholder.KindConfig, Value: "stats_export.delimiter"},
			placeholder.Param{Name: "cutoff", Kind: placeholder.KindConfig, Value: "stats_export.cutoff"},
		)
	}

	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "stats_export",
		Function:    "freq_list",
		Role:        placeholder.RoleExporter,
		Description: "Corpus word frequency list",
		Languages:   []string{"swe"},
		Order:       placeholder.Order(1),
		Params: common(
			placeholder.Param{Name: "msd", Kind: placeholder.KindAnnotation, Value: "<token:msd>", AllDocs: true},
			placeholder.Param{Name: "baseform", Kind: placeholder.KindAnnotation, Value: "<token:baseform>", AllDocs: true},
			placeholder.Param{Name: "sense", Kind: placeholder.KindAnnotation, Value: "<token:sense>", AllDocs: true},
			placeholder.Param{Name: "lemgram", Kind: placeholder.KindAnnotation, Value: "<token>:saldo.lemgram", AllDocs: true},
			placeholder.Param{Name: "complemgram", Kind: placeholder.KindAnnotation, Value: "<token>:saldo.complemgram", AllDocs: true},
			placeholder.Param{Name: "include_all_compounds", Kind: placeholder.KindConfig, Value: "stats_export.include_all_compounds"},
		),
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "stats_export",
		Function:    "freq_list_simple",
		Role:        placeholder.RoleExporter,
		Description: "Corpus word frequency list (without Swedish annotations)",
		Order:       placeholder.Order(2),
		Params: common(
			placeholder.Param{Name: "pos", Kind: placeholder.KindAnnotation, Value: "<token:pos>", AllDocs: true},
			placeholder.Param{Name: "baseform", Kind: placeholder.KindAnnotation, Value: "<token:baseform>", AllDocs: true},
		),
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "stats_export",
		Function:    "install_freq_list",
		Role:        placeholder.RoleInstaller,
		Description: "Install word frequency list on remote host",
		Params: []placeholder.Param{
			{Name: "freq_list", Kind: placeholder.KindExportInput, Value: freqList},
			{Name: "out", Kind: placeholder.KindOutput, Value: "stats_export.install_freq_list_marker", Common: true, Data: true},
			{Name: "host", Kind: placeholder.KindConfig, Value: "stats_export.remote_host"},
			{Name: "target_dir", Kind: placeholder.KindConfig, Value: "stats_export.remote_dir"},
		},
	})
}
