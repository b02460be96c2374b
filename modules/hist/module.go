// Package hist declares annotators for historical Swedish texts.
package hist

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the annotators. posset and extract_pos produce the same
// annotation; posset is preferred.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("hist", "Annotations for historical Swedish texts")

	b.RegisterConfig(registry.ConfigDecl{Module: "hist", Key: "hist.dalin_model", Default: "hist/dalin.pickle", Description: "Path to Dalin model"})
	b.RegisterConfig(registry.ConfigDecl{Module: "hist", Key: "hist.swedberg_model", Default: "hist/swedberg.pickle", Description: "Path to Swedberg model"})
	b.RegisterConfig(registry.ConfigDecl{Module: "hist", Key: "hist.extralemgrams", Default: "", Description: "Additional lemgram annotation"})

	langs := []string{"swe-1800"}
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "hist",
		Function:    "posset",
		Description: "Convert POS into sets",
		Languages:   langs,
		Order:       placeholder.Order(1),
		Params: []placeholder.Param{
			{Name: "out", Kind: placeholder.KindOutput, Value: "<token>:hist.homograph_set", Description: "POS converted into sets"},
			{Name: "pos", Kind: placeholder.KindAnnotation, Value: "<token:pos>"},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "hist",
		Function:    "extract_pos",
		Description: "Extract POS tags (homograph sets) from lemgrams",
		Languages:   langs,
		Order:       placeholder.Order(2),
		Params: []placeholder.Param{
			{Name: "out", Kind: placeholder.KindOutput, Value: "<token>:hist.homograph_set", Description: "Sets of POS extracted from lemgrams"},
			{Name: "lemgrams", Kind: placeholder.KindAnnotation, Value: "<token>:saldo.lemgram"},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "hist",
		Function:    "annotate_fallback",
		Description: "Fallback lemgrams from Dalin or Swedberg",
		Languages:   langs,
		Params: []placeholder.Param{
			{Name: "out", Kind: placeholder.KindOutput, Value: "<token>:hist.lemgram", Description: "Fallback lemgrams from Dalin or Swedberg"},
			{Name: "word", Kind: placeholder.KindAnnotation, Value: "<token:word>"},
			{Name: "msd", Kind: placeholder.KindAnnotation, Value: "<token:msd>"},
			{Name: "models", Kind: placeholder.KindModel, Values: []string{"[hist.dalin_model]", "[hist.swedberg_model]"}},
		},
	})
}
