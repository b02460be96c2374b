// Package misc declares general purpose annotators. Most of them take their
// inputs from custom rules in the corpus config.
package misc

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the annotators.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("misc", "Miscellaneous annotations")

	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "misc",
		Function:    "text_headtail",
		Description: "Extract the whitespace before and after each token",
		Params: []placeholder.Param{
			{Name: "text", Kind: placeholder.KindAnnotation, Value: "@text", Data: true},
			{Name: "chunk", Kind: placeholder.KindAnnotation, Value: "<token>"},
			{Name: "out_head", Kind: placeholder.KindOutput, Value: "<token>:misc.head", Description: "Whitespace before"},
			{Name: "out_tail", Kind: placeholder.KindOutput, Value: "<token>:misc.tail", Description: "Whitespace after"},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "misc",
		Function:    "count",
		Description: "Count the number of spans of an annotation in the whole corpus",
		Params: []placeholder.Param{
			{Name: "docs", Kind: placeholder.KindAllDocuments},
			{Name: "annotation", Kind: placeholder.KindAnnotation, Value: "<sentence>", AllDocs: true},
			{Name: "out", Kind: placeholder.KindOutput, Value: "misc.<sentence>_count", Common: true, Data: true},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "misc",
		Function:    "affix",
		Description: "Add prefix and/or suffix to an annotation",
		Params: []placeholder.Param{
			{Name: "chunk", Kind: placeholder.KindAnnotation},
			{Name: "out", Kind: placeholder.KindOutput},
			{Name: "prefix", Kind: placeholder.KindValue, Default: ""},
			{Name: "suffix", Kind: placeholder.KindValue, Default: ""},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "misc",
		Function:    "find_replace",
		Description: "Find and replace whole annotation",
		Params: []placeholder.Param{
			{Name: "chunk", Kind: placeholder.KindAnnotation},
			{Name: "out", Kind: placeholder.KindOutput},
			{Name: "find", Kind: placeholder.KindValue, Default: ""},
			{Name: "sub", Kind: placeholder.KindValue, Default: ""},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "misc",
		Function:    "number_by_position",
		Description: "Number chunks by their position",
		Params: []placeholder.Param{
			{Name: "chunk", Kind: placeholder.KindAnnotation, Value: "{annotation}"},
			{Name: "out", Kind: placeholder.KindOutput, Value: "{annotation}:misc.number_position"},
			{Name: "prefix", Kind: placeholder.KindValue, Default: ""},
			{Name: "zfill", Kind: placeholder.KindValue, Default: false},
			{Name: "start", Kind: placeholder.KindValue, Default: 1},
		},
	})
}
