// Package segment declares the tokenizer and sentence splitter.
package segment

import (
	"github.com/vk/annograph/internal/paths"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the segmentation annotators.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("segment", "Automatic segmentation of text into tokens and sentences")

	b.RegisterConfig(registry.ConfigDecl{Module: "segment", Key: "segment.token_segmenter", Default: "better_word", Description: "Token segmentation algorithm"})
	b.RegisterConfig(registry.ConfigDecl{Module: "segment", Key: "segment.token_chunk", Default: "<sentence>", Description: "Text chunk to use as input when segmenting tokens"})
	b.RegisterConfig(registry.ConfigDecl{Module: "segment", Key: "segment.sentence_chunk", Default: "<text>", Description: "Text chunk to use as input when segmenting sentences"})
	b.RegisterConfig(registry.ConfigDecl{Module: "segment", Key: "segment.token_list", Default: "segment/bettertokenizer.sv", Description: "Model with extra tokens"})

	text := placeholder.Param{Name: "text", Kind: placeholder.KindAnnotation, Value: paths.TextFile, Data: true}

	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "segment",
		Function:    "tokenize",
		Description: "Automatic tokenization",
		Params: []placeholder.Param{
			text,
			{Name: "chunk", Kind: placeholder.KindAnnotation, Value: "[segment.token_chunk]"},
			{Name: "segmenter", Kind: placeholder.KindConfig, Value: "segment.token_segmenter"},
			{Name: "token_list", Kind: placeholder.KindModel, Value: "[segment.token_list]"},
			{Name: "out", Kind: placeholder.KindOutput, Value: "segment.token", Class: "token", Description: "Token segments"},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "segment",
		Function:    "sentence",
		Description: "Automatic detection of sentences",
		Params: []placeholder.Param{
			text,
			{Name: "chunk", Kind: placeholder.KindAnnotation, Value: "[segment.sentence_chunk]"},
			{Name: "out", Kind: placeholder.KindOutput, Value: "segment.sentence", Class: "sentence", Description: "Sentence segments"},
		},
	})
}
