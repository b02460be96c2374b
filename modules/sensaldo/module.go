// Package sensaldo declares sentiment annotation with the SenSALDO lexicon.
package sensaldo

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the annotator and its model builder.
func (m *Module) Register(b *registry.Builder) {
	b.DescribeModule("sensaldo", "Sentiment annotation per token using SenSALDO")

	b.RegisterConfig(registry.ConfigDecl{Module: "sensaldo", Key: "sensaldo.model", Default: "sensaldo/sensaldo.pickle", Description: "Path to SenSALDO model"})

	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "sensaldo",
		Function:    "annotate",
		Description: "Sentiment annotation per token using SenSALDO",
		Languages:   []string{"swe"},
		Params: []placeholder.Param{
			{Name: "doc", Kind: placeholder.KindDocument},
			{Name: "sense", Kind: placeholder.KindAnnotation, Value: "<token>:saldo.sense"},
			{Name: "out_scores", Kind: placeholder.KindOutput, Value: "<token>:sensaldo.score", Description: "SenSALDO sentiment score"},
			{Name: "out_labels", Kind: placeholder.KindOutput, Value: "<token>:sensaldo.label", Description: "SenSALDO sentiment label"},
			{Name: "model", Kind: placeholder.KindModel, Value: "[sensaldo.model]"},
		},
	})
	b.RegisterAnnotator(&placeholder.Descriptor{
		Module:      "sensaldo",
		Function:    "build_model",
		Role:        placeholder.RoleModelBuilder,
		Description: "Sentiment model (SenSALDO)",
		Languages:   []string{"swe"},
		Params: []placeholder.Param{
			{Name: "out", Kind: placeholder.KindModelOutput, Value: "sensaldo/sensaldo.pickle"},
		},
	})
}
