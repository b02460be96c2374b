package taskgraph

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/paths"
	"github.com/vk/annograph/internal/rule"
	"github.com/vk/annograph/internal/ruleorder"
)

func newRule(name string, inputs, outputs []string, order *int) *rule.Rule {
	return &rule.Rule{Name: name, Inputs: inputs, Outputs: outputs, Order: order, Params: map[string]any{}}
}

func intPtr(v int) *int { return &v }

func TestBuild(t *testing.T) {
	tokenize := newRule("segment:tokenize", []string{"ann/{doc}/@text"}, []string{"ann/{doc}/segment.token/@span"}, nil)
	importer := newRule("xml_import:parse", []string{"source/{doc}.xml"}, []string{"ann/{doc}/@text"}, nil)
	hunpos := newRule("hunpos:postag", []string{"ann/{doc}/segment.token/@span"}, []string{"ann/{doc}/segment.token/pos"}, intPtr(2))
	stanza := newRule("stanza:postag", []string{"ann/{doc}/segment.token/@span"}, []string{"ann/{doc}/segment.token/pos"}, intPtr(1))
	encode := newRule("cwb:encode", []string{"ann/d1/segment.token/pos", "ann/d2/segment.token/pos"}, []string{"export/cwb.encoded/.info"}, nil)

	rules := []*rule.Rule{tokenize, importer, hunpos, stanza, encode}
	ordering := ruleorder.FindConflicts(context.Background(), rules)
	require.Len(t, ordering.Ordered, 1)

	g := Build(context.Background(), rules, ordering)

	deps, err := g.Dependencies("segment:tokenize")
	require.NoError(t, err)
	assert.Equal(t, []string{"xml_import:parse"}, deps)

	deps, err = g.Dependencies("cwb:encode")
	require.NoError(t, err)
	assert.Equal(t, []string{"stanza:postag"}, deps, "only the preferred producer is linked")

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"xml_import:parse", "segment:tokenize", "stanza:postag", "cwb:encode", "hunpos:postag"}, order)
}

func TestBuild_WildcardInputs(t *testing.T) {
	producer := newRule("misc:number", []string{"ann/{doc}/{annotation}/@span"}, []string{"ann/{doc}/{annotation}/misc.number"}, nil)
	consumer := newRule("csv_export:csv", []string{"ann/{doc}/segment.token/misc.number"}, []string{"export/csv/{doc}.csv"}, nil)

	g := Build(context.Background(), []*rule.Rule{producer, consumer}, ruleorder.Result{})
	deps, err := g.Dependencies("csv_export:csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"misc:number"}, deps)

	deps, err = g.Dependencies("misc:number")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestMatches(t *testing.T) {
	testCases := []struct {
		name   string
		output string
		input  string
		want   bool
	}{
		{name: "identical", output: "ann/{doc}/seg/@span", input: "ann/{doc}/seg/@span", want: true},
		{name: "wildcard output covers concrete input", output: "ann/{doc}/seg/pos", input: "ann/d1/seg/pos", want: true},
		{name: "wildcard input covers concrete output", output: "export/d1.csv", input: "export/{doc}.csv", want: true},
		{name: "different files", output: "ann/{doc}/seg/pos", input: "ann/d1/seg/msd", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := producer{rule: "r", output: tc.output, pattern: paths.Pattern(tc.output)}
			var inPattern *regexp.Regexp
			if paths.HasWildcard(tc.input) {
				inPattern = paths.Pattern(tc.input)
			}
			assert.Equal(t, tc.want, matches(p, tc.input, inPattern))
		})
	}
}
