package targets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/rule"
)

func sampleSet() *Set {
	s := New()
	for _, d := range []*placeholder.Descriptor{
		{Module: "segment", Function: "tokenize", Role: placeholder.RoleAnnotator, Description: "Split into tokens"},
		{Module: "xml_import", Function: "parse", Role: placeholder.RoleImporter},
		{Module: "csv_export", Function: "csv", Role: placeholder.RoleExporter, Languages: []string{"swe"}},
		{Module: "cwb", Function: "install", Role: placeholder.RoleInstaller},
		{Module: "sensaldo", Function: "build_model", Role: placeholder.RoleModelBuilder},
	} {
		r := rule.New(d)
		r.Outputs = []string{"out/" + d.Function}
		r.SetParam("p", []string{"v"})
		s.Add(r)
	}
	s.AddCustom("misc:affix", "Add prefix and suffix")
	s.AddInstallOutput("cwb:install", "ann/cwb.installed")
	s.AddModelOutput("models/sensaldo.pickle")
	s.AddAnnotation("segment", "tokenize", "Split into tokens", ProducedAnnotation{Name: "segment.token", Class: "token"})
	s.AddAnnotation("segment", "tokenize", "Split into tokens", ProducedAnnotation{Name: "segment.token:x"})
	return s
}

func TestAdd_GroupsByRole(t *testing.T) {
	s := sampleSet()
	assert.Equal(t, []Entry{
		{Name: "segment:tokenize", Description: "Split into tokens"},
		{Name: "xml_import:parse"},
	}, s.Annotate)
	assert.Equal(t, []Entry{{Name: "csv_export:csv", Languages: []string{"swe"}}}, s.Export)
	assert.Equal(t, []Entry{{Name: "cwb:install"}}, s.Install)
	assert.Equal(t, []Entry{{Name: "sensaldo:build_model"}}, s.Model)
	assert.Equal(t, []Entry{{Name: "misc:affix", Description: "Add prefix and suffix"}}, s.Custom)
	assert.Len(t, s.Names(), 5)
	assert.True(t, s.Has("cwb:install"))
	require.Len(t, s.Annotators, 1)
	assert.Len(t, s.Annotators[0].Annotations, 2)
}

func TestAdd_RejectsDuplicateNames(t *testing.T) {
	s := sampleSet()
	assert.PanicsWithValue(t, "targets: rule 'cwb:install' added twice", func() {
		s.Add(&rule.Rule{Name: "cwb:install", Role: placeholder.RoleInstaller})
	})
	assert.Len(t, s.Names(), 5)
}

func TestInstallInputs(t *testing.T) {
	s := sampleSet()
	assert.Equal(t, []string{"ann/cwb.installed"}, s.InstallInputs([]string{"cwb:install", "unknown"}))
}

func TestHandoff(t *testing.T) {
	s := sampleSet()
	r, ok := s.Rule("segment:tokenize")
	require.True(t, ok)
	r.Docs = []string{"doc"}

	handoff := s.Handoff()
	require.Len(t, handoff, 5)
	assert.Equal(t, "segment:tokenize", handoff[0].Name)
	assert.Equal(t, []string{"out/tokenize"}, handoff[0].Outputs)

	handoff[0].Outputs[0] = "mutated"
	assert.Equal(t, "out/tokenize", r.Outputs[0])

	bound := handoff[0].Bind("D1", nil)
	assert.Equal(t, "D1", bound["doc"])
}

func TestFingerprint(t *testing.T) {
	a, err := sampleSet().Fingerprint()
	require.NoError(t, err)
	b, err := sampleSet().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	changed := sampleSet()
	r, _ := changed.Rule("cwb:install")
	r.Outputs = append(r.Outputs, "extra")
	c, err := changed.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestWriteListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleSet().WriteListing(&buf))
	out := buf.String()
	for _, want := range []string{"Annotation targets", "segment:tokenize", "Split into tokens", "Export targets", "(swe)", "Custom rule annotators", "misc:affix"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	require.NoError(t, New().WriteListing(&buf))
	assert.Contains(t, buf.String(), "No targets available.")
}

func TestWriteAnnotations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleSet().WriteAnnotations(&buf))
	assert.Contains(t, buf.String(), "SEGMENT")
	assert.Contains(t, buf.String(), "segment.token:x")
	assert.Contains(t, buf.String(), "<token>")

	buf.Reset()
	require.NoError(t, sampleSet().WriteAnnotations(&buf, "cwb"))
	assert.NotContains(t, buf.String(), "SEGMENT")
}
