package rule

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/placeholder"
)

func exporterRule() *Rule {
	order := 2
	r := New(&placeholder.Descriptor{Module: "csv_export", Function: "csv", Role: placeholder.RoleExporter, Order: &order})
	r.SetParam("out", "export/csv/{doc}.{lang}.csv")
	r.SetParam("annotations", []string{"segment.token:pos", "segment.token:{kind} as k"})
	r.SetParam("delimiter", "\t")
	r.SetParam("settings", map[string]any{"nested": []any{"a"}})
	r.Docs = []string{"doc"}
	r.DocParams = []string{"out"}
	r.WildcardParams = []string{"out", "annotations"}
	return r
}

func TestNew(t *testing.T) {
	order := 3
	d := &placeholder.Descriptor{Module: "m", Function: "f", Role: placeholder.RoleInstaller, Order: &order, Languages: []string{"swe"}}
	r := New(d)
	assert.Equal(t, "m:f", r.Name)
	assert.Equal(t, placeholder.RoleInstaller, r.Role)

	order = 9
	v, ok := r.OrderValue()
	require.True(t, ok)
	assert.Equal(t, 3, v, "rule keeps its own copy of the order")
}

func TestSetParam_KeepsDeclarationOrder(t *testing.T) {
	r := exporterRule()
	r.SetParam("out", "other")
	assert.Equal(t, []string{"out", "annotations", "delimiter", "settings"}, r.ParamOrder)
	assert.Equal(t, "other", r.Params["out"])
}

func TestBind(t *testing.T) {
	r := exporterRule()
	got := r.Bind("D1", map[string]string{"lang": "swe", "kind": "msd"})

	want := map[string]any{
		"doc":         "D1",
		"out":         "export/csv/D1.swe.csv",
		"annotations": []string{"segment.token:pos", "segment.token:msd as k"},
		"delimiter":   "\t",
		"settings":    map[string]any{"nested": []any{"a"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Bind() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "export/csv/{doc}.{lang}.csv", r.Params["out"], "template is untouched")
	assert.Equal(t, []string{"segment.token:pos", "segment.token:{kind} as k"}, r.Params["annotations"])
}

func TestBind_UnknownWildcardIsKept(t *testing.T) {
	r := exporterRule()
	got := r.Bind("D1", nil)
	assert.Equal(t, "export/csv/D1.{lang}.csv", got["out"])
}

func TestBind_ConcurrentInvocationsDoNotAlias(t *testing.T) {
	r := exporterRule()
	docs := []string{"D1", "D2"}
	results := make([]map[string]any, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc string) {
			defer wg.Done()
			results[i] = r.Bind(doc, map[string]string{"lang": "swe", "kind": "msd"})
		}(i, doc)
	}
	wg.Wait()

	d1, d2 := results[0], results[1]
	assert.Equal(t, "D1", d1["doc"])
	assert.Equal(t, "D2", d2["doc"])
	assert.Equal(t, "export/csv/D1.swe.csv", d1["out"])
	assert.Equal(t, "export/csv/D2.swe.csv", d2["out"])

	// Equal where expected, but never the same backing storage.
	assert.Equal(t, d1["annotations"], d2["annotations"])
	d1["annotations"].([]string)[0] = "mutated"
	d1["settings"].(map[string]any)["nested"].([]any)[0] = "mutated"
	assert.Equal(t, "segment.token:pos", d2["annotations"].([]string)[0])
	assert.Equal(t, "a", d2["settings"].(map[string]any)["nested"].([]any)[0])
	assert.Equal(t, "a", r.Params["settings"].(map[string]any)["nested"].([]any)[0])
}

func TestBind_ManyDocuments(t *testing.T) {
	r := exporterRule()
	binder := r.Binder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := fmt.Sprintf("doc%d", i)
			got := binder(doc, map[string]string{"lang": "eng"})
			assert.Equal(t, "export/csv/"+doc+".eng.csv", got["out"])
		}(i)
	}
	wg.Wait()
}

func TestFlagged(t *testing.T) {
	r := exporterRule()
	assert.False(t, r.Flagged())
	r.Missing = []string{"metadata.id"}
	assert.True(t, r.Flagged())
}
