package taskgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("a")
	g.AddNode("b")
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		assert.ErrorContains(t, g.AddEdge("dne", "a"), "source node not found")
		assert.ErrorContains(t, g.AddEdge("a", "dne"), "destination node not found")
		assert.ErrorContains(t, g.AddEdge("a", "a"), "self-referential edge not allowed")

		_, err := g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")
		_, err = g.Dependents("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestTopologicalOrder(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []string
		edges   [][2]string
		want    []string
		wantErr string
	}{
		{
			name:  "empty graph",
			nodes: nil,
			want:  []string{},
		},
		{
			name:  "chain is ordered",
			nodes: []string{"c", "b", "a"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "ties broken by name",
			nodes: []string{"z", "y", "x"},
			edges: [][2]string{{"x", "z"}},
			want:  []string{"x", "y", "z"},
		},
		{
			name:    "simple cycle",
			nodes:   []string{"a", "b"},
			edges:   [][2]string{{"a", "b"}, {"b", "a"}},
			wantErr: "cycle detected involving node 'a'",
		},
		{
			name:    "cycle in a disjoint component",
			nodes:   []string{"a", "b", "x", "y", "z"},
			edges:   [][2]string{{"a", "b"}, {"x", "y"}, {"y", "z"}, {"z", "y"}},
			wantErr: "cycle detected",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			for _, n := range tc.nodes {
				g.AddNode(n)
			}
			for _, e := range tc.edges {
				require.NoError(t, g.AddEdge(e[0], e[1]))
			}
			got, err := g.TopologicalOrder()
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				assert.ErrorContains(t, g.DetectCycles(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NoError(t, g.DetectCycles())
		})
	}
}

func TestWrite(t *testing.T) {
	g := New()
	g.AddNode("segment:tokenize")
	g.AddNode("hunpos:postag")
	require.NoError(t, g.AddEdge("segment:tokenize", "hunpos:postag"))

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "<- segment:tokenize")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("segment:tokenize\n")), bytes.Index(buf.Bytes(), []byte("hunpos:postag")))

	require.NoError(t, g.AddEdge("hunpos:postag", "segment:tokenize"))
	buf.Reset()
	require.NoError(t, g.Write(&buf))
	assert.Contains(t, buf.String(), "Warning: cycle detected")
}
