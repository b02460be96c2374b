package ruleorder

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/rule"
)

func newRule(name string, order *int, outputs ...string) *rule.Rule {
	return &rule.Rule{Name: name, Order: order, Outputs: outputs}
}

func intPtr(i int) *int { return &i }

func TestFindConflicts(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))

	testCases := []struct {
		name              string
		a, b              *rule.Rule
		expectedConflicts int
		expectedOrdered   int
		preferred         string
	}{
		{
			name: "disjoint outputs are ignored",
			a:    newRule("m:a", nil, "x"),
			b:    newRule("m:b", nil, "y"),
		},
		{
			name:              "both unordered",
			a:                 newRule("m:a", nil, "x", "y"),
			b:                 newRule("m:b", nil, "y"),
			expectedConflicts: 1,
		},
		{
			name:              "one unordered",
			a:                 newRule("m:a", intPtr(1), "x"),
			b:                 newRule("m:b", nil, "x"),
			expectedConflicts: 1,
		},
		{
			name:              "equal orders",
			a:                 newRule("m:a", intPtr(1), "x"),
			b:                 newRule("m:b", intPtr(1), "x"),
			expectedConflicts: 1,
		},
		{
			name:            "distinct orders, lower wins",
			a:               newRule("m:a", intPtr(5), "x"),
			b:               newRule("m:b", intPtr(2), "x"),
			expectedOrdered: 1,
			preferred:       "m:b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := FindConflicts(ctx, []*rule.Rule{tc.a, tc.b})
			assert.Len(t, res.Conflicts, tc.expectedConflicts)
			require.Len(t, res.Ordered, tc.expectedOrdered)
			if tc.expectedOrdered > 0 {
				assert.Equal(t, tc.preferred, res.Ordered[0].Preferred.Name)
				assert.Equal(t, []string{"x"}, res.Ordered[0].Outputs)
			}
		})
	}
}

func TestFindConflicts_ReportsSharedOutputs(t *testing.T) {
	buf := &logBuffer{}
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))

	res := FindConflicts(ctx, []*rule.Rule{
		newRule("tagger:pos", nil, "ann/{doc}/token/pos", "ann/{doc}/token/msd"),
		newRule("other:pos", nil, "ann/{doc}/token/pos", "ann/{doc}/token/msd"),
	})
	require.Len(t, res.Conflicts, 1)
	c := res.Conflicts[0]
	assert.Equal(t, "tagger:pos", c.First)
	assert.Equal(t, "other:pos", c.Second)
	assert.Equal(t, []string{"ann/{doc}/token/msd", "ann/{doc}/token/pos"}, c.Outputs)
	assert.Contains(t, c.Message(), "tagger:pos and other:pos have common outputs")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestFindConflicts_ThreeWay(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	res := FindConflicts(ctx, []*rule.Rule{
		newRule("a", intPtr(1), "x"),
		newRule("b", intPtr(2), "x"),
		newRule("c", nil, "x"),
	})
	assert.Len(t, res.Ordered, 1)
	assert.Len(t, res.Conflicts, 2)
}

type logBuffer struct{ data []byte }

func (b *logBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *logBuffer) String() string { return string(b.data) }
