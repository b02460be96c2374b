package rule_ordering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/annograph/internal/compiler"
	"github.com/vk/annograph/internal/ruleorder"
	"github.com/vk/annograph/internal/testutil"
)

func findPair(pairs []ruleorder.Pair, preferred, other string) (ruleorder.Pair, bool) {
	for _, p := range pairs {
		if p.Preferred.Name == preferred && p.Other.Name == other {
			return p, true
		}
	}
	return ruleorder.Pair{}, false
}

// TestRuleOrdering_LanguageDecidesProducers checks that the frequency list
// exporters are ordered when both apply, and that only the generic one is
// compiled for a language the richer one does not support.
func TestRuleOrdering_LanguageDecidesProducers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		language     string
		wantOrdered  bool
		wantFreqList compiler.Status
	}{
		{name: "swedish corpus", language: "swe", wantOrdered: true, wantFreqList: compiler.StatusCompiled},
		{name: "english corpus", language: "eng", wantOrdered: false, wantFreqList: compiler.StatusFilteredOut},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			files := map[string]string{
				"config.yaml":  "metadata:\n  id: demo\n  language: " + tc.language + "\n",
				"source/a.xml": "<text/>",
			}

			// --- Act ---
			result := testutil.RunIntegrationTest(t, files)

			// --- Assert ---
			require.NoError(t, result.Err)
			assert.Equal(t, tc.wantFreqList, result.Report.Outcomes["stats_export:freq_list"])
			assert.NotEqual(t, compiler.StatusFilteredOut, result.Report.Outcomes["stats_export:freq_list_simple"])

			_, ordered := findPair(result.Report.Ordering.Ordered, "stats_export:freq_list", "stats_export:freq_list_simple")
			assert.Equal(t, tc.wantOrdered, ordered)
			assert.Empty(t, result.Report.DiagnosticsOf(compiler.AmbiguousOutputProducers))
		})
	}
}
