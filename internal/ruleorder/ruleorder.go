// Package ruleorder finds compiled rules that produce the same outputs and
// decides which of them are deliberately ordered.
//
// Two rules may share outputs only when both carry distinct explicit order
// values; the lower value wins and the pair is handed to the executor as a
// preference. Every other overlap is an ambiguity. It is reported, never
// resolved here: which rule the executor picks is up to the executor.
package ruleorder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/rule"
)

// Pair is an explicitly ordered pair of rules. Preferred has the lower order.
type Pair struct {
	Preferred *rule.Rule
	Other     *rule.Rule
	Outputs   []string
}

// Conflict is an overlap the order values cannot settle.
type Conflict struct {
	First   string
	Second  string
	Outputs []string
}

// Message renders the conflict the way it is shown to users.
func (c Conflict) Message() string {
	return fmt.Sprintf("The annotators %s and %s have common outputs (%s). "+
		"Please make sure to set their 'order' arguments to different values.",
		c.First, c.Second, strings.Join(c.Outputs, ", "))
}

// Result holds the outcome of FindConflicts.
type Result struct {
	Ordered   []Pair
	Conflicts []Conflict
}

// FindConflicts compares every unordered pair of rules. Pairs are visited in
// the order of rules, so the result is deterministic for a given input.
func FindConflicts(ctx context.Context, rules []*rule.Rule) Result {
	logger := ctxlog.FromContext(ctx)
	var res Result

	outputs := make([]map[string]struct{}, len(rules))
	for i, r := range rules {
		outputs[i] = make(map[string]struct{}, len(r.Outputs))
		for _, o := range r.Outputs {
			outputs[i][o] = struct{}{}
		}
	}

	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			common := intersect(outputs[i], outputs[j])
			if len(common) == 0 {
				continue
			}
			a, b := rules[i], rules[j]
			orderA, okA := a.OrderValue()
			orderB, okB := b.OrderValue()
			if !okA || !okB || orderA == orderB {
				c := Conflict{First: a.Name, Second: b.Name, Outputs: common}
				logger.Warn(c.Message(), "rule", a.Name, "other_rule", b.Name)
				res.Conflicts = append(res.Conflicts, c)
				continue
			}
			if orderB < orderA {
				a, b = b, a
			}
			logger.Debug("Rules share outputs and are ordered.", "preferred", a.Name, "other", b.Name)
			res.Ordered = append(res.Ordered, Pair{Preferred: a, Other: b, Outputs: common})
		}
	}
	return res
}

func intersect(a, b map[string]struct{}) []string {
	if len(b) < len(a) {
		a, b = b, a
	}
	var out []string
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
