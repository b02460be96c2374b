package taskgraph

import (
	"context"
	"regexp"

	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/paths"
	"github.com/vk/annograph/internal/rule"
	"github.com/vk/annograph/internal/ruleorder"
)

type producer struct {
	rule    string
	output  string
	pattern *regexp.Regexp
}

// Build links every rule to the rules producing its inputs. Outputs may hold
// wildcards and inputs may be expanded per document, so paths are compared
// as patterns. When an output belongs to an ordered pair, only the
// preferred rule is linked.
func Build(ctx context.Context, rules []*rule.Rule, ordering ruleorder.Result) *Graph {
	logger := ctxlog.FromContext(ctx)
	g := New()

	// losers[rule][output]: the rule lost that output to an ordered rival.
	losers := make(map[string]map[string]bool)
	for _, pair := range ordering.Ordered {
		if losers[pair.Other.Name] == nil {
			losers[pair.Other.Name] = make(map[string]bool)
		}
		for _, out := range pair.Outputs {
			losers[pair.Other.Name][out] = true
		}
	}

	var producers []producer
	for _, r := range rules {
		g.AddNode(r.Name)
		for _, out := range r.Outputs {
			if losers[r.Name][out] {
				continue
			}
			producers = append(producers, producer{rule: r.Name, output: out, pattern: paths.Pattern(out)})
		}
	}

	edges := 0
	for _, r := range rules {
		for _, in := range r.Inputs {
			var inPattern *regexp.Regexp
			if paths.HasWildcard(in) {
				inPattern = paths.Pattern(in)
			}
			for _, p := range producers {
				if p.rule == r.Name || !matches(p, in, inPattern) {
					continue
				}
				// Both nodes exist and self edges are skipped above.
				_ = g.AddEdge(p.rule, r.Name)
				edges++
			}
		}
	}
	logger.Debug("Task graph built.", "rules", len(rules), "edges", edges)
	return g
}

// matches reports whether producer p creates input. inPattern is the
// compiled input when it holds wildcards, nil otherwise.
func matches(p producer, input string, inPattern *regexp.Regexp) bool {
	if p.output == input || p.pattern.MatchString(input) {
		return true
	}
	return inPattern != nil && inPattern.MatchString(p.output)
}
