package compiler

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/annograph/internal/corpusconfig"
	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/rule"
)

// customRule is one entry of the custom_annotations config list.
//
//	custom_annotations:
//	  - annotator: misc:affix
//	    output: {out: "<token>:misc.affixed"}
//	    params: {chunk: "<token:word>", prefix: "|"}
type customRule struct {
	annotator string
	output    map[string]any
	params    map[string]any
}

func (cr customRule) empty() bool {
	return len(cr.output) == 0 && len(cr.params) == 0
}

// customRules reads the custom rule declarations, grouped by annotator in
// config order.
func (c *Compiler) customRules() (map[string][]customRule, error) {
	raw, ok := c.config.Get(corpusconfig.KeyCustom)
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &InvalidCustomRuleError{Rule: corpusconfig.KeyCustom, Reason: "expected a list of custom rules"}
	}

	out := make(map[string][]customRule)
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, &InvalidCustomRuleError{Rule: fmt.Sprintf("#%d", i+1), Reason: "expected a mapping"}
		}
		name, _ := entry["annotator"].(string)
		if name == "" {
			return nil, &InvalidCustomRuleError{Rule: fmt.Sprintf("#%d", i+1), Reason: "no annotator given"}
		}
		if _, ok := c.registry.Lookup(name); !ok {
			return nil, &InvalidCustomRuleError{Rule: name, Reason: "no such annotator"}
		}
		cr := customRule{annotator: name}
		if cr.output, ok = mapping(entry["output"]); !ok {
			return nil, &InvalidCustomRuleError{Rule: name, Reason: "'output' must be a mapping"}
		}
		if cr.params, ok = mapping(entry["params"]); !ok {
			return nil, &InvalidCustomRuleError{Rule: name, Reason: "'params' must be a mapping"}
		}
		out[name] = append(out[name], cr)
	}
	return out, nil
}

func mapping(v any) (map[string]any, bool) {
	if v == nil {
		return nil, true
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// compileCustom overlays a custom rule on descriptor d and compiles the
// result under a fresh identity. A declaration binding nothing is skipped.
func (c *Compiler) compileCustom(ctx context.Context, rep *Report, d *placeholder.Descriptor, cr customRule) (Status, *rule.Rule, error) {
	if !c.applies(d) || cr.empty() {
		return StatusFilteredOut, nil, nil
	}

	bound := d.Clone()
	for _, values := range []map[string]any{cr.output, cr.params} {
		for _, name := range sortedKeys(values) {
			if !bindParam(bound, name, values[name]) {
				rep.Diagnostics = append(rep.Diagnostics, unknownParam(ctx, d.FullName(), name))
			}
		}
	}

	if name, missing := bound.MissingDefault(); missing {
		return 0, nil, &InvalidCustomRuleError{Rule: d.FullName(), Param: name}
	}

	status, r := c.compileRule(ctx, rep, bound, true)
	return status, r, nil
}

func bindParam(d *placeholder.Descriptor, name string, value any) bool {
	for i, p := range d.Params {
		if p.Name == name {
			d.Params[i] = p.WithValue(value)
			return true
		}
	}
	return false
}

func unknownParam(ctx context.Context, annotator, param string) Diagnostic {
	msg := fmt.Sprintf("The parameter '%s' used in one of your custom rules does not exist in %s", param, annotator)
	ctxlog.FromContext(ctx).Warn(msg)
	return Diagnostic{
		Kind:    UnknownCustomParameter,
		Rules:   []string{annotator},
		Keys:    []string{param},
		Message: msg,
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
