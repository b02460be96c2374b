// Package rule defines the compiled unit of work handed to the executor: the
// resolved inputs and outputs of one annotator plus the parameter template
// that is bound per document at invocation time.
package rule

import (
	"strings"

	"github.com/vk/annograph/internal/deepcopy"
	"github.com/vk/annograph/internal/paths"
	"github.com/vk/annograph/internal/placeholder"
)

// Rule is one compiled annotator invocation template.
type Rule struct {
	// Name is the rule identity, "module:function" with a numeric suffix for
	// custom rules that collide with an existing identity.
	Name        string
	Module      string
	Function    string
	Role        placeholder.Role
	Description string
	Languages   []string
	Order       *int
	Custom      bool

	Inputs  []string
	Outputs []string

	// ParamOrder lists parameter names in declaration order.
	ParamOrder []string
	Params     map[string]any

	// Docs are parameters that receive the document identifier.
	Docs []string
	// DocParams are parameters whose value holds the document wildcard.
	DocParams []string
	// WildcardParams are parameters holding other wildcards.
	WildcardParams []string

	// Missing lists config keys and classes that could not be resolved.
	Missing []string
	// ExitMessage is shown to the user after an exporter finishes.
	ExitMessage string
}

// New returns an empty rule for descriptor d.
func New(d *placeholder.Descriptor) *Rule {
	r := &Rule{
		Name:        d.FullName(),
		Module:      d.Module,
		Function:    d.Function,
		Role:        d.Role,
		Description: d.Description,
		Languages:   append([]string(nil), d.Languages...),
		Params:      make(map[string]any),
	}
	if d.Order != nil {
		order := *d.Order
		r.Order = &order
	}
	return r
}

// SetParam records a resolved parameter value, keeping declaration order.
func (r *Rule) SetParam(name string, value any) {
	if _, exists := r.Params[name]; !exists {
		r.ParamOrder = append(r.ParamOrder, name)
	}
	r.Params[name] = value
}

// Flagged reports whether the rule was compiled with unresolved
// configuration. A flagged rule is still schedulable but fails if invoked.
func (r *Rule) Flagged() bool {
	return len(r.Missing) > 0
}

// OrderValue returns the explicit order and whether one is set.
func (r *Rule) OrderValue() (int, bool) {
	if r.Order == nil {
		return 0, false
	}
	return *r.Order, true
}

// Bind returns the parameters of one invocation of the rule for document
// doc. The result is a fresh deep copy: concurrent invocations never share
// mutable structure with each other or with the rule.
func (r *Rule) Bind(doc string, wildcards map[string]string) map[string]any {
	out := deepcopy.Map(r.Params)
	if out == nil {
		out = map[string]any{}
	}
	for _, name := range r.Docs {
		out[name] = doc
	}
	for _, name := range r.DocParams {
		out[name] = substitute(out[name], func(s string) string {
			return strings.ReplaceAll(s, paths.DocWildcard, doc)
		})
	}
	for _, name := range r.WildcardParams {
		out[name] = substitute(out[name], func(s string) string {
			return paths.SubstituteWildcards(s, wildcards)
		})
	}
	return out
}

// Binder returns Bind as a standalone function value for the executor.
func (r *Rule) Binder() func(doc string, wildcards map[string]string) map[string]any {
	return r.Bind
}

func substitute(v any, fn func(string) string) any {
	switch val := v.(type) {
	case string:
		return fn(val)
	case []string:
		for i := range val {
			val[i] = fn(val[i])
		}
		return val
	case []any:
		for i, item := range val {
			if s, ok := item.(string); ok {
				val[i] = fn(s)
			}
		}
		return val
	}
	return v
}
