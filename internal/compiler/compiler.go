// Package compiler turns the annotator registry and a frozen corpus
// configuration into the set of rules handed to the executor.
//
// Compilation is a pure pass: the registry and the configuration are only
// read, every pass builds a fresh targets.Set, and two passes over the same
// inputs produce identical sets.
package compiler

import (
	"context"
	"fmt"
	"path"
	"slices"

	"github.com/vk/annograph/internal/corpusconfig"
	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/paths"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
	"github.com/vk/annograph/internal/resolver"
	"github.com/vk/annograph/internal/rule"
	"github.com/vk/annograph/internal/ruleorder"
	"github.com/vk/annograph/internal/targets"
)

// Status is the outcome of compiling one descriptor.
type Status int

const (
	// StatusCompiled: the rule was registered with everything resolved.
	StatusCompiled Status = iota + 1
	// StatusFlagged: the rule was registered but has missing configuration.
	StatusFlagged
	// StatusDormant: a parameter has no value; the annotator is only listed
	// as available for custom rules.
	StatusDormant
	// StatusFilteredOut: the rule does not apply to this corpus.
	StatusFilteredOut
)

func (s Status) String() string {
	switch s {
	case StatusCompiled:
		return "compiled"
	case StatusFlagged:
		return "flagged"
	case StatusDormant:
		return "dormant"
	case StatusFilteredOut:
		return "filtered_out"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Compiler holds the read-only inputs of a compilation pass.
type Compiler struct {
	registry *registry.Registry
	config   *corpusconfig.Store
	resolver *resolver.Resolver
	layout   paths.Layout
	sources  []string
}

// New returns a Compiler. sources are the document identifiers of the
// corpus in a stable order.
func New(reg *registry.Registry, cfg *corpusconfig.Store, classes *corpusconfig.ClassTable, layout paths.Layout, sources []string) *Compiler {
	return &Compiler{
		registry: reg,
		config:   cfg,
		resolver: resolver.New(cfg, classes),
		layout:   layout,
		sources:  slices.Clone(sources),
	}
}

// Report is the result of a compilation pass.
type Report struct {
	Targets     *targets.Set
	Ordering    ruleorder.Result
	Diagnostics []Diagnostic
	// Outcomes maps every descriptor and custom rule considered to its status.
	Outcomes map[string]Status
}

// DiagnosticsOf returns the diagnostics of the given kind.
func (r *Report) DiagnosticsOf(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Compile runs one compilation pass over every registered descriptor and
// every custom rule of the corpus config. Only an invalid custom rule makes
// it fail.
func (c *Compiler) Compile(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling rules.", "annotators", c.registry.Len(), "documents", len(c.sources))

	custom, err := c.customRules()
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Targets:  targets.New(),
		Outcomes: make(map[string]Status),
	}
	for _, d := range c.registry.Descriptors() {
		status, _ := c.compileRule(ctx, rep, d, false)
		rep.Outcomes[d.FullName()] = status
		logger.Debug("Compiled annotator.", "annotator", d.FullName(), "status", status.String())

		for _, cr := range custom[d.FullName()] {
			status, r, err := c.compileCustom(ctx, rep, d, cr)
			if err != nil {
				return nil, err
			}
			if r != nil {
				rep.Outcomes[r.Name] = status
			}
		}
	}

	rep.Ordering = ruleorder.FindConflicts(ctx, rep.Targets.Rules())
	for _, conflict := range rep.Ordering.Conflicts {
		rep.Diagnostics = append(rep.Diagnostics, Diagnostic{
			Kind:    AmbiguousOutputProducers,
			Rules:   []string{conflict.First, conflict.Second},
			Keys:    conflict.Outputs,
			Message: conflict.Message(),
		})
	}

	logger.Info("Rules compiled.",
		"rules", len(rep.Targets.Names()),
		"ordered_pairs", len(rep.Ordering.Ordered),
		"diagnostics", len(rep.Diagnostics))
	return rep, nil
}

// applies reports whether d is compiled for this corpus at all. Without a
// corpus config only model builders are. A language-restricted annotator
// needs the corpus language to be set and listed.
func (c *Compiler) applies(d *placeholder.Descriptor) bool {
	if c.config.Missing() && d.Role != placeholder.RoleModelBuilder {
		return false
	}
	if len(d.Languages) == 0 {
		return true
	}
	lang := c.config.Language()
	return lang != "" && d.SupportsLanguage(lang)
}

// compileRule compiles one descriptor, either as the base rule of the
// annotator or as a custom rule with its parameters already bound.
func (c *Compiler) compileRule(ctx context.Context, rep *Report, d *placeholder.Descriptor, custom bool) (Status, *rule.Rule) {
	logger := ctxlog.FromContext(ctx)

	if !c.applies(d) {
		return StatusFilteredOut, nil
	}

	r := rule.New(d)
	if !custom {
		if name, dormant := d.MissingDefault(); dormant {
			logger.Debug("Annotator has an unset parameter, listing it for custom rules.", "annotator", d.FullName(), "param", name)
			rep.Targets.AddCustom(d.FullName(), d.Description)
			return StatusDormant, nil
		}
	} else {
		r.Name = c.uniqueName(d.FullName(), rep.Targets)
		r.Custom = true
	}

	b := &ruleBuilder{c: c, desc: d, rule: r, set: rep.Targets, missing: map[string]struct{}{}}
	if d.Role == placeholder.RoleImporter {
		b.importer()
	}
	for _, p := range d.Params {
		if err := p.Accept(b); err != nil {
			// Descriptors are validated at registration, so this only
			// happens for a kind added without a visitor case.
			logger.Error("Skipping parameter.", "annotator", r.Name, "error", err)
		}
	}
	b.finish()

	rep.Targets.Add(r)
	if !r.Flagged() {
		return StatusCompiled, r
	}

	msg := missingConfigMessage(r.Missing)
	logger.Warn("Rule has unresolved configuration.", "rule", r.Name, "missing", r.Missing)
	rep.Diagnostics = append(rep.Diagnostics, Diagnostic{
		Kind:    MissingConfiguration,
		Rules:   []string{r.Name},
		Keys:    slices.Clone(r.Missing),
		Message: msg,
	})
	return StatusFlagged, r
}

// uniqueName picks the identity of a custom rule over annotator name. A
// numbered candidate must be free in the set and must not belong to another
// registered annotator, which may still be compiled later in the pass.
func (c *Compiler) uniqueName(name string, set *targets.Set) string {
	if !set.Has(name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if set.Has(candidate) {
			continue
		}
		if _, taken := c.registry.Lookup(candidate); taken {
			continue
		}
		return candidate
	}
}

func (c *Compiler) sourceDir() string {
	return c.config.StringOr(corpusconfig.KeySourceDir, c.layout.SourceDir)
}

// exitMessage lists the directories an exporter writes to.
func exitMessage(dirs []string) string {
	msg := "The exported files can be found in the following location(s):"
	for _, d := range dirs {
		msg += "\n" + path.Clean(d) + "/"
	}
	return msg
}
