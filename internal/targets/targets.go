// Package targets groups compiled rules by role for listing and hands them
// to the external executor.
package targets

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/rule"
	"github.com/zeebo/blake3"
)

// Entry is one line of a target listing.
type Entry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Languages   []string `json:"languages,omitempty"`
}

// ProducedAnnotation describes an annotation created by an annotator.
type ProducedAnnotation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Class       string `json:"class,omitempty"`
}

// AnnotatorInfo lists the annotations one annotator function produces.
type AnnotatorInfo struct {
	Module      string               `json:"module"`
	Function    string               `json:"function"`
	Description string               `json:"description,omitempty"`
	Annotations []ProducedAnnotation `json:"annotations"`
}

// Set holds one compilation pass worth of rules. It is built fresh for every
// pass and not shared between passes.
type Set struct {
	rules []*rule.Rule
	index map[string]int

	Annotate []Entry `json:"annotate"`
	Export   []Entry `json:"export"`
	Install  []Entry `json:"install"`
	Model    []Entry `json:"model"`
	Custom   []Entry `json:"custom"`

	// ModelOutputs are the files created by model builders.
	ModelOutputs []string `json:"model_outputs"`
	// InstallOutputs are the common outputs of each installer rule.
	InstallOutputs map[string][]string `json:"install_outputs"`
	// Annotators lists produced annotations in compilation order.
	Annotators []*AnnotatorInfo `json:"annotators"`
}

// New returns an empty Set.
func New() *Set {
	return &Set{
		index:          make(map[string]int),
		InstallOutputs: make(map[string][]string),
	}
}

// Add registers a compiled rule and files it under its role. Rule names are
// unique within a set; adding a name twice panics.
func (s *Set) Add(r *rule.Rule) {
	if _, dup := s.index[r.Name]; dup {
		panic(fmt.Sprintf("targets: rule '%s' added twice", r.Name))
	}
	s.index[r.Name] = len(s.rules)
	s.rules = append(s.rules, r)

	entry := Entry{Name: r.Name, Description: r.Description}
	switch r.Role {
	case placeholder.RoleExporter:
		entry.Languages = slices.Clone(r.Languages)
		s.Export = append(s.Export, entry)
	case placeholder.RoleInstaller:
		s.Install = append(s.Install, entry)
	case placeholder.RoleModelBuilder:
		entry.Languages = slices.Clone(r.Languages)
		s.Model = append(s.Model, entry)
	default:
		s.Annotate = append(s.Annotate, entry)
	}
}

// AddCustom lists an annotator that only runs when bound by a custom rule.
func (s *Set) AddCustom(name, description string) {
	s.Custom = append(s.Custom, Entry{Name: name, Description: description})
}

// AddModelOutput records a file created by a model builder.
func (s *Set) AddModelOutput(path string) {
	s.ModelOutputs = append(s.ModelOutputs, path)
}

// AddInstallOutput records a common output of an installer rule.
func (s *Set) AddInstallOutput(ruleName, path string) {
	s.InstallOutputs[ruleName] = append(s.InstallOutputs[ruleName], path)
}

// AddAnnotation records an annotation produced by module:function.
func (s *Set) AddAnnotation(module, function, description string, ann ProducedAnnotation) {
	for _, info := range s.Annotators {
		if info.Module == module && info.Function == function {
			info.Annotations = append(info.Annotations, ann)
			return
		}
	}
	s.Annotators = append(s.Annotators, &AnnotatorInfo{
		Module:      module,
		Function:    function,
		Description: description,
		Annotations: []ProducedAnnotation{ann},
	})
}

// Rules returns the compiled rules in compilation order.
func (s *Set) Rules() []*rule.Rule {
	return slices.Clone(s.rules)
}

// Rule returns the rule with the given identity.
func (s *Set) Rule(name string) (*rule.Rule, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.rules[i], true
}

// Has reports whether a rule identity is taken.
func (s *Set) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns every rule identity in compilation order.
func (s *Set) Names() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Name
	}
	return out
}

// InstallInputs collects the files the named installations must create.
func (s *Set) InstallInputs(installs []string) []string {
	var out []string
	for _, name := range installs {
		out = append(out, s.InstallOutputs[name]...)
	}
	return out
}

// Target is the executor-facing view of one rule.
type Target struct {
	Name    string
	Inputs  []string
	Outputs []string
	Order   *int
	Bind    func(doc string, wildcards map[string]string) map[string]any
}

// Handoff returns the targets for the executor in compilation order.
func (s *Set) Handoff() []Target {
	out := make([]Target, 0, len(s.rules))
	for _, r := range s.rules {
		t := Target{
			Name:    r.Name,
			Inputs:  slices.Clone(r.Inputs),
			Outputs: slices.Clone(r.Outputs),
			Bind:    r.Binder(),
		}
		if v, ok := r.OrderValue(); ok {
			t.Order = &v
		}
		out = append(out, t)
	}
	return out
}

type canonicalRule struct {
	Name           string         `json:"name"`
	Role           string         `json:"role"`
	Order          *int           `json:"order,omitempty"`
	Custom         bool           `json:"custom,omitempty"`
	Inputs         []string       `json:"inputs"`
	Outputs        []string       `json:"outputs"`
	ParamOrder     []string       `json:"param_order"`
	Params         map[string]any `json:"params"`
	Docs           []string       `json:"docs,omitempty"`
	DocParams      []string       `json:"doc_params,omitempty"`
	WildcardParams []string       `json:"wildcard_params,omitempty"`
	Missing        []string       `json:"missing,omitempty"`
	ExitMessage    string         `json:"exit_message,omitempty"`
}

// MarshalCanonical renders the set as JSON with a stable layout. Map keys
// are sorted by encoding/json, so identical sets render identically.
func (s *Set) MarshalCanonical() ([]byte, error) {
	rules := make([]canonicalRule, len(s.rules))
	for i, r := range s.rules {
		rules[i] = canonicalRule{
			Name:           r.Name,
			Role:           r.Role.String(),
			Order:          r.Order,
			Custom:         r.Custom,
			Inputs:         r.Inputs,
			Outputs:        r.Outputs,
			ParamOrder:     r.ParamOrder,
			Params:         r.Params,
			Docs:           r.Docs,
			DocParams:      r.DocParams,
			WildcardParams: r.WildcardParams,
			Missing:        r.Missing,
			ExitMessage:    r.ExitMessage,
		}
	}
	out, err := json.Marshal(struct {
		Rules []canonicalRule `json:"rules"`
		*Set
	}{Rules: rules, Set: s})
	if err != nil {
		return nil, fmt.Errorf("failed to render target set: %w", err)
	}
	return out, nil
}

// Fingerprint returns the BLAKE3 hash of the canonical rendering.
func (s *Set) Fingerprint() (string, error) {
	data, err := s.MarshalCanonical()
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
