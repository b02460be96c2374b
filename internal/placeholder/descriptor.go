package placeholder

import (
	"fmt"
	"slices"
)

// Param is the declared schema of a single annotator parameter.
type Param struct {
	Name string
	Kind Kind

	// Value is the symbolic value. It may embed a config reference
	// ("[key=default]") and class references ("<class:attr>").
	Value string
	// Values holds the list form used by Model parameters naming several files.
	Values []string
	// Default is the fallback for Config parameters and the literal for Value
	// parameters.
	Default any

	Description string
	// Class is the annotation class an Output parameter provides, if any.
	Class string

	AllDocs      bool
	Common       bool
	Data         bool
	IsInput      bool
	AbsolutePath bool
}

// HasValue reports whether the parameter carries a symbolic value.
func (p Param) HasValue() bool {
	return p.Value != "" || len(p.Values) > 0
}

// Mandatory reports whether the parameter needs a value that it does not have.
func (p Param) Mandatory() bool {
	return p.Kind.NeedsValue() && !p.HasValue()
}

// WithValue returns a copy of p bound to a value supplied by a custom rule.
// Placeholder kinds take v as their symbolic value (a list for Model
// parameters). Kinds without a symbolic value are turned into plain Value
// parameters carrying v.
func (p Param) WithValue(v any) Param {
	out := p.Clone()
	if v == nil {
		return out
	}
	if !p.Kind.NeedsValue() {
		out.Kind = KindValue
		out.Default = v
		return out
	}
	switch val := v.(type) {
	case string:
		out.Value = val
		out.Values = nil
	case []string:
		out.Value = ""
		out.Values = slices.Clone(val)
	case []any:
		strs := make([]string, 0, len(val))
		for _, item := range val {
			strs = append(strs, fmt.Sprint(item))
		}
		out.Value = ""
		out.Values = strs
	default:
		out.Value = fmt.Sprint(val)
		out.Values = nil
	}
	return out
}

// Clone returns a copy of p that shares no slices with it.
func (p Param) Clone() Param {
	out := p
	out.Values = slices.Clone(p.Values)
	return out
}

// Descriptor is the declarative description of one annotator function.
type Descriptor struct {
	Module      string
	Function    string
	Role        Role
	Description string
	// Languages restricts the annotator to these language codes. Empty means
	// every language.
	Languages []string
	// Order is the explicit priority used when several rules produce the same
	// output. Lower values win.
	Order  *int
	Params []Param

	// SourceType is the source file extension consumed by an importer.
	SourceType string
	// ImportOutputs lists annotations an importer guarantees to produce.
	ImportOutputs []string
	// ImportOutputsConfig names a config key holding the guaranteed outputs.
	// It takes precedence over ImportOutputs when set in the corpus config.
	ImportOutputsConfig string
}

// Order returns a pointer to n for use as Descriptor.Order.
func Order(n int) *int {
	return &n
}

// FullName returns the rule identity "module:function".
func (d *Descriptor) FullName() string {
	return d.Module + ":" + d.Function
}

// SupportsLanguage reports whether the annotator applies to lang.
func (d *Descriptor) SupportsLanguage(lang string) bool {
	return len(d.Languages) == 0 || slices.Contains(d.Languages, lang)
}

// Param returns the parameter with the given name.
func (d *Descriptor) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// MissingDefault returns the name of the first parameter that needs a value
// and has none.
func (d *Descriptor) MissingDefault() (string, bool) {
	for _, p := range d.Params {
		if p.Mandatory() {
			return p.Name, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	out := *d
	out.Languages = slices.Clone(d.Languages)
	out.ImportOutputs = slices.Clone(d.ImportOutputs)
	if d.Order != nil {
		order := *d.Order
		out.Order = &order
	}
	out.Params = make([]Param, len(d.Params))
	for i, p := range d.Params {
		out.Params[i] = p.Clone()
	}
	return &out
}

// Validate checks the descriptor for declaration mistakes.
func (d *Descriptor) Validate() error {
	if d.Module == "" || d.Function == "" {
		return fmt.Errorf("annotator descriptor needs both module and function names (got %q)", d.FullName())
	}
	seen := make(map[string]struct{}, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "" {
			return fmt.Errorf("annotator '%s': parameter without a name", d.FullName())
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("annotator '%s': duplicate parameter '%s'", d.FullName(), p.Name)
		}
		seen[p.Name] = struct{}{}
		if _, ok := kindNames[p.Kind]; !ok {
			return fmt.Errorf("annotator '%s': parameter '%s' has invalid kind %s", d.FullName(), p.Name, p.Kind)
		}
	}
	return nil
}
