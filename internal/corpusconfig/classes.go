package corpusconfig

import (
	"maps"
	"slices"
	"sort"
)

// ClassTable maps annotation classes to concrete annotation names. Module
// declarations may offer several annotations for a class (the first wins);
// the corpus config overrides them. The table is read-only.
type ClassTable struct {
	module map[string][]string
	config map[string]string
}

// NewClassTable builds the table from module declarations and corpus
// overrides.
func NewClassTable(module map[string][]string, config map[string]string) *ClassTable {
	t := &ClassTable{
		module: make(map[string][]string, len(module)),
		config: maps.Clone(config),
	}
	if t.config == nil {
		t.config = map[string]string{}
	}
	for cls, anns := range module {
		t.module[cls] = slices.Clone(anns)
	}
	return t
}

// ClassTableFor builds the table using the classes section of store.
func ClassTableFor(module map[string][]string, store *Store) *ClassTable {
	return NewClassTable(module, store.StringMap(KeyClasses))
}

// Lookup returns the concrete annotation bound to class.
func (t *ClassTable) Lookup(class string) (string, bool) {
	if ann, ok := t.config[class]; ok && ann != "" {
		return ann, true
	}
	if anns := t.module[class]; len(anns) > 0 {
		return anns[0], true
	}
	return "", false
}

// ClassBinding is one row of the class listing.
type ClassBinding struct {
	Class       string
	Annotations []string
	FromConfig  bool
}

// ModuleBindings lists the module-declared classes sorted by name.
func (t *ClassTable) ModuleBindings() []ClassBinding {
	out := make([]ClassBinding, 0, len(t.module))
	for cls, anns := range t.module {
		out = append(out, ClassBinding{Class: cls, Annotations: slices.Clone(anns)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}

// ConfigBindings lists the corpus overrides sorted by name.
func (t *ClassTable) ConfigBindings() []ClassBinding {
	out := make([]ClassBinding, 0, len(t.config))
	for cls, ann := range t.config {
		out = append(out, ClassBinding{Class: cls, Annotations: []string{ann}, FromConfig: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}
