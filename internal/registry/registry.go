package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/vk/annograph/internal/deepcopy"
	"github.com/vk/annograph/internal/placeholder"
)

// Module is the interface that all compiled-in modules implement to be
// registered.
type Module interface {
	Register(b *Builder)
}

// ConfigDecl declares a config key read by a module, with its default.
type ConfigDecl struct {
	Key         string
	Default     any
	Description string
	Module      string
}

// Builder accumulates declarations before the registry is frozen.
type Builder struct {
	descriptors []*placeholder.Descriptor
	index       map[string]int
	classes     map[string][]string
	configs     map[string]ConfigDecl
	modules     map[string]string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		index:   make(map[string]int),
		classes: make(map[string][]string),
		configs: make(map[string]ConfigDecl),
		modules: make(map[string]string),
	}
}

// DescribeModule records a human readable module description.
func (b *Builder) DescribeModule(name, description string) {
	b.modules[name] = description
}

// RegisterAnnotator adds an annotator descriptor. Outputs declaring a class
// offer themselves as bindings for it. Registering the same identity twice
// or an invalid descriptor is a programmer error and panics.
func (b *Builder) RegisterAnnotator(d *placeholder.Descriptor) {
	if err := d.Validate(); err != nil {
		panic(err)
	}
	name := d.FullName()
	if _, exists := b.index[name]; exists {
		panic(fmt.Sprintf("annotator with name '%s' already registered", name))
	}
	slog.Debug("Registering annotator.", "name", name, "role", d.Role, "params", len(d.Params))
	b.index[name] = len(b.descriptors)
	b.descriptors = append(b.descriptors, d.Clone())
	for _, p := range d.Params {
		if p.Kind == placeholder.KindOutput && p.Class != "" {
			b.RegisterClass(p.Class, p.Value)
		}
	}
	if _, ok := b.modules[d.Module]; !ok {
		b.modules[d.Module] = ""
	}
}

// Has reports whether an annotator identity is already registered.
func (b *Builder) Has(fullName string) bool {
	_, ok := b.index[fullName]
	return ok
}

// RegisterClass offers annotation as a binding for class. Earlier
// registrations take precedence.
func (b *Builder) RegisterClass(class, annotation string) {
	if slices.Contains(b.classes[class], annotation) {
		return
	}
	b.classes[class] = append(b.classes[class], annotation)
}

// RegisterConfig declares a config key and its default.
func (b *Builder) RegisterConfig(decl ConfigDecl) {
	if existing, ok := b.configs[decl.Key]; ok && existing.Default != nil && decl.Default == nil {
		return
	}
	decl.Default = deepcopy.Value(decl.Default)
	b.configs[decl.Key] = decl
}

// Register runs the registration of each module.
func (b *Builder) Register(modules ...Module) *Builder {
	for _, m := range modules {
		m.Register(b)
	}
	return b
}

// Build freezes the builder into a Registry. Descriptors are ordered by
// module name and then by registration order inside the module.
func (b *Builder) Build() *Registry {
	descs := make([]*placeholder.Descriptor, len(b.descriptors))
	for i, d := range b.descriptors {
		descs[i] = d.Clone()
	}
	sort.SliceStable(descs, func(i, j int) bool { return descs[i].Module < descs[j].Module })

	r := &Registry{
		descriptors: descs,
		index:       make(map[string]int, len(descs)),
		classes:     make(map[string][]string, len(b.classes)),
		configs:     make(map[string]ConfigDecl, len(b.configs)),
		modules:     make(map[string]string, len(b.modules)),
	}
	for i, d := range descs {
		r.index[d.FullName()] = i
	}
	for cls, anns := range b.classes {
		r.classes[cls] = slices.Clone(anns)
	}
	for k, decl := range b.configs {
		decl.Default = deepcopy.Value(decl.Default)
		r.configs[k] = decl
	}
	for k, v := range b.modules {
		r.modules[k] = v
	}
	return r
}

// Registry is the frozen set of module declarations.
type Registry struct {
	descriptors []*placeholder.Descriptor
	index       map[string]int
	classes     map[string][]string
	configs     map[string]ConfigDecl
	modules     map[string]string
}

// Descriptors returns copies of all descriptors in compilation order.
func (r *Registry) Descriptors() []*placeholder.Descriptor {
	out := make([]*placeholder.Descriptor, len(r.descriptors))
	for i, d := range r.descriptors {
		out[i] = d.Clone()
	}
	return out
}

// Lookup returns a copy of the descriptor registered as "module:function".
func (r *Registry) Lookup(fullName string) (*placeholder.Descriptor, bool) {
	i, ok := r.index[fullName]
	if !ok {
		return nil, false
	}
	return r.descriptors[i].Clone(), true
}

// Len returns the number of registered annotators.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// ModuleClasses returns the class bindings declared by modules.
func (r *Registry) ModuleClasses() map[string][]string {
	out := make(map[string][]string, len(r.classes))
	for cls, anns := range r.classes {
		out[cls] = slices.Clone(anns)
	}
	return out
}

// ConfigDefaults returns the declared defaults keyed by dotted config key.
func (r *Registry) ConfigDefaults() map[string]any {
	out := make(map[string]any, len(r.configs))
	for k, decl := range r.configs {
		if decl.Default != nil {
			out[k] = deepcopy.Value(decl.Default)
		}
	}
	return out
}

// ConfigDecls returns every declared config key sorted by key.
func (r *Registry) ConfigDecls() []ConfigDecl {
	out := make([]ConfigDecl, 0, len(r.configs))
	for _, decl := range r.configs {
		decl.Default = deepcopy.Value(decl.Default)
		out = append(out, decl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Modules returns the registered module names with their descriptions.
func (r *Registry) Modules() map[string]string {
	out := make(map[string]string, len(r.modules))
	for k, v := range r.modules {
		out[k] = v
	}
	return out
}
