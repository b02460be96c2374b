package testutil

import (
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// SimpleModule is a test helper registering a fixed set of annotators,
// classes and config declarations.
type SimpleModule struct {
	Annotators []*placeholder.Descriptor
	Classes    map[string]string
	Configs    []registry.ConfigDecl
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(b *registry.Builder) {
	for _, decl := range m.Configs {
		b.RegisterConfig(decl)
	}
	for class, ann := range m.Classes {
		b.RegisterClass(class, ann)
	}
	for _, d := range m.Annotators {
		b.RegisterAnnotator(d)
	}
}
