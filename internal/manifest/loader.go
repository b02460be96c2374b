package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/fsutil"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/registry"
)

// Module is one module block of a manifest.
type Module struct {
	Name        string
	Description string
	Classes     []Class
	Configs     []registry.ConfigDecl
	Annotators  []*placeholder.Descriptor
}

// Class binds an annotation class to a concrete annotation.
type Class struct {
	Name       string
	Annotation string
}

// Manifest is the merged content of all loaded manifest files. It
// implements registry.Module.
type Manifest struct {
	Modules []*Module
}

// Register adds every declaration of the manifest to b.
func (m *Manifest) Register(b *registry.Builder) {
	for _, mod := range m.Modules {
		b.DescribeModule(mod.Name, mod.Description)
		for _, c := range mod.Classes {
			b.RegisterClass(c.Name, c.Annotation)
		}
		for _, decl := range mod.Configs {
			b.RegisterConfig(decl)
		}
		for _, d := range mod.Annotators {
			b.RegisterAnnotator(d)
		}
	}
}

// Descriptors returns every annotator declared in the manifest.
func (m *Manifest) Descriptors() []*placeholder.Descriptor {
	var out []*placeholder.Descriptor
	for _, mod := range m.Modules {
		out = append(out, mod.Annotators...)
	}
	return out
}

// Loader reads manifest files.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths. Paths may be files or
// directories; paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := findManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	m := &Manifest{}
	seen := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}
		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, block := range root.Modules {
			mod, err := translateModule(ctx, block)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			for _, d := range mod.Annotators {
				if prev, dup := seen[d.FullName()]; dup {
					return nil, fmt.Errorf("manifest %s: annotator '%s' already declared in %s", file, d.FullName(), prev)
				}
				seen[d.FullName()] = file
			}
			m.Modules = append(m.Modules, mod)
		}
	}

	logger.Debug("Manifest loading complete.", "modules", len(m.Modules), "annotators", len(seen))
	return m, nil
}

func findManifestFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		files, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", p, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return all, nil
}
