package compiler

import (
	"path"
	"sort"
	"strings"

	"github.com/vk/annograph/internal/corpusconfig"
	"github.com/vk/annograph/internal/deepcopy"
	"github.com/vk/annograph/internal/paths"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/rule"
	"github.com/vk/annograph/internal/targets"
)

// ruleBuilder fills in one rule, parameter by parameter.
type ruleBuilder struct {
	c    *Compiler
	desc *placeholder.Descriptor
	rule *rule.Rule
	set  *targets.Set

	missing    map[string]struct{}
	exportDirs []string
}

var _ placeholder.Visitor = (*ruleBuilder)(nil)

func (b *ruleBuilder) resolve(value string) string {
	resolved, missing := b.c.resolver.Resolve(value)
	for _, key := range missing {
		b.missing[key] = struct{}{}
	}
	return resolved
}

func (b *ruleBuilder) layout() paths.Layout {
	return b.c.layout
}

func (b *ruleBuilder) wildcards(name, value string) {
	if paths.HasWildcard(value) {
		b.rule.WildcardParams = append(b.rule.WildcardParams, name)
	}
}

// importer adds the source file input and, when the importer reads the
// corpus source type, the text artifact and guaranteed annotations.
func (b *ruleBuilder) importer() {
	d := b.desc
	b.rule.Inputs = append(b.rule.Inputs, path.Join(b.c.sourceDir(), paths.DocWildcard+"."+d.SourceType))
	if d.SourceType != b.c.config.StringOr(corpusconfig.KeySourceType, corpusconfig.DefaultSource) {
		return
	}
	b.rule.Outputs = append(b.rule.Outputs, b.layout().TextFile())

	guaranteed := d.ImportOutputs
	if d.ImportOutputsConfig != "" {
		if v := b.c.config.GetStrings(d.ImportOutputsConfig); v != nil {
			guaranteed = v
		}
	}
	seen := map[string]struct{}{}
	for _, ann := range guaranteed {
		elem, _ := paths.SplitAnnotation(ann)
		seen[ann] = struct{}{}
		seen[elem] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.rule.Outputs = append(b.rule.Outputs, b.layout().Annotation(name, false, false))
	}
}

func (b *ruleBuilder) VisitOutput(p placeholder.Param) {
	val := b.resolve(p.Value)
	file := b.layout().Annotation(val, p.Data, p.Common)
	switch {
	case p.AllDocs:
		b.rule.Outputs = append(b.rule.Outputs, paths.ExpandDocs(file, b.c.sources)...)
	case p.Common:
		b.rule.Outputs = append(b.rule.Outputs, file)
		if b.rule.Role == placeholder.RoleInstaller {
			b.set.AddInstallOutput(b.rule.Name, file)
		}
	default:
		b.rule.Outputs = append(b.rule.Outputs, file)
	}
	b.rule.SetParam(p.Name, val)
	b.wildcards(p.Name, val)
	b.set.AddAnnotation(b.rule.Module, b.rule.Function, b.rule.Description, targets.ProducedAnnotation{
		Name:        p.Value,
		Description: p.Description,
		Class:       p.Class,
	})
}

func (b *ruleBuilder) VisitModelOutput(p placeholder.Param) {
	file := b.layout().Model(b.resolve(p.Value))
	b.rule.Outputs = append(b.rule.Outputs, file)
	b.rule.SetParam(p.Name, file)
	b.set.AddModelOutput(file)
}

func (b *ruleBuilder) VisitModel(p placeholder.Param) {
	if len(p.Values) > 0 {
		files := make([]string, 0, len(p.Values))
		for _, v := range p.Values {
			files = append(files, b.layout().Model(b.resolve(v)))
		}
		b.rule.Inputs = append(b.rule.Inputs, files...)
		b.rule.SetParam(p.Name, files)
		return
	}
	if p.Value == "" {
		return
	}
	file := b.layout().Model(b.resolve(p.Value))
	b.rule.Inputs = append(b.rule.Inputs, file)
	b.rule.SetParam(p.Name, file)
}

func (b *ruleBuilder) VisitAnnotation(p placeholder.Param) {
	val := b.resolve(p.Value)
	file := b.layout().Annotation(val, p.Data, p.Common)
	if p.AllDocs {
		b.rule.Inputs = append(b.rule.Inputs, paths.ExpandDocs(file, b.c.sources)...)
	} else {
		b.rule.Inputs = append(b.rule.Inputs, file)
	}
	b.rule.SetParam(p.Name, val)
	b.wildcards(p.Name, val)
}

// VisitExportAnnotations reads the annotation list configured under p.Value.
// Entries may carry an export alias: "<token>:pos as pos".
func (b *ruleBuilder) VisitExportAnnotations(p placeholder.Param) {
	entries := b.c.config.GetStrings(p.Value)
	values := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, alias, hasAlias := strings.Cut(entry, " as ")
		val := b.resolve(strings.TrimSpace(name))
		if p.IsInput {
			b.rule.Inputs = append(b.rule.Inputs, b.layout().Annotation(val, false, false))
		}
		if hasAlias {
			val += " as " + strings.TrimSpace(alias)
		}
		values = append(values, val)
	}
	b.rule.SetParam(p.Name, values)
}

func (b *ruleBuilder) VisitCorpus(p placeholder.Param) {
	b.rule.SetParam(p.Name, b.c.resolver.Config(corpusconfig.KeyCorpusID, nil))
}

func (b *ruleBuilder) VisitLanguage(p placeholder.Param) {
	b.rule.SetParam(p.Name, b.c.resolver.Config(corpusconfig.KeyLanguage, nil))
}

func (b *ruleBuilder) VisitDocument(p placeholder.Param) {
	b.rule.Docs = append(b.rule.Docs, p.Name)
}

func (b *ruleBuilder) VisitAllDocuments(p placeholder.Param) {
	docs := make([]string, len(b.c.sources))
	copy(docs, b.c.sources)
	b.rule.SetParam(p.Name, docs)
}

func (b *ruleBuilder) VisitSource(p placeholder.Param) {
	b.rule.SetParam(p.Name, b.c.sourceDir())
}

func (b *ruleBuilder) VisitExport(p placeholder.Param) {
	val := b.resolve(p.Value)
	file := b.layout().Export(val, p.AbsolutePath)
	b.addExportDir(path.Dir(file))
	b.rule.Outputs = append(b.rule.Outputs, file)
	b.rule.SetParam(p.Name, file)
	if strings.Contains(file, paths.DocWildcard) {
		b.rule.DocParams = append(b.rule.DocParams, p.Name)
	}
	b.wildcards(p.Name, val)
}

func (b *ruleBuilder) VisitExportInput(p placeholder.Param) {
	file := b.layout().Export(b.resolve(p.Value), p.AbsolutePath)
	if p.AllDocs {
		b.rule.Inputs = append(b.rule.Inputs, paths.ExpandDocs(file, b.c.sources)...)
	} else {
		b.rule.Inputs = append(b.rule.Inputs, file)
	}
	b.rule.SetParam(p.Name, file)
	if !p.AllDocs && strings.Contains(file, paths.DocWildcard) {
		b.rule.DocParams = append(b.rule.DocParams, p.Name)
	}
	b.wildcards(p.Name, file)
}

func (b *ruleBuilder) VisitConfig(p placeholder.Param) {
	b.rule.SetParam(p.Name, b.c.resolver.Config(p.Value, deepcopy.Value(p.Default)))
}

func (b *ruleBuilder) VisitBinary(p placeholder.Param) {
	file := b.layout().Binary(b.resolve(p.Value))
	b.rule.Inputs = append(b.rule.Inputs, file)
	b.rule.SetParam(p.Name, file)
}

func (b *ruleBuilder) VisitValue(p placeholder.Param) {
	if p.Default == nil {
		return
	}
	b.rule.SetParam(p.Name, deepcopy.Value(p.Default))
}

func (b *ruleBuilder) addExportDir(dir string) {
	for _, d := range b.exportDirs {
		if d == dir {
			return
		}
	}
	b.exportDirs = append(b.exportDirs, dir)
}

// finish records the unresolved keys and the exporter exit message.
func (b *ruleBuilder) finish() {
	if len(b.missing) > 0 {
		keys := make([]string, 0, len(b.missing))
		for k := range b.missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.rule.Missing = keys
	}
	if b.rule.Role == placeholder.RoleExporter && len(b.exportDirs) > 0 {
		b.rule.ExitMessage = exitMessage(b.exportDirs)
	}
}
