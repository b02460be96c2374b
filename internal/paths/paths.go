// Package paths builds the concrete file paths of annotations, models,
// exports and binaries from resolved annotation names.
package paths

import (
	"path"
	"regexp"
	"strings"
)

const (
	// DocWildcard is replaced by a document identifier at invocation time.
	DocWildcard = "{doc}"
	// ElemAttrDelim separates the element and attribute parts of an annotation.
	ElemAttrDelim = ":"
	// SpanAnnotation is the file name of a span annotation without attribute.
	SpanAnnotation = "@span"
	// TextFile is the file name of the raw document text artifact.
	TextFile = "@text"
)

// Layout is the directory layout of a corpus work area.
type Layout struct {
	AnnotationDir string
	ModelsDir     string
	ExportDir     string
	BinDir        string
	SourceDir     string
	LogDir        string
}

// DefaultLayout returns the layout used for a corpus rooted at root. Models
// and binaries are shared between corpora and live under dataDir.
func DefaultLayout(root, dataDir string) Layout {
	return Layout{
		AnnotationDir: path.Join(root, "sparv-workdir", "annotations"),
		ExportDir:     path.Join(root, "export"),
		SourceDir:     path.Join(root, "source"),
		LogDir:        path.Join(root, "logs"),
		ModelsDir:     path.Join(dataDir, "models"),
		BinDir:        path.Join(dataDir, "bin"),
	}
}

// SplitAnnotation splits an annotation name into element and attribute.
func SplitAnnotation(name string) (elem, attr string) {
	elem, attr, _ = strings.Cut(name, ElemAttrDelim)
	return elem, attr
}

// JoinAnnotation is the inverse of SplitAnnotation.
func JoinAnnotation(elem, attr string) string {
	if attr == "" {
		return elem
	}
	return elem + ElemAttrDelim + attr
}

// AnnotationPath returns the path of an annotation relative to the
// annotation area. Per-document paths start with the document wildcard;
// span annotations without attribute end in SpanAnnotation unless the
// annotation is data or common.
func AnnotationPath(name string, data, common bool) string {
	elem, attr := SplitAnnotation(name)
	p := elem
	if !(data || common) {
		if attr == "" {
			attr = SpanAnnotation
		}
		p = path.Join(p, attr)
	} else if attr != "" {
		p = path.Join(p, attr)
	}
	if !common {
		p = DocWildcard + "/" + p
	}
	return p
}

// Annotation returns AnnotationPath inside the annotation area.
func (l Layout) Annotation(name string, data, common bool) string {
	return path.Join(l.AnnotationDir, AnnotationPath(name, data, common))
}

// TextFile returns the path of the raw text artifact of a document.
func (l Layout) TextFile() string {
	return path.Join(l.AnnotationDir, DocWildcard, TextFile)
}

// Model returns the path of a model file. Names already pointing into the
// models area are returned unchanged.
func (l Layout) Model(name string) string {
	if l.ModelsDir != "" && strings.Contains(name, l.ModelsDir) {
		return name
	}
	return path.Join(l.ModelsDir, name)
}

// Export returns the path of an export file. Absolute exports are taken as
// they are.
func (l Layout) Export(name string, absolute bool) string {
	if absolute {
		return path.Clean(name)
	}
	return path.Join(l.ExportDir, name)
}

// Binary returns the path of an executable in the binaries area.
func (l Layout) Binary(name string) string {
	return path.Join(l.BinDir, name)
}

// SourceFile returns the wildcarded source file pattern for an extension.
func (l Layout) SourceFile(ext string) string {
	return path.Join(l.SourceDir, DocWildcard+"."+ext)
}

var wildcardRe = regexp.MustCompile(`\{([^}]+)\}`)

// Wildcards returns the names of all wildcards in s, in order of appearance.
func Wildcards(s string) []string {
	var out []string
	for _, m := range wildcardRe.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// HasWildcard reports whether s contains any wildcard.
func HasWildcard(s string) bool {
	return wildcardRe.MatchString(s)
}

// ExpandDocs expands the document wildcard of pattern once per document.
// Other wildcards are kept.
func ExpandDocs(pattern string, docs []string) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, strings.ReplaceAll(pattern, DocWildcard, doc))
	}
	return out
}

// SubstituteWildcards replaces every wildcard other than the document
// wildcard using values. Wildcards without a value are left in place.
func SubstituteWildcards(s string, values map[string]string) string {
	return wildcardRe.ReplaceAllStringFunc(s, func(tok string) string {
		name := tok[1 : len(tok)-1]
		if tok == DocWildcard {
			return tok
		}
		if v, ok := values[name]; ok {
			return v
		}
		return tok
	})
}

// Pattern compiles a wildcarded path into a regular expression that matches
// every concrete path it can produce.
func Pattern(p string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range wildcardRe.FindAllStringIndex(p, -1) {
		b.WriteString(regexp.QuoteMeta(p[last:loc[0]]))
		b.WriteString(".+")
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(p[last:]))
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
