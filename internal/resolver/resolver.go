// Package resolver turns symbolic placeholder values into concrete strings.
//
// A value may embed config references, written "[key]" or "[key=default]",
// and annotation class references, written "<class>" or "<class:attribute>".
// Resolution is a single pass: config references first, then class
// references over the result. Nothing is resolved twice, and a class bound
// to a value that itself holds a reference is reported as missing.
package resolver

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vk/annograph/internal/corpusconfig"
	"github.com/vk/annograph/internal/deepcopy"
	"github.com/vk/annograph/internal/paths"
)

var (
	configRefRe = regexp.MustCompile(`\[([^\]=\[]+)(?:=([^\]\[]*))?\]`)
	classRefRe  = regexp.MustCompile(`<([^<>]+)>`)
)

// ConfigSource is the read side of the corpus configuration.
type ConfigSource interface {
	Get(key string) (any, bool)
}

// ClassSource maps annotation classes to concrete annotations.
type ClassSource interface {
	Lookup(class string) (string, bool)
}

// Resolver resolves placeholder values against a frozen configuration.
type Resolver struct {
	config  ConfigSource
	classes ClassSource
}

// New returns a Resolver over cfg and classes.
func New(cfg ConfigSource, classes ClassSource) *Resolver {
	return &Resolver{config: cfg, classes: classes}
}

// Resolve substitutes every reference in value it can. Unresolved tokens are
// left in the result and their keys returned, sorted, in missing. Resolve
// never fails.
func (r *Resolver) Resolve(value string) (resolved string, missing []string) {
	miss := map[string]struct{}{}

	resolved = configRefRe.ReplaceAllStringFunc(value, func(tok string) string {
		m := configRefRe.FindStringSubmatch(tok)
		key := strings.TrimSpace(m[1])
		if v, ok := r.config.Get(key); ok {
			return corpusconfig.Stringify(v)
		}
		if strings.Contains(tok, "=") {
			return m[2]
		}
		miss[key] = struct{}{}
		return tok
	})

	resolved = classRefRe.ReplaceAllStringFunc(resolved, func(tok string) string {
		ref := tok[1 : len(tok)-1]
		ann, ok := r.lookupClass(ref)
		if !ok {
			cls, _ := paths.SplitAnnotation(ref)
			miss[cls] = struct{}{}
			return tok
		}
		if HasReference(ann) {
			cls, _ := paths.SplitAnnotation(ref)
			miss[cls] = struct{}{}
			return tok
		}
		return ann
	})

	if len(miss) == 0 {
		return resolved, nil
	}
	missing = make([]string, 0, len(miss))
	for k := range miss {
		missing = append(missing, k)
	}
	sort.Strings(missing)
	return resolved, missing
}

// lookupClass resolves "class" or "class:attr". A class registered under the
// full "class:attr" name takes precedence over re-attaching the attribute.
func (r *Resolver) lookupClass(ref string) (string, bool) {
	if ann, ok := r.classes.Lookup(ref); ok {
		return ann, true
	}
	cls, attr := paths.SplitAnnotation(ref)
	if attr == "" {
		return "", false
	}
	ann, ok := r.classes.Lookup(cls)
	if !ok {
		return "", false
	}
	return paths.JoinAnnotation(ann, attr), true
}

// Config returns a copy of the config value for key, or def when it is unset.
func (r *Resolver) Config(key string, def any) any {
	if v, ok := r.config.Get(key); ok {
		return deepcopy.Value(v)
	}
	return def
}

// HasReference reports whether s still contains a config or class reference.
func HasReference(s string) bool {
	return configRefRe.MatchString(s) || classRefRe.MatchString(s)
}

// ConfigKeys returns the config keys referenced in value, in order of
// appearance.
func ConfigKeys(value string) []string {
	var keys []string
	for _, m := range configRefRe.FindAllStringSubmatch(value, -1) {
		keys = append(keys, strings.TrimSpace(m[1]))
	}
	return keys
}
