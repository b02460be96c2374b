package registry

import (
	"context"
	"strings"

	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/placeholder"
	"github.com/vk/annograph/internal/resolver"
)

// coreKeys are config keys owned by the corpus itself rather than a module.
var (
	coreKeys        = map[string]struct{}{"source_dir": {}, "source_type": {}, "classes": {}, "custom_annotations": {}, "install": {}}
	coreKeyPrefixes = []string{"metadata.", "export.", "import.", "classes."}
)

// UndeclaredRef is a config key an annotator reads that no module declares.
type UndeclaredRef struct {
	Annotator string
	Param     string
	Key       string
}

// Validate checks the config keys read by annotators against the declared
// ones. Undeclared keys may still be set in the corpus config, so they are
// logged and returned rather than treated as errors.
func (r *Registry) Validate(ctx context.Context) []UndeclaredRef {
	logger := ctxlog.FromContext(ctx)
	var refs []UndeclaredRef

	check := func(d *placeholder.Descriptor, param, key string) {
		if r.declared(key) {
			return
		}
		logger.Warn("Annotator reads a config key no module declares.", "annotator", d.FullName(), "param", param, "key", key)
		refs = append(refs, UndeclaredRef{Annotator: d.FullName(), Param: param, Key: key})
	}

	for _, d := range r.descriptors {
		if d.ImportOutputsConfig != "" {
			check(d, "", d.ImportOutputsConfig)
		}
		for _, p := range d.Params {
			switch p.Kind {
			case placeholder.KindConfig, placeholder.KindExportAnnotations:
				check(d, p.Name, p.Value)
				continue
			}
			for _, v := range append([]string{p.Value}, p.Values...) {
				for _, key := range resolver.ConfigKeys(v) {
					check(d, p.Name, key)
				}
			}
		}
	}
	return refs
}

func (r *Registry) declared(key string) bool {
	if _, ok := r.configs[key]; ok {
		return true
	}
	if _, ok := coreKeys[key]; ok {
		return true
	}
	for _, prefix := range coreKeyPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
