// Package corpusconfig holds the corpus configuration: a nested key/value
// store merged from module-declared defaults and the corpus config file, plus
// the annotation class table. Both are frozen once loaded.
package corpusconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/deepcopy"
	"gopkg.in/yaml.v3"
)

// Well known keys.
const (
	KeyCorpusID    = "metadata.id"
	KeyLanguage    = "metadata.language"
	KeySourceDir   = "source_dir"
	KeySourceType  = "source_type"
	KeyClasses     = "classes"
	KeyCustom      = "custom_annotations"
	KeyInstall     = "install"
	DefaultSource  = "xml"
	ConfigFileName = "config.yaml"
)

// Store is a read-only nested configuration.
type Store struct {
	data    map[string]any
	missing bool
}

type options struct {
	defaults map[string]any
	language string
}

// Option customizes Load.
type Option func(*options)

// WithDefaults merges module-declared defaults under the corpus values. Keys
// are dotted paths.
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) {
		for k, v := range defaults {
			o.defaults[k] = v
		}
	}
}

// WithLanguage overrides the configured corpus language.
func WithLanguage(lang string) Option {
	return func(o *options) { o.language = lang }
}

// Load reads the YAML corpus config at path. A missing file is not an error:
// the returned store only carries defaults and reports Missing.
func Load(ctx context.Context, path string, opts ...Option) (*Store, error) {
	logger := ctxlog.FromContext(ctx)
	o := &options{defaults: make(map[string]any)}
	for _, opt := range opts {
		opt(o)
	}

	corpus := map[string]any{}
	missing := false
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("Corpus config not found.", "path", path)
		missing = true
	case err != nil:
		return nil, fmt.Errorf("failed to read corpus config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, &corpus); err != nil {
			return nil, fmt.Errorf("failed to parse corpus config %s: %w", path, err)
		}
		if corpus == nil {
			corpus = map[string]any{}
		}
		logger.Debug("Corpus config loaded.", "path", path, "top_level_keys", len(corpus))
	}

	return build(corpus, o, missing), nil
}

// New builds a store directly from values, mainly for tests and embedding.
func New(values map[string]any, opts ...Option) *Store {
	o := &options{defaults: make(map[string]any)}
	for _, opt := range opts {
		opt(o)
	}
	return build(deepcopy.Map(values), o, false)
}

// NewMissing builds a store for a corpus without a config file.
func NewMissing(opts ...Option) *Store {
	o := &options{defaults: make(map[string]any)}
	for _, opt := range opts {
		opt(o)
	}
	return build(map[string]any{}, o, true)
}

func build(corpus map[string]any, o *options, missing bool) *Store {
	data := map[string]any{}
	keys := make([]string, 0, len(o.defaults))
	for k := range o.defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if o.defaults[k] == nil {
			continue
		}
		setDotted(data, k, deepcopy.Value(o.defaults[k]))
	}
	merge(data, corpus)
	if o.language != "" {
		setDotted(data, KeyLanguage, o.language)
	}
	return &Store{data: data, missing: missing}
}

// merge copies src into dst, recursing into maps present on both sides.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
			dst[k] = deepcopy.Map(sub)
			continue
		}
		dst[k] = deepcopy.Value(v)
	}
}

func setDotted(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Missing reports whether the corpus config file was absent.
func (s *Store) Missing() bool {
	return s.missing
}

// Get looks up a dotted key. Null values count as absent. The returned value
// must not be modified.
func (s *Store) Get(key string) (any, bool) {
	var cur any = s.data
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Lookup returns the value of key or def when it is absent. The value is a
// copy.
func (s *Store) Lookup(key string, def any) any {
	if v, ok := s.Get(key); ok {
		return deepcopy.Value(v)
	}
	return def
}

// GetString returns key rendered as a string.
func (s *Store) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// StringOr returns key as a string, or def when it is absent.
func (s *Store) StringOr(key, def string) string {
	if v, ok := s.GetString(key); ok {
		return v
	}
	return def
}

// GetStrings returns a list value as strings.
func (s *Store) GetStrings(key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, Stringify(item))
		}
		return out
	case []string:
		return append([]string(nil), list...)
	case string:
		return []string{list}
	}
	return nil
}

// StringMap returns a mapping value with values rendered as strings.
func (s *Store) StringMap(key string) map[string]string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if val == nil {
			continue
		}
		out[k] = Stringify(val)
	}
	return out
}

// Language returns the configured corpus language.
func (s *Store) Language() string {
	return s.StringOr(KeyLanguage, "")
}

// Raw returns a deep copy of the whole configuration.
func (s *Store) Raw() map[string]any {
	return deepcopy.Map(s.data)
}

// YAML renders the merged configuration.
func (s *Store) YAML() (string, error) {
	out, err := yaml.Marshal(s.data)
	if err != nil {
		return "", fmt.Errorf("failed to render corpus config: %w", err)
	}
	return string(out), nil
}

// Stringify renders scalar config values the way they appear in paths.
func Stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprint(val)
	default:
		return fmt.Sprint(val)
	}
}
