package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/annograph/internal/corpusconfig"
	"github.com/vk/annograph/internal/ctxlog"
	"github.com/vk/annograph/internal/fsutil"
	"github.com/vk/annograph/internal/manifest"
	"github.com/vk/annograph/internal/paths"
	"github.com/vk/annograph/internal/registry"
)

// App encapsulates the application's dependencies and configuration. Every
// input of a compilation pass is loaded once by NewApp and frozen.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	corpus   *corpusconfig.Store
	classes  *corpusconfig.ClassTable
	layout   paths.Layout
	sources  []string
}

// NewApp builds an App. Logs go to logW and command output to outW. Without
// modules the compiled-in core modules are registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	builder := registry.NewBuilder().Register(modules...)
	logger.Debug("Go modules registered.", "count", len(modules))

	if len(cfg.ManifestPaths) > 0 {
		m, err := manifest.NewLoader().Load(ctx, cfg.ManifestPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load module manifests: %w", err)
		}
		for _, d := range m.Descriptors() {
			if builder.Has(d.FullName()) {
				return nil, fmt.Errorf("manifest annotator '%s' is already provided by a compiled-in module", d.FullName())
			}
		}
		builder.Register(m)
		logger.Debug("Manifest modules registered.", "count", len(m.Modules))
	}
	reg := builder.Build()
	if refs := reg.Validate(ctx); len(refs) > 0 {
		logger.Debug("Registry references undeclared config keys.", "count", len(refs))
	}

	corpus, err := corpusconfig.Load(ctx,
		filepath.Join(cfg.CorpusDir, corpusconfig.ConfigFileName),
		corpusconfig.WithDefaults(reg.ConfigDefaults()),
		corpusconfig.WithLanguage(cfg.Language),
	)
	if err != nil {
		return nil, err
	}
	if corpus.Missing() {
		logger.Warn("No corpus config found, only model targets are available.", "dir", cfg.CorpusDir)
	}

	layout := paths.DefaultLayout(cfg.CorpusDir, cfg.DataDir)
	if dir, ok := corpus.GetString(corpusconfig.KeySourceDir); ok && dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.CorpusDir, dir)
		}
		layout.SourceDir = filepath.ToSlash(dir)
	}

	sourceType := corpus.StringOr(corpusconfig.KeySourceType, corpusconfig.DefaultSource)
	sources, err := fsutil.SourceDocuments(layout.SourceDir, sourceType)
	if err != nil {
		return nil, fmt.Errorf("failed to list source documents: %w", err)
	}
	logger.Debug("Source documents found.", "dir", layout.SourceDir, "count", len(sources))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		corpus:   corpus,
		classes:  corpusconfig.ClassTableFor(reg.ModuleClasses(), corpus),
		layout:   layout,
		sources:  sources,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Sources returns the document identifiers of the corpus.
func (a *App) Sources() []string {
	return append([]string(nil), a.sources...)
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
