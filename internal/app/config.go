package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CorpusDir     string   // directory holding config.yaml and the source files
	ManifestPaths []string // hcl module manifests, files or directories
	DataDir       string   // shared models and binaries; defaults to CorpusDir

	// Language overrides metadata.language of the corpus config.
	Language string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CorpusDir == "" {
		return nil, errors.New("CorpusDir is a required configuration field and cannot be empty")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = cfg.CorpusDir
	}
	return &cfg, nil
}
