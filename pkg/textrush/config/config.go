package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textrush/pkg/textrush/extract"
	"github.com/cognicore/textrush/pkg/textrush/internalerr"
)

// Store drivers
const (
	DriverNone   = ""
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config is the textrush configuration file.
//
//	case_sensitive: false
//	strategy: longest
//	fuzzy_threshold: 0.8
//	dictionaries: [cities.yaml, tech.txt]
//	store:
//	  driver: sqlite
//	  path: dict.db
type Config struct {
	CaseSensitive  bool        `yaml:"case_sensitive"`
	Strategy       string      `yaml:"strategy"`
	FuzzyThreshold float64     `yaml:"fuzzy_threshold"`
	FoldCacheSize  int         `yaml:"fold_cache_size"`
	Dictionaries   []string    `yaml:"dictionaries"`
	Store          StoreConfig `yaml:"store"`
}

// StoreConfig selects the dictionary store backend.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Strategy:       extract.All.String(),
		FuzzyThreshold: 0.8,
	}
}

// Load reads a YAML config file on top of Default. Relative dictionary and
// store paths are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, d := range cfg.Dictionaries {
		cfg.Dictionaries[i] = resolve(dir, d)
	}
	if cfg.Store.Path != "" {
		cfg.Store.Path = resolve(dir, cfg.Store.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the strategy token, threshold range and store driver.
func (c *Config) Validate() error {
	if _, err := extract.ParseStrategy(c.strategyToken()); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("%w: fuzzy_threshold %v outside [0, 1]", internalerr.ErrInvalidConfig, c.FuzzyThreshold)
	}
	switch c.Store.Driver {
	case DriverNone, DriverMemory:
	case DriverSQLite, DriverBolt:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store driver %q needs a path", internalerr.ErrInvalidConfig, c.Store.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}

// ParsedStrategy returns the configured extraction strategy.
func (c *Config) ParsedStrategy() extract.Strategy {
	s, _ := extract.ParseStrategy(c.strategyToken())
	return s
}

// strategyToken treats an omitted strategy as the default one.
func (c *Config) strategyToken() string {
	if c.Strategy == "" {
		return extract.All.String()
	}
	return c.Strategy
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
