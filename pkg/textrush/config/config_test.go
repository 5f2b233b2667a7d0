package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/textrush/pkg/textrush/extract"
	"github.com/cognicore/textrush/pkg/textrush/internalerr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if cfg.ParsedStrategy() != extract.All {
		t.Errorf("Default strategy = %v, want all", cfg.ParsedStrategy())
	}
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "textrush.yaml", `
case_sensitive: true
strategy: longest
dictionaries: [cities.yaml, /abs/tech.txt]
store:
  driver: sqlite
  path: data/dict.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.CaseSensitive || cfg.ParsedStrategy() != extract.Longest {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Dictionaries[0] != filepath.Join(dir, "cities.yaml") {
		t.Errorf("Relative dictionary not resolved: %s", cfg.Dictionaries[0])
	}
	if cfg.Dictionaries[1] != "/abs/tech.txt" {
		t.Errorf("Absolute dictionary changed: %s", cfg.Dictionaries[1])
	}
	if cfg.Store.Path != filepath.Join(dir, "data/dict.db") {
		t.Errorf("Store path not resolved: %s", cfg.Store.Path)
	}
	if cfg.FuzzyThreshold != 0.8 {
		t.Errorf("Unset fields should keep defaults, threshold = %v", cfg.FuzzyThreshold)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{Strategy: "all"}, true},
		{"omitted strategy", Config{}, true},
		{"unknown strategy", Config{Strategy: "first"}, false},
		{"threshold too high", Config{Strategy: "all", FuzzyThreshold: 1.5}, false},
		{"unknown driver", Config{Strategy: "all", Store: StoreConfig{Driver: "redis"}}, false},
		{"sqlite without path", Config{Strategy: "all", Store: StoreConfig{Driver: DriverSQLite}}, false},
		{"memory", Config{Strategy: "all", Store: StoreConfig{Driver: DriverMemory}}, true},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s: error = %v, want ErrInvalidConfig", tt.name, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/textrush.yaml"); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestParsedStrategyOmitted(t *testing.T) {
	if got := (&Config{}).ParsedStrategy(); got != extract.All {
		t.Errorf("Omitted strategy = %v, want all", got)
	}
}
