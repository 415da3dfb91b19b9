// Package config loads shapec.toml. The configuration is read once at
// startup and treated as immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"shapec/internal/classify"
)

// ManifestName is the file shapec looks for next to its inputs.
const ManifestName = "shapec.toml"

// Config mirrors shapec.toml.
type Config struct {
	Annotations Annotations `toml:"annotations"`
	Render      Render      `toml:"render"`
	Output      Output      `toml:"output"`
}

type Annotations struct {
	// AlwaysDuplicate lists annotation keys placed on both the outer field
	// and the generated inner type without an explicit qualifier.
	AlwaysDuplicate []string `toml:"always_duplicate"`
}

type Render struct {
	BlockPerNesting bool `toml:"block_per_nesting"`
}

type Output struct {
	Package string `toml:"package"`
	Scope   string `toml:"scope"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Annotations: Annotations{AlwaysDuplicate: []string{"doc", "cfg", "deprecated"}},
		Output:      Output{Package: "shapes"},
	}
}

// Load reads a shapec.toml. Sections that are absent keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("annotations", "always_duplicate") && cfg.Annotations.AlwaysDuplicate == nil {
		cfg.Annotations.AlwaysDuplicate = []string{}
	}
	if cfg.Output.Package == "" {
		cfg.Output.Package = Default().Output.Package
	}
	return cfg, nil
}

// Find walks from startDir upwards looking for a shapec.toml. The defaults
// apply when no manifest exists.
func Find(startDir string) (Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Config{}, "", err
	}
	for {
		path := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), "", nil
		}
		dir = parent
	}
}

// ClassifyConfig converts the allow-list into the classifier's form.
func (c Config) ClassifyConfig() classify.Config {
	set := make(map[string]bool, len(c.Annotations.AlwaysDuplicate))
	for _, key := range c.Annotations.AlwaysDuplicate {
		set[key] = true
	}
	return classify.Config{AlwaysDuplicate: set}
}
