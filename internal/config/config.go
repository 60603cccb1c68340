package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lensforge/syntaxlens/internal/parser"
)

// Engine selects which parser family backs the registry.
const (
	EngineHeuristic  = "heuristic"
	EngineTreeSitter = "tree-sitter"
)

// ProjectConfig holds tool-level settings loaded from syntaxlens.yml.
type ProjectConfig struct {
	Languages   []string      `yaml:"languages,omitempty"`
	Engine      string        `yaml:"engine,omitempty"`
	ExcludeDirs []string      `yaml:"excludeDirs,omitempty"`
	Verbose     bool          `yaml:"verbose,omitempty"`
	Parser      parser.Config `yaml:"parser,omitempty"`
}

// Load attempts to read syntaxlens.yml or syntaxlens.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"syntaxlens.yml", "syntaxlens.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

func (c *ProjectConfig) validate() error {
	switch c.Engine {
	case "", EngineHeuristic, EngineTreeSitter:
		return nil
	}
	return fmt.Errorf("unknown engine %q", c.Engine)
}

// Excluded reports whether any path element matches an excluded
// directory name.
func (c *ProjectConfig) Excluded(path string) bool {
	for _, part := range splitPath(path) {
		for _, dir := range c.ExcludeDirs {
			if part == dir {
				return true
			}
		}
	}
	return false
}

func splitPath(path string) []string {
	var parts []string
	for path != "" {
		dir, file := filepath.Split(path)
		if file != "" {
			parts = append(parts, file)
		}
		path = filepath.Clean(dir)
		if path == "." || path == string(filepath.Separator) {
			break
		}
	}
	return parts
}
