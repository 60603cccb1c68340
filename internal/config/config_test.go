package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_MissingFileYieldsZeroConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, cfg.Languages)
	assert.Empty(t, cfg.Engine)
}

func TestLoad_ReadsYml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "syntaxlens.yml", `
languages:
  - go
  - python
engine: tree-sitter
excludeDirs:
  - node_modules
parser:
  sourceType: module
`)

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"go", "python"}, cfg.Languages)
	assert.Equal(t, EngineTreeSitter, cfg.Engine)
	assert.Equal(t, []string{"node_modules"}, cfg.ExcludeDirs)
	assert.Equal(t, "module", cfg.Parser.SourceType)
}

func TestLoad_YmlPreferredOverYaml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "syntaxlens.yml", "engine: heuristic\n")
	writeConfig(t, dir, "syntaxlens.yaml", "engine: tree-sitter\n")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, EngineHeuristic, cfg.Engine)
}

func TestLoad_RejectsUnknownEngine(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "syntaxlens.yml", "engine: psychic\n")

	_, err := Load(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "psychic")
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "syntaxlens.yml", "languages: [unclosed\n")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestExcluded(t *testing.T) {
	cfg := &ProjectConfig{ExcludeDirs: []string{"node_modules", "vendor"}}

	assert.True(t, cfg.Excluded("web/node_modules/lib/index.js"))
	assert.True(t, cfg.Excluded("vendor/pkg/mod.go"))
	assert.False(t, cfg.Excluded("src/app/main.go"))
}
