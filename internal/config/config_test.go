package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-dev/weft/internal/cache"
)

const sampleConfig = `
site {
  title = "Weft Docs"
}

build {
  cache_file = "main.cache"
}

vars = {
  author = "jane"
}

document "index" {}

document "guide" {
  source = "guide/main.txt"
}
`

func TestParseProjectFile(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig), FileName)
	require.NoError(t, err)

	assert.Equal(t, "Weft Docs", cfg.Site.Title)
	assert.Equal(t, "main.cache", cfg.CacheFile())
	assert.Equal(t, map[string]string{"author": "jane"}, cfg.Vars)

	require.Len(t, cfg.Documents, 2)
	assert.Equal(t, "index", cfg.Documents[0].Name)
	assert.Empty(t, cfg.Documents[0].Source)
	assert.Equal(t, "guide", cfg.Documents[1].Name)
	assert.Equal(t, "guide/main.txt", cfg.Documents[1].Source)
}

func TestCacheFileDefault(t *testing.T) {
	cfg, err := Parse([]byte("site {\n  title = \"T\"\n}\n"), FileName)
	require.NoError(t, err)
	assert.Equal(t, cache.DefaultFileName, cfg.CacheFile())
}

func TestTemplateVarsIncludeSiteTitle(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig), FileName)
	require.NoError(t, err)

	vars := cfg.TemplateVars()
	assert.Equal(t, "Weft Docs", vars["site_title"])
	assert.Equal(t, "jane", vars["author"])
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("site {"), FileName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)
}

func TestLoadMissingProjectFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, FileName), []byte(sampleConfig), 0644))

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, "Weft Docs", cfg.Site.Title)
}
