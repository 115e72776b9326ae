// Package config loads the weft.hcl project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/weft-dev/weft/internal/cache"
)

// FileName is the project file weft looks for at the base directory root.
const FileName = "weft.hcl"

// Config is the decoded project file.
type Config struct {
	Site      Site              `hcl:"site,block"`
	Build     *Build            `hcl:"build,block"`
	Documents []Document        `hcl:"document,block"`
	Vars      map[string]string `hcl:"vars,optional"`
}

// Site holds presentation settings shared by every page.
type Site struct {
	Title string `hcl:"title"`
}

// Build holds engine settings.
type Build struct {
	CacheFile string `hcl:"cache_file,optional"`
}

// Document declares one root document to compile and link.
type Document struct {
	Name   string `hcl:"name,label"`
	Source string `hcl:"source,optional"`
}

// Load reads and decodes the project file under baseDir.
func Load(baseDir string) (*Config, error) {
	path := filepath.Join(baseDir, FileName)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes project file bytes; filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}
	return &cfg, nil
}

// CacheFile returns the configured cache file name or the engine default.
func (c *Config) CacheFile() string {
	if c.Build != nil && c.Build.CacheFile != "" {
		return c.Build.CacheFile
	}
	return cache.DefaultFileName
}

// TemplateVars returns the configured vars plus built-in site values.
func (c *Config) TemplateVars() map[string]any {
	vars := make(map[string]any, len(c.Vars)+1)
	for k, v := range c.Vars {
		vars[k] = v
	}
	vars["site_title"] = c.Site.Title
	return vars
}
