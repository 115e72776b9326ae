// Package tasks provides the concrete compile and link task kinds that plug
// into the build context's staleness protocol.
package tasks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weft-dev/weft/internal/artifact"
	"github.com/weft-dev/weft/internal/build"
	"github.com/weft-dev/weft/internal/cache"
	"github.com/weft-dev/weft/internal/markup"
	"github.com/weft-dev/weft/internal/template"
)

// Compile renders and parses one document source and flushes the derived
// artifacts into the cache.
type Compile struct {
	Doc    string
	Source string         // relative to src/
	Vars   map[string]any // template variables from the project config
}

// NewCompile creates a compile task. An empty source defaults to
// "<doc>.txt".
func NewCompile(doc, source string, vars map[string]any) *Compile {
	if source == "" {
		source = doc + ".txt"
	}
	return &Compile{Doc: doc, Source: source, Vars: vars}
}

func (t *Compile) Name() string {
	return "compile " + t.Doc
}

// Outdated compares the source mtime against the cached doc entry's
// last-changed time. A document never compiled is always stale; a missing
// source file is an error since the task could not run anyway.
func (t *Compile) Outdated(ctx *build.Context) (bool, error) {
	srcTime, ok := ctx.SourceTimestamp(t.Source)
	if !ok {
		return false, fmt.Errorf("source file %s not found", t.Source)
	}
	_, cachedAt, err := ctx.Cache.GetInput(cache.KindDoc, t.Doc)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return true, nil
		}
		return false, err
	}
	return build.OutdatedTimestamp(srcTime, cachedAt, true), nil
}

// Run reads the source, renders template variables, parses the markup, and
// flushes a fresh artifact record for the document.
func (t *Compile) Run(ctx *build.Context) error {
	raw, err := os.ReadFile(filepath.Join(ctx.SrcDir, t.Source))
	if err != nil {
		return fmt.Errorf("failed to read source %s: %w", t.Source, err)
	}
	rendered, err := template.Render(string(raw), t.Vars)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", t.Source, err)
	}
	doc := markup.Parse(rendered)

	rec := artifact.New(t.Doc)
	rec.Title = doc.Title()
	rec.AddDependency(cache.KindSrc, t.Source)

	for _, node := range doc.Iter(0) {
		switch {
		case node.HeaderLevel() > 0:
			level := node.HeaderLevel()
			rec.AddHTML(fmt.Sprintf("<h%d id=%q>%s</h%d>", level, node.Slug(), node.Data, level))
			rec.AddToctree(node.Slug())
		case node.Name == "p":
			rec.AddHTML("<p>" + node.Data + "</p>")
		case node.Name == "toctree":
			for _, ref := range node.Children {
				t.include(ctx, rec, ref.Data)
			}
		}
	}
	return rec.Flush(ctx.Cache)
}

// include records a dependency on a referenced document and schedules its
// compile and link. Re-scheduling an already fresh document skips at
// execution time, which also terminates include cycles.
func (t *Compile) include(ctx *build.Context, rec *artifact.Record, name string) {
	rec.AddDependency(cache.KindDoc, name)
	rec.AddHTML(fmt.Sprintf("<a href=%q>%s</a>", name+".html", name))
	ctx.AddCompileTask(NewCompile(name, "", t.Vars))
	ctx.AddLinkTask(NewLink(name))
}
