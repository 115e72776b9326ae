package tasks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/weft-dev/weft/internal/build"
	"github.com/weft-dev/weft/internal/cache"
	"github.com/weft-dev/weft/internal/fileutil"
	"github.com/weft-dev/weft/internal/template"
)

const pageTemplate = `<!doctype html>
<html>
<head><title>{{title}}</title></head>
<body>
{{body}}
</body>
</html>`

// Link assembles the final page for one document from cached fragments and
// writes it under build/. It must run after the document's compile; linking
// a document that was never compiled is a hard error.
type Link struct {
	Doc       string
	SiteTitle string
}

// NewLink creates a link task for the named document.
func NewLink(doc string) *Link {
	return &Link{Doc: doc}
}

func (t *Link) Name() string {
	return "link " + t.Doc
}

// Outdated compares the built page's mtime against the newest cache change
// among the document's recorded inputs and its doc dependencies.
func (t *Link) Outdated(ctx *build.Context) (bool, error) {
	newest, err := t.newestInput(ctx)
	if err != nil {
		return false, err
	}
	buildTime, ok := ctx.BuildTimestamp(t.Doc + ".html")
	return build.OutdatedTimestamp(newest, buildTime, ok), nil
}

func (t *Link) newestInput(ctx *build.Context) (time.Time, error) {
	var newest time.Time
	for _, kind := range []string{cache.KindDoc, cache.KindTitle, cache.KindToctree} {
		_, changed, err := ctx.Cache.GetInput(kind, t.Doc)
		if err != nil {
			return time.Time{}, err
		}
		if changed.After(newest) {
			newest = changed
		}
	}
	deps, changed, err := ctx.Cache.Dependencies(t.Doc)
	if err != nil {
		return time.Time{}, err
	}
	if changed.After(newest) {
		newest = changed
	}
	for _, dep := range deps {
		if dep.Kind != cache.KindDoc {
			continue
		}
		_, depChanged, err := ctx.Cache.GetInput(cache.KindTitle, dep.Name)
		if err != nil {
			// A referenced document that never compiled has no entries
			// yet; its own link task covers it once it does.
			if errors.Is(err, cache.ErrKeyNotFound) {
				continue
			}
			return time.Time{}, err
		}
		if depChanged.After(newest) {
			newest = depChanged
		}
	}
	return newest, nil
}

// Run renders the page template around the cached fragments and writes the
// file only when its content changed.
func (t *Link) Run(ctx *build.Context) error {
	title, err := ctx.Title(t.Doc)
	if err != nil {
		return err
	}
	html, err := ctx.Doc(t.Doc)
	if err != nil {
		return err
	}
	toctree, err := ctx.Toctree(t.Doc)
	if err != nil {
		return err
	}

	body := make([]string, 0, len(html)+1)
	if nav := navBlock(toctree); nav != "" {
		body = append(body, nav)
	}
	body = append(body, html...)

	page, err := template.Render(pageTemplate, map[string]any{
		"title": t.pageTitle(title),
		"body":  strings.Join(body, "\n"),
	})
	if err != nil {
		return fmt.Errorf("failed to render page for %s: %w", t.Doc, err)
	}

	if err := os.MkdirAll(ctx.BuildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}
	path := filepath.Join(ctx.BuildDir, t.Doc+".html")
	if err := fileutil.WriteIfChanged(path, []byte(fileutil.EnsureTrailingNewline(page))); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (t *Link) pageTitle(title string) string {
	if t.SiteTitle == "" {
		return title
	}
	return title + " - " + t.SiteTitle
}

func navBlock(toctree []string) string {
	if len(toctree) == 0 {
		return ""
	}
	links := make([]string, 0, len(toctree))
	for _, slug := range toctree {
		links = append(links, fmt.Sprintf("<a href=\"#%s\">%s</a>", slug, slug))
	}
	return "<nav>" + strings.Join(links, " ") + "</nav>"
}
