package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weft-dev/weft/internal/build"
	"github.com/weft-dev/weft/internal/cache"
	"github.com/weft-dev/weft/internal/config"
	"github.com/weft-dev/weft/internal/fileutil"
	"github.com/weft-dev/weft/internal/tasks"
)

// DocStatus reports the staleness of one configured document.
type DocStatus struct {
	Name    string `json:"name"`
	Compile bool   `json:"compile"`
	Link    bool   `json:"link"`
}

// RunStatus evaluates staleness for every configured document without
// executing anything. Documents discovered through toctree includes are only
// known to the cache, so they are not listed here.
func RunStatus(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveBaseDir(args)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	cfg, err := config.Load(rootPath)
	if err != nil {
		return err
	}
	ctx, err := build.NewContext(rootPath, cfg.CacheFile())
	if err != nil {
		return err
	}
	vars := cfg.TemplateVars()

	statuses := make([]DocStatus, 0, len(cfg.Documents))
	stale := 0
	for _, doc := range cfg.Documents {
		compile, err := tasks.NewCompile(doc.Name, doc.Source, vars).Outdated(ctx)
		if err != nil {
			return err
		}
		link, err := tasks.NewLink(doc.Name).Outdated(ctx)
		if err != nil {
			// Never compiled means never linked either.
			if !errors.Is(err, cache.ErrKeyNotFound) {
				return err
			}
			link = true
		}
		statuses = append(statuses, DocStatus{Name: doc.Name, Compile: compile, Link: link})
		if compile || link {
			stale++
		}
	}

	if asJSON {
		return fileutil.PrintJSON(statuses)
	}
	for _, status := range statuses {
		fmt.Printf("%-24s compile:%-5v link:%v\n", status.Name, status.Compile, status.Link)
	}
	if stale == 0 {
		fmt.Println("Everything up to date.")
	}
	return nil
}
