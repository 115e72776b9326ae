package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/weft-dev/weft/internal/build"
	"github.com/weft-dev/weft/internal/config"
	"github.com/weft-dev/weft/internal/tasks"
)

// RunSummary is the machine-readable result of one build invocation.
type RunSummary struct {
	Mode       string   `json:"mode"`
	RootPath   string   `json:"root_path"`
	Scheduled  int      `json:"scheduled"`
	Executed   int      `json:"executed"`
	Tasks      []string `json:"tasks,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

func RunBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	rootPath, err := resolveBaseDir(args)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to read --verbose flag: %w", err)
	}

	cfg, err := config.Load(rootPath)
	if err != nil {
		return err
	}

	ctx, err := build.NewContext(rootPath, cfg.CacheFile())
	if err != nil {
		return err
	}
	ctx.Logger = newLogger(verbose)

	scheduled := scheduleTasks(ctx, cfg)

	runErr := ctx.RunBuild()
	// Keep the cache entries of the tasks that completed even when a later
	// task failed; the next run picks up from there.
	if err := ctx.Cache.Save(); err != nil {
		if runErr != nil {
			return fmt.Errorf("%w (cache save also failed: %v)", runErr, err)
		}
		return fmt.Errorf("failed to save cache: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	names := make([]string, 0, len(ctx.Executed()))
	for _, task := range ctx.Executed() {
		names = append(names, task.Name())
	}
	return PrintRunSummary(RunSummary{
		Mode:       "build",
		RootPath:   rootPath,
		Scheduled:  scheduled,
		Executed:   len(names),
		Tasks:      names,
		DurationMS: time.Since(start).Milliseconds(),
	}, asJSON)
}

func scheduleTasks(ctx *build.Context, cfg *config.Config) int {
	vars := cfg.TemplateVars()
	for _, doc := range cfg.Documents {
		ctx.AddCompileTask(tasks.NewCompile(doc.Name, doc.Source, vars))
		link := tasks.NewLink(doc.Name)
		link.SiteTitle = cfg.Site.Title
		ctx.AddLinkTask(link)
	}
	return len(cfg.Documents) * 2
}
