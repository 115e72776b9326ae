package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/weft-dev/weft/internal/fileutil"
)

func resolveBaseDir(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return wd, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}
	if summary.Executed == 0 {
		fmt.Println("Everything up to date.")
		return nil
	}
	for _, name := range summary.Tasks {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("Executed %d tasks (%d scheduled) in %dms\n", summary.Executed, summary.Scheduled, summary.DurationMS)
	return nil
}
