// Package cli wires the weft commands. Commands are thin drivers: they load
// the project config, construct one build context, populate the initial task
// lists, and report what happened.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weft",
		Short: "Incremental document site builder",
		Long: `Weft compiles a directory of document sources into HTML pages,
caching every derived artifact (rendered fragments, titles, navigation
entries, dependency edges) so unchanged documents are never reprocessed.

A project is a directory with a weft.hcl file and src/, cache/ and build/
subdirectories. Delete cache/ at any time to force a full rebuild.`,
	}

	buildCmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Compile and link stale documents",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunBuild,
	}
	buildCmd.Flags().Bool("json", false, "Print machine-readable run summary")
	buildCmd.Flags().BoolP("verbose", "v", false, "Log per-task staleness decisions")

	statusCmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Show which documents a build would recompile or relink",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunStatus,
	}
	statusCmd.Flags().Bool("json", false, "Print machine-readable status output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("weft %s\n", version)
		},
	}

	rootCmd.AddCommand(buildCmd, statusCmd, versionCmd)
	return rootCmd
}
