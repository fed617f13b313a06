package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"craftmanager/internal/application/commands"
)

var prune bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the save and report what was found",
	Long: `Scan every .craft file under the save directory and print how many were
loaded and which could not be parsed.

With --prune, tags of craft that no longer exist in this save are removed.

Examples:
  craftmanager-cli scan -d ~/KSP/saves/career
  craftmanager-cli scan --prune`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		report, err := commands.NewScanCommand(env.Catalog).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %s\n", env.Catalog.Root())
		fmt.Printf("  files:   %d\n", report.FilesScanned)
		fmt.Printf("  loaded:  %d\n", report.CraftLoaded)
		fmt.Printf("  failed:  %d\n", report.Failed())
		fmt.Printf("  parts:   %d known\n", env.Resolver.Len())
		fmt.Printf("  elapsed: %s\n", report.Duration.Round(time.Millisecond))
		for _, f := range report.Failures {
			fmt.Printf("    %s: %v\n", f.Path, f.Err)
		}

		if prune {
			removed, err := commands.NewPruneTagsCommand(env.Catalog).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Pruned tags of %d missing craft\n", removed)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&prune, "prune", false, "remove tags of craft that no longer exist")
	rootCmd.AddCommand(scanCmd)
}
