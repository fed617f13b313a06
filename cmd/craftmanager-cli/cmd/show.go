package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"craftmanager/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <craft>",
	Short: "Show the details of one craft",
	Long: `Show the metrics, flags and tags of a craft given by path, file name or
ship name (case-insensitive).

Examples:
  craftmanager-cli show "Kerbal X"
  craftmanager-cli show ~/KSP/saves/career/Ships/VAB/Kerbal\ X.craft`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		detail, err := commands.NewShowCommand(env.Catalog, args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		c := detail.Craft
		fmt.Printf("%s (%s)\n", c.DisplayName(), c.Type.Label())
		if c.Description != "" {
			for _, line := range strings.Split(c.Description, "\n") {
				fmt.Printf("  %s\n", line)
			}
		}
		fmt.Printf("path:     %s\n", c.Path)
		if c.Version != "" {
			fmt.Printf("version:  %s\n", c.Version)
		}
		fmt.Printf("parts:    %d\n", c.PartCount)
		fmt.Printf("stages:   %d\n", c.StageCount)
		fmt.Printf("mass:     %.3ft (dry %.3ft, fuel %.3ft)\n", c.Mass.Total, c.Mass.Dry, c.Mass.Fuel)
		fmt.Printf("cost:     %.0f (dry %.0f, fuel %.0f)\n", c.Cost.Total, c.Cost.Dry, c.Cost.Fuel)
		fmt.Printf("created:  %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("updated:  %s\n", c.UpdatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("checksum: %s\n", c.Checksum)
		if c.MissingParts {
			fmt.Println("warning:  uses parts that are not installed")
		}
		if c.LockedParts {
			fmt.Println("warning:  uses parts not yet researched")
		}
		if len(detail.Tags) > 0 {
			fmt.Printf("tags:     %s\n", strings.Join(detail.Tags, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
