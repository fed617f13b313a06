package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"craftmanager/internal/application/commands"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage craft tags",
	Long: `Add, remove and list the tags of craft.

Tags are stored outside the craft files, keyed by save, construction type
and craft name. Tags are lowercased.

Examples:
  craftmanager-cli tags add "Kerbal X" lifter crewed
  craftmanager-cli tags rm "Kerbal X" crewed
  craftmanager-cli tags ls "Kerbal X"
  craftmanager-cli tags ls`,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <craft> <tag>...",
	Short: "Add tags to a craft",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeTags(args[0], args[1:], false)
	},
}

var tagsRmCmd = &cobra.Command{
	Use:     "rm <craft> <tag>...",
	Aliases: []string{"remove"},
	Short:   "Remove tags from a craft",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeTags(args[0], args[1:], true)
	},
}

var tagsLsCmd = &cobra.Command{
	Use:   "ls [craft]",
	Short: "List the tags of a craft, or every tag in use",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store := env.Catalog.TagStore()
		if store == nil {
			return fmt.Errorf("tagging is disabled")
		}

		if len(args) == 0 {
			tags, err := store.AllTags(ctx)
			if err != nil {
				return err
			}
			for _, t := range tags {
				fmt.Println(t)
			}
			return nil
		}

		if err := loadCatalog(ctx); err != nil {
			return err
		}
		detail, err := commands.NewShowCommand(env.Catalog, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		for _, t := range detail.Tags {
			fmt.Println(t)
		}
		return nil
	},
}

func changeTags(ref string, tags []string, remove bool) error {
	ctx := context.Background()
	if err := loadCatalog(ctx); err != nil {
		return err
	}

	result, err := commands.NewTagCommand(env.Catalog, ref, tags, remove).Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	if len(result.Tags) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(result.Tags, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRmCmd)
	tagsCmd.AddCommand(tagsLsCmd)
}
