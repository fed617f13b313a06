package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"craftmanager/internal/application"
	"craftmanager/internal/application/commands"
	"craftmanager/internal/domain"
)

var listInput application.CriteriaInput

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List craft, optionally filtered and sorted",
	Long: `List the craft of the save.

Filters combine: a craft is listed when its name contains --search, its
construction type is one of --type, and its tags match --tag under
--tag-mode (any or all). Sorting by anything but name is descending;
--reverse flips it.

Examples:
  craftmanager-cli list
  craftmanager-cli list --type VAB --type SPH --sort mass
  craftmanager-cli list --tag crewed --tag mun --tag-mode all
  craftmanager-cli list -s lander --sort parts --reverse`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		crafts, err := commands.NewListCommand(env.Catalog, listInput).Execute(ctx)
		if err != nil {
			return err
		}

		if len(crafts) == 0 {
			fmt.Println("No craft found.")
			return nil
		}

		fmt.Printf("%-4s %-32s %6s %6s %10s %12s  %s\n", "TYPE", "NAME", "PARTS", "STAGES", "MASS", "COST", "FLAGS")
		for _, c := range crafts {
			fmt.Printf("%-4s %-32s %6d %6d %9.2ft %12.0f  %s\n",
				shortType(c.Type), clip(c.DisplayName(), 32), c.PartCount, c.StageCount,
				c.Mass.Total, c.Cost.Total, flags(c))
		}
		return nil
	},
}

func shortType(t domain.ConstructionType) string {
	if t == domain.ConstructionSubassembly {
		return "SUB"
	}
	return t.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

func flags(c *domain.Craft) string {
	var f []string
	if c.MissingParts {
		f = append(f, "missing")
	}
	if c.LockedParts {
		f = append(f, "locked")
	}
	return strings.Join(f, ",")
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listInput.Search, "search", "s", "", "only craft whose name contains this text")
	f.StringSliceVarP(&listInput.Types, "type", "t", nil, "construction types: VAB, SPH, Subassemblies")
	f.StringSliceVar(&listInput.Tags, "tag", nil, "tags to filter by")
	f.StringVar(&listInput.TagMode, "tag-mode", "any", "any or all")
	f.StringVar(&listInput.Sort, "sort", "", "name, part_count, mass, created, updated, stage_count")
	f.BoolVarP(&listInput.Reverse, "reverse", "r", false, "reverse the sort order")
	rootCmd.AddCommand(listCmd)
}
