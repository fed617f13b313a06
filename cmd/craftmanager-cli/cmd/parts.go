package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"craftmanager/internal/domain"
)

var partsCmd = &cobra.Command{
	Use:   "parts <part>...",
	Short: "Look up parts in the installed part catalog",
	Long: `Resolve part names the way craft files reference them and print their
cost, mass, resources and research state.

Examples:
  craftmanager-cli parts mk1pod.v2 fuelTank`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := env.Resolver.Initialize(); err != nil {
			return err
		}

		for _, name := range args {
			info, ok := env.Resolver.Resolve(domain.CanonicalPartName(name))
			if !ok {
				// craft references carry an _<id> suffix
				info, ok = env.Resolver.Resolve(domain.PartName(name))
			}
			if !ok {
				fmt.Printf("%s: not installed\n", name)
				continue
			}

			state := "researched"
			if !env.Resolver.Catalog().Unlocked(info) {
				state = "locked (" + info.TechRequired + ")"
			}
			fmt.Printf("%s: %s\n", info.Name, info.Title)
			fmt.Printf("  cost %.0f, dry mass %.3ft, %s\n", info.Cost, info.Mass, state)
			for _, res := range slices.Sorted(maps.Keys(info.Resources)) {
				fmt.Printf("  %s: %g\n", res, info.Resources[res])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(partsCmd)
}
