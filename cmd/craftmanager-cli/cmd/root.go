package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"craftmanager/internal/application/commands"
	"craftmanager/internal/config"
	"craftmanager/internal/logging"
	"craftmanager/internal/wire"
)

var (
	configFile string
	noTags     bool
	env        *wire.Env
)

var rootCmd = &cobra.Command{
	Use:   "craftmanager-cli",
	Short: "CLI for browsing the craft of a KSP save",
	Long: `craftmanager-cli lists the vessel and subassembly files of a Kerbal Space
Program save together with their part count, stage count, mass and cost.

Craft can be filtered by name, construction type and tags, sorted, and
tagged. Craft files themselves are never modified.

Settings come from flags, CRAFTMANAGER_* environment variables and
$XDG_CONFIG_HOME/craftmanager/config.toml, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load(config.LoadOptions{
			ConfigFile: configFile,
			Flags:      cmd.Root().PersistentFlags(),
		})
		if err != nil {
			return err
		}

		logger := logging.New(os.Stderr, cfg.LogLevel)
		env, err = wire.Open(cfg, logger, wire.Options{NoTags: noTags})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if env == nil {
			return nil
		}
		return env.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if env != nil {
			env.Close()
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/craftmanager/config.toml)")
	flags.StringP("save-dir", "d", "", "KSP save directory to catalog")
	flags.String("save-name", "", "save name used to key tags (default: save directory name)")
	flags.String("game-data-dir", "", "KSP GameData directory (default: <save-dir>/../../GameData)")
	flags.String("persistent-file", "", "career save file used for research state")
	flags.String("db-path", "", "tag database path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&noTags, "no-tags", false, "do not open the tag database")
}

// loadCatalog scans the save directory, reporting unreadable files on stderr
func loadCatalog(ctx context.Context) error {
	report, err := commands.NewScanCommand(env.Catalog).Execute(ctx)
	if err != nil {
		return err
	}
	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", f.Path, f.Err)
	}
	return nil
}
