package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"craftmanager/internal/adapters/desktop"
	"craftmanager/internal/adapters/pager"
	"craftmanager/internal/adapters/tui"
	"craftmanager/internal/config"
	"craftmanager/internal/logging"
	"craftmanager/internal/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("craftmanager", pflag.ExitOnError)
	configFile := flags.String("config", "", "config file (default $XDG_CONFIG_HOME/craftmanager/config.toml)")
	flags.String("save-dir", "", "KSP save directory to catalog")
	flags.String("game-data-dir", "", "KSP GameData directory")
	flags.String("persistent-file", "", "career save file used for research state")
	flags.String("db-path", "", "tag database path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "log file; the terminal belongs to the UI")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(config.LoadOptions{ConfigFile: *configFile, Flags: flags})
	if err != nil {
		return err
	}

	logger, logFile, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	env, err := wire.Open(cfg, logger, wire.Options{})
	if err != nil {
		return err
	}
	defer env.Close()

	app := tui.NewApp(env.Catalog, pager.NewViewer(), desktop.NewRevealer(cfg.SaveDir))

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "error", err)
		return err
	}
	return nil
}
