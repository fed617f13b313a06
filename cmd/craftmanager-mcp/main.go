package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	mcpadapter "craftmanager/internal/adapters/mcp"
	"craftmanager/internal/config"
	"craftmanager/internal/logging"
	"craftmanager/internal/wire"
)

func main() {
	flags := pflag.NewFlagSet("craftmanager-mcp", pflag.ExitOnError)
	configFile := flags.String("config", "", "config file (default $XDG_CONFIG_HOME/craftmanager/config.toml)")
	flags.String("save-dir", "", "KSP save directory to catalog")
	flags.String("game-data-dir", "", "KSP GameData directory")
	flags.String("db-path", "", "tag database path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(config.LoadOptions{ConfigFile: *configFile, Flags: flags})
	if err != nil {
		log.Fatal("craftmanager-mcp: loading config", "error", err)
	}

	// stdout carries the protocol
	logger := logging.New(os.Stderr, cfg.LogLevel)

	env, err := wire.Open(cfg, logger, wire.Options{})
	if err != nil {
		logger.Fatal("craftmanager-mcp: startup failed", "error", err)
	}
	defer env.Close()

	mcpServer := server.NewMCPServer(
		"craftmanager-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	session := mcpadapter.NewSession(env.Catalog)
	mcpadapter.RegisterReadTools(mcpServer, session)
	mcpadapter.RegisterWriteTools(mcpServer, session)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("craftmanager-mcp: serve failed", "error", err)
		env.Close()
		os.Exit(1)
	}
}
