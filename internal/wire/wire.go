// Package wire assembles the catalog and its adapters from a Config.
package wire

import (
	"fmt"

	"github.com/charmbracelet/log"

	"craftmanager/internal/adapters/filesystem"
	"craftmanager/internal/adapters/gamedata"
	"craftmanager/internal/adapters/sqlite"
	"craftmanager/internal/application"
	"craftmanager/internal/config"
	"craftmanager/internal/ports"
)

// Env holds the wired components shared by the binaries
type Env struct {
	Config   *config.Config
	Logger   *log.Logger
	Resolver *application.PartResolver
	Catalog  *application.Catalog
	Tags     *sqlite.TagStore
}

// Options tweaks what Open wires
type Options struct {
	// NoTags skips opening the tag database
	NoTags bool
}

// Open validates cfg and builds the catalog. Parts are resolved lazily on
// the first build. Call Close when done.
func Open(cfg *config.Config, logger *log.Logger, opts Options) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := &Env{Config: cfg, Logger: logger}

	parts := gamedata.NewCatalog(cfg.GameDataDir, cfg.PersistentFile, logger)
	env.Resolver = application.NewPartResolver(parts, logger)
	builder := application.NewCraftBuilder(env.Resolver, cfg.SaveName)

	// A typed nil *TagStore must not reach the catalog as a non-nil interface
	var tags ports.TagStore
	if !opts.NoTags {
		env.Tags = sqlite.NewTagStore()
		if err := env.Tags.Open(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("opening tag database: %w", err)
		}
		tags = env.Tags
	}

	env.Catalog = application.NewCatalog(filesystem.NewSource(cfg.SaveDir), builder, tags, logger)

	logger.Debug("catalog wired",
		"save", cfg.SaveName,
		"save_dir", cfg.SaveDir,
		"game_data", cfg.GameDataDir,
		"tags", !opts.NoTags)
	return env, nil
}

// Close releases the tag database
func (e *Env) Close() error {
	if e.Tags == nil {
		return nil
	}
	return e.Tags.Close()
}
