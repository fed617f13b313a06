package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name
	AppName = "craftmanager"
	// EnvPrefix prefixes every environment override, e.g. CRAFTMANAGER_SAVE_DIR
	EnvPrefix = "CRAFTMANAGER"
	// ConfigFileName is the config file name without extension
	ConfigFileName = "config"
	// ConfigFileType is the config file format
	ConfigFileType = "toml"
	// PersistentFileName is the career save file inside a save directory
	PersistentFileName = "persistent.sfs"
)

// Config holds the resolved settings
type Config struct {
	SaveDir        string `mapstructure:"save_dir"`
	SaveName       string `mapstructure:"save_name"`
	GameDataDir    string `mapstructure:"game_data_dir"`
	PersistentFile string `mapstructure:"persistent_file"`
	DBPath         string `mapstructure:"db_path"`
	LogLevel       string `mapstructure:"log_level"`
	LogFile        string `mapstructure:"log_file"`
}

// keys lists every setting. Flags named like a key with dashes
// (save-dir for save_dir) are bound automatically.
var keys = []string{
	"save_dir",
	"save_name",
	"game_data_dir",
	"persistent_file",
	"db_path",
	"log_level",
	"log_file",
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile, when set, is read instead of the default config file
	ConfigFile string
	// ConfigDir overrides the config directory (default: ConfigDir())
	ConfigDir string
	// Flags whose names match a setting override every other source
	Flags *pflag.FlagSet
}

// ConfigDir returns $XDG_CONFIG_HOME/craftmanager (default ~/.config/craftmanager)
func ConfigDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// DataDir returns $XDG_DATA_HOME/craftmanager (default ~/.local/share/craftmanager)
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// Load resolves configuration from defaults, the config file, environment
// variables and flags, lowest to highest precedence.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	for _, key := range keys {
		v.SetDefault(key, "")
	}
	v.SetDefault("log_level", "info")

	v.SetConfigType(ConfigFileType)
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		dir := opts.ConfigDir
		if dir == "" {
			var err error
			if dir, err = ConfigDir(); err != nil {
				return nil, err
			}
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.Flags != nil {
		for _, key := range keys {
			if f := opts.Flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults expands ~ and derives unset paths from the save directory
func (c *Config) applyDefaults() {
	c.SaveDir = ExpandHome(c.SaveDir)
	c.GameDataDir = ExpandHome(c.GameDataDir)
	c.PersistentFile = ExpandHome(c.PersistentFile)
	c.DBPath = ExpandHome(c.DBPath)
	c.LogFile = ExpandHome(c.LogFile)

	if c.SaveDir != "" {
		c.SaveDir = filepath.Clean(c.SaveDir)
		if c.SaveName == "" {
			c.SaveName = filepath.Base(c.SaveDir)
		}
		if c.PersistentFile == "" {
			c.PersistentFile = filepath.Join(c.SaveDir, PersistentFileName)
		}
		// <KSP>/saves/<save> -> <KSP>/GameData
		if c.GameDataDir == "" {
			c.GameDataDir = filepath.Join(c.SaveDir, "..", "..", "GameData")
		}
	}

	if c.DBPath == "" {
		c.DBPath = filepath.Join(DataDir(), "tags.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(DataDir(), AppName+".log")
	}
}

// Validate checks that the settings needed to scan are present
func (c *Config) Validate() error {
	if c.SaveDir == "" {
		return fmt.Errorf("save directory not set: use --save-dir, %s_SAVE_DIR or save_dir in %s.%s",
			EnvPrefix, ConfigFileName, ConfigFileType)
	}
	return nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
