// Package config loads blockfall settings from defaults, an optional YAML file, a .env
// file and BLOCKFALL_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/plus3/blockfall/tetris"
)

const EnvPrefix = "BLOCKFALL"

type Board struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Spawn struct {
	// Column is the spawn column; unset centers new pieces.
	Column *int `mapstructure:"column"`
	Jitter int  `mapstructure:"jitter"`
}

type Timing struct {
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	Decay           float64       `mapstructure:"decay"`
	MinInterval     time.Duration `mapstructure:"min_interval"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Config is the full set of settings used by the binaries.
type Config struct {
	Board   Board  `mapstructure:"board"`
	Spawn   Spawn  `mapstructure:"spawn"`
	Timing  Timing `mapstructure:"timing"`
	Catalog string `mapstructure:"catalog"`
	// Seed of 0 picks a time based seed.
	Seed uint64 `mapstructure:"seed"`
	Log  Log    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board.width", 10)
	v.SetDefault("board.height", 20)
	v.SetDefault("spawn.jitter", 0)
	v.SetDefault("timing.initial_interval", time.Second)
	v.SetDefault("timing.decay", 0.999)
	v.SetDefault("timing.min_interval", 100*time.Millisecond)
	v.SetDefault("catalog", "standard")
	v.SetDefault("seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Default returns the built-in settings, ignoring files and the environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		panic("config: " + err.Error())
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// spawn.column has no default, so AutomaticEnv alone would never surface it
	_ = v.BindEnv("spawn.column", EnvPrefix+"_SPAWN_COLUMN")
	return v
}

// Load reads the configuration. An empty path searches for blockfall.yaml in the
// working directory and $HOME/.config/blockfall; a missing file there is not an error.
// An explicit path must exist.
func Load(path string) (Config, error) {
	_ = godotenv.Load(".env")

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("blockfall")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "blockfall"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Catalog = strings.ToLower(strings.TrimSpace(cfg.Catalog))
	return cfg, nil
}

// Validate reports the first setting that cannot produce a playable game.
func (c Config) Validate() error {
	switch {
	case c.Board.Width < 4 || c.Board.Height < 4:
		return fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Width, c.Board.Height)
	case c.Spawn.Column != nil && (*c.Spawn.Column < 0 || *c.Spawn.Column >= c.Board.Width):
		return fmt.Errorf("spawn.column %d outside board width %d", *c.Spawn.Column, c.Board.Width)
	case c.Spawn.Jitter < 0:
		return fmt.Errorf("spawn.jitter must not be negative, got %d", c.Spawn.Jitter)
	case c.Timing.Decay <= 0 || c.Timing.Decay > 1:
		return fmt.Errorf("timing.decay must be in (0, 1], got %g", c.Timing.Decay)
	case c.Timing.MinInterval <= 0:
		return fmt.Errorf("timing.min_interval must be positive, got %s", c.Timing.MinInterval)
	case c.Timing.MinInterval > c.Timing.InitialInterval:
		return fmt.Errorf("timing.min_interval %s exceeds timing.initial_interval %s",
			c.Timing.MinInterval, c.Timing.InitialInterval)
	}

	if _, err := tetris.CatalogByName(c.Catalog); err != nil {
		return err
	}
	return nil
}

// Rules converts the board, spawn and catalog settings into game rules.
func (c Config) Rules() (tetris.Rules, error) {
	catalog, err := tetris.CatalogByName(c.Catalog)
	if err != nil {
		return tetris.Rules{}, err
	}
	return tetris.Rules{
		Width:       c.Board.Width,
		Height:      c.Board.Height,
		Catalog:     catalog,
		SpawnColumn: c.Spawn.Column,
		SpawnJitter: c.Spawn.Jitter,
	}, nil
}
