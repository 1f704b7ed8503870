package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	SourceStatic   = "static"
	SourceMangaDex = "mangadex"

	ModePaged    = "paged"
	ModeInfinite = "infinite"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Source   string         `mapstructure:"source"`
	MangaDex MangaDexConfig `mapstructure:"mangadex"`
	Reader   ReaderConfig   `mapstructure:"reader"`
	Log      LogConfig      `mapstructure:"log"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type MangaDexConfig struct {
	URL      string `mapstructure:"url"`
	Language string `mapstructure:"language"`
}

type ReaderConfig struct {
	Mode         string        `mapstructure:"mode"`
	Threshold    float64       `mapstructure:"threshold"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// HomeDir is where the database and log live unless configured otherwise.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mangaverse"
	}
	return filepath.Join(home, ".mangaverse")
}

// SetDefaults registers every key so env overrides resolve even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", data.DriverDuckDB)
	v.SetDefault("storage.path", filepath.Join(HomeDir(), "mangaverse.db"))
	v.SetDefault("source", SourceStatic)
	v.SetDefault("mangadex.url", "https://api.mangadex.org")
	v.SetDefault("mangadex.language", "en")
	v.SetDefault("reader.mode", ModePaged)
	v.SetDefault("reader.threshold", 0.5)
	v.SetDefault("reader.fetch_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(HomeDir(), "mangaverse.log"))
}

// Load reads the configuration from v (config file, env vars, bound flags).
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case data.DriverDuckDB, data.DriverSQLite:
		if c.Storage.Path == "" {
			return errors.Wrap(ErrInvalid, "storage.path is required")
		}
	case data.DriverMemory:
	default:
		return errors.Wrapf(ErrInvalid, "storage.driver %q (must be 'duckdb', 'sqlite', or 'memory')", c.Storage.Driver)
	}

	switch c.Source {
	case SourceStatic:
	case SourceMangaDex:
		if c.MangaDex.URL == "" {
			return errors.Wrap(ErrInvalid, "mangadex.url is required")
		}
	default:
		return errors.Wrapf(ErrInvalid, "source %q (must be 'static' or 'mangadex')", c.Source)
	}

	if c.Reader.Mode != ModePaged && c.Reader.Mode != ModeInfinite {
		return errors.Wrapf(ErrInvalid, "reader.mode %q (must be 'paged' or 'infinite')", c.Reader.Mode)
	}
	if c.Reader.Threshold <= 0 || c.Reader.Threshold > 1 {
		return errors.Wrapf(ErrInvalid, "reader.threshold %v (must be in (0, 1])", c.Reader.Threshold)
	}
	if c.Reader.FetchTimeout <= 0 {
		return errors.Wrap(ErrInvalid, "reader.fetch_timeout must be positive")
	}
	return nil
}
