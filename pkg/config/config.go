package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

const (
	PathEnv     = "TEAMDEX_CONFIG"
	DefaultPath = "config.toml"

	envPrefix = "TEAMDEX_"
)

type Config struct {
	Discord struct {
		Token           string `toml:"token" env:"DISCORD_TOKEN"`
		ResourceGuildID string `toml:"resource_guild_id" env:"DISCORD_RESOURCE_GUILD"`
	} `toml:"discord"`
	Catalog struct {
		Source         Source `toml:"source" env:"SOURCE"`
		BaseURL        string `toml:"base_url" env:"POKEAPI_URL"`
		SpriteURL      string `toml:"sprite_url" env:"SPRITE_URL"`
		Limit          int    `toml:"limit" env:"CATALOG_LIMIT"`
		Workers        int    `toml:"workers" env:"CATALOG_WORKERS"`
		TimeoutSeconds int    `toml:"timeout_seconds" env:"CATALOG_TIMEOUT_SECONDS"`
		Language       string `toml:"language" env:"LANGUAGE"`
	} `toml:"catalog"`
	DB struct {
		Path string `toml:"path" env:"DATABASE_PATH"`
	} `toml:"database"`
	Storage struct {
		Path string `toml:"path" env:"STORAGE_PATH"`
	} `toml:"storage"`
	Commands struct {
		AutocompleteLimit int `toml:"autocomplete_limit" env:"AUTOCOMPLETE_LIMIT"`
		PageLimit         int `toml:"page_limit" env:"PAGE_LIMIT"`
	} `toml:"commands"`
}

var (
	ErrMissingToken    = errors.New("discord token is not set")
	ErrMissingDatabase = errors.New("database path is not set")
	ErrInvalidSource   = errors.New("unknown catalog source")
)

func Default() Config {
	var cfg Config
	cfg.Catalog.Source = SourceAPI
	cfg.Catalog.BaseURL = "https://pokeapi.co/api/v2"
	cfg.Catalog.SpriteURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master"
	cfg.Catalog.Limit = 500
	cfg.Catalog.Workers = 8
	cfg.Catalog.TimeoutSeconds = 10
	cfg.Catalog.Language = "en"
	cfg.Commands.AutocompleteLimit = 25
	cfg.Commands.PageLimit = 10

	return cfg
}

// Read loads .env when present, then the file named by TEAMDEX_CONFIG (or
// config.toml), then TEAMDEX_ prefixed environment variables.
func Read() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}

	path := os.Getenv(PathEnv)
	if path == "" {
		path = DefaultPath
	}

	return ReadFile(path)
}

// ReadFile is Read without the .env step. A missing file leaves the
// defaults in place.
func ReadFile(path string) (*Config, error) {
	cfg := Default()

	_, err := toml.DecodeFile(path, &cfg)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not decode config file %q: %w", path, err)
	}

	err = env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix})
	if err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Discord.Token == "" {
		return ErrMissingToken
	}
	if !cfg.Catalog.Source.IsASource() {
		return fmt.Errorf("%v: %w", cfg.Catalog.Source, ErrInvalidSource)
	}
	if cfg.Catalog.Source == SourceDatabase && cfg.DB.Path == "" {
		return ErrMissingDatabase
	}

	return nil
}

func (cfg Config) Timeout() time.Duration {
	return time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second
}

// Language falls back to English for an unparseable tag.
func (cfg Config) Language() language.Tag {
	tag, err := language.Parse(cfg.Catalog.Language)
	if err != nil {
		return language.English
	}

	return tag
}
