// Package config loads server configuration from defaults, an optional YAML
// file and WANDERLIST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Identity  IdentityConfig  `yaml:"identity"`
	AI        AIConfig        `yaml:"ai"`
	Weather   WeatherConfig   `yaml:"weather"`
	Currency  CurrencyConfig  `yaml:"currency"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

// DBConfig points at the SQLite file. An empty path runs without a document
// store; every tool then reports the store as unavailable.
type DBConfig struct {
	Path string `yaml:"path"`
}

type StoreConfig struct {
	// PollInterval is how often other processes' writes are picked up.
	PollInterval time.Duration `yaml:"poll_interval"`
	// ReadyTimeout bounds the wait for the first snapshot at startup.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// IdentityConfig selects where the device id is kept: a YAML file local to the
// device, or the database settings table. The settings table lives in the
// shared database, so every process on it reports the same id.
type IdentityConfig struct {
	Store string `yaml:"store"` // "file" or "sqlite"
	Path  string `yaml:"path"`
}

type AIConfig struct {
	Provider string `yaml:"provider"` // "gemini" or "openai"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

type WeatherConfig struct {
	Enabled      bool          `yaml:"enabled"`
	GeocodingURL string        `yaml:"geocoding_url"`
	ForecastURL  string        `yaml:"forecast_url"`
	Language     string        `yaml:"language"`
	Timeout      time.Duration `yaml:"timeout"`
}

type CurrencyConfig struct {
	Reporting string  `yaml:"reporting"`
	Foreign   string  `yaml:"foreign"`
	Rate      float64 `yaml:"rate"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		DB: DBConfig{
			Path: "wanderlist.db",
		},
		Store: StoreConfig{
			PollInterval: time.Second,
			ReadyTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Identity: IdentityConfig{
			Store: "file",
			Path:  "wanderlist-device.yaml",
		},
		AI: AIConfig{
			Provider: "gemini",
		},
		Weather: WeatherConfig{
			Enabled:  true,
			Language: "en",
			Timeout:  10 * time.Second,
		},
		Currency: CurrencyConfig{
			Reporting: "TWD",
			Foreign:   "CNY",
			Rate:      4.5,
		},
	}
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("WANDERLIST_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q: want stdio or http", c.Transport.Mode)
	}
	switch c.Identity.Store {
	case "sqlite", "file":
	default:
		return fmt.Errorf("invalid identity store %q: want sqlite or file", c.Identity.Store)
	}
	switch strings.ToLower(c.AI.Provider) {
	case "gemini", "openai":
	default:
		return fmt.Errorf("invalid ai provider %q: want gemini or openai", c.AI.Provider)
	}
	if c.Currency.Rate <= 0 {
		return fmt.Errorf("invalid currency rate %v: must be positive", c.Currency.Rate)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "WANDERLIST_SERVER_HOST")
	if err := setInt(&cfg.Server.Port, "WANDERLIST_SERVER_PORT"); err != nil {
		return err
	}
	setString(&cfg.Transport.Mode, "WANDERLIST_TRANSPORT")
	if path, ok := os.LookupEnv("WANDERLIST_DB_PATH"); ok {
		cfg.DB.Path = path
	}
	if err := setDuration(&cfg.Store.PollInterval, "WANDERLIST_STORE_POLL_INTERVAL"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Store.ReadyTimeout, "WANDERLIST_STORE_READY_TIMEOUT"); err != nil {
		return err
	}
	setString(&cfg.Log.Level, "WANDERLIST_LOG_LEVEL")
	setString(&cfg.Log.Path, "WANDERLIST_LOG_PATH")
	setString(&cfg.Identity.Store, "WANDERLIST_IDENTITY_STORE")
	setString(&cfg.Identity.Path, "WANDERLIST_IDENTITY_PATH")

	setString(&cfg.AI.Provider, "WANDERLIST_AI_PROVIDER")
	setString(&cfg.AI.APIKey, "WANDERLIST_AI_API_KEY")
	setString(&cfg.AI.Model, "WANDERLIST_AI_MODEL")
	setString(&cfg.AI.BaseURL, "WANDERLIST_AI_BASE_URL")
	if cfg.AI.APIKey == "" {
		// Fall back to the providers' own variables.
		switch strings.ToLower(cfg.AI.Provider) {
		case "openai":
			setString(&cfg.AI.APIKey, "OPENAI_API_KEY")
		default:
			setString(&cfg.AI.APIKey, "GEMINI_API_KEY")
		}
	}

	if err := setBool(&cfg.Weather.Enabled, "WANDERLIST_WEATHER_ENABLED"); err != nil {
		return err
	}
	setString(&cfg.Weather.GeocodingURL, "WANDERLIST_WEATHER_GEOCODING_URL")
	setString(&cfg.Weather.ForecastURL, "WANDERLIST_WEATHER_FORECAST_URL")
	setString(&cfg.Weather.Language, "WANDERLIST_WEATHER_LANGUAGE")
	if err := setDuration(&cfg.Weather.Timeout, "WANDERLIST_WEATHER_TIMEOUT"); err != nil {
		return err
	}

	setString(&cfg.Currency.Reporting, "WANDERLIST_CURRENCY_REPORTING")
	setString(&cfg.Currency.Foreign, "WANDERLIST_CURRENCY_FOREIGN")
	if v := os.Getenv("WANDERLIST_CURRENCY_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid WANDERLIST_CURRENCY_RATE: %w", err)
		}
		cfg.Currency.Rate = rate
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
