// Package config loads lexicon settings from defaults, an optional YAML
// file, a .env file and LEXICON_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/lexicon/internal/learn"
	"github.com/abhisek/lexicon/internal/llm"
	"github.com/abhisek/lexicon/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. LEXICON_LOG_LEVEL.
const EnvPrefix = "LEXICON"

// Config holds all configuration for lexicon.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
	LLM     llm.Config    `mapstructure:"llm"`
}

// DataConfig selects the storage backend.
type DataConfig struct {
	Driver string `mapstructure:"driver"`
	// Path is the SQLite file. Empty means store.DefaultDBPath.
	Path string `mapstructure:"path"`
	// DSN overrides Path and is required for postgres.
	DSN string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log output. Empty means stderr.
	File string `mapstructure:"file"`
}

// SessionConfig holds the learn-session defaults offered in the TUI.
type SessionConfig struct {
	Filter string `mapstructure:"filter"`
	Quiz   string `mapstructure:"quiz"`
}

// Load reads configuration. path names an explicit config file; when it
// is empty $XDG_CONFIG_HOME/lexicon/config.yaml is used if present.
func Load(path string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LLM, _ = cfg.LLM.WithDiscoveredKeys()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.driver", store.DriverSQLite)
	v.SetDefault("data.path", "")
	v.SetDefault("data.dsn", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("session.filter", "default")
	v.SetDefault("session.quiz", string(learn.Dynamic))

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	for name, pc := range map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  d.Anthropic,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderGemini:     d.Gemini,
		llm.ProviderOpenRouter: d.OpenRouter,
	} {
		// Every key needs a default for AutomaticEnv to see it on Unmarshal.
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}
}

// Validate checks the values Load cannot type-check. The LLM section is
// validated only when a command needs a provider.
func (c *Config) Validate() error {
	switch c.Data.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.Data.DSN == "" {
			return fmt.Errorf("data.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported data.driver %q", c.Data.Driver)
	}
	if _, err := learn.ParseFilter(c.Session.Filter); err != nil {
		return fmt.Errorf("session.filter: %w", err)
	}
	if _, err := learn.ParsePreference(c.Session.Quiz); err != nil {
		return fmt.Errorf("session.quiz: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log.format %q", c.Log.Format)
	}
	return nil
}

// Source returns the driver and data source name for store.Open,
// resolving the default SQLite path when neither DSN nor Path is set.
func (d DataConfig) Source() (driver, dsn string, err error) {
	switch {
	case d.DSN != "":
		return d.Driver, d.DSN, nil
	case d.Path != "":
		return d.Driver, d.Path, store.EnsureDir(d.Path)
	}
	p, err := store.DefaultDBPath()
	if err != nil {
		return "", "", err
	}
	return d.Driver, p, nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "lexicon"), nil
}
