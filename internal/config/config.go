package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownSourceDriver         = errors.New("unknown question source driver")
)

// Question source drivers.
const (
	SourceHTTP     = "http"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`      // current application environment (local, dev, production)
	TelegramAPIToken string `mapstructure:"-"`        // Telegram API token loaded from environment
	AuthHMACSecret   string `mapstructure:"-"`        // secret for admin tokens of the questions API
	Source           Source `mapstructure:"source"`   // where quizzes take their questions from
	DB               DB     `mapstructure:"database"` // postgres question bank
	SQLite           SQLite `mapstructure:"sqlite"`   // sqlite question bank
	HTTP             HTTP   `mapstructure:"http"`     // questions API server
}

// Source selects where quizzes take their questions from.
type Source struct {
	Driver       string        `mapstructure:"driver"`        // http, file, postgres or sqlite
	URL          string        `mapstructure:"url"`           // endpoint for the http driver
	Path         string        `mapstructure:"path"`          // JSON file for the file driver
	SeedPath     string        `mapstructure:"seed_path"`     // JSON file imported into an empty database bank
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // upper bound for one fetch
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// SQLite configures the single-file question bank.
type SQLite struct {
	DSN string `mapstructure:"dsn"`
}

// HTTP configures the questions API server.
type HTTP struct {
	Addr           string        `mapstructure:"addr"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from an optional .env file, config files and
// environment variables.
func Load() (*Config, error) {
	// Values already present in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("source.driver", SourceHTTP)
	v.SetDefault("source.url", "http://localhost:8080/questions")
	v.SetDefault("source.path", "assets/questions.json")
	v.SetDefault("source.fetch_timeout", "10s")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.request_timeout", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("auth_hmac_secret", "AUTH_HMAC_SECRET")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.AuthHMACSecret = v.GetString("auth_hmac_secret")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validateSource(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateBot checks the settings the Telegram bot cannot run without.
func (c *Config) ValidateBot() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

// ValidateAPI checks the settings the questions API cannot run without.
// The API serves a stored bank, so an http source would point at itself.
func (c *Config) ValidateAPI() error {
	if c.Source.Driver == SourceHTTP {
		return fmt.Errorf("%w: questions API cannot use the %q driver", ErrUnknownSourceDriver, SourceHTTP)
	}
	if c.AuthHMACSecret == "" {
		return fmt.Errorf("%w: AUTH_HMAC_SECRET", ErrMissingEnvironmentVariables)
	}
	return nil
}

func (c *Config) validateSource() error {
	switch c.Source.Driver {
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("%w: source.url", ErrMissingEnvironmentVariables)
		}
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("%w: source.path", ErrMissingEnvironmentVariables)
		}
	case SourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case SourceSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSourceDriver, c.Source.Driver)
	}
	return nil
}
