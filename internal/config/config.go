// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first (if present) with
// godotenv; real environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/robalobadob/numguess/internal/i18n"
)

// DevSessionSecret is the fallback signing key for session cookies.
// It is refused when AppEnv is "production".
const DevSessionSecret = "dev_secret_change_me"

// Config holds every tunable of the server.
type Config struct {
	Port           string        `env:"PORT" envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv         string        `env:"APP_ENV" envDefault:"development"`
	Store          string        `env:"STORE" envDefault:"memory"` // memory | sqlite
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"./data/numguess.db"`
	SessionSecret  string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	DefaultLang    string        `env:"DEFAULT_LANG" envDefault:"en"`
	StrictParse    bool          `env:"GUESS_STRICT_PARSE" envDefault:"false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"` // e.g. http://localhost:5173; empty disables CORS
}

// Load reads .env (optional) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Production reports whether the server runs with production settings
// (secure cookies, no dev secret).
func (c Config) Production() bool { return c.AppEnv == "production" }

// Language returns the configured default language tag.
func (c Config) Language() language.Tag {
	if tag, ok := i18n.ParseTag(c.DefaultLang); ok {
		return tag
	}
	return i18n.Default()
}

// Validate checks the settings that have a closed set of values.
func (c Config) Validate() error {
	switch c.Store {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("config: unknown STORE %q (want memory or sqlite)", c.Store)
	}
	if c.Store == "sqlite" && c.DatabasePath == "" {
		return errors.New("config: DATABASE_PATH is required for the sqlite store")
	}
	if _, ok := i18n.ParseTag(c.DefaultLang); !ok {
		return fmt.Errorf("config: unsupported DEFAULT_LANG %q", c.DefaultLang)
	}
	if c.SessionSecret == "" {
		return errors.New("config: SESSION_SECRET must not be empty")
	}
	if c.Production() && c.SessionSecret == DevSessionSecret {
		return errors.New("config: set SESSION_SECRET in production")
	}
	if c.ClientOrigin != "" {
		u, err := url.Parse(c.ClientOrigin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: CLIENT_ORIGIN %q is not an origin", c.ClientOrigin)
		}
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	}
	return nil
}
