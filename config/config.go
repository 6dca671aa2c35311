// Package config loads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-yoga"
)

// MinSigningKeyLength HS512 keys shorter than the hash size are rejected
const MinSigningKeyLength = 32

// Config implements yoga.Config
type Config struct {
	HTTPAddr          string `env:"YOGA_HTTP_ADDR" envDefault:":8080"`
	DBDriver          string `env:"YOGA_DB_DRIVER" envDefault:"sqlite"`
	DBDSN             string `env:"YOGA_DB_DSN" envDefault:"file:yoga.db?cache=shared&_pragma=foreign_keys(1)"`
	JWTSecret         string `env:"YOGA_JWT_SECRET"`
	JWTExpirationMS   int64  `env:"YOGA_JWT_EXPIRATION_MS"`
	BcryptCost        int    `env:"YOGA_BCRYPT_COST" envDefault:"10"`
	LogLevel          string `env:"YOGA_LOG_LEVEL" envDefault:"info"`
	LogFormat         string `env:"YOGA_LOG_FORMAT" envDefault:"text"`
	AuthScheme        string `env:"YOGA_AUTH_SCHEME" envDefault:"Bearer"`
	ContextKey        string `env:"YOGA_CONTEXT_KEY" envDefault:"user"`
	TokenLookup       string `env:"YOGA_TOKEN_LOOKUP" envDefault:"header:Authorization"`
	ShutdownTimeoutMS int64  `env:"YOGA_SHUTDOWN_TIMEOUT_MS" envDefault:"10000"`
}

var _ yoga.Config = (*Config)(nil)

// tokenLookupPattern matches "source:name" pairs separated by commas
var tokenLookupPattern = regexp.MustCompile(`^(header|query):[A-Za-z0-9_-]+(,(header|query):[A-Za-z0-9_-]+)*$`)

// Load reads envFiles when present and then parses the environment.
// Variables already set win over values in the files.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate will run validation rules
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.DBDriver, validation.Required, validation.In("sqlite", "postgres")),
		validation.Field(&c.DBDSN, validation.Required),
		validation.Field(&c.JWTSecret, validation.Required, validation.Length(MinSigningKeyLength, 0)),
		validation.Field(&c.JWTExpirationMS, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.BcryptCost, validation.Min(4), validation.Max(31)),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "warning", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.AuthScheme, validation.Required),
		validation.Field(&c.ContextKey, validation.Required),
		validation.Field(&c.TokenLookup, validation.Required, validation.Match(tokenLookupPattern)),
	)
}

func (c Config) GetSigningKey() string {
	return c.JWTSecret
}

func (c Config) GetTokenExpiration() time.Duration {
	return time.Duration(c.JWTExpirationMS) * time.Millisecond
}

func (c Config) GetAuthScheme() string {
	return c.AuthScheme
}

func (c Config) GetContextKey() string {
	return c.ContextKey
}

func (c Config) GetTokenLookup() string {
	return c.TokenLookup
}

func (c Config) GetBcryptCost() int {
	return c.BcryptCost
}

func (c Config) GetShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
