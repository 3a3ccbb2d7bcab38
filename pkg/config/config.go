package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/getmockd/oauth-mock/pkg/oauth"
)

// Common configuration errors.
var (
	ErrNoProviders     = errors.New("no valid providers enabled")
	ErrUnknownProvider = errors.New("invalid providers specified")
)

// AvailableProviders lists the provider keys ENABLE accepts.
var AvailableProviders = []string{oauth.ProviderGoogle, oauth.ProviderLINE}

// Config holds all environment-based configuration for oauth-mock.
type Config struct {
	Host       string `env:"HOST" envDefault:"0.0.0.0"`
	GooglePort int    `env:"GOOGLE_PORT" envDefault:"3001"`
	LINEPort   int    `env:"LINE_PORT" envDefault:"3002"`

	// Enable is a comma-separated list of providers to start.
	Enable string `env:"ENABLE"`

	TokenExpiry        int    `env:"TOKEN_EXPIRY" envDefault:"3600"`
	AccessTokenPrefix  string `env:"TOKEN_PREFIX" envDefault:"mock_access_token_"`
	RefreshTokenPrefix string `env:"REFRESH_TOKEN_PREFIX" envDefault:"mock_refresh_token_"`
	AuthCodePrefix     string `env:"AUTH_CODE_PREFIX" envDefault:"mock_auth_code_"`
	TokenMode          string `env:"TOKEN_MODE" envDefault:"fixed"`

	GoogleUserFile string `env:"GOOGLE_USER_FILE" envDefault:"google.json"`
	LINEUserFile   string `env:"LINE_USER_FILE" envDefault:"line.json"`
	WatchUserFiles bool   `env:"WATCH_USER_FILES" envDefault:"false"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	RequestLogging bool   `env:"ENABLE_REQUEST_LOGGING" envDefault:"true"`
	Metrics        bool   `env:"ENABLE_METRICS" envDefault:"true"`
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Providers returns the enabled provider keys in ENABLE order, lower-cased
// and de-duplicated.
func (c *Config) Providers() ([]string, error) {
	var (
		enabled []string
		invalid []string
	)
	for _, p := range strings.Split(c.Enable, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		switch {
		case p == "":
			continue
		case !slices.Contains(AvailableProviders, p):
			invalid = append(invalid, p)
		case !slices.Contains(enabled, p):
			enabled = append(enabled, p)
		}
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s (available: %s)",
			ErrUnknownProvider, strings.Join(invalid, ", "), strings.Join(AvailableProviders, ", "))
	}
	if len(enabled) == 0 {
		return nil, fmt.Errorf("%w: set ENABLE (e.g. ENABLE=google,line)", ErrNoProviders)
	}
	return enabled, nil
}

// Prefixes returns the configured token prefixes.
func (c *Config) Prefixes() oauth.Prefixes {
	return oauth.Prefixes{
		AuthCode:     c.AuthCodePrefix,
		AccessToken:  c.AccessTokenPrefix,
		RefreshToken: c.RefreshTokenPrefix,
	}
}

// Port returns the listen port for a provider key.
func (c *Config) Port(provider string) int {
	if provider == oauth.ProviderLINE {
		return c.LINEPort
	}
	return c.GooglePort
}

// UserFile returns the override file path for a provider key.
func (c *Config) UserFile(provider string) string {
	if provider == oauth.ProviderLINE {
		return c.LINEUserFile
	}
	return c.GoogleUserFile
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	providers, err := c.Providers()
	if err != nil {
		return err
	}
	if len(providers) > 1 && c.GooglePort == c.LINEPort {
		return fmt.Errorf("GOOGLE_PORT and LINE_PORT must differ, both are %d", c.GooglePort)
	}
	for name, port := range map[string]int{"GOOGLE_PORT": c.GooglePort, "LINE_PORT": c.LINEPort} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
		}
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY must be positive, got %d", c.TokenExpiry)
	}
	if err := c.Prefixes().Validate(); err != nil {
		return err
	}
	if _, err := oauth.ParseTokenMode(c.TokenMode); err != nil {
		return err
	}
	return nil
}
