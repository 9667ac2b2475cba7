package photoauth

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// Config carries every knob the service reads. It is built once at process
// start and passed explicitly into the components that need it; nothing in
// the package reads the environment on its own.
type Config struct {
	SigningKey      string        `env:"PHOTOAUTH_SIGNING_KEY,required"`
	TokenExpiration time.Duration `env:"PHOTOAUTH_TOKEN_EXPIRATION" envDefault:"336h"`
	Issuer          string        `env:"PHOTOAUTH_ISSUER" envDefault:"photoauth"`

	ProviderClientID     string        `env:"PHOTOAUTH_PROVIDER_CLIENT_ID"`
	ProviderClientSecret string        `env:"PHOTOAUTH_PROVIDER_CLIENT_SECRET,required"`
	ProviderRedirectURI  string        `env:"PHOTOAUTH_PROVIDER_REDIRECT_URI"`
	ProviderTokenURL     string        `env:"PHOTOAUTH_PROVIDER_TOKEN_URL"`
	ProviderTimeout      time.Duration `env:"PHOTOAUTH_PROVIDER_TIMEOUT" envDefault:"10s"`

	DSN        string `env:"PHOTOAUTH_DSN" envDefault:"file:photoauth.db?cache=shared"`
	ListenAddr string `env:"PHOTOAUTH_LISTEN_ADDR" envDefault:":3000"`
}

// LoadConfig parses configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "failed to parse configuration")
	}
	return cfg, nil
}

func (c *Config) GetSigningKey() string { return c.SigningKey }

func (c *Config) GetTokenExpiration() time.Duration {
	if c.TokenExpiration <= 0 {
		return 14 * 24 * time.Hour
	}
	return c.TokenExpiration
}

func (c *Config) GetIssuer() string { return c.Issuer }
