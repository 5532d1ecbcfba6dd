package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	Port          int    `env:"PORT" envDefault:"3000"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	AdminPassword string `env:"ADMIN_PASSWORD,required"`

	// Cookie domain for auth tokens; empty means host-only cookies.
	Domain string `env:"DOMAIN"`

	ClientURL      string   `env:"CLIENT_URL"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Listing publication price charged by the mock payment flow.
	ListingPriceRub int64 `env:"LISTING_PRICE_RUB" envDefault:"290"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Origins returns the CORS allowlist: local development fronts plus
// anything configured via CLIENT_URL / ALLOWED_ORIGINS.
func (c *Config) Origins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if c.ClientURL != "" {
		origins = append(origins, c.ClientURL)
	}
	origins = append(origins, c.AllowedOrigins...)
	return origins
}
