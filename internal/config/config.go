// Package config loads process configuration from the environment.
//
// Values come from environment variables (optionally seeded from a .env file
// by the binaries via godotenv) and are parsed with caarlos0/env.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is shared by the HTTP server and the terminal client.
type Config struct {
	Port     string `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	DBPath   string `env:"DB_PATH"   envDefault:"./data/app.db"`

	// Round bounds: Low inclusive, High exclusive for the draw.
	Low  int `env:"GUESS_LOW"  envDefault:"0"`
	High int `env:"GUESS_HIGH" envDefault:"10"`
	// Seed selects a reproducible source when non-zero.
	Seed int64 `env:"GUESS_SEED" envDefault:"0"`

	GuessRatePerSec float64 `env:"GUESS_RATE_PER_SEC" envDefault:"10"`
	GuessRateBurst  int     `env:"GUESS_RATE_BURST"   envDefault:"20"`

	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"guess_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`
	Production     bool   `env:"PRODUCTION"       envDefault:"false"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations no round could be created from.
func (c Config) Validate() error {
	if c.Low >= c.High {
		return fmt.Errorf("config: GUESS_LOW (%d) must be less than GUESS_HIGH (%d)", c.Low, c.High)
	}
	if c.GuessRatePerSec <= 0 || c.GuessRateBurst <= 0 {
		return errors.New("config: guess rate and burst must be positive")
	}
	return nil
}
