// internal/config/config.go
//
// Process configuration, read from the environment.
// A .env file in the working directory (if any) is loaded first; real
// environment variables win over .env values.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/guess-number/internal/game"
)

// Config holds server settings.
type Config struct {
	Port      string `env:"PORT"       envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	ClientOrigin  string        `env:"CLIENT_ORIGIN"  envDefault:"http://localhost:5173"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	CookieName    string        `env:"COOKIE_NAME"    envDefault:"guess_token"`
	CookieSecure  bool          `env:"COOKIE_SECURE"  envDefault:"false"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"24h"`
	DailySalt     string        `env:"DAILY_SALT"     envDefault:"local_dev_salt"`

	MaxInput     int  `env:"GAME_MAX_INPUT"     envDefault:"20"`
	MaxScore     int  `env:"GAME_MAX_SCORE"     envDefault:"20"`
	LockFinished bool `env:"GAME_LOCK_FINISHED" envDefault:"false"`

	GuessRate  float64 `env:"GUESS_RATE"  envDefault:"20"` // guesses per second, per session
	GuessBurst int     `env:"GUESS_BURST" envDefault:"40"`

	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"` // how often expired sessions are dropped
}

// Load reads .env (optional) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment into a Config and validates it.
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

// Validate checks value ranges env tags can't express.
func (c Config) Validate() error {
	var errs []error
	if c.MaxInput < 1 {
		errs = append(errs, fmt.Errorf("GAME_MAX_INPUT must be >= 1, got %d", c.MaxInput))
	}
	if c.MaxScore < 1 {
		errs = append(errs, fmt.Errorf("GAME_MAX_SCORE must be >= 1, got %d", c.MaxScore))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval))
	}
	if c.GuessRate <= 0 || c.GuessBurst < 1 {
		errs = append(errs, errors.New("GUESS_RATE and GUESS_BURST must be positive"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errs...)
}

// Rules returns the game rules configured for new sessions.
func (c Config) Rules() game.Rules {
	return game.Rules{MaxInput: c.MaxInput, MaxScore: c.MaxScore, LockFinished: c.LockFinished}
}

// Addr returns the listen address.
func (c Config) Addr() string { return ":" + c.Port }
