package config

import (
	"errors"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration for the backend.
type Config struct {
	Port          string // Port the HTTP server listens on
	DBPath        string // Path to the sqlite database file
	PublicURL     string // URL the API is reachable at, used for links and QR codes
	JWTSecret     string // Secret for signing admin session tokens
	AdminPassword string // Password for the organizer dashboard login
}

// App is the loaded configuration. It is set by Load.
var App *Config

var ErrInvalidPublicURL = errors.New("the PUBLIC_URL environment variable must be a valid URL")

// Load reads the configuration from a .env file if one exists and from
// environment variables otherwise.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables only")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "data/gorm.db"),
		PublicURL:     getEnv("PUBLIC_URL", "http://localhost:8080"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if _, err := url.Parse(cfg.PublicURL); err != nil {
		return nil, ErrInvalidPublicURL
	}

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, admin sessions will not survive restarts")
		cfg.JWTSecret = getEnv("HOSTNAME", "demo-night")
	}

	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD is not set, admin login is disabled")
	}

	App = cfg
	return cfg, nil
}

// APIURL returns the public URL as a parsed URL.
//
// Load already verified that the URL parses.
func (c *Config) APIURL() *url.URL {
	u, _ := url.Parse(c.PublicURL)
	return u
}

// getEnv returns the value of an environment variable or a default value
// when it is unset or empty.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
