package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the BookShelf server, loaded from the
// environment with local-development defaults.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string
	// DBPath is the SQLite database file.
	DBPath string
	// JWTSecret signs session tokens.
	JWTSecret string
	// TokenTTL bounds session token validity.
	TokenTTL time.Duration
	// GoogleBooksURL is the base URL of the external catalog.
	GoogleBooksURL string
	// SearchTimeout bounds every upstream catalog call.
	SearchTimeout time.Duration
	// ClientOrigin is the browser origin allowed by CORS.
	ClientOrigin string
	// Environment is "development" or "production". Production withholds
	// internal error detail from responses.
	Environment string
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local development.
func Load() *Config {
	cfg := &Config{
		Addr:           getEnv("BOOKSHELF_ADDR", ":5001"),
		DBPath:         getEnv("BOOKSHELF_DB", "./bookshelf.db"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-only-secret-change-me"),
		TokenTTL:       getDuration("JWT_EXPIRE", 720*time.Hour),
		GoogleBooksURL: getEnv("GOOGLE_BOOKS_URL", "https://www.googleapis.com/books/v1"),
		SearchTimeout:  getDuration("SEARCH_TIMEOUT", 10*time.Second),
		ClientOrigin:   getEnv("CLIENT_URL", "http://localhost:3000"),
		Environment:    getEnv("APP_ENV", "development"),
	}
	return cfg
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
