package app

import (
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime wiring options for building the messaging core.
type Config struct {
	// ExchangeURL points at a remote exchange server, e.g.
	// http://127.0.0.1:8470. When set, the remote exchange backs both stores.
	ExchangeURL string
	// DBPath is a SQLite file used when no exchange URL is set. Empty means
	// an in-memory store.
	DBPath string
	// CacheSize bounds the peer public key LRU. Zero means the default.
	CacheSize int
	// WebHost selects the browser-context primitive suite instead of the
	// native one.
	WebHost bool
	// HTTP is the client used for exchange calls; defaults to
	// http.DefaultClient.
	HTTP *http.Client
}

// FromEnv builds a Config from the environment, reading a .env file first if
// one is present. Unset variables leave the zero value in place.
func FromEnv() Config {
	// Missing .env is fine; real environment always wins.
	_ = godotenv.Load()

	cfg := Config{
		ExchangeURL: os.Getenv("CROWN_EXCHANGE_URL"),
		DBPath:      os.Getenv("CROWN_DB_PATH"),
	}
	if v := os.Getenv("CROWN_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheSize = n
		}
	}
	if v := os.Getenv("CROWN_HOST"); v == "web" {
		cfg.WebHost = true
	}
	return cfg
}
