// Package config reads process configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names accepted by QUOTEDESK_BACKEND.
const (
	BackendPocketBase = "pocketbase"
	BackendRedis      = "redis"
	BackendMemory     = "memory"
)

type Config struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StateKey      string
	Currency      string // overrides the stored currency when set
	Seed          bool
}

// Load reads a .env file when one exists, then the environment.
// Precedence: explicit env var > .env file > default.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: reading .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the environment alone.
func FromEnv() Config {
	cfg := Config{}
	cfg.Backend = strings.ToLower(getEnv("QUOTEDESK_BACKEND", BackendPocketBase))
	switch cfg.Backend {
	case BackendPocketBase, BackendRedis, BackendMemory:
	default:
		log.Printf("config: unknown backend %q, using %s", cfg.Backend, BackendPocketBase)
		cfg.Backend = BackendPocketBase
	}
	cfg.RedisAddr = getEnv("QUOTEDESK_REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("QUOTEDESK_REDIS_PASSWORD")
	cfg.RedisDB = parseInt("QUOTEDESK_REDIS_DB", 0)
	cfg.StateKey = getEnv("QUOTEDESK_STATE_KEY", "app_data_v1")
	cfg.Currency = strings.ToUpper(os.Getenv("QUOTEDESK_CURRENCY"))
	cfg.Seed = ParseBool("QUOTEDESK_SEED", false)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("config: invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("config: invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
