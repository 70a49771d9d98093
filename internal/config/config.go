package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the process configuration, read from the environment and an
// optional .env file.
type AppConfig struct {
	Port          int
	Project       string
	Catalog       string // products.yaml path; empty uses the built-in catalog
	BaseInterval  time.Duration
	AllowedOrigin string // websocket Origin check; "*" allows any
}

// Load reads .env (or the given files) and then the environment. Variables
// already set in the environment win over file values.
func Load(files ...string) AppConfig {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          atoi("CROPSIM_PORT", get("CROPSIM_PORT", "3000"), 3000),
		Project:       get("CROPSIM_PROJECT", "."),
		Catalog:       get("CROPSIM_CATALOG", ""),
		BaseInterval:  duration("CROPSIM_BASE_INTERVAL", get("CROPSIM_BASE_INTERVAL", "1s"), time.Second),
		AllowedOrigin: get("CROPSIM_ALLOWED_ORIGIN", "*"),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}

func atoi(key, v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[cfg] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func duration(key, v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[cfg] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
