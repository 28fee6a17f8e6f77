// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultBasePrice = 14.50
	defaultOccupancy = 0.2
)

// Config holds every runtime knob. Nothing here is required: a missing API
// key degrades the insight panel to its fallback copy, and bad numeric
// values fall back to defaults rather than aborting.
type Config struct {
	GeminiAPIKey string  // credential for the insight provider; empty disables it
	BasePrice    float64 // standard ticket price
	Occupancy    float64 // probability a generated seat starts occupied
	Seed         int64   // fixed layout seed; 0 means time-seeded
	Debug        bool    // enables stderr diagnostics
}

// Load reads an optional .env from the working directory, then the
// environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		BasePrice:    envFloat("CINESPHERE_BASE_PRICE", defaultBasePrice),
		Occupancy:    envFloat("CINESPHERE_OCCUPANCY", defaultOccupancy),
		Seed:         envInt64("CINESPHERE_SEED", 0),
		Debug:        strings.TrimSpace(os.Getenv("CINESPHERE_DEBUG")) != "",
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
