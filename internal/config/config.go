package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		Port: getEnv("PORT"),
		API: APIConfig{
			BaseURL: getEnv("MATCH_API_BASE_URL"),
		},
		Poll: PollConfig{
			LiveUpcoming: getDuration("POLL_INTERVAL_LIVE_UPCOMING", time.Second),
			Live:         getDuration("POLL_INTERVAL_LIVE", time.Second),
			Old:          getDuration("POLL_INTERVAL_OLD", 5*time.Minute),
			Limit:        getInt("POLL_LIMIT", 50),
		},
		LiveWindow:     getDuration("LIVE_WINDOW", 150*time.Minute),
		Retention:      getDuration("FINISHED_RETENTION", 3*time.Hour),
		HydrateTTL:     getDuration("HYDRATE_TTL", 15*time.Second),
		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"*"}),
	}
	return cfg
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn("Invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("Invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
