package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port string
	API  APIConfig
	Poll PollConfig
	// LiveWindow is how long after kickoff a match without an upstream
	// status hint counts as live.
	LiveWindow time.Duration
	// Retention is how long a finished match stays in current views
	// past its estimated end.
	Retention time.Duration
	// HydrateTTL is how long a hydrated detail entry satisfies
	// non-forced hydrate calls.
	HydrateTTL time.Duration
	// AllowedOrigins are the browser origins allowed to read the API.
	AllowedOrigins []string
}

type APIConfig struct {
	BaseURL string
}

type PollConfig struct {
	// LiveUpcoming and Live are tight cadences for live-sensitive
	// queries; Old is the slow cadence for historical data.
	LiveUpcoming time.Duration
	Live         time.Duration
	Old          time.Duration
	Limit        int
}
