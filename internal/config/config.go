// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the board service.
type Config struct {
	Port                   string
	RedisURL               string
	BoardAPIBaseURL        string // remote job-board API, e.g. "https://api.example.com/v1"
	PageLimit              int    // notices per listing page
	ReconcileIntervalHours int    // 0 disables the intent reconciler
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	apiURL := os.Getenv("BOARD_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("BOARD_API_URL is required")
	}

	limit := 6
	if s := os.Getenv("PAGE_LIMIT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("PAGE_LIMIT must be a positive integer, got %q", s)
		}
		limit = v
	}

	reconcile := 0
	if s := os.Getenv("RECONCILE_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("RECONCILE_INTERVAL_HOURS must be a non-negative integer, got %q", s)
		}
		reconcile = v
	}

	port := os.Getenv("BOARD_PORT")
	if port == "" {
		port = "8083"
	}

	return &Config{
		Port:                   port,
		RedisURL:               redisURL,
		BoardAPIBaseURL:        apiURL,
		PageLimit:              limit,
		ReconcileIntervalHours: reconcile,
	}, nil
}
