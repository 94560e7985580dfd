// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// APIConfig holds the remote service settings
type APIConfig struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

// FeedConfig holds the feed-load query settings
type FeedConfig struct {
	Sort  string
	Order string
}

// SimConfig holds the simulator knobs
type SimConfig struct {
	Duration      time.Duration
	VoteFrequency float64
	PostFrequency float64
}

// Config holds the complete client configuration
type Config struct {
	API      *APIConfig
	Feed     *FeedConfig
	Sim      *SimConfig
	Username string
	UserID   string
	Debug    bool
}

// DefaultAPIConfig provides default remote service settings
func DefaultAPIConfig() *APIConfig {
	return &APIConfig{
		BaseURL:  "http://localhost:8080",
		Timeout:  10 * time.Second,
		RetryMax: 3,
	}
}

// DefaultSimConfig provides default simulator settings
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		Duration:      60 * time.Second,
		VoteFrequency: 2.0,
		PostFrequency: 0.5,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Silent failure if no .env exists, which is fine
	_ = godotenv.Load()

	apiConfig := DefaultAPIConfig()

	if url := os.Getenv("ENGINE_URL"); url != "" {
		apiConfig.BaseURL = url
	}

	if timeoutStr := os.Getenv("API_TIMEOUT_SECONDS"); timeoutStr != "" {
		if secs, err := strconv.Atoi(timeoutStr); err == nil {
			apiConfig.Timeout = time.Duration(secs) * time.Second
		}
	}

	if retryStr := os.Getenv("API_RETRY_MAX"); retryStr != "" {
		if retries, err := strconv.Atoi(retryStr); err == nil {
			apiConfig.RetryMax = retries
		}
	}

	feedConfig := &FeedConfig{
		Sort:  getEnvOrDefault("FEED_SORT", "created_at"),
		Order: getEnvOrDefault("FEED_ORDER", "desc"),
	}

	simConfig := DefaultSimConfig()

	if durStr := os.Getenv("SIM_DURATION_SECONDS"); durStr != "" {
		if secs, err := strconv.Atoi(durStr); err == nil {
			simConfig.Duration = time.Duration(secs) * time.Second
		}
	}

	if freqStr := os.Getenv("SIM_VOTE_FREQUENCY"); freqStr != "" {
		if freq, err := strconv.ParseFloat(freqStr, 64); err == nil {
			simConfig.VoteFrequency = freq
		}
	}

	if freqStr := os.Getenv("SIM_POST_FREQUENCY"); freqStr != "" {
		if freq, err := strconv.ParseFloat(freqStr, 64); err == nil {
			simConfig.PostFrequency = freq
		}
	}

	config := &Config{
		API:      apiConfig,
		Feed:     feedConfig,
		Sim:      simConfig,
		Username: getEnvOrDefault("FEED_USERNAME", "feed_sim"),
		UserID:   getEnvOrDefault("FEED_USER_ID", "feed_sim"),
		Debug:    os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
