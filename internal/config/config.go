// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AIConfig holds assistant-related settings
type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Config holds the complete application configuration
type Config struct {
	AI             *AIConfig
	JWTSecret      string
	MetricsEnabled bool
	Debug          bool
}

// DefaultAIConfig provides default assistant settings
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		Model:   "gemini-3-flash-preview",
		Timeout: 30 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",          // Current directory
		"../../.env",    // Project root when running from cmd/forum
		"../../../.env", // Even higher directory
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		// Silent failure if no .env exists, which is fine
		_ = godotenv.Load()
	}

	aiConfig := DefaultAIConfig()
	aiConfig.APIKey = os.Getenv("GEMINI_API_KEY")

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		aiConfig.Model = model
	}

	if timeoutStr := os.Getenv("AI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if seconds, err := strconv.Atoi(timeoutStr); err == nil && seconds > 0 {
			aiConfig.Timeout = time.Duration(seconds) * time.Second
		}
	}

	config := &Config{
		AI:             aiConfig,
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "broad-forum-dev-secret"),
		MetricsEnabled: true,
		Debug:          false,
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		config.MetricsEnabled = metricsEnabled == "true"
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
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
