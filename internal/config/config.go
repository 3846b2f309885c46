package config

import (
	"os"
	"strconv"
	"strings"

	"feedbacklens/domain/feedback"
	"feedbacklens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Insight feedback.InsightConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	OpsPort string
	GinMode string
}

// DataConfig holds dataset ingestion settings
type DataConfig struct {
	MaxUploadBytes int64
	// QueryBackend selects the query engine: "memory" or "sqlite".
	QueryBackend string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  loadServerConfig(),
		Data:    loadDataConfig(),
		Insight: loadInsightConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		OpsPort: getEnvOrDefault("OPS_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 20*1024*1024)),
		QueryBackend:   getEnvOrDefault("QUERY_BACKEND", "memory"),
	}
}

// loadInsightConfig starts from the documented defaults and applies any
// overrides from the environment. Alias lists are overridable per field
// as comma-separated, priority-ordered values.
func loadInsightConfig() feedback.InsightConfig {
	cfg := feedback.DefaultInsightConfig()

	cfg.NegativeRatingThreshold = getEnvFloatOrDefault("NEGATIVE_RATING_THRESHOLD", cfg.NegativeRatingThreshold)
	cfg.MinTokenLength = getEnvIntOrDefault("MIN_TOKEN_LENGTH", cfg.MinTokenLength)
	cfg.HotspotTopN = getEnvIntOrDefault("HOTSPOT_TOP_N", cfg.HotspotTopN)

	if list := getEnvListOrDefault("NEGATIVE_KEYWORDS", nil); list != nil {
		cfg.NegativeKeywords = list
	}
	if list := getEnvListOrDefault("STOP_WORDS", nil); list != nil {
		cfg.StopWords = list
	}

	aliasVars := map[feedback.LogicalField]string{
		feedback.FieldCreatedAt:  "ALIASES_CREATED_AT",
		feedback.FieldProduct:    "ALIASES_PRODUCT",
		feedback.FieldRating:     "ALIASES_RATING",
		feedback.FieldReviewText: "ALIASES_REVIEW_TEXT",
	}
	for field, envVar := range aliasVars {
		if list := getEnvListOrDefault(envVar, nil); list != nil {
			cfg.Aliases[field] = list
		}
	}

	return cfg
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	switch config.Data.QueryBackend {
	case "memory", "sqlite":
	default:
		return errors.ConfigInvalid("QUERY_BACKEND must be \"memory\" or \"sqlite\"")
	}
	if config.Insight.HotspotTopN < 1 {
		return errors.ConfigInvalid("HOTSPOT_TOP_N must be positive")
	}
	if config.Insight.MinTokenLength < 1 {
		return errors.ConfigInvalid("MIN_TOKEN_LENGTH must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
