// Package config provides environment-driven configuration for the
// resume scanner service.
package config

import (
	"os"
	"strconv"
)

// Config holds service configuration loaded from the environment.
type Config struct {
	Port          int    // HTTP listen port
	GeminiAPIKey  string // server-side coaching credential; may be empty
	DatasetPath   string // first probe candidate for the training dataset
	CrossValidate bool   // run diagnostic k-fold cross-validation at startup
}

// Load reads configuration from environment variables, applying defaults
// for anything unset. Callers are expected to have run godotenv first.
func Load() Config {
	return Config{
		Port:          getEnvInt("PORT", 8080),
		GeminiAPIKey:  getEnvString("GEMINI_API_KEY", ""),
		DatasetPath:   getEnvString("DATASET_PATH", ""),
		CrossValidate: getEnvBool("CROSS_VALIDATE", false),
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
