package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvWidth          = "VECPAD_WIDTH"
	EnvHeight         = "VECPAD_HEIGHT"
	EnvDisplayFactor  = "VECPAD_DISPLAY_FACTOR"
	EnvBackend        = "VECPAD_BACKEND"
	EnvInitialVectors = "VECPAD_INITIAL_VECTORS"
	EnvLogLevel       = "VECPAD_LOG_LEVEL"
)

// ApplyEnvironmentOverrides replaces config fields with any VECPAD_*
// variables that are set, then validates the result. Unparseable numbers
// keep the current value.
func ApplyEnvironmentOverrides(config *Config) error {
	config.Window.Width = getEnvAsFloatOrDefault(EnvWidth, config.Window.Width)
	config.Window.Height = getEnvAsFloatOrDefault(EnvHeight, config.Window.Height)
	config.Canvas.DisplayFactor = getEnvAsFloatOrDefault(EnvDisplayFactor, config.Canvas.DisplayFactor)
	config.Canvas.InitialVectors = getEnvAsIntOrDefault(EnvInitialVectors, config.Canvas.InitialVectors)
	config.Window.Backend = strings.ToLower(getEnvOrDefault(EnvBackend, config.Window.Backend))
	config.LogLevel = getEnvOrDefault(EnvLogLevel, config.LogLevel)

	return config.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}
