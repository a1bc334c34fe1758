// Package config provides an optional, host-side bootstrap helper for
// loading provider API keys from a .env file during local development or
// testing. It is not part of the core engine: the facade never reads the
// environment itself, and a host is free to source its API keys any way it
// likes and hand them to Settings directly.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// APIKeyEnvVars maps the stable API-key identifiers from spec §6 to the
// environment variable names a .env file is expected to define.
var APIKeyEnvVars = map[string]string{
	"metals_dev":   "METALS_DEV_API_KEY",
	"alphavantage": "ALPHAVANTAGE_API_KEY",
}

// LoadDotEnv loads key=value pairs from the .env file at path into the
// process environment, without overriding any variable already set. A
// missing file is not an error; callers that don't have one simply fall
// back to whatever the environment already provides.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// APIKeysFromEnv reads every known API-key env var and returns the subset
// that is actually set, keyed by the stable identifiers in spec §6.
func APIKeysFromEnv() map[string]string {
	keys := make(map[string]string)
	for id, envVar := range APIKeyEnvVars {
		if v, ok := os.LookupEnv(envVar); ok && v != "" {
			keys[id] = v
		}
	}
	return keys
}
