// Package config loads runtime configuration from command-line flags,
// environment variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/NotMugil/nyt-tui/internal/api"
)

const (
	defaultEnvFile  = ".env"
	defaultLogLevel = "info"
	defaultPerMin   = 10
)

// Config holds the application configuration.
type Config struct {
	API    APIConfig
	Logger LoggerConfig
}

// APIConfig configures the NYT Books API client.
type APIConfig struct {
	// Key may be empty; the keyring and the setup screen fill it in later.
	Key            string
	BaseURL        string
	RequestsPerMin int
}

// LoggerConfig configures log output.
type LoggerConfig struct {
	// File is where logs are written. Empty disables logging.
	File  string
	Level string
}

// Load builds the configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	flags := flag.NewFlagSet("nyt-tui", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	apiKey := flags.String("api-key", "", "NYT Books API key")
	baseURL := flags.String("base-url", "", "NYT Books API base URL")
	logFile := flags.String("log-file", "", "Path of the log file (default: none)")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")
	perMin := flags.String("rate-per-minute", "", "Maximum API requests per minute (default: 10)")
	envFile := flags.String("env-file", defaultEnvFile, "Path to .env file")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg := &Config{
		API: APIConfig{
			Key:     getConfigValue(*apiKey, "NYT_API_KEY", ""),
			BaseURL: getConfigValue(*baseURL, "NYT_BASE_URL", api.DefaultBaseURL),
		},
		Logger: LoggerConfig{
			File:  expandHome(getConfigValue(*logFile, "NYT_LOG_FILE", "")),
			Level: strings.ToLower(getConfigValue(*logLevel, "NYT_LOG_LEVEL", defaultLogLevel)),
		},
	}

	rpm, err := getIntConfigValue(*perMin, "NYT_RATE_PER_MINUTE", defaultPerMin)
	if err != nil {
		return nil, err
	}
	cfg.API.RequestsPerMin = rpm

	return cfg, nil
}

// getConfigValue returns the first non-empty value from flag, env, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return defaultValue
}

// getIntConfigValue is getConfigValue for positive integers.
func getIntConfigValue(flagValue, envKey string, defaultValue int) (int, error) {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", envKey, raw)
	}
	return n, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
