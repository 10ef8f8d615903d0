package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default merge parameters.
const (
	DefaultLayer       = "treebank"
	DefaultTreeAnno    = "tree"
	DefaultTreeDisplay = "tree"
)

// Config holds the application configuration loaded from flags,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool

	// Merge parameters
	Output      string
	Rename      string
	Layer       string
	TreeAnno    string
	TreeDisplay string
	IriAnno     string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// command-line flags (applied later by cobra), environment variables,
// .env files, defaults.
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),

		Layer:       getEnvOrDefault("REMANNIS_LAYER", DefaultLayer),
		TreeAnno:    getEnvOrDefault("REMANNIS_TREE_ANNO", DefaultTreeAnno),
		TreeDisplay: getEnvOrDefault("REMANNIS_TREE_DISPLAY", DefaultTreeDisplay),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags. Called
// after cobra parses flags so flag values take precedence over env vars.
func (c *Config) UpdateFromFlags(verbose, quiet bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
