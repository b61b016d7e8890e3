package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/aadsync/pkg/constants"
	"github.com/agentstation/aadsync/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Directory configuration
	TenantID        string
	GraphURL        string
	GraphScope      string
	HTTPTimeout     time.Duration
	StrictMutations bool

	// Logging configuration. LogLevel holds only an explicit --log-level;
	// ConfiguredLogLevel comes from LOG_LEVEL or the config file and ranks
	// below -v and -q.
	LogLevel           string
	ConfiguredLogLevel string
	LogFormat          string
	LogOutput          string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (AADSYNC_ prefix, AZURE_TENANT_ID)
// 3. .env files
// 4. Config file (configFile, or ~/.aadsync.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// .env files must be loaded before viper reads the environment
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("tenant_id", constants.EnvPrefix+"_TENANT_ID", "AZURE_TENANT_ID"); err != nil {
		return nil, errors.NewConfigError("env", "failed to bind tenant_id", err)
	}

	v.SetDefault("graph_url", constants.GraphBaseURL)
	v.SetDefault("graph_scope", constants.GraphScope)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "failed to read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
		// Missing default config file is fine
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		TenantID:        v.GetString("tenant_id"),
		GraphURL:        v.GetString("graph_url"),
		GraphScope:      v.GetString("graph_scope"),
		HTTPTimeout:     v.GetDuration("http_timeout"),
		StrictMutations: v.GetBool("strict_mutations"),

		ConfiguredLogLevel: getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput:          getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = constants.DefaultHTTPTimeout
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, tenantID string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if tenantID != "" {
		c.TenantID = tenantID
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables already set, so .env wins over .env.local.
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
