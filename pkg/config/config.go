package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "AUTHDIAG"

// Config holds the diagnostic configuration
type Config struct {
	// What to inspect
	Report ReportConfig `mapstructure:"report"`

	// Observability
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ReportConfig names the variables and file the report inspects
type ReportConfig struct {
	EnvFile      string `mapstructure:"env_file"`
	APIKeyVar    string `mapstructure:"api_key_var"`
	AuthTokenVar string `mapstructure:"auth_token_var"`
	MaxLines     int    `mapstructure:"max_lines"`
	KeyPrefix    string `mapstructure:"key_prefix"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from defaults, an optional config file and
// AUTHDIAG_* environment variables
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Set up environment variable handling
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("authdiag")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/authdiag")

	// Read config file if it exists (not required)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("report.env_file", ".env")
	v.SetDefault("report.api_key_var", "ANTHROPIC_API_KEY")
	v.SetDefault("report.auth_token_var", "ANTHROPIC_AUTH_TOKEN")
	v.SetDefault("report.max_lines", 20)
	v.SetDefault("report.key_prefix", "sk-")

	v.SetDefault("observability.logging.level", "warn")
	v.SetDefault("observability.logging.format", "pretty")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Report.EnvFile == "" {
		return fmt.Errorf("env file path is required")
	}

	if c.Report.APIKeyVar == "" || c.Report.AuthTokenVar == "" {
		return fmt.Errorf("both variable names are required")
	}

	if c.Report.APIKeyVar == c.Report.AuthTokenVar {
		return fmt.Errorf("variable names must differ: %s", c.Report.APIKeyVar)
	}

	if c.Report.KeyPrefix == "" {
		return fmt.Errorf("key prefix is required")
	}

	if c.Report.MaxLines <= 0 {
		return fmt.Errorf("invalid max lines: %d", c.Report.MaxLines)
	}

	return nil
}

// Variables returns the inspected variable names in report order
func (c *Config) Variables() []string {
	return []string{c.Report.APIKeyVar, c.Report.AuthTokenVar}
}

// IsPretty returns true if logs should be human-readable
func (c *Config) IsPretty() bool {
	return c.Observability.Logging.Format == "pretty"
}
