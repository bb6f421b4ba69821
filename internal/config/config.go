package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port         int      `yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	AllowOrigins []string `yaml:"allowOrigins,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string for the remote
	// site_data store. Empty means local-only operation.
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	// DataDir holds the local fallback cache (one JSON file per key).
	DataDir string `yaml:"dataDir" validate:"required"`

	// SessionRRule is the recurrence rule used to date a new batch's
	// weeks (e.g. "FREQ=WEEKLY;BYDAY=SA"). Optional; empty leaves weeks
	// undated.
	SessionRRule string `yaml:"sessionRRule,omitempty"`

	// SeedMembers is the default roster applied when the store holds no
	// members yet.
	SeedMembers []string `yaml:"seedMembers,omitempty"`

	Server ServerConfig `yaml:"server,omitempty"`
}

// DefaultPort is used when the server port is unset.
const DefaultPort = 8080

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	port := c.Server.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf(":%d", port)
}

// Load loads and validates the configuration from clubsched_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.SessionRRule != "" {
		if _, err := rrule.StrToRRule(cfg.SessionRRule); err != nil {
			return fmt.Errorf("invalid sessionRRule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for clubsched_config.yaml in the current
// directory and the home directory.
func findConfigFile() (string, error) {
	configFileName := "clubsched_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
