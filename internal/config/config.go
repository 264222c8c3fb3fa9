package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// RotaOverride expands one recurring demand rule (§10.5) into a
// location's teams_per_date entries before Run is called.
type RotaOverride struct {
	Location        string         `yaml:"location" validate:"required"`
	RRule           string         `yaml:"rrule" validate:"required"`
	TeamsPerWeekday map[string]int `yaml:"teamsPerWeekday,omitempty"`
}

// Weights mirrors §4.3's weights map; missing keys default to 0, matching
// the core's own "missing keys = 0" contract.
type Weights struct {
	Location         int `yaml:"location,omitempty"`
	Fairness         int `yaml:"fairness,omitempty"`
	Monthly          int `yaml:"monthly,omitempty"`
	MonthlyAvg       int `yaml:"monthlyAvg,omitempty"`
	WeeklyMulti      int `yaml:"weeklyMulti,omitempty"`
	MonthlyMinAvail  int `yaml:"monthlyMinAvail,omitempty"`
	LocationFairness int `yaml:"locationFairness,omitempty"`
}

// Notify configures the best-effort published-schedule email (§10.6).
type Notify struct {
	Enabled   bool   `yaml:"enabled"`
	GmailUser string `yaml:"gmailUser,omitempty"`
	Recipient string `yaml:"recipient,omitempty" validate:"omitempty,email"`
	// TokenFile caches the gmail.send OAuth token on disk so unattended
	// `generate` runs don't need an interactive browser consent each time.
	TokenFile string `yaml:"tokenFile,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseDSN string `yaml:"databaseDSN" validate:"required"`

	Weights          Weights        `yaml:"weights,omitempty"`
	WMax             int            `yaml:"wMax,omitempty" validate:"omitempty,min=1"`
	SolverTimeLimitS int            `yaml:"solverTimeLimitSeconds,omitempty" validate:"omitempty,min=1"`
	SolverWorkers    int            `yaml:"solverWorkers,omitempty" validate:"omitempty,min=1"`
	RotaOverrides    []RotaOverride `yaml:"rotaOverrides,omitempty" validate:"dive"`
	Notify           Notify         `yaml:"notify,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "rooster_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
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

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each override
	for i, override := range cfg.RotaOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in rotaOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for config file in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "rooster_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "rooster_config.yaml"
	if env != "" {
		configFileName = "rooster_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
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
