package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseDSN:      "postgres://localhost/rooster",
		Weights:          Weights{Fairness: 1, MonthlyAvg: 10},
		WMax:             2,
		SolverTimeLimitS: 30,
		RotaOverrides: []RotaOverride{
			{
				Location:        "lab",
				RRule:           "FREQ=WEEKLY;BYDAY=SU",
				TeamsPerWeekday: map[string]int{"sunday": 1},
			},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{DatabaseDSN: "postgres://localhost/rooster"}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		DatabaseDSN: "postgres://localhost/rooster",
		RotaOverrides: []RotaOverride{
			{Location: "lab", RRule: "INVALID_RRULE_SYNTAX"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
databaseDSN: "postgres://localhost/rooster"
weights:
  fairness: 1
  monthlyAvg: 10
wMax: 2
solverTimeLimitSeconds: 30
rotaOverrides:
  - location: "lab"
    rrule: "FREQ=WEEKLY;BYDAY=SU"
    teamsPerWeekday:
      sunday: 1
notify:
  enabled: true
  gmailUser: "scheduler@example.com"
  recipient: "team@example.com"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/rooster", cfg.DatabaseDSN)
	assert.Equal(t, 1, cfg.Weights.Fairness)
	assert.Equal(t, 10, cfg.Weights.MonthlyAvg)
	assert.Equal(t, 2, cfg.WMax)
	assert.Equal(t, 30, cfg.SolverTimeLimitS)

	require.Len(t, cfg.RotaOverrides, 1)
	override := cfg.RotaOverrides[0]
	assert.Equal(t, "lab", override.Location)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SU", override.RRule)
	assert.Equal(t, 1, override.TeamsPerWeekday["sunday"])

	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, "team@example.com", cfg.Notify.Recipient)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	invalidConfig := `
databaseDSN: "postgres://localhost/rooster"
rotaOverrides:
  - location: "lab"
    rrule: "INVALID_RRULE_SYNTAX"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimalConfig := `
databaseDSN: "postgres://localhost/rooster"
`

	err := os.WriteFile(configPath, []byte(minimalConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/rooster", cfg.DatabaseDSN)
	assert.Empty(t, cfg.RotaOverrides)
	assert.False(t, cfg.Notify.Enabled)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
weights:
  fairness: 1
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadWithEnv_FileNotFound(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	_, err = LoadWithEnv("nonexistent")
	assert.Error(t, err)
}
