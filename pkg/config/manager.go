package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// RunConfigManager implements ConfigManager for evolve runs
type RunConfigManager struct {
	validator Validator
	getenv    func(string) string
}

// NewRunConfigManager creates a manager that reads overrides from the process environment
func NewRunConfigManager() *RunConfigManager {
	return &RunConfigManager{
		validator: NewRunValidator(),
		getenv:    os.Getenv,
	}
}

// LoadConfig loads defaults, then configFile if given, then GA_* environment overrides
func (m *RunConfigManager) LoadConfig(configFile string) (*RunConfig, error) {
	cfg := NewDefaultRunConfig()

	if configFile != "" {
		if err := m.loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := ApplyEnv(cfg, m.getenv); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a JSON file onto cfg; fields missing from the file keep their current values
func (m *RunConfigManager) loadFromFile(configFile string, cfg *RunConfig) error {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}

	return nil
}

// ValidateConfig validates a configuration using the validator
func (m *RunConfigManager) ValidateConfig(cfg *RunConfig) error {
	return m.validator.Validate(cfg)
}

// SaveConfig saves configuration to file
func (m *RunConfigManager) SaveConfig(cfg *RunConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads a .env file into the process environment without overriding variables already set
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return godotenv.Load(path)
}

// ReadEnvFile parses a .env file without touching the process environment
func ReadEnvFile(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// ApplyEnv overrides cfg with every GA_* key getenv returns a non-empty value for
func ApplyEnv(cfg *RunConfig, getenv func(string) string) error {
	lookup := func(key string) (string, bool) {
		value := strings.TrimSpace(getenv(key))
		return value, value != ""
	}

	ints := []struct {
		key    string
		target *int
	}{
		{EnvGenomeLength, &cfg.GA.GenomeLength},
		{EnvPopulationSize, &cfg.GA.PopulationSize},
		{EnvMaxGenerations, &cfg.GA.MaxGenerations},
	}
	for _, entry := range ints {
		if raw, ok := lookup(entry.key); ok {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s: invalid integer %q", entry.key, raw)
			}
			*entry.target = v
		}
	}

	floats := []struct {
		key    string
		target *float64
	}{
		{EnvCrossoverRate, &cfg.GA.CrossoverRate},
		{EnvMutationRate, &cfg.GA.MutationRate},
	}
	for _, entry := range floats {
		if raw, ok := lookup(entry.key); ok {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("%s: invalid number %q", entry.key, raw)
			}
			*entry.target = v
		}
	}

	if raw, ok := lookup(EnvElitism); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvElitism, raw)
		}
		cfg.GA.Elitism = v
	}

	if raw, ok := lookup(EnvTargetScore); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", EnvTargetScore, raw)
		}
		cfg.GA = cfg.GA.WithTarget(v)
	}

	if raw, ok := lookup(EnvSeed); ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvSeed, raw)
		}
		cfg.GA.Seed = v
	}

	strs := []struct {
		key    string
		target *string
	}{
		{EnvSelection, &cfg.GA.Selection},
		{EnvCrossover, &cfg.GA.Crossover},
		{EnvFitness, &cfg.Fitness.Name},
		{EnvStore, &cfg.Storage.Backend},
		{EnvSQLitePath, &cfg.Storage.SQLitePath},
		{EnvMetricsAddr, &cfg.Metrics.Address},
	}
	for _, entry := range strs {
		if raw, ok := lookup(entry.key); ok {
			*entry.target = raw
		}
	}

	return nil
}
