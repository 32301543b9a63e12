package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/fitness"
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultRunConfig_IsValid(t *testing.T) {
	cfg := NewDefaultRunConfig()

	assert.Equal(t, DefaultFitness, cfg.Fitness.Name)
	assert.Equal(t, DefaultGenomeLength, cfg.GA.GenomeLength)
	assert.True(t, cfg.GA.Elitism)
	assert.NoError(t, NewRunValidator().Validate(cfg))
}

func TestLoadConfig_FileOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "run.json", `{
		"name": "kicker-demo",
		"fitness": {"name": "kicker", "kicker_bonus": 50},
		"ga": {"genome_length": 6, "mutation_rate": 0.2, "target_score": 50},
		"storage": {"backend": "memory"}
	}`)

	manager := &RunConfigManager{validator: NewRunValidator(), getenv: envMap(nil)}
	cfg, err := manager.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "kicker-demo", cfg.Name)
	assert.Equal(t, "kicker", cfg.Fitness.Name)
	assert.Equal(t, 50.0, cfg.Fitness.KickerBonus)
	assert.Equal(t, 6, cfg.GA.GenomeLength)
	assert.Equal(t, 0.2, cfg.GA.MutationRate)
	require.NotNil(t, cfg.GA.TargetScore)
	assert.Equal(t, 50.0, *cfg.GA.TargetScore)
	assert.Equal(t, optimization.DefaultPopulationSize, cfg.GA.PopulationSize, "unset fields keep defaults")
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.NoError(t, manager.ValidateConfig(cfg))
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "run.json", `{"ga": {"genome_length": 6, "population_size": 10}}`)

	manager := &RunConfigManager{validator: NewRunValidator(), getenv: envMap(map[string]string{
		EnvGenomeLength:   "12",
		EnvMutationRate:   "0.1",
		EnvElitism:        "false",
		EnvTargetScore:    "11",
		EnvSeed:           "-7",
		EnvSelection:      "tournament",
		EnvCrossover:      "uniform",
		EnvFitness:        "onemax",
		EnvStore:          "sqlite",
		EnvSQLitePath:     "/tmp/runs.db",
		EnvMetricsAddr:    ":9100",
		EnvMaxGenerations: " 40 ",
	})}

	cfg, err := manager.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.GA.GenomeLength)
	assert.Equal(t, 10, cfg.GA.PopulationSize)
	assert.Equal(t, 0.1, cfg.GA.MutationRate)
	assert.False(t, cfg.GA.Elitism)
	assert.Equal(t, 11.0, *cfg.GA.TargetScore)
	assert.Equal(t, int64(-7), cfg.GA.Seed)
	assert.Equal(t, 40, cfg.GA.MaxGenerations)
	assert.Equal(t, "tournament", cfg.GA.Selection)
	assert.Equal(t, "uniform", cfg.GA.Crossover)
	assert.Equal(t, "onemax", cfg.Fitness.Name)
	assert.Equal(t, StorageConfig{Backend: "sqlite", SQLitePath: "/tmp/runs.db"}, cfg.Storage)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
	assert.NoError(t, manager.ValidateConfig(cfg))
}

func TestLoadConfig_Errors(t *testing.T) {
	manager := &RunConfigManager{validator: NewRunValidator(), getenv: envMap(nil)}

	_, err := manager.LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = manager.LoadConfig(writeFile(t, "bad.json", `{"ga": `))
	assert.Error(t, err)

	manager.getenv = envMap(map[string]string{EnvPopulationSize: "many"})
	_, err = manager.LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPopulationSize)
}

func TestRunValidator(t *testing.T) {
	cases := map[string]func(*RunConfig){
		"empty name":           func(c *RunConfig) { c.Name = " " },
		"unknown fitness":      func(c *RunConfig) { c.Fitness.Name = "sphere" },
		"negative trap size":   func(c *RunConfig) { c.Fitness.TrapSize = -1 },
		"unknown backend":      func(c *RunConfig) { c.Storage.Backend = "redis" },
		"sqlite without path":  func(c *RunConfig) { c.Storage = StorageConfig{Backend: "sqlite"} },
		"mutation rate":        func(c *RunConfig) { c.GA.MutationRate = 1.5 },
		"population size":      func(c *RunConfig) { c.GA.PopulationSize = 0 },
		"negative progress":    func(c *RunConfig) { c.Output.ProgressSegments = -1 },
		"infinite target":      func(c *RunConfig) { c.GA = c.GA.WithTarget(math.Inf(1)) },
		"unknown selection":    func(c *RunConfig) { c.GA.Selection = "lottery" },
		"zero genome length":   func(c *RunConfig) { c.GA.GenomeLength = 0 },
		"zero max generations": func(c *RunConfig) { c.GA.MaxGenerations = 0 },
	}

	for name, edit := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultRunConfig()
			edit(cfg)
			err := NewRunValidator().Validate(cfg)
			require.Error(t, err)
			assert.True(t, gaerrors.IsInvalidConfiguration(err))
		})
	}

	assert.Error(t, NewRunValidator().Validate(nil))
}

func TestEngineConfig_AutoMutationRate(t *testing.T) {
	cfg := NewDefaultRunConfig()
	cfg.GA.GenomeLength = 40
	cfg.GA.MutationRate = 0.5

	assert.Equal(t, 0.5, cfg.EngineConfig().MutationRate)

	cfg.AutoMutationRate = true
	assert.Equal(t, 0.025, cfg.EngineConfig().MutationRate)
	assert.Equal(t, 0.5, cfg.GA.MutationRate, "the stored config is left untouched")
}

func TestFitnessFunction(t *testing.T) {
	cfg := NewDefaultRunConfig()
	cfg.Fitness = FitnessConfig{Name: "trap", Params: fitness.Params{TrapSize: 3}}

	fn, err := cfg.FitnessFunction()
	require.NoError(t, err)
	assert.Equal(t, fitness.DeceptiveTrap{K: 3}, fn)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	manager := &RunConfigManager{validator: NewRunValidator(), getenv: envMap(nil)}
	cfg := NewDefaultRunConfig()
	cfg.Name = "saved"
	cfg.GA = cfg.GA.WithTarget(31)

	path := filepath.Join(t.TempDir(), "nested", BestConfigFile)
	require.NoError(t, manager.SaveConfig(cfg, path))

	loaded, err := manager.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "GA_SEED=99\nGA_FITNESS=kicker\n")

	values, err := ReadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{EnvSeed: "99", EnvFitness: "kicker"}, values)

	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)
	t.Setenv(EnvFitness, "onemax")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "99", os.Getenv(EnvSeed))
	assert.Equal(t, "onemax", os.Getenv(EnvFitness), "existing variables win")

	assert.Error(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
}
