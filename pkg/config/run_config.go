package config

import (
	"github.com/ducminhle1904/bitstring-ga/pkg/fitness"
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// FitnessConfig selects a registered fitness function and its tunables
type FitnessConfig struct {
	Name string `json:"name"`
	fitness.Params
}

// OutputConfig controls where run artifacts go
type OutputConfig struct {
	Directory string `json:"directory"`
	ExcelPath string `json:"excel_path,omitempty"`
	LogDir    string `json:"log_dir,omitempty"`
	// Number of progress lines printed over a full run
	ProgressSegments int `json:"progress_segments"`
}

// StorageConfig selects the run-history backend: none, memory or sqlite
type StorageConfig struct {
	Backend    string `json:"backend"`
	SQLitePath string `json:"sqlite_path,omitempty"`
}

// MetricsConfig enables the metrics endpoint when Address is set
type MetricsConfig struct {
	Address string `json:"address,omitempty"`
}

// RunConfig holds all configuration for one evolve run
type RunConfig struct {
	Name    string              `json:"name"`
	Fitness FitnessConfig       `json:"fitness"`
	GA      optimization.Config `json:"ga"`

	// Replace GA.MutationRate with 1/GenomeLength
	AutoMutationRate bool `json:"auto_mutation_rate,omitempty"`

	Output  OutputConfig  `json:"output"`
	Storage StorageConfig `json:"storage"`
	Metrics MetricsConfig `json:"metrics"`
}

// NewDefaultRunConfig creates a run configuration with default values
func NewDefaultRunConfig() *RunConfig {
	return &RunConfig{
		Name: DefaultRunName,
		Fitness: FitnessConfig{
			Name: DefaultFitness,
			Params: fitness.Params{
				KickerBonus: fitness.DefaultKickerBonus,
			},
		},
		GA: optimization.DefaultConfig(DefaultGenomeLength),
		Output: OutputConfig{
			Directory:        DefaultResultsDir,
			LogDir:           DefaultLogDir,
			ProgressSegments: DefaultProgressSegments,
		},
		Storage: StorageConfig{
			Backend:    DefaultStoreBackend,
			SQLitePath: DefaultSQLitePath,
		},
	}
}

// EngineConfig returns the evolver configuration with derived values applied
func (c *RunConfig) EngineConfig() optimization.Config {
	cfg := c.GA
	if c.AutoMutationRate && cfg.GenomeLength > 0 {
		cfg.MutationRate = 1.0 / float64(cfg.GenomeLength)
	}
	return cfg
}

// FitnessFunction resolves the configured fitness function
func (c *RunConfig) FitnessFunction() (fitness.Function, error) {
	return fitness.Lookup(c.Fitness.Name, c.Fitness.Params)
}
