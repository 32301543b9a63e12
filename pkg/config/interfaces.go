// Package config loads and validates run configuration for the evolve command.
package config

// ConfigManager handles loading, validation, and persistence of run configurations
type ConfigManager interface {
	// LoadConfig loads defaults, then the optional JSON file, then GA_* environment overrides
	LoadConfig(configFile string) (*RunConfig, error)

	// ValidateConfig validates a configuration
	ValidateConfig(cfg *RunConfig) error

	// SaveConfig saves configuration to file
	SaveConfig(cfg *RunConfig, path string) error
}

// Validator interface for configuration validation
type Validator interface {
	Validate(cfg *RunConfig) error
}

// Common configuration constants
const (
	DefaultRunName          = "bitga"
	DefaultFitness          = "alternating"
	DefaultGenomeLength     = 32
	DefaultStoreBackend     = "none"
	DefaultSQLitePath       = "results/runs.db"
	DefaultResultsDir       = "results"
	DefaultLogDir           = "logs"
	DefaultProgressSegments = 25

	// File and directory constants
	ResultsFile    = "history.xlsx"
	BestConfigFile = "run.json"
)

// Environment keys read by ApplyEnv
const (
	EnvGenomeLength   = "GA_GENOME_LENGTH"
	EnvPopulationSize = "GA_POPULATION_SIZE"
	EnvCrossoverRate  = "GA_CROSSOVER_RATE"
	EnvMutationRate   = "GA_MUTATION_RATE"
	EnvElitism        = "GA_ELITISM"
	EnvMaxGenerations = "GA_MAX_GENERATIONS"
	EnvTargetScore    = "GA_TARGET_SCORE"
	EnvSeed           = "GA_SEED"
	EnvSelection      = "GA_SELECTION"
	EnvCrossover      = "GA_CROSSOVER"
	EnvFitness        = "GA_FITNESS"
	EnvStore          = "GA_STORE"
	EnvSQLitePath     = "GA_SQLITE_PATH"
	EnvMetricsAddr    = "GA_METRICS_ADDR"
)
