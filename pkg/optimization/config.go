package optimization

import (
	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
)

// Defaults applied by DefaultConfig
const (
	DefaultPopulationSize = 50
	DefaultGenerations    = 200
	DefaultCrossoverRate  = 0.85
	DefaultMutationRate   = 0.02
)

// Config holds the run configuration passed once at Evolver construction
type Config struct {
	GenomeLength   int      `json:"genome_length"`
	PopulationSize int      `json:"population_size"`
	CrossoverRate  float64  `json:"crossover_rate"`
	MutationRate   float64  `json:"mutation_rate"`
	Elitism        bool     `json:"elitism"`
	MaxGenerations int      `json:"max_generations"`
	TargetScore    *float64 `json:"target_score,omitempty"`

	Seed           int64  `json:"seed"`
	Selection      string `json:"selection,omitempty"`
	TournamentSize int    `json:"tournament_size,omitempty"`
	Crossover      string `json:"crossover,omitempty"`
}

// DefaultConfig returns a config with the package defaults for the given genome length
func DefaultConfig(genomeLength int) Config {
	return Config{
		GenomeLength:   genomeLength,
		PopulationSize: DefaultPopulationSize,
		CrossoverRate:  DefaultCrossoverRate,
		MutationRate:   DefaultMutationRate,
		Elitism:        true,
		MaxGenerations: DefaultGenerations,
		Selection:      SelectionRoulette,
		TournamentSize: DefaultTournamentSize,
		Crossover:      CrossoverSinglePoint,
	}
}

// WithTarget returns a copy of c that stops early once the best score reaches target
func (c Config) WithTarget(target float64) Config {
	c.TargetScore = &target
	return c
}

// Validate checks every option and returns the first violation as an InvalidConfiguration error
func (c Config) Validate() error {
	if c.GenomeLength < 1 {
		return gaerrors.InvalidConfiguration("config", "genome length must be positive, got: %d", c.GenomeLength)
	}
	if c.PopulationSize < 1 {
		return gaerrors.InvalidConfiguration("config", "population size must be positive, got: %d", c.PopulationSize)
	}
	if !inUnitInterval(c.CrossoverRate) {
		return gaerrors.InvalidConfiguration("config", "crossover rate must be between 0 and 1, got: %.4f", c.CrossoverRate)
	}
	if !inUnitInterval(c.MutationRate) {
		return gaerrors.InvalidConfiguration("config", "mutation rate must be between 0 and 1, got: %.4f", c.MutationRate)
	}
	if c.MaxGenerations < 1 {
		return gaerrors.InvalidConfiguration("config", "max generations must be positive, got: %d", c.MaxGenerations)
	}
	if _, err := NewSelector(c.Selection, c.TournamentSize); err != nil {
		return err
	}
	if _, err := NewCrossover(c.Crossover); err != nil {
		return err
	}
	return nil
}
