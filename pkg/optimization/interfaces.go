// Package optimization provides the genetic algorithm engine for fixed-length bit strings.
//
// The engine owns the population for the whole run; callers plug in a
// FitnessFunction to score genomes and a Reporter to observe progress.
package optimization

import (
	"math/rand"

	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

// FitnessFunction scores a genome; higher is better.
// It must be total and deterministic within a run. Errors are returned to the
// caller of the evolver unchanged and end the run.
type FitnessFunction interface {
	Evaluate(g genome.Genome) (float64, error)
}

// FitnessFunc adapts a plain function to FitnessFunction
type FitnessFunc func(g genome.Genome) (float64, error)

// Evaluate calls f(g)
func (f FitnessFunc) Evaluate(g genome.Genome) (float64, error) {
	return f(g)
}

// Scorer adapts an infallible scoring function to FitnessFunction
func Scorer(score func(g genome.Genome) float64) FitnessFunction {
	return FitnessFunc(func(g genome.Genome) (float64, error) {
		return score(g), nil
	})
}

// Reporter consumes per-generation statistics.
// It is called once per generation in strictly increasing generation order.
type Reporter interface {
	Report(stats GenerationStats)
}

// ReporterFunc adapts a plain function to Reporter
type ReporterFunc func(stats GenerationStats)

// Report calls f(stats)
func (f ReporterFunc) Report(stats GenerationStats) {
	f(stats)
}

// NopReporter discards every report
type NopReporter struct{}

func (NopReporter) Report(GenerationStats) {}

// Selector chooses two parents from an evaluated population, biased toward higher fitness.
// Parents are drawn independently with replacement; the only state is rng.
type Selector interface {
	Name() string
	Select(rng *rand.Rand, population Population) (genome.Genome, genome.Genome, error)
}

// CrossoverFunc recombines two parents into two children with probability rate
type CrossoverFunc func(rng *rand.Rand, a, b genome.Genome, rate float64) (genome.Genome, genome.Genome, error)
