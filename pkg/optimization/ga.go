package optimization

import (
	"context"
	"fmt"
	"math/rand"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
)

// Evolver drives the generational loop: evaluate, report, stop or breed.
// It is single-threaded and owns its population for the whole run.
type Evolver struct {
	cfg       Config
	fitness   FitnessFunction
	reporter  Reporter
	selector  Selector
	crossover CrossoverFunc
	rng       *rand.Rand

	state      State
	generation int
	population Population
	best       ScoredGenome
	hasBest    bool
	history    []GenerationStats
	failure    error
}

// NewEvolver validates cfg and builds the initial population with a generator seeded from cfg.Seed
func NewEvolver(cfg Config, fitness FitnessFunction, reporter Reporter) (*Evolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewEvolverWithRand(cfg, fitness, reporter, rand.New(rand.NewSource(cfg.Seed)))
}

// NewEvolverWithRand is NewEvolver with an explicitly injected random source.
// Configuration is checked before rng is used, so a rejected config consumes no randomness.
func NewEvolverWithRand(cfg Config, fitness FitnessFunction, reporter Reporter, rng *rand.Rand) (*Evolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fitness == nil {
		return nil, gaerrors.InvalidConfiguration("evolver", "fitness function is required")
	}
	if rng == nil {
		return nil, gaerrors.InvalidConfiguration("evolver", "random source is required")
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	// Validate already accepted both names.
	selector, _ := NewSelector(cfg.Selection, cfg.TournamentSize)
	crossover, _ := NewCrossover(cfg.Crossover)

	population, err := NewRandomPopulation(rng, cfg.PopulationSize, cfg.GenomeLength)
	if err != nil {
		return nil, err
	}

	return &Evolver{
		cfg:        cfg,
		fitness:    fitness,
		reporter:   reporter,
		selector:   selector,
		crossover:  crossover,
		rng:        rng,
		state:      StateInitialized,
		population: population,
		history:    make([]GenerationStats, 0, cfg.MaxGenerations+1),
	}, nil
}

// State returns the current lifecycle state
func (e *Evolver) State() State {
	return e.state
}

// Generation returns the generation counter
func (e *Evolver) Generation() int {
	return e.generation
}

// Population returns a copy of the current population
func (e *Evolver) Population() Population {
	return NewPopulation(e.population.members)
}

// Best returns the fittest genome seen so far in any generation
func (e *Evolver) Best() (ScoredGenome, bool) {
	return e.best, e.hasBest
}

// History returns the stats of every evaluated generation so far
func (e *Evolver) History() []GenerationStats {
	out := make([]GenerationStats, len(e.history))
	copy(out, e.history)
	return out
}

// Config returns the configuration the evolver was built with
func (e *Evolver) Config() Config {
	return e.cfg
}

// Step runs one generation. The returned stats describe the generation that was
// just evaluated. A fitness error is returned unchanged and is fatal: every later
// Step returns the same error without evaluating again.
func (e *Evolver) Step(ctx context.Context) (GenerationStats, error) {
	if e.state.Terminal() {
		return GenerationStats{}, gaerrors.RunFinished("evolver", e.state.String())
	}
	if e.failure != nil {
		return GenerationStats{}, e.failure
	}
	e.state = StateRunning

	evaluated, err := e.population.Evaluate(e.fitness)
	if err != nil {
		e.failure = err
		return GenerationStats{}, err
	}
	sorted := evaluated.SortedByFitness()
	e.population = sorted

	stats := computeStats(e.generation, sorted)
	e.history = append(e.history, stats)
	if top := sorted.At(0); !e.hasBest || top.Score > e.best.Score {
		e.best = top
		e.hasBest = true
	}

	e.reporter.Report(stats)

	switch {
	case e.cfg.TargetScore != nil && stats.BestScore >= *e.cfg.TargetScore:
		e.state = StateConverged
		return stats, nil
	case e.generation >= e.cfg.MaxGenerations:
		e.state = StateExhausted
		return stats, nil
	}

	next, err := e.nextGeneration(sorted)
	if err != nil {
		return stats, err
	}
	e.population = next
	e.generation++
	return stats, nil
}

// Run steps until the evolver reaches a terminal state.
// ctx is only checked between generations.
func (e *Evolver) Run(ctx context.Context) (RunResult, error) {
	for !e.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return e.result(), err
		}
		if _, err := e.Step(ctx); err != nil {
			return e.result(), err
		}
	}
	return e.result(), nil
}

func (e *Evolver) result() RunResult {
	return RunResult{
		State:       e.state,
		Generations: len(e.history),
		Best:        e.best,
		History:     e.History(),
		Final:       e.Population(),
	}
}

// nextGeneration builds a fresh population from an evaluated one sorted best first
func (e *Evolver) nextGeneration(sorted Population) (Population, error) {
	size := e.cfg.PopulationSize
	next := make([]ScoredGenome, 0, size)

	// Elitism: the best genome moves on unchanged with its cached score
	if e.cfg.Elitism {
		next = append(next, sorted.At(0))
	}

	for len(next) < size {
		parentA, parentB, err := e.selector.Select(e.rng, sorted)
		if err != nil {
			return Population{}, fmt.Errorf("select parents: %w", err)
		}

		childA, childB, err := e.crossover(e.rng, parentA, parentB, e.cfg.CrossoverRate)
		if err != nil {
			return Population{}, fmt.Errorf("crossover: %w", err)
		}

		childA, err = Mutate(e.rng, childA, e.cfg.MutationRate)
		if err != nil {
			return Population{}, fmt.Errorf("mutate: %w", err)
		}
		childB, err = Mutate(e.rng, childB, e.cfg.MutationRate)
		if err != nil {
			return Population{}, fmt.Errorf("mutate: %w", err)
		}

		next = append(next, Unscored(childA))
		if len(next) < size {
			next = append(next, Unscored(childB))
		}
	}

	return Population{members: next}, nil
}
