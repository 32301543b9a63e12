package optimization

import (
	"fmt"
	"math/rand"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

const (
	CrossoverSinglePoint = "single_point"
	CrossoverUniform     = "uniform"
)

func validateRate(operator string, rate float64) error {
	if !inUnitInterval(rate) {
		return gaerrors.InvalidConfiguration(operator, "%s rate must be between 0 and 1, got: %.4f", operator, rate)
	}
	return nil
}

func validateParents(a, b genome.Genome) error {
	if a.Len() != b.Len() {
		return gaerrors.InvalidConfiguration("crossover", "parent lengths differ: %d != %d", a.Len(), b.Len())
	}
	return nil
}

// Crossover performs single-point crossover with probability rate.
// The point p is drawn uniformly from [1, L-1]; childA = a[0:p]+b[p:L] and
// childB = b[0:p]+a[p:L]. Otherwise (or when L == 1) the children are copies of the parents.
func Crossover(rng *rand.Rand, a, b genome.Genome, rate float64) (genome.Genome, genome.Genome, error) {
	if err := validateRate("crossover", rate); err != nil {
		return genome.Genome{}, genome.Genome{}, err
	}
	if err := validateParents(a, b); err != nil {
		return genome.Genome{}, genome.Genome{}, err
	}
	if rng == nil {
		return genome.Genome{}, genome.Genome{}, fmt.Errorf("random source is required")
	}

	if a.Len() < 2 || rng.Float64() >= rate {
		return a.Clone(), b.Clone(), nil
	}

	p := 1 + rng.Intn(a.Len()-1)
	return a.Splice(b, p), b.Splice(a, p), nil
}

// UniformCrossover swaps each position between the parents with probability 1/2
// when crossover fires (probability rate); otherwise the children are copies.
func UniformCrossover(rng *rand.Rand, a, b genome.Genome, rate float64) (genome.Genome, genome.Genome, error) {
	if err := validateRate("crossover", rate); err != nil {
		return genome.Genome{}, genome.Genome{}, err
	}
	if err := validateParents(a, b); err != nil {
		return genome.Genome{}, genome.Genome{}, err
	}
	if rng == nil {
		return genome.Genome{}, genome.Genome{}, fmt.Errorf("random source is required")
	}

	if rng.Float64() >= rate {
		return a.Clone(), b.Clone(), nil
	}

	swap := make([]bool, a.Len())
	for i := range swap {
		swap[i] = rng.Intn(2) == 1
	}

	// Flipping a bit where the parents differ is the same as taking the other parent's bit.
	childA := a.Flip(func(i int) bool { return swap[i] && a.Bit(i) != b.Bit(i) })
	childB := b.Flip(func(i int) bool { return swap[i] && a.Bit(i) != b.Bit(i) })
	return childA, childB, nil
}

// NewCrossover maps a crossover name to its operator
func NewCrossover(name string) (CrossoverFunc, error) {
	switch name {
	case "", CrossoverSinglePoint:
		return Crossover, nil
	case CrossoverUniform:
		return UniformCrossover, nil
	default:
		return nil, gaerrors.InvalidConfiguration("crossover", "unsupported crossover %q, expected one of [%s, %s]",
			name, CrossoverSinglePoint, CrossoverUniform)
	}
}

// Mutate flips each bit independently with probability rate and returns a new genome
func Mutate(rng *rand.Rand, g genome.Genome, rate float64) (genome.Genome, error) {
	if err := validateRate("mutation", rate); err != nil {
		return genome.Genome{}, err
	}
	if rng == nil {
		return genome.Genome{}, fmt.Errorf("random source is required")
	}

	return g.Flip(func(int) bool { return rng.Float64() < rate }), nil
}

// inUnitInterval also rejects NaN
func inUnitInterval(rate float64) bool {
	return rate >= 0 && rate <= 1
}
