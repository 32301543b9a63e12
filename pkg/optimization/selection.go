package optimization

import (
	"fmt"
	"math/rand"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

const (
	SelectionRoulette   = "roulette"
	SelectionTournament = "tournament"
	SelectionRank       = "rank"

	DefaultTournamentSize = 3
)

func checkSelectable(rng *rand.Rand, population Population) error {
	if rng == nil {
		return fmt.Errorf("random source is required")
	}
	if population.Size() == 0 {
		return fmt.Errorf("cannot select from an empty population")
	}
	return nil
}

func pickPair(rng *rand.Rand, population Population, pick func() int) (genome.Genome, genome.Genome, error) {
	if err := checkSelectable(rng, population); err != nil {
		return genome.Genome{}, genome.Genome{}, err
	}
	a := population.At(pick()).Genome
	b := population.At(pick()).Genome
	return a, b, nil
}

// RouletteSelector picks each parent with probability proportional to its score.
// Negative scores weigh zero. When the total weight is not positive every
// member is equally likely instead.
type RouletteSelector struct{}

func (RouletteSelector) Name() string {
	return SelectionRoulette
}

func (s RouletteSelector) Select(rng *rand.Rand, population Population) (genome.Genome, genome.Genome, error) {
	total := 0.0
	for i := 0; i < population.Size(); i++ {
		total += rouletteWeight(population.At(i).Score)
	}

	if total <= 0 {
		return pickPair(rng, population, func() int { return rng.Intn(population.Size()) })
	}
	return pickPair(rng, population, func() int { return spin(rng, population, total) })
}

func rouletteWeight(score float64) float64 {
	if score < 0 {
		return 0
	}
	return score
}

func spin(rng *rand.Rand, population Population, total float64) int {
	r := rng.Float64() * total
	accumulate := 0.0
	last := 0
	for i := 0; i < population.Size(); i++ {
		w := rouletteWeight(population.At(i).Score)
		if w == 0 {
			continue
		}
		accumulate += w
		last = i
		if r < accumulate {
			return i
		}
	}
	// Rounding can leave r just past the final boundary.
	return last
}

// TournamentSelector samples Size members uniformly and keeps the fittest
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Name() string {
	return SelectionTournament
}

func (s TournamentSelector) Select(rng *rand.Rand, population Population) (genome.Genome, genome.Genome, error) {
	size := s.Size
	if size <= 0 {
		size = DefaultTournamentSize
	}

	return pickPair(rng, population, func() int {
		best := rng.Intn(population.Size())
		for i := 1; i < size; i++ {
			candidate := rng.Intn(population.Size())
			if population.At(candidate).Score > population.At(best).Score {
				best = candidate
			}
		}
		return best
	})
}

// RankSelector weighs members by rank instead of raw score: the best of N
// members weighs N, the worst weighs 1. Scale and sign of scores do not matter.
type RankSelector struct{}

func (RankSelector) Name() string {
	return SelectionRank
}

func (s RankSelector) Select(rng *rand.Rand, population Population) (genome.Genome, genome.Genome, error) {
	if err := checkSelectable(rng, population); err != nil {
		return genome.Genome{}, genome.Genome{}, err
	}

	ranked := population.SortedByFitness()
	n := ranked.Size()
	total := n * (n + 1) / 2

	pick := func() int {
		r := rng.Intn(total)
		for i := 0; i < n; i++ {
			r -= n - i
			if r < 0 {
				return i
			}
		}
		return n - 1
	}
	return pickPair(rng, ranked, pick)
}

// NewSelector maps a selection name to a Selector
func NewSelector(name string, tournamentSize int) (Selector, error) {
	switch name {
	case "", SelectionRoulette:
		return RouletteSelector{}, nil
	case SelectionTournament:
		if tournamentSize < 0 {
			return nil, gaerrors.InvalidConfiguration("selection", "tournament size must be non-negative, got: %d", tournamentSize)
		}
		return TournamentSelector{Size: tournamentSize}, nil
	case SelectionRank:
		return RankSelector{}, nil
	default:
		return nil, gaerrors.InvalidConfiguration("selection", "unsupported selection %q, expected one of [%s, %s, %s]",
			name, SelectionRoulette, SelectionTournament, SelectionRank)
	}
}
