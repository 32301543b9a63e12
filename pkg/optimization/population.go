package optimization

import (
	"fmt"
	"math/rand"
	"sort"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

// Population is an ordered collection of scored genomes for one generation.
// Every operation that changes members returns a new Population.
type Population struct {
	members []ScoredGenome
}

// NewPopulation copies members into a new population
func NewPopulation(members []ScoredGenome) Population {
	copied := make([]ScoredGenome, len(members))
	copy(copied, members)
	return Population{members: copied}
}

// NewRandomPopulation returns size random genomes of the given length, all unevaluated.
// Both arguments are validated before any value is drawn from rng.
func NewRandomPopulation(rng *rand.Rand, size, length int) (Population, error) {
	if size < 1 {
		return Population{}, gaerrors.InvalidConfiguration("population", "population size must be at least 1, got: %d", size)
	}
	if length < 1 {
		return Population{}, gaerrors.InvalidConfiguration("population", "genome length must be at least 1, got: %d", length)
	}
	if rng == nil {
		return Population{}, fmt.Errorf("random source is required")
	}

	members := make([]ScoredGenome, size)
	for i := range members {
		g, err := genome.Random(rng, length)
		if err != nil {
			return Population{}, err
		}
		members[i] = Unscored(g)
	}
	return Population{members: members}, nil
}

// Size returns the number of members
func (p Population) Size() int {
	return len(p.members)
}

// At returns the member at index i
func (p Population) At(i int) ScoredGenome {
	return p.members[i]
}

// Members returns a copy of all members in order
func (p Population) Members() []ScoredGenome {
	out := make([]ScoredGenome, len(p.members))
	copy(out, p.members)
	return out
}

// Evaluate scores every member lacking a cached score, calling fitness once per such member.
// A fitness error is returned as-is and no population is produced.
func (p Population) Evaluate(fitness FitnessFunction) (Population, error) {
	next := make([]ScoredGenome, len(p.members))
	for i, member := range p.members {
		if member.Evaluated {
			next[i] = member
			continue
		}
		score, err := fitness.Evaluate(member.Genome)
		if err != nil {
			return Population{}, err
		}
		next[i] = ScoredGenome{Genome: member.Genome, Score: score, Evaluated: true}
	}
	return Population{members: next}, nil
}

// Evaluated reports whether every member carries a cached score
func (p Population) Evaluated() bool {
	for _, member := range p.members {
		if !member.Evaluated {
			return false
		}
	}
	return true
}

// SortedByFitness returns a copy ordered by score, best first. Ties keep their order.
func (p Population) SortedByFitness() Population {
	sorted := p.Members()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return Population{members: sorted}
}

// Best returns the highest scoring member; the first one wins ties
func (p Population) Best() (ScoredGenome, bool) {
	if len(p.members) == 0 {
		return ScoredGenome{}, false
	}
	best := p.members[0]
	for _, member := range p.members[1:] {
		if member.Score > best.Score {
			best = member
		}
	}
	return best, true
}

// TotalScore sums all member scores
func (p Population) TotalScore() float64 {
	sum := 0.0
	for _, member := range p.members {
		sum += member.Score
	}
	return sum
}

// AverageFitness returns the mean member score
func (p Population) AverageFitness() float64 {
	if len(p.members) == 0 {
		return 0.0
	}
	return p.TotalScore() / float64(len(p.members))
}

// Distinct counts the distinct genomes in the population
func (p Population) Distinct() int {
	buckets := make(map[uint64][]genome.Genome, len(p.members))
	distinct := 0
	for _, member := range p.members {
		h := member.Genome.Hash()
		if containsGenome(buckets[h], member.Genome) {
			continue
		}
		buckets[h] = append(buckets[h], member.Genome)
		distinct++
	}
	return distinct
}

func containsGenome(bucket []genome.Genome, g genome.Genome) bool {
	for _, other := range bucket {
		if other.Equal(g) {
			return true
		}
	}
	return false
}
