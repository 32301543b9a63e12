package optimization

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/fitness"
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

func TestNewRandomPopulation(t *testing.T) {
	population, err := NewRandomPopulation(rand.New(rand.NewSource(1)), 20, 12)
	require.NoError(t, err)

	assert.Equal(t, 20, population.Size())
	assert.False(t, population.Evaluated())
	for _, member := range population.Members() {
		assert.Equal(t, 12, member.Genome.Len())
		assert.Equal(t, 0.0, member.Score)
		assert.False(t, member.Evaluated)
	}
}

func TestNewRandomPopulation_InvalidArgumentsConsumeNoRandomness(t *testing.T) {
	for _, tc := range []struct{ size, length int }{{0, 8}, {8, 0}, {-1, -1}} {
		rng := rand.New(rand.NewSource(42))
		_, err := NewRandomPopulation(rng, tc.size, tc.length)
		require.Error(t, err)
		assert.True(t, gaerrors.IsInvalidConfiguration(err))

		untouched := rand.New(rand.NewSource(42))
		assert.Equal(t, untouched.Int63(), rng.Int63(), "size=%d length=%d", tc.size, tc.length)
	}
}

func TestEvaluate_CallsFitnessOncePerUnevaluatedMember(t *testing.T) {
	population := NewPopulation([]ScoredGenome{
		Unscored(genome.MustParse("0101")),
		{Genome: genome.MustParse("1111"), Score: 42, Evaluated: true},
		Unscored(genome.MustParse("0000")),
	})

	calls := map[string]int{}
	fn := FitnessFunc(func(g genome.Genome) (float64, error) {
		calls[g.String()]++
		return float64(g.Ones()), nil
	})

	evaluated, err := population.Evaluate(fn)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"0101": 1, "0000": 1}, calls)
	assert.True(t, evaluated.Evaluated())
	assert.Equal(t, 2.0, evaluated.At(0).Score)
	assert.Equal(t, 42.0, evaluated.At(1).Score, "cached score is never recomputed")
	assert.Equal(t, 0.0, evaluated.At(2).Score)
	assert.False(t, population.At(0).Evaluated, "the source population is left unchanged")
}

func TestEvaluate_PropagatesFitnessErrorUnchanged(t *testing.T) {
	boom := errors.New("fitness exploded")
	population := NewPopulation([]ScoredGenome{Unscored(genome.MustParse("01"))})

	_, err := population.Evaluate(FitnessFunc(func(genome.Genome) (float64, error) {
		return 0, boom
	}))
	assert.Same(t, boom, err)
}

func TestPopulationStatistics(t *testing.T) {
	population := NewPopulation([]ScoredGenome{
		{Genome: genome.MustParse("00"), Score: 1, Evaluated: true},
		{Genome: genome.MustParse("11"), Score: 5, Evaluated: true},
		{Genome: genome.MustParse("01"), Score: 3, Evaluated: true},
		{Genome: genome.MustParse("11"), Score: 5, Evaluated: true},
	})

	best, ok := population.Best()
	require.True(t, ok)
	assert.Equal(t, "11", best.Genome.String())
	assert.Equal(t, 14.0, population.TotalScore())
	assert.Equal(t, 3.5, population.AverageFitness())
	assert.Equal(t, 3, population.Distinct())

	sorted := population.SortedByFitness()
	assert.Equal(t, []float64{5, 5, 3, 1}, []float64{sorted.At(0).Score, sorted.At(1).Score, sorted.At(2).Score, sorted.At(3).Score})
	assert.Equal(t, 1.0, population.At(0).Score, "sorting returns a copy")

	stats := computeStats(3, sorted)
	assert.Equal(t, GenerationStats{
		Generation:  3,
		BestScore:   5,
		MeanScore:   3.5,
		MedianScore: 4,
		MinScore:    1,
		Distinct:    3,
		BestGenome:  sorted.At(0).Genome,
	}, stats)
}

func TestEmptyPopulation(t *testing.T) {
	var population Population

	_, ok := population.Best()
	assert.False(t, ok)
	assert.Equal(t, 0.0, population.AverageFitness())
	assert.Equal(t, GenerationStats{Generation: 1}, computeStats(1, population))
}

func TestMembersReturnsCopy(t *testing.T) {
	population := NewPopulation([]ScoredGenome{{Genome: genome.MustParse("1"), Score: 1, Evaluated: true}})
	members := population.Members()
	members[0].Score = 99

	assert.Equal(t, 1.0, population.At(0).Score)
}

func TestFitnessAdaptersSatisfyInterface(t *testing.T) {
	var fn FitnessFunction = fitness.AlternatingBits{}
	score, err := fn.Evaluate(genome.MustParse("0101"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, score)

	fn = Scorer(func(g genome.Genome) float64 { return float64(g.Len()) })
	score, err = fn.Evaluate(genome.MustParse("0101"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, score)
}
