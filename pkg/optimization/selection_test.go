package optimization

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

func scoredPopulation(t *testing.T, entries map[string]float64, order ...string) Population {
	t.Helper()
	members := make([]ScoredGenome, 0, len(order))
	for _, bits := range order {
		score, ok := entries[bits]
		require.True(t, ok, "missing score for %s", bits)
		members = append(members, ScoredGenome{Genome: genome.MustParse(bits), Score: score, Evaluated: true})
	}
	return NewPopulation(members)
}

func countPicks(t *testing.T, selector Selector, population Population, draws int, seed int64) map[string]int {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		a, b, err := selector.Select(rng, population)
		require.NoError(t, err)
		counts[a.String()]++
		counts[b.String()]++
	}
	return counts
}

func TestRouletteSelector_ProportionalToScore(t *testing.T) {
	population := scoredPopulation(t, map[string]float64{"00": 1, "01": 3}, "00", "01")

	counts := countPicks(t, RouletteSelector{}, population, 10000, 1)
	share := float64(counts["01"]) / 20000
	assert.InDelta(t, 0.75, share, 0.02)
}

func TestRouletteSelector_ZeroScoreNeverPickedWhenOthersPositive(t *testing.T) {
	population := scoredPopulation(t, map[string]float64{"00": 0, "01": 0, "11": 10}, "00", "01", "11")

	counts := countPicks(t, RouletteSelector{}, population, 1000, 2)
	assert.Equal(t, 2000, counts["11"])
}

func TestRouletteSelector_AllZeroFallsBackToUniform(t *testing.T) {
	population := scoredPopulation(t, map[string]float64{"00": 0, "01": 0, "10": 0, "11": 0}, "00", "01", "10", "11")

	counts := countPicks(t, RouletteSelector{}, population, 8000, 3)
	require.Len(t, counts, 4, "every member must be reachable")
	for bits, n := range counts {
		assert.InDelta(t, 4000, n, 300, "genome %s", bits)
	}
}

func TestRouletteSelector_NegativeTotalFallsBackToUniform(t *testing.T) {
	population := scoredPopulation(t, map[string]float64{"00": -3, "11": -1}, "00", "11")

	counts := countPicks(t, RouletteSelector{}, population, 2000, 4)
	assert.Len(t, counts, 2)
}

func TestRouletteSelector_NegativeScoresWeighZero(t *testing.T) {
	population := scoredPopulation(t, map[string]float64{"00": -5, "11": 2}, "00", "11")

	counts := countPicks(t, RouletteSelector{}, population, 500, 5)
	assert.Equal(t, 1000, counts["11"])
}

func TestTournamentSelector_PrefersFitter(t *testing.T) {
	population := scoredPopulation(t, map[string]float64{"00": 1, "01": 2, "10": 3, "11": 4}, "00", "01", "10", "11")

	counts := countPicks(t, TournamentSelector{Size: 3}, population, 5000, 6)
	assert.Greater(t, counts["11"], counts["10"])
	assert.Greater(t, counts["10"], counts["01"])
	assert.Greater(t, counts["01"], counts["00"])
}

func TestRankSelector_WeighsByRank(t *testing.T) {
	// Ranks 1..3 give weights 1/6, 2/6, 3/6 regardless of the raw scores.
	population := scoredPopulation(t, map[string]float64{"00": -100, "01": 0.5, "11": 1000}, "01", "00", "11")

	counts := countPicks(t, RankSelector{}, population, 12000, 7)
	assert.InDelta(t, 12000, counts["11"], 500)
	assert.InDelta(t, 8000, counts["01"], 500)
	assert.InDelta(t, 4000, counts["00"], 500)
}

func TestSelectors_RejectEmptyPopulationAndNilRand(t *testing.T) {
	population := scoredPopulation(t, map[string]float64{"1": 1}, "1")

	for _, selector := range []Selector{RouletteSelector{}, TournamentSelector{}, RankSelector{}} {
		_, _, err := selector.Select(rand.New(rand.NewSource(1)), Population{})
		assert.Error(t, err, selector.Name())

		_, _, err = selector.Select(nil, population)
		assert.Error(t, err, selector.Name())
	}
}

func TestNewSelector(t *testing.T) {
	selector, err := NewSelector("", 0)
	require.NoError(t, err)
	assert.Equal(t, SelectionRoulette, selector.Name())

	selector, err = NewSelector(SelectionTournament, 5)
	require.NoError(t, err)
	assert.Equal(t, TournamentSelector{Size: 5}, selector)

	selector, err = NewSelector(SelectionRank, 0)
	require.NoError(t, err)
	assert.Equal(t, SelectionRank, selector.Name())

	_, err = NewSelector("boltzmann", 0)
	assert.True(t, gaerrors.IsInvalidConfiguration(err))

	_, err = NewSelector(SelectionTournament, -1)
	assert.True(t, gaerrors.IsInvalidConfiguration(err))
}
