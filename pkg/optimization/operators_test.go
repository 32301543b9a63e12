package optimization

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

func TestCrossover_RateZeroReturnsCopies(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := genome.MustParse("00000000")
	b := genome.MustParse("11111111")

	for i := 0; i < 100; i++ {
		childA, childB, err := Crossover(rng, a, b, 0)
		require.NoError(t, err)
		assert.True(t, childA.Equal(a))
		assert.True(t, childB.Equal(b))
	}
}

func TestCrossover_RateOneAlwaysSwapsInsideBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const length = 8
	a := genome.MustParse(strings.Repeat("0", length))
	b := genome.MustParse(strings.Repeat("1", length))

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		childA, childB, err := Crossover(rng, a, b, 1)
		require.NoError(t, err)
		require.Equal(t, length, childA.Len())
		require.Equal(t, length, childB.Len())

		// childA is a[0:p] ++ b[p:L], so p is its count of leading zeros
		p := length - childA.Ones()
		require.GreaterOrEqual(t, p, 1)
		require.LessOrEqual(t, p, length-1)
		assert.True(t, childA.Equal(a.Splice(b, p)))
		assert.True(t, childB.Equal(b.Splice(a, p)))
		seen[p] = true
	}
	assert.Len(t, seen, length-1, "every crossover point in [1, L-1] should be reachable")
}

func TestCrossover_SingleBitGenomesAreCopied(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := genome.MustParse("0")
	b := genome.MustParse("1")

	childA, childB, err := Crossover(rng, a, b, 1)
	require.NoError(t, err)
	assert.True(t, childA.Equal(a))
	assert.True(t, childB.Equal(b))
}

func TestCrossover_InvalidRate(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := genome.MustParse("0101")

	for _, rate := range []float64{-0.1, 1.01, math.NaN()} {
		_, _, err := Crossover(rng, a, a, rate)
		require.Error(t, err)
		assert.True(t, gaerrors.IsInvalidConfiguration(err), "rate %v", rate)
	}
}

func TestCrossover_LengthMismatch(t *testing.T) {
	_, _, err := Crossover(rand.New(rand.NewSource(5)), genome.MustParse("01"), genome.MustParse("011"), 0.5)
	assert.True(t, gaerrors.IsInvalidConfiguration(err))
}

func TestUniformCrossover_ChildrenPartitionParentBits(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	a := genome.MustParse("0011001100110011")
	b := genome.MustParse("0101010101010101")

	for i := 0; i < 50; i++ {
		childA, childB, err := UniformCrossover(rng, a, b, 1)
		require.NoError(t, err)
		for pos := 0; pos < a.Len(); pos++ {
			fromA := childA.Bit(pos) == a.Bit(pos) && childB.Bit(pos) == b.Bit(pos)
			swapped := childA.Bit(pos) == b.Bit(pos) && childB.Bit(pos) == a.Bit(pos)
			assert.True(t, fromA || swapped, "position %d", pos)
		}
	}

	childA, childB, err := UniformCrossover(rng, a, b, 0)
	require.NoError(t, err)
	assert.True(t, childA.Equal(a))
	assert.True(t, childB.Equal(b))
}

func TestNewCrossover(t *testing.T) {
	for _, name := range []string{"", CrossoverSinglePoint, CrossoverUniform} {
		fn, err := NewCrossover(name)
		require.NoError(t, err)
		assert.NotNil(t, fn)
	}

	_, err := NewCrossover("two_point")
	assert.True(t, gaerrors.IsInvalidConfiguration(err))
}

func TestMutate_RateZeroIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := genome.MustParse("1100101011")

	for i := 0; i < 50; i++ {
		mutated, err := Mutate(rng, g, 0)
		require.NoError(t, err)
		assert.True(t, mutated.Equal(g))
	}
}

func TestMutate_RateOneIsComplement(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	g := genome.MustParse("1100101011")

	mutated, err := Mutate(rng, g, 1)
	require.NoError(t, err)
	assert.Equal(t, "0011010100", mutated.String())
	assert.Equal(t, "1100101011", g.String(), "the input genome is never modified")
}

func TestMutate_FlipsAboutRateOfBits(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	g := genome.MustParse(strings.Repeat("0", 10000))

	mutated, err := Mutate(rng, g, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 1000, mutated.Ones(), 150)
}

func TestMutate_InvalidRate(t *testing.T) {
	_, err := Mutate(rand.New(rand.NewSource(10)), genome.MustParse("01"), 1.5)
	require.Error(t, err)
	assert.True(t, gaerrors.IsInvalidConfiguration(err))
}
