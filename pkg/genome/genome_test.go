package genome

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
)

func TestFromString_RoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "01010101", strings.Repeat("10", 40) + "1"} {
		g, err := FromString(s)
		require.NoError(t, err)
		assert.Equal(t, len(s), g.Len())
		assert.Equal(t, s, g.String())
	}
}

func TestFromString_InvalidCharacter(t *testing.T) {
	_, err := FromString("01x1")
	assert.Error(t, err)
}

func TestNew_MatchesBits(t *testing.T) {
	values := []bool{true, false, false, true, true}
	g := New(values)

	assert.Equal(t, "10011", g.String())
	assert.Equal(t, values, g.Bits())
	assert.Equal(t, 3, g.Ones())
}

func TestRandom_LengthAndDeterminism(t *testing.T) {
	a, err := Random(rand.New(rand.NewSource(7)), 130)
	require.NoError(t, err)
	b, err := Random(rand.New(rand.NewSource(7)), 130)
	require.NoError(t, err)

	assert.Equal(t, 130, a.Len())
	assert.True(t, a.Equal(b), "same seed should produce the same genome")
}

func TestRandom_RoughlyUniform(t *testing.T) {
	g, err := Random(rand.New(rand.NewSource(1)), 10000)
	require.NoError(t, err)

	ones := g.Ones()
	assert.Greater(t, ones, 4700)
	assert.Less(t, ones, 5300)
}

func TestRandom_InvalidLength(t *testing.T) {
	_, err := Random(rand.New(rand.NewSource(1)), 0)
	require.Error(t, err)
	assert.True(t, gaerrors.IsInvalidConfiguration(err))
}

func TestEqualAndHash(t *testing.T) {
	a := MustParse("0110")
	b := MustParse("0110")
	c := MustParse("0111")
	d := MustParse("01100")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.False(t, a.Equal(d), "different lengths are never equal")
	assert.NotEqual(t, a.Hash(), d.Hash())

	seen := map[string]int{a.Key(): 1}
	seen[b.Key()]++
	assert.Equal(t, 2, seen[a.Key()])
}

func TestSplice(t *testing.T) {
	a := MustParse("00000000")
	b := MustParse("11111111")

	assert.Equal(t, "00011111", a.Splice(b, 3).String())
	assert.Equal(t, "11100000", b.Splice(a, 3).String())
	assert.Equal(t, "11111111", a.Splice(b, 0).String())
	assert.Equal(t, "00000000", a.Splice(b, 8).String())
}

func TestSplice_AcrossWordBoundary(t *testing.T) {
	a := MustParse(strings.Repeat("0", 150))
	b := MustParse(strings.Repeat("1", 150))

	for _, p := range []int{1, 63, 64, 65, 128, 149} {
		child := a.Splice(b, p)
		assert.Equal(t, strings.Repeat("0", p)+strings.Repeat("1", 150-p), child.String(), "p=%d", p)
		assert.Equal(t, 150-p, child.Ones())
	}
}

func TestFlipAndComplement_LeaveReceiverUntouched(t *testing.T) {
	g := MustParse("1100101")

	flipped := g.Flip(func(i int) bool { return i == 0 || i == 6 })
	assert.Equal(t, "0100100", flipped.String())
	assert.Equal(t, "1100101", g.String())

	comp := g.Complement()
	assert.Equal(t, "0011010", comp.String())
	assert.Equal(t, "1100101", g.String())
	assert.Equal(t, g.Len()-g.Ones(), comp.Ones(), "tail bits stay clear after complement")
}

func TestClone_DoesNotShareStorage(t *testing.T) {
	g := MustParse("1010")
	c := g.Clone()
	c.words[0] = 0

	assert.Equal(t, "1010", g.String())
}

func TestBit_OutOfRangePanics(t *testing.T) {
	g := MustParse("10")
	assert.Panics(t, func() { g.Bit(2) })
	assert.Panics(t, func() { g.Bit(-1) })
}
