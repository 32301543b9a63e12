// Package genome provides the fixed-length bit string evolved by the engine.
//
// A Genome is an immutable value: every operation that changes bits returns a
// new Genome and leaves the receiver untouched.
package genome

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"math/rand"
	"strings"

	"github.com/cespare/xxhash/v2"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
)

const (
	wordShift = 6
	wordMask  = 63
)

// Genome is a fixed-length bit string packed into 64-bit words.
// Bits beyond Len() in the last word are always zero.
type Genome struct {
	length int
	words  []uint64
}

func wordsFor(length int) int {
	return (length + wordMask) >> wordShift
}

func blank(length int) Genome {
	return Genome{length: length, words: make([]uint64, wordsFor(length))}
}

// New builds a genome from a slice of booleans, index 0 first
func New(values []bool) Genome {
	g := blank(len(values))
	for i, v := range values {
		if v {
			g.words[i>>wordShift] |= 1 << (uint(i) & wordMask)
		}
	}
	return g
}

// FromString parses a string of '0' and '1' characters, index 0 first
func FromString(s string) (Genome, error) {
	g := blank(len(s))
	for i, c := range s {
		switch c {
		case '1':
			g.words[i>>wordShift] |= 1 << (uint(i) & wordMask)
		case '0':
		default:
			return Genome{}, fmt.Errorf("genome: invalid character %q at position %d", c, i)
		}
	}
	return g, nil
}

// MustParse is FromString that panics on malformed input; meant for tests and literals
func MustParse(s string) Genome {
	g, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return g
}

// Random draws every bit independently and uniformly from {0,1}.
// The length is checked before any value is drawn from rng.
func Random(rng *rand.Rand, length int) (Genome, error) {
	if length < 1 {
		return Genome{}, gaerrors.InvalidConfiguration("genome", "genome length must be at least 1, got: %d", length)
	}
	if rng == nil {
		return Genome{}, fmt.Errorf("random source is required")
	}

	g := blank(length)
	for i := 0; i < length; i++ {
		if rng.Intn(2) == 1 {
			g.words[i>>wordShift] |= 1 << (uint(i) & wordMask)
		}
	}
	return g, nil
}

// Len returns the number of bits
func (g Genome) Len() int {
	return g.length
}

// Bit reports whether the bit at pos is set
func (g Genome) Bit(pos int) bool {
	if pos < 0 || pos >= g.length {
		panic(fmt.Sprintf("genome: bit index %d out of range [0,%d)", pos, g.length))
	}
	return g.words[pos>>wordShift]&(1<<(uint(pos)&wordMask)) != 0
}

// Bits returns the genome as a fresh slice of booleans
func (g Genome) Bits() []bool {
	out := make([]bool, g.length)
	for i := range out {
		out[i] = g.Bit(i)
	}
	return out
}

// Ones counts the set bits
func (g Genome) Ones() int {
	count := 0
	for _, w := range g.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Equal reports whether both genomes have the same length and bits
func (g Genome) Equal(other Genome) bool {
	if g.length != other.length {
		return false
	}
	for i := range g.words {
		if g.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit digest consistent with Equal
func (g Genome) Hash() uint64 {
	buf := make([]byte, 0, 8*(len(g.words)+1))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.length))
	for _, w := range g.words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return xxhash.Sum64(buf)
}

// Key returns a comparable value usable as a map key
func (g Genome) Key() string {
	return g.String()
}

// String renders the genome as '0'/'1' characters, index 0 first
func (g Genome) String() string {
	var b strings.Builder
	b.Grow(g.length)
	for i := 0; i < g.length; i++ {
		if g.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Clone returns a copy that shares no storage with g
func (g Genome) Clone() Genome {
	c := Genome{length: g.length, words: make([]uint64, len(g.words))}
	copy(c.words, g.words)
	return c
}

// Splice returns g[0:p] followed by other[p:L]. Both genomes must have the same length.
func (g Genome) Splice(other Genome, p int) Genome {
	if g.length != other.length {
		panic(fmt.Sprintf("genome: splice length mismatch %d != %d", g.length, other.length))
	}
	if p < 0 || p > g.length {
		panic(fmt.Sprintf("genome: splice point %d out of range [0,%d]", p, g.length))
	}

	child := other.Clone()
	full := p >> wordShift
	copy(child.words[:full], g.words[:full])
	if rem := uint(p) & wordMask; rem != 0 {
		low := uint64(1)<<rem - 1
		child.words[full] = (g.words[full] & low) | (other.words[full] &^ low)
	}
	return child
}

// Flip returns a copy with every bit i for which flip(i) is true inverted.
// flip is called once per position in ascending order.
func (g Genome) Flip(flip func(i int) bool) Genome {
	child := g.Clone()
	for i := 0; i < g.length; i++ {
		if flip(i) {
			child.words[i>>wordShift] ^= 1 << (uint(i) & wordMask)
		}
	}
	return child
}

// Complement returns the bitwise complement
func (g Genome) Complement() Genome {
	return g.Flip(func(int) bool { return true })
}
