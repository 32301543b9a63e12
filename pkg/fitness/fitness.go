// Package fitness provides reference fitness functions for bit string genomes.
//
// The engine does not special-case any of them; each one satisfies
// optimization.FitnessFunction through its Evaluate method.
package fitness

import (
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

// DefaultKickerBonus is the score of the all-zero genome under SumWithKicker
const DefaultKickerBonus = 100.0

// Function is the shape shared by every fitness function in this package
type Function interface {
	Evaluate(g genome.Genome) (float64, error)
}

// AlternatingBits scores one point for every adjacent pair of differing bits.
// The maximum for length L is L-1, reached by 0101... and 1010...
type AlternatingBits struct{}

func (AlternatingBits) Evaluate(g genome.Genome) (float64, error) {
	score := 0
	for i := 1; i < g.Len(); i++ {
		if g.Bit(i) != g.Bit(i-1) {
			score++
		}
	}
	return float64(score), nil
}

// MaxScore returns the best achievable score for a genome of the given length
func (AlternatingBits) MaxScore(length int) float64 {
	if length < 2 {
		return 0
	}
	return float64(length - 1)
}

// SumWithKicker counts the ones, except that the all-zero genome scores Bonus.
// All ones is a local optimum far from the isolated global one.
type SumWithKicker struct {
	Bonus float64
}

func (k SumWithKicker) Evaluate(g genome.Genome) (float64, error) {
	ones := g.Ones()
	if ones == 0 {
		return k.Bonus, nil
	}
	return float64(ones), nil
}

// OneMax counts the ones
type OneMax struct{}

func (OneMax) Evaluate(g genome.Genome) (float64, error) {
	return float64(g.Ones()), nil
}

// DeceptiveTrap splits the genome into blocks of K bits. A full block of ones
// scores K; otherwise a block with t ones scores K-t-1, pulling the search toward zeros.
// Trailing bits that do not fill a block are ignored.
type DeceptiveTrap struct {
	K int
}

func (dt DeceptiveTrap) Evaluate(g genome.Genome) (float64, error) {
	k := dt.K
	if k < 1 {
		k = 1
	}

	fitness := 0
	for i := 0; i < g.Len()/k; i++ {
		t := 0 // number of bits set to 1
		for j := 0; j < k; j++ {
			if g.Bit(i*k + j) {
				t++
			}
		}
		if t == k {
			fitness += t
		} else {
			fitness += k - t - 1
		}
	}
	return float64(fitness), nil
}

// Constant gives every genome the same score. A zero Constant forces the
// selector onto its uniform fallback.
type Constant struct {
	Value float64
}

func (c Constant) Evaluate(genome.Genome) (float64, error) {
	return c.Value, nil
}
