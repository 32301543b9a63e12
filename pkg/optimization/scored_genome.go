package optimization

import (
	"fmt"

	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

// ScoredGenome pairs a genome with its cached fitness for one generation
type ScoredGenome struct {
	Genome    genome.Genome
	Score     float64
	Evaluated bool
}

// Unscored wraps a genome that still needs evaluation
func Unscored(g genome.Genome) ScoredGenome {
	return ScoredGenome{Genome: g}
}

// Reset clears the cached score so the genome is evaluated again
func (s ScoredGenome) Reset() ScoredGenome {
	return ScoredGenome{Genome: s.Genome}
}

func (s ScoredGenome) String() string {
	return fmt.Sprintf("%s %v", s.Genome, s.Score)
}
