package optimization

import (
	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
)

// State is the lifecycle position of an Evolver
type State int

const (
	StateInitialized State = iota
	StateRunning
	StateConverged
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further generations will run
func (s State) Terminal() bool {
	return s == StateConverged || s == StateExhausted
}

// GenerationStats is a read-only snapshot of one evaluated generation
type GenerationStats struct {
	Generation  int           `json:"generation"`
	BestScore   float64       `json:"best_score"`
	MeanScore   float64       `json:"mean_score"`
	MedianScore float64       `json:"median_score"`
	MinScore    float64       `json:"min_score"`
	Distinct    int           `json:"distinct"`
	BestGenome  genome.Genome `json:"-"`
}

// RunResult summarizes a finished run
type RunResult struct {
	State       State
	Generations int
	Best        ScoredGenome
	History     []GenerationStats
	Final       Population
}

// computeStats expects a population sorted best first
func computeStats(generation int, sorted Population) GenerationStats {
	n := sorted.Size()
	if n == 0 {
		return GenerationStats{Generation: generation}
	}

	var median float64
	if n%2 == 1 {
		median = sorted.At(n / 2).Score
	} else {
		median = (sorted.At(n/2-1).Score + sorted.At(n/2).Score) / 2
	}

	best := sorted.At(0)
	return GenerationStats{
		Generation:  generation,
		BestScore:   best.Score,
		MeanScore:   sorted.AverageFitness(),
		MedianScore: median,
		MinScore:    sorted.At(n - 1).Score,
		Distinct:    sorted.Distinct(),
		BestGenome:  best.Genome,
	}
}
