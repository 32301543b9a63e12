// Package storage persists run summaries and per-generation statistics.
// Populations are never stored.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ducminhle1904/bitstring-ga/pkg/genome"
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// ErrRunNotFound is returned when writing to a run that was never created
var ErrRunNotFound = errors.New("run not found")

// RunRecord is the persisted summary of one evolve run
type RunRecord struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Fitness     string              `json:"fitness"`
	Config      optimization.Config `json:"config"`
	State       string              `json:"state"`
	BestScore   float64             `json:"best_score"`
	BestGenome  string              `json:"best_genome,omitempty"`
	Generations int                 `json:"generations"`
	CreatedAt   time.Time           `json:"created_at"`
	FinishedAt  time.Time           `json:"finished_at,omitempty"`
}

// Finished reports whether FinishRun has been called for the run
func (r RunRecord) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Store defines persistence operations for run history
type Store interface {
	Init(ctx context.Context) error
	CreateRun(ctx context.Context, run RunRecord) (RunRecord, error)
	AppendGeneration(ctx context.Context, runID string, stats optimization.GenerationStats) error
	FinishRun(ctx context.Context, runID string, state optimization.State, best optimization.ScoredGenome) error
	GetRun(ctx context.Context, runID string) (RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]RunRecord, error)
	ListGenerations(ctx context.Context, runID string) ([]optimization.GenerationStats, error)
}

func decodeGenome(bits string) (genome.Genome, error) {
	if bits == "" {
		return genome.Genome{}, nil
	}
	return genome.FromString(bits)
}
