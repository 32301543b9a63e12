package storage

import (
	"context"
	"sync"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// Recorder appends every reported generation to a Store under one run id.
// Reporter has no error return, so the first write failure is kept for Err
// and later generations are skipped. Writes use a context detached from
// cancellation so a stopped run still records its last generation and outcome.
type Recorder struct {
	ctx   context.Context
	store Store
	runID string

	mu  sync.Mutex
	err error
}

// NewRecorder creates the run record and returns a recorder bound to it
func NewRecorder(ctx context.Context, store Store, run RunRecord) (*Recorder, error) {
	ctx = context.WithoutCancel(ctx)
	created, err := store.CreateRun(ctx, run)
	if err != nil {
		return nil, gaerrors.NewStorageError("recorder", "create_run", err)
	}
	return &Recorder{ctx: ctx, store: store, runID: created.ID}, nil
}

// RunID returns the id assigned to the recorded run
func (r *Recorder) RunID() string {
	return r.runID
}

// Report implements optimization.Reporter
func (r *Recorder) Report(stats optimization.GenerationStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return
	}
	if err := r.store.AppendGeneration(r.ctx, r.runID, stats); err != nil {
		r.err = gaerrors.NewStorageError("recorder", "append_generation", err).
			WithContext("run_id", r.runID).
			WithContext("generation", stats.Generation)
	}
}

// Finish stores the final state and best genome of the run
func (r *Recorder) Finish(result optimization.RunResult) error {
	if err := r.store.FinishRun(r.ctx, r.runID, result.State, result.Best); err != nil {
		return gaerrors.NewStorageError("recorder", "finish_run", err).WithContext("run_id", r.runID)
	}
	return r.Err()
}

// Err returns the first error raised while recording generations
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
