package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]RunRecord
	generations map[string][]optimization.GenerationStats
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]RunRecord)
	s.generations = make(map[string][]optimization.GenerationStats)
	return nil
}

func (s *MemoryStore) CreateRun(_ context.Context, run RunRecord) (RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return RunRecord{}, errors.New("store is not initialized")
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}
	if run.State == "" {
		run.State = optimization.StateInitialized.String()
	}
	s.runs[run.ID] = run
	return run, nil
}

func (s *MemoryStore) AppendGeneration(_ context.Context, runID string, stats optimization.GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	history := s.generations[runID]
	if n := len(history); n > 0 && history[n-1].Generation == stats.Generation {
		history[n-1] = stats
	} else {
		history = append(history, stats)
	}
	s.generations[runID] = history

	run.State = optimization.StateRunning.String()
	run.Generations = len(history)
	s.runs[runID] = run
	return nil
}

func (s *MemoryStore) FinishRun(_ context.Context, runID string, state optimization.State, best optimization.ScoredGenome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	run.State = state.String()
	run.BestScore = best.Score
	run.BestGenome = best.Genome.String()
	run.Generations = len(s.generations[runID])
	run.FinishedAt = s.now().UTC()
	s.runs[runID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, runID string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}

func (s *MemoryStore) ListGenerations(_ context.Context, runID string) ([]optimization.GenerationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.runs[runID]; !ok {
		return nil, ErrRunNotFound
	}
	history := s.generations[runID]
	out := make([]optimization.GenerationStats, len(history))
	copy(out, history)
	return out, nil
}
