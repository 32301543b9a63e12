package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// HealthChecker tracks run progress for the /health endpoint
type HealthChecker struct {
	mu             sync.RWMutex
	startTime      time.Time
	state          optimization.State
	lastGeneration int
	bestScore      float64
	lastReport     time.Time
	errors         []string
}

type HealthStatus struct {
	Status         string    `json:"status"`
	State          string    `json:"state"`
	Timestamp      time.Time `json:"timestamp"`
	LastGeneration int       `json:"last_generation"`
	BestScore      float64   `json:"best_score"`
	LastReport     time.Time `json:"last_report"`
	Uptime         string    `json:"uptime"`
	Errors         []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		state:     optimization.StateInitialized,
		errors:    make([]string, 0),
	}
}

// Report implements optimization.Reporter
func (h *HealthChecker) Report(stats optimization.GenerationStats) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state = optimization.StateRunning
	h.lastGeneration = stats.Generation
	h.bestScore = stats.BestScore
	h.lastReport = time.Now()
}

// SetState records the run state once the evolver stops
func (h *HealthChecker) SetState(state optimization.State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = state
}

// RecordError marks the run unhealthy
func (h *HealthChecker) RecordError(err error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, err.Error())
}

// Status returns a snapshot of the current health
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if len(h.errors) > 0 {
		status = "unhealthy"
	}

	errs := make([]string, len(h.errors))
	copy(errs, h.errors)

	return HealthStatus{
		Status:         status,
		State:          h.state.String(),
		Timestamp:      time.Now(),
		LastGeneration: h.lastGeneration,
		BestScore:      h.bestScore,
		LastReport:     h.lastReport,
		Uptime:         time.Since(h.startTime).String(),
		Errors:         errs,
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	if health.Status != "healthy" {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(health)
}
