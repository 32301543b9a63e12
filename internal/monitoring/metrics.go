package monitoring

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

var (
	// Generation metrics
	bestScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bitga_best_score",
			Help: "Best fitness score of the last evaluated generation",
		},
		[]string{"run"},
	)

	meanScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bitga_mean_score",
			Help: "Mean fitness score of the last evaluated generation",
		},
		[]string{"run"},
	)

	generation = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bitga_generation",
			Help: "Index of the last evaluated generation",
		},
		[]string{"run"},
	)

	distinctGenomes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bitga_distinct_genomes",
			Help: "Number of distinct genomes in the last evaluated generation",
		},
		[]string{"run"},
	)

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitga_generations_total",
			Help: "Total number of evaluated generations",
		},
		[]string{"run"},
	)

	// Run metrics
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitga_runs_total",
			Help: "Total number of runs by final state",
		},
		[]string{"state"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bitga_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(bestScore)
	prometheus.MustRegister(meanScore)
	prometheus.MustRegister(generation)
	prometheus.MustRegister(distinctGenomes)
	prometheus.MustRegister(generationsTotal)
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// MetricsReporter publishes generation statistics under a run label
type MetricsReporter struct {
	run string
}

// NewMetricsReporter creates a reporter for the named run
func NewMetricsReporter(run string) *MetricsReporter {
	return &MetricsReporter{run: run}
}

// Report implements optimization.Reporter
func (m *MetricsReporter) Report(stats optimization.GenerationStats) {
	bestScore.WithLabelValues(m.run).Set(stats.BestScore)
	meanScore.WithLabelValues(m.run).Set(stats.MeanScore)
	generation.WithLabelValues(m.run).Set(float64(stats.Generation))
	distinctGenomes.WithLabelValues(m.run).Set(float64(stats.Distinct))
	generationsTotal.WithLabelValues(m.run).Inc()
}

// RunOutcome labels how a run ended: its terminal state, "cancelled" or "failed"
func RunOutcome(state optimization.State, runErr error) string {
	switch {
	case runErr == nil && state.Terminal():
		return state.String()
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "failed"
	}
}

// RecordRunFinished counts a run under its RunOutcome label
func RecordRunFinished(state optimization.State, runErr error) {
	runsTotal.WithLabelValues(RunOutcome(state, runErr)).Inc()
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
