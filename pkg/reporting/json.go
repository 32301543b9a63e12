package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

type generationJSON struct {
	optimization.GenerationStats
	BestGenome string `json:"best_genome"`
}

type runJSON struct {
	RunSummary
	State       string           `json:"state"`
	Generations int              `json:"generations"`
	BestScore   float64          `json:"best_score"`
	BestGenome  string           `json:"best_genome"`
	History     []generationJSON `json:"history"`
}

// FormatRunJSON renders a run summary with its full history as indented JSON
func FormatRunJSON(summary RunSummary) ([]byte, error) {
	result := summary.Result
	out := runJSON{
		RunSummary:  summary,
		State:       result.State.String(),
		Generations: result.Generations,
		BestScore:   result.Best.Score,
		BestGenome:  result.Best.Genome.String(),
		History:     make([]generationJSON, 0, len(result.History)),
	}
	for _, stats := range result.History {
		out.History = append(out.History, generationJSON{GenerationStats: stats, BestGenome: stats.BestGenome.String()})
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteRunJSON writes FormatRunJSON output to path
func WriteRunJSON(summary RunSummary, path string) error {
	data, err := FormatRunJSON(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
