package reporting

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// WriteHistoryCSV writes one row per generation to path
func WriteHistoryCSV(history []optimization.GenerationStats, path string) error {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"generation", "best", "mean", "median", "min", "distinct", "best_genome"}); err != nil {
		return err
	}

	for _, s := range history {
		record := []string{
			strconv.Itoa(s.Generation),
			formatScore(s.BestScore),
			formatScore(s.MeanScore),
			formatScore(s.MedianScore),
			formatScore(s.MinScore),
			strconv.Itoa(s.Distinct),
			s.BestGenome.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
