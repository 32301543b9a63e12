package reporting

import (
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// Multi fans every report out to reporters in order, skipping nils
func Multi(reporters ...optimization.Reporter) optimization.Reporter {
	active := make([]optimization.Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			active = append(active, r)
		}
	}
	return optimization.ReporterFunc(func(stats optimization.GenerationStats) {
		for _, r := range active {
			r.Report(stats)
		}
	})
}
