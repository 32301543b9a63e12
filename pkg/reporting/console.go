package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// ConsoleReporter prints a progress line every few generations and a summary table at the end
type ConsoleReporter struct {
	out            io.Writer
	every          int
	maxGenerations int
	showEmojis     bool

	headerPrinted bool
	lastPrinted   int
	last          *optimization.GenerationStats
}

// NewConsoleReporter spreads about segments progress lines over maxGenerations.
// A nil out writes to stdout.
func NewConsoleReporter(out io.Writer, maxGenerations, segments int) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{
		out:            out,
		every:          ProgressInterval(maxGenerations, segments),
		maxGenerations: maxGenerations,
		showEmojis:     true,
		lastPrinted:    -1,
	}
}

// ProgressInterval returns ceil(maxGenerations/segments), at least 1
func ProgressInterval(maxGenerations, segments int) int {
	if segments <= 0 || maxGenerations <= 0 {
		return 1
	}
	every := (maxGenerations + segments - 1) / segments
	if every < 1 {
		return 1
	}
	return every
}

// SetEmojis toggles emoji decoration of the summary title
func (r *ConsoleReporter) SetEmojis(show bool) {
	r.showEmojis = show
}

// Report implements optimization.Reporter
func (r *ConsoleReporter) Report(stats optimization.GenerationStats) {
	s := stats
	r.last = &s
	if stats.Generation%r.every == 0 || stats.Generation >= r.maxGenerations {
		r.printLine(stats)
	}
}

func (r *ConsoleReporter) printLine(stats optimization.GenerationStats) {
	if !r.headerPrinted {
		fmt.Fprintf(r.out, "%10s  %12s  %12s  %s\n", "generation", "mean", "median", "best")
		r.headerPrinted = true
	}
	fmt.Fprintf(r.out, "%10d  %12.4f  %12.4f  %s (%.4f)\n",
		stats.Generation, stats.MeanScore, stats.MedianScore, stats.BestGenome.String(), stats.BestScore)
	r.lastPrinted = stats.Generation
}

// Summary prints the last generation if it was skipped, then a result table
func (r *ConsoleReporter) Summary(summary RunSummary) {
	if r.last != nil && r.last.Generation != r.lastPrinted {
		r.printLine(*r.last)
	}

	result := summary.Result
	title := "EVOLUTION SUMMARY"
	if r.showEmojis {
		title = "🧬 " + title
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)

	rows := []table.Row{
		{"Run", summary.Name},
		{"Fitness", summary.Fitness},
		{"State", result.State.String()},
		{"Generations", result.Generations},
		{"Best Score", fmt.Sprintf("%.4f", result.Best.Score)},
		{"Best Genome", result.Best.Genome.String()},
		{"Population", summary.Config.PopulationSize},
		{"Genome Length", summary.Config.GenomeLength},
		{"Selection / Crossover", fmt.Sprintf("%s / %s", summary.Config.Selection, summary.Config.Crossover)},
		{"Rates (crossover / mutation)", fmt.Sprintf("%.3f / %.4f", summary.Config.CrossoverRate, summary.Config.MutationRate)},
	}
	if summary.RunID != "" {
		rows = append(rows, table.Row{"Run ID", summary.RunID})
	}
	if n := len(result.History); n > 0 {
		final := result.History[n-1]
		rows = append(rows,
			table.Row{"Final Mean", fmt.Sprintf("%.4f", final.MeanScore)},
			table.Row{"Final Distinct", final.Distinct},
		)
	}
	t.AppendRows(rows)

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	t.Render()
}

// HistoryTable renders up to limit evenly spaced generations of history, all when limit <= 0
func HistoryTable(out io.Writer, history []optimization.GenerationStats, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Gen", "Best", "Mean", "Median", "Min", "Distinct", "Best Genome"})

	step := 1
	if limit > 0 && len(history) > limit {
		step = (len(history) + limit - 1) / limit
	}
	for i := 0; i < len(history); i += step {
		s := history[i]
		t.AppendRow(table.Row{s.Generation, s.BestScore, s.MeanScore, s.MedianScore, s.MinScore, s.Distinct, s.BestGenome.String()})
	}
	if n := len(history); n > 0 && (n-1)%step != 0 {
		s := history[n-1]
		t.AppendRow(table.Row{s.Generation, s.BestScore, s.MeanScore, s.MedianScore, s.MinScore, s.Distinct, s.BestGenome.String()})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 7, Align: text.AlignLeft},
	})
	t.Render()
}
