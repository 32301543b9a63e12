package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

const (
	generationsSheet = "Generations"
	summarySheet     = "Summary"
)

// ExcelReporter collects generation statistics and writes them to an XLSX workbook
type ExcelReporter struct {
	mu      sync.Mutex
	history []optimization.GenerationStats
}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// Report implements optimization.Reporter
func (r *ExcelReporter) Report(stats optimization.GenerationStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, stats)
}

// History returns a copy of the collected statistics
func (r *ExcelReporter) History() []optimization.GenerationStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]optimization.GenerationStats, len(r.history))
	copy(out, r.history)
	return out
}

// Write saves the collected history and the run summary to path
func (r *ExcelReporter) Write(summary RunSummary, path string) error {
	// Ensure directory exists before creating file
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	// Replace default sheet and create the summary sheet
	fx.SetSheetName(fx.GetSheetName(0), generationsSheet)
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return err
	}

	styles, err := createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := writeGenerationsSheet(fx, generationsSheet, r.History(), styles); err != nil {
		return err
	}
	if err := writeSummarySheet(fx, summarySheet, summary, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	lightBorder := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	// Header style - Dark blue background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Scores with four decimals
	styles.ScoreStyle, err = fx.NewStyle(&excelize.Style{
		CustomNumFmt: stringPtr("0.0000"),
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		Border:       lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	// Monospace bit strings
	styles.GenomeStyle, err = fx.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Family: "Consolas", Size: 10},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"E6F3FF"},
			Pattern: 1,
		},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

func stringPtr(s string) *string {
	return &s
}

func writeGenerationsSheet(fx *excelize.File, sheet string, history []optimization.GenerationStats, styles ExcelStyles) error {
	headers := []string{"Generation", "Best", "Mean", "Median", "Min", "Distinct", "Best Genome"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	fx.SetColWidth(sheet, "A", "A", 12)
	fx.SetColWidth(sheet, "B", "E", 12)
	fx.SetColWidth(sheet, "F", "F", 10)
	fx.SetColWidth(sheet, "G", "G", 40)

	for i, stats := range history {
		row := i + 2
		start, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			stats.Generation,
			stats.BestScore,
			stats.MeanScore,
			stats.MedianScore,
			stats.MinScore,
			stats.Distinct,
			stats.BestGenome.String(),
		}
		if err := fx.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}

		first, _ := excelize.CoordinatesToCellName(1, row)
		fx.SetCellStyle(sheet, first, first, styles.BaseStyle)
		scoreFrom, _ := excelize.CoordinatesToCellName(2, row)
		scoreTo, _ := excelize.CoordinatesToCellName(5, row)
		fx.SetCellStyle(sheet, scoreFrom, scoreTo, styles.ScoreStyle)
		distinct, _ := excelize.CoordinatesToCellName(6, row)
		fx.SetCellStyle(sheet, distinct, distinct, styles.BaseStyle)
		genomeCell, _ := excelize.CoordinatesToCellName(7, row)
		fx.SetCellStyle(sheet, genomeCell, genomeCell, styles.GenomeStyle)
	}

	return fx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummarySheet(fx *excelize.File, sheet string, summary RunSummary, styles ExcelStyles) error {
	result := summary.Result
	cfg := summary.Config

	target := "none"
	if cfg.TargetScore != nil {
		target = fmt.Sprintf("%g", *cfg.TargetScore)
	}

	rows := [][]interface{}{
		{"Run", summary.Name},
		{"Run ID", summary.RunID},
		{"Fitness", summary.Fitness},
		{"State", result.State.String()},
		{"Generations", result.Generations},
		{"Best Score", result.Best.Score},
		{"Best Genome", result.Best.Genome.String()},
		{"Genome Length", cfg.GenomeLength},
		{"Population Size", cfg.PopulationSize},
		{"Crossover Rate", cfg.CrossoverRate},
		{"Mutation Rate", cfg.MutationRate},
		{"Elitism", cfg.Elitism},
		{"Max Generations", cfg.MaxGenerations},
		{"Target Score", target},
		{"Seed", cfg.Seed},
		{"Selection", cfg.Selection},
		{"Crossover", cfg.Crossover},
	}

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "B", 40)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := row
		if err := fx.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, cell, cell, styles.SummaryStyle)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		fx.SetCellStyle(sheet, valueCell, valueCell, styles.BaseStyle)
	}
	return nil
}
