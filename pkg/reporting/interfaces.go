// Package reporting renders run progress and results to the console and to files.
package reporting

import (
	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// RunSummary bundles a finished run with the context needed to describe it
type RunSummary struct {
	Name    string              `json:"name"`
	Fitness string              `json:"fitness"`
	RunID   string              `json:"run_id,omitempty"`
	Config  optimization.Config `json:"config"`
	Result  optimization.RunResult `json:"-"`
}

// FileReporter defines interface for file output
type FileReporter interface {
	optimization.Reporter
	Write(summary RunSummary, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultOutputDir(runName, fitness string) string
	EnsureDirectoryExists(path string) error
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	ScoreStyle   int
	BaseStyle    int
	GenomeStyle  int
	SummaryStyle int
}

// ReportingConfig holds configuration for reporting
type ReportingConfig struct {
	EnableConsole   bool
	OutputDirectory string
	ExcelEnabled    bool
	CSVEnabled      bool
	JSONEnabled     bool
}
