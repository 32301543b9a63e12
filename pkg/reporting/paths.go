package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns results/<run>_<fitness>
func (p *DefaultPathManager) GetDefaultOutputDir(runName, fitness string) string {
	r := strings.ToLower(strings.TrimSpace(runName))
	f := strings.ToLower(strings.TrimSpace(fitness))
	if r == "" {
		r = "run"
	}
	if f == "" {
		f = "unknown"
	}

	return filepath.Join("results", fmt.Sprintf("%s_%s", r, f))
}

// EnsureDirectoryExists creates the parent directory of path if it doesn't exist
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// Package-level convenience function
func DefaultOutputDir(runName, fitness string) string {
	return NewDefaultPathManager().GetDefaultOutputDir(runName, fitness)
}
