package config

import (
	"math"
	"strings"

	gaerrors "github.com/ducminhle1904/bitstring-ga/internal/errors"
	"github.com/ducminhle1904/bitstring-ga/pkg/fitness"
)

// Storage backends accepted by RunValidator
var storeBackends = []string{"none", "memory", "sqlite"}

// RunValidator implements validation for run configurations
type RunValidator struct{}

// NewRunValidator creates a new run validator
func NewRunValidator() *RunValidator {
	return &RunValidator{}
}

// Validate checks run-level options first, then the engine configuration
func (v *RunValidator) Validate(cfg *RunConfig) error {
	if cfg == nil {
		return gaerrors.InvalidConfiguration("config", "configuration is required")
	}

	if strings.TrimSpace(cfg.Name) == "" {
		return gaerrors.InvalidConfiguration("config", "run name must not be empty")
	}

	if _, err := fitness.Lookup(cfg.Fitness.Name, cfg.Fitness.Params); err != nil {
		return gaerrors.InvalidConfiguration("config", "%v", err)
	}

	if cfg.Fitness.TrapSize < 0 {
		return gaerrors.InvalidConfiguration("config", "trap size must be non-negative, got: %d", cfg.Fitness.TrapSize)
	}

	if target := cfg.GA.TargetScore; target != nil && (math.IsNaN(*target) || math.IsInf(*target, 0)) {
		return gaerrors.InvalidConfiguration("config", "target score must be finite, got: %v", *target)
	}

	if err := v.validateStorage(cfg.Storage); err != nil {
		return err
	}

	if cfg.Output.ProgressSegments < 0 {
		return gaerrors.InvalidConfiguration("config", "progress segments must be non-negative, got: %d", cfg.Output.ProgressSegments)
	}

	return cfg.EngineConfig().Validate()
}

func (v *RunValidator) validateStorage(storage StorageConfig) error {
	backend := strings.ToLower(storage.Backend)
	if backend == "" {
		return nil
	}
	for _, known := range storeBackends {
		if backend == known {
			if backend == "sqlite" && storage.SQLitePath == "" {
				return gaerrors.InvalidConfiguration("config", "sqlite backend requires a database path")
			}
			return nil
		}
	}
	return gaerrors.InvalidConfiguration("config", "unknown storage backend %q, expected one of [%s]", storage.Backend, strings.Join(storeBackends, ", "))
}
