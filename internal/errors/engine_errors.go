package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents different types of errors the engine and its tooling can raise
type ErrorCategory string

const (
	// Raised synchronously at construction, never mid-run
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Run-level failures
	ErrorCategoryFitness ErrorCategory = "FITNESS"
	ErrorCategoryState   ErrorCategory = "STATE"

	// Peripheral collaborators
	ErrorCategoryStorage   ErrorCategory = "STORAGE"
	ErrorCategoryReporting ErrorCategory = "REPORTING"
)

var (
	// ErrInvalidConfiguration matches every CONFIG category error via errors.Is
	ErrInvalidConfiguration = stderrors.New("invalid configuration")

	// ErrRunFinished is returned when stepping an evolver that reached a terminal state
	ErrRunFinished = stderrors.New("run already finished")
)

// EngineError represents a categorized error with context
type EngineError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Context    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is lets errors.Is match a category error against its sentinel
func (e *EngineError) Is(target error) bool {
	switch target {
	case ErrInvalidConfiguration:
		return e.Category == ErrorCategoryConfiguration
	case ErrRunFinished:
		return e.Category == ErrorCategoryState
	}
	return false
}

// IsFatal returns whether this error should stop the run
func (e *EngineError) IsFatal() bool {
	return e.Category == ErrorCategoryConfiguration ||
		e.Category == ErrorCategoryFitness ||
		e.Category == ErrorCategoryState
}

// NewEngineError creates a new categorized engine error
func NewEngineError(category ErrorCategory, component, operation, message string) *EngineError {
	return &EngineError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with engine error context
func WrapError(err error, category ErrorCategory, component, operation string) *EngineError {
	if err == nil {
		return nil
	}

	return &EngineError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Context:    make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *EngineError) WithContext(key string, value interface{}) *EngineError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// InvalidConfiguration builds a CONFIG error with a formatted message
func InvalidConfiguration(component, format string, args ...interface{}) *EngineError {
	return NewEngineError(ErrorCategoryConfiguration, component, "validate", fmt.Sprintf(format, args...))
}

// RunFinished reports a step attempted after the run reached the given terminal state
func RunFinished(component, state string) *EngineError {
	return NewEngineError(ErrorCategoryState, component, "step", "run already finished").
		WithContext("state", state)
}

// NewStorageError wraps a storage backend failure
func NewStorageError(component, operation string, err error) *EngineError {
	return WrapError(err, ErrorCategoryStorage, component, operation)
}

// NewReportingError wraps a reporter output failure
func NewReportingError(component, operation string, err error) *EngineError {
	return WrapError(err, ErrorCategoryReporting, component, operation)
}

// IsInvalidConfiguration reports whether err is (or wraps) a configuration error
func IsInvalidConfiguration(err error) bool {
	return stderrors.Is(err, ErrInvalidConfiguration)
}

// Categorize returns the category of err if it is an EngineError
func Categorize(err error) (ErrorCategory, bool) {
	var engineErr *EngineError
	if stderrors.As(err, &engineErr) {
		return engineErr.Category, true
	}
	return "", false
}
