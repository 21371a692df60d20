package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrRiskNotFound       = errors.New("risk not found")
	ErrFrameworkNotFound  = errors.New("framework not found")
	ErrControlNotFound    = errors.New("control not found")
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrInvalidInput wraps validation failures so callers can map them to
	// client errors.
	ErrInvalidInput = errors.New("invalid input")
)

// Context keys for error values
const (
	RiskIDKey      = "risk_id"
	FrameworkIDKey = "framework_id"
	ControlIDKey   = "control_id"
)
