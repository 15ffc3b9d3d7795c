package service

import "errors"

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrLogNotFound      = errors.New("workout log not found")
	ErrGoalNotFound     = errors.New("workout goal not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrExportDisabled   = errors.New("log export is not configured")
)
