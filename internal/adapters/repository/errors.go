package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrProgressNotFound = errors.New("progress record not found")
	ErrVersionConflict  = errors.New("progress version conflict")
	ErrInvalidPlan      = errors.New("invalid plan")
)
