package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid ID")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrPlannerUnavailable = errors.New("plan service unavailable")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PlanError represents a failure talking to the plan generation service
type PlanError struct {
	Operation string
	Reason    string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("plan service %s failed: %s", e.Operation, e.Reason)
}

func (e *PlanError) Is(target error) bool {
	return target == ErrPlannerUnavailable
}
