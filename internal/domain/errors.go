package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)

// ValidationError reports an empty or out-of-range required value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports an attempt to start a session while another one runs.
type ConflictError struct {
	RunningSessionID string
}

func (e *ConflictError) Error() string {
	if e.RunningSessionID == "" {
		return "a session is already running; stop the current session first"
	}
	return fmt.Sprintf("session %s is already running; stop the current session first", e.RunningSessionID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// InvalidStateError reports an operation that is illegal for the entity's
// current state, including operating on an entity that no longer exists.
type InvalidStateError struct {
	Entity string
	ID     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s %s %s", e.Entity, e.ID, e.Reason)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// requireText returns a ValidationError when s is blank after trimming.
func requireText(field, s string) error {
	if isBlank(s) {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}
