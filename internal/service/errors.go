package service

import (
	"errors"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

// missing converts repository.ErrNotFound into an InvalidStateError for
// entity. Other errors pass through.
func missing(err error, entity, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.InvalidStateError{Entity: entity, ID: id, Reason: "does not exist"}
	}
	return err
}

// startConflict converts a violation of the single-running-session index
// into a ConflictError.
func startConflict(err error) error {
	if db.IsUniqueViolation(err) {
		return &domain.ConflictError{}
	}
	return err
}
