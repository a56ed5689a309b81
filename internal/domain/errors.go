package domain

import (
	"errors"
	"fmt"
)

// NotFoundError means an entity id did not resolve. Always fatal to the call.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError means the write collided with an existing resource
// (duplicate candidate per job, duplicate pending offer). ExistingID lets
// the caller disambiguate.
type ConflictError struct {
	Entity     string
	Reason     string
	ExistingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// InvalidStateError covers illegal transitions and precondition failures.
// These are caller errors and are not retried.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func NewConflict(entity, reason, existingID string) error {
	return &ConflictError{Entity: entity, Reason: reason, ExistingID: existingID}
}

func NewInvalidState(format string, args ...any) error {
	return &InvalidStateError{Reason: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsInvalidState(err error) bool {
	var is *InvalidStateError
	return errors.As(err, &is)
}
