package domain

import (
	"errors"
	"fmt"
)

// Sentinel conditions for the booking flow. They are wrapped in the typed
// errors below so handlers can map them while messages stay user-facing.
var (
	ErrSelectionLimitExceeded  = errors.New("selection limit exceeded")
	ErrNoSeatsSelected         = errors.New("no seats selected")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrRepositoryUnavailable   = errors.New("repository unavailable")
)

// FieldErrors collects per-field validation failures for one form step,
// keyed the way the client renders them (e.g. "name-0", "cardNumber").
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation error"
	}
	for field, msg := range e {
		return fmt.Sprintf("%s: %s (and %d more)", field, msg, len(e)-1)
	}
	return "validation error"
}

func IsFieldErrors(err error) (FieldErrors, bool) {
	var target FieldErrors
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
