// Package apperr defines the error kinds the domain services return.
// Handlers at the HTTP boundary translate kinds to status codes; nothing
// in the core treats these as fatal.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrConflict               = errors.New("conflict")
)

// NotFound returns an error of kind NotFound with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidArgument returns an error of kind InvalidArgument.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

// InvalidStateTransition returns an error of kind InvalidStateTransition.
func InvalidStateTransition(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidStateTransition)...)
}

// Conflict returns an error of kind Conflict.
func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func IsNotFound(err error) bool               { return errors.Is(err, ErrNotFound) }
func IsInvalidArgument(err error) bool        { return errors.Is(err, ErrInvalidArgument) }
func IsInvalidStateTransition(err error) bool { return errors.Is(err, ErrInvalidStateTransition) }
func IsConflict(err error) bool               { return errors.Is(err, ErrConflict) }
