// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Lookup outcomes. A miss is a routine result, not a failure: providers
	// normalize not-found, non-2xx, and malformed payloads into ErrMiss so
	// the cascade can fall through.
	ErrMiss     = errors.New("no price found")
	ErrAuthMiss = errors.New("authentication rejected")

	// Transport-level failures at a provider boundary. Callers convert
	// these to misses; they never abort a batch.
	ErrTransport         = errors.New("transport failure")
	ErrMalformedResponse = errors.New("malformed response")

	// Configuration errors. These are the only errors allowed to stop a
	// run, and only before processing begins.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsMiss reports whether err represents a routine lookup miss of any kind.
// Auth rejections and malformed payloads count: they are logged but never
// propagated as failures, and retrying them is pointless.
func IsMiss(err error) bool {
	return errors.Is(err, ErrMiss) ||
		errors.Is(err, ErrAuthMiss) ||
		errors.Is(err, ErrMalformedResponse)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
