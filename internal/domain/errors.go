package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session ended")
	ErrInsightNotFound = errors.New("industry insight not found")
	ErrNotOnboarded    = errors.New("user has not completed onboarding")
	ErrEmptyMessage    = errors.New("message is empty")
)

// CompletionError reports a failed structured-completion call: the backend
// errored, returned nothing, or returned text that is not valid JSON. RawText
// keeps whatever the backend produced for diagnostics.
type CompletionError struct {
	RawText string
	Err     error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
