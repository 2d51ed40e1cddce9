package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("code validation failed")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrDispatch            = errors.New("judge dispatch failed")
	ErrPersistence         = errors.New("bucket write failed")
	ErrNotFound            = errors.New("not found")
)

var (
	InvalidToken  = errors.New("invalid token")
	InternalError = errors.New("internal error")
)

// DispatchError reports that the judge could not be reached or refused the submission.
// Cause is safe to show to the caller.
type DispatchError struct {
	Cause string
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDispatch, e.Cause)
}

func (e *DispatchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDispatch}
	}
	return []error{ErrDispatch, e.Err}
}
