// Package apierr defines the error taxonomy shared by the synthesis adapter
// and the HTTP boundary. Validation problems map to 400, missing resources
// to 404 and pipeline failures to 500; anything untyped is a 500.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a request that fails input validation.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing model, index, voice or output file.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string { return e.Detail }

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Detail: fmt.Sprintf(format, args...)}
}

// SynthesisError reports a failure of the external pipeline, or a run that
// reported success without producing the expected output file.
type SynthesisError struct {
	Detail string
	Err    error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Synthesisf wraps a pipeline failure with a caller-facing detail string.
func Synthesisf(err error, format string, args ...any) error {
	return &SynthesisError{Detail: fmt.Sprintf(format, args...), Err: err}
}

// Status returns the HTTP status code for an error according to the
// taxonomy. Unrecognized errors are treated as internal.
func Status(err error) int {
	var (
		ve *ValidationError
		ne *NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ne):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
