package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrFetchFailed is the umbrella for every failure while loading an image list
	ErrFetchFailed = errors.New("fetch failed")

	// ErrServerOffline indicates the listing endpoint is unreachable
	ErrServerOffline = errors.New("image server is unreachable")

	// ErrUnexpectedStatus indicates a non-2xx HTTP response
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrDecode indicates the payload did not match the expected image list shape
	ErrDecode = errors.New("invalid image list payload")
)

// DecodeError describes where an image list payload failed validation.
// Index is -1 for problems with the top-level value.
type DecodeError struct {
	Index  int
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("decode: element %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("decode: element %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrDecode and ErrFetchFailed
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, ErrFetchFailed} }

// StatusError carries the HTTP status of a rejected listing request
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.Code)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus and ErrFetchFailed
func (e *StatusError) Unwrap() []error { return []error{ErrUnexpectedStatus, ErrFetchFailed} }
