package contracts

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures. FetchFailed is the only kind.
type ErrorKind string

const KindFetchFailed ErrorKind = "FetchFailed"

// ErrFetchFailed matches any *FetchError through errors.Is
var ErrFetchFailed = errors.New("fetch failed")

// FetchError is returned when an upstream request fails at the transport
// level or answers with a non-2xx status. StatusCode is 0 for transport errors.
type FetchError struct {
	Kind       ErrorKind
	Source     string
	StatusCode int
	Err        error
}

// NewFetchError builds a FetchFailed error for source
func NewFetchError(source string, statusCode int, err error) *FetchError {
	return &FetchError{
		Kind:       KindFetchFailed,
		Source:     source,
		StatusCode: statusCode,
		Err:        err,
	}
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s data: status %d", e.Source, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s data: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s data", e.Source)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
