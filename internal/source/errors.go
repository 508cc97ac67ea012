package source

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("empty response from feed")
	ErrInvalidFormat = errors.New("invalid feed format: not an RSS or Atom document")
)

// FetchError wraps a failure to retrieve or validate a feed document.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch feed %s: %s", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TimeoutError is returned when a feed did not respond within the fetch timeout.
type TimeoutError struct {
	URL string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("feed request timed out: %s", e.URL)
}

func (e *TimeoutError) Temporary() bool { return true }

// StatusError is returned when a feed responded with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed request failed with status %d: %s", e.StatusCode, e.URL)
}

func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// ParseError is returned when a fetched document could not be parsed as a feed.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse feed %s: %s", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type temporary interface {
	Temporary() bool
}

// IsTemporary reports whether the error is worth retrying.
func IsTemporary(err error) bool {
	var t temporary
	return errors.As(err, &t) && t.Temporary()
}
