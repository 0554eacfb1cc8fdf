package core

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingApiKey = errors.New("no API key configured")

// NetworkError means the request could not be sent or no response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected response status: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected response status: %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError is returned when the body is not JSON or lacks a required key.
type MalformedResponseError struct {
	Path string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed response: missing %s", e.Path)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// GraphQLError carries the messages of a response that returned errors and no data.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("graphql error: %s", strings.Join(e.Messages, "; "))
}

// StalledPaginationError is returned in strict mode when endCursor does not advance.
type StalledPaginationError struct {
	Cursor string
	Rows   int
}

func (e *StalledPaginationError) Error() string {
	return fmt.Sprintf("pagination stalled at cursor %q after %d rows", e.Cursor, e.Rows)
}
