package giphy

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the client.
type ErrorKind int

const (
	// KindNotFound means the requested GIF or result does not exist upstream.
	KindNotFound ErrorKind = iota + 1
	// KindRequest means the request could not be made: breaker open, network
	// failure, rejected request parameters.
	KindRequest
	// KindResponse means the upstream answered with something unusable.
	KindResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

var (
	// ErrNotFound matches any *Error of kind KindNotFound.
	ErrNotFound = errors.New("giphy: not found")
	// ErrRequest matches any *Error of kind KindRequest.
	ErrRequest = errors.New("giphy: request failed")
	// ErrResponse matches any *Error of kind KindResponse.
	ErrResponse = errors.New("giphy: invalid response")
)

// Error is the only error type returned by Client operations.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("giphy %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("giphy %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match the package sentinels by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrRequest:
		return e.Kind == KindRequest
	case ErrResponse:
		return e.Kind == KindResponse
	}
	return false
}

// KindOf reports the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind, true
	}
	return 0, false
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, StatusCode: 404}
}

func requestError(msg string, cause error) *Error {
	return &Error{Kind: KindRequest, Message: msg, Cause: cause}
}

func responseError(msg string, status int) *Error {
	return &Error{Kind: KindResponse, Message: msg, StatusCode: status}
}

// normalize turns any failure into an *Error so callers see a single taxonomy.
func normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}
	return requestError(err.Error(), err)
}
