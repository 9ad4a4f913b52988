package api

import "errors"

var (
	// ErrOffline means the request never got an HTTP response.
	ErrOffline = errors.New("server unreachable")
	// ErrUnavailable is a 5xx reply.
	ErrUnavailable = errors.New("server unavailable")
	// ErrRejected is a 4xx reply.
	ErrRejected = errors.New("request rejected")
)

// StatusError carries the status and server message of a non-2xx reply. It
// unwraps to ErrRejected or ErrUnavailable.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unexpected status"
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode >= 500 {
		return ErrUnavailable
	}
	return ErrRejected
}
