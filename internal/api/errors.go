package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned when the session token is missing or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoProfile is returned when a profile cannot be found.
	ErrNoProfile = errors.New("no such profile")

	// ErrNoConnection is returned when the client never logged in.
	ErrNoConnection = errors.New("no connection to PPanel")
)

// Error is a failed PPanel call. Code is either the envelope code or the HTTP
// status when the body carried no envelope.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("ppanel error %d", e.Code)
	}
	return fmt.Sprintf("ppanel error %d: %s", e.Code, e.Msg)
}

// Is matches ErrUnauthorized for 401 codes.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// Temporary checks if the call may succeed when retried.
func (e *Error) Temporary() bool {
	return e.Code >= http.StatusInternalServerError ||
		e.Code == http.StatusTooManyRequests ||
		e.Code == http.StatusRequestTimeout
}
