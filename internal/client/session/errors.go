package session

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNetworkFailure     = errors.New("network failure")
)

// RejectedError carries the server-supplied message for an auth request the
// server refused for a reason other than bad credentials (e.g. a duplicate
// registration).
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "server rejected request: " + e.Message
}
