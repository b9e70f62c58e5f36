package domain

import (
	"errors"
	"fmt"
)

const (
	RoleUser = "user"

	DateLayout = "2006-01-02"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID       = errors.New("failed to parse UUID")
	ErrTokenNotFound   = errors.New("failed to token not found")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrValidation      = errors.New("validation failed")
)

// RemoteFailure is a persistence, storage or network error surfaced at the
// store boundary. The cause is kept for display and errors.Is matching.
type RemoteFailure struct {
	Op  string
	Err error
}

func (e *RemoteFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteFailure) Unwrap() error {
	return e.Err
}

func NewRemoteFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var rf *RemoteFailure
	if errors.As(err, &rf) {
		return err
	}
	return &RemoteFailure{Op: op, Err: err}
}

func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func IsRemoteFailure(err error) bool {
	var rf *RemoteFailure
	return errors.As(err, &rf)
}
