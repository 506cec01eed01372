package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRemoteRequest      = errors.New("remote request failed")
	ErrInvalidPlan        = errors.New("invalid plan")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RemoteRequestError is returned for transport faults and non-2xx responses from the billing API.
type RemoteRequestError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteRequestError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, strings.TrimSpace(e.Body))
	}
}

func (e *RemoteRequestError) Unwrap() error {
	return e.Err
}

func (e *RemoteRequestError) Is(target error) bool {
	return target == ErrRemoteRequest
}
