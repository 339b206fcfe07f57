package forecast

import (
	"errors"
	"fmt"
)

// ErrAuthExpired signals an HTTP 403 from an authenticated call. It is
// absorbed by the auth-retry wrapper and only surfaces when the retry after
// a token refresh fails the same way.
var ErrAuthExpired = errors.New("access token expired")

// ErrJobNotFound signals an HTTP 404 from the status endpoint: the job is
// not yet visible. The poller absorbs it within the visibility window.
var ErrJobNotFound = errors.New("job not found")

// APIError is a terminal failure reported by the service, carrying the
// server's error code and message alongside the endpoint that failed.
type APIError struct {
	Endpoint string
	Code     string
	Message  string
	Status   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("call to %s failed (status %d): %s: %s", e.Endpoint, e.Status, e.Code, e.Message)
}

// MalformedResponseError reports a success status code whose body could not
// be decoded into the endpoint's declared shape.
type MalformedResponseError struct {
	Err      error
	Endpoint string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// JobLostError reports a job that never became visible on the status
// endpoint within the bounded retry window.
type JobLostError struct {
	JobID    string
	Attempts int
}

func (e *JobLostError) Error() string {
	return fmt.Sprintf("job %s not visible after %d status attempts: %v", e.JobID, e.Attempts, ErrJobNotFound)
}

func (e *JobLostError) Unwrap() error {
	return ErrJobNotFound
}
