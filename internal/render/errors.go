package render

import (
	"errors"
	"fmt"
)

// ErrGenerationFailed indicates the provider itself reported a failed job.
// It is terminal and never retried.
var ErrGenerationFailed = errors.New("provider reported generation failure")

// ErrPollTimeout indicates the attempt budget was exhausted before the job
// reached a terminal state. Distinguishable from ErrGenerationFailed so
// clients can tell a slow render from a dead one.
var ErrPollTimeout = errors.New("render polling timed out")

// SubmissionError reports a rejected job-creation call.
type SubmissionError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s submission rejected (http %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s submission rejected (http %d)", e.Provider, e.StatusCode)
}
