package speedtest

import (
	"errors"
)

// ErrDuplicateSubmission is returned by Store.Insert when a row with the same
// submission ID already exists. Clients treat it as an already-satisfied
// outcome, not a retryable failure.
var ErrDuplicateSubmission = errors.New("result already submitted")

// ValidationError names the submission field category that failed validation.
// Its message is safe to return to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
