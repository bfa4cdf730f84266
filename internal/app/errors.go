package app

import "errors"

// RemediationHint accompanies every pipeline failure shown to a user.
const RemediationHint = "Please check your API keys and try again."

var ErrEmptyRequest = errors.New("travel request is empty")

// PipelineError is a generation failure. It is reported once, with the hint,
// and no partial plan is returned alongside it.
type PipelineError struct {
	Err error
}

func (e *PipelineError) Error() string { return "An error occurred: " + e.Err.Error() }

func (e *PipelineError) Unwrap() error { return e.Err }

// UserMessage is the single user-visible line for this failure.
func (e *PipelineError) UserMessage() string { return e.Error() + ". " + RemediationHint }
