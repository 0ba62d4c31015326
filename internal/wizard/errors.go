package wizard

import (
	"errors"
	"fmt"

	"github.com/abhisek/mindcheck/internal/scoring"
)

var (
	// ErrWrongPhase is returned when an operation is not valid in the
	// current phase.
	ErrWrongPhase = errors.New("wizard: operation not valid in current phase")

	// ErrUnknownQuestion is returned for an id outside the catalog.
	ErrUnknownQuestion = errors.New("wizard: unknown question")

	// ErrNotCurrentQuestion is returned when answering a question other than
	// the one on screen.
	ErrNotCurrentQuestion = errors.New("wizard: question is not the current step")

	// ErrNotLastStep is returned when submitting from any question but the
	// last one.
	ErrNotLastStep = errors.New("wizard: submit is only allowed on the last question")

	// ErrIncomplete is returned when submitting with unanswered questions.
	ErrIncomplete = errors.New("wizard: not every question is answered")

	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("wizard: submission already in flight")

	// ErrStale is returned by Submission.Run when the wizard was reset while
	// the request was outstanding. The response is discarded.
	ErrStale = errors.New("wizard: submission discarded after reset")
)

// PanicError wraps a panic raised by the scorer.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("scorer panicked: %v", e.Value)
}

// userMessage maps a submission failure to the text shown to the user.
// Service messages are passed through verbatim.
func userMessage(err error) string {
	if msg, ok := scoring.ServiceMessage(err); ok {
		return msg
	}
	if scoring.IsTransport(err) {
		return TransportErrorMessage
	}
	return UnexpectedErrorMessage
}
