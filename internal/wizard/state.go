package wizard

import "github.com/abhisek/mindcheck/internal/catalog"

// Phase is the wizard's position in the assessment lifecycle.
type Phase int

const (
	PhaseWelcome   Phase = iota // Entry screen, nothing answered
	PhaseAnswering              // Walking through the questions
	PhaseResult                 // Score received, terminal until Reset
)

func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "welcome"
	case PhaseAnswering:
		return "answering"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// AdvanceOutcome reports what Advance did.
type AdvanceOutcome int

const (
	AdvanceBlocked AdvanceOutcome = iota // Nothing changed
	AdvanceMoved                         // Moved to the next question
	AdvanceSubmit                        // On the last question; caller must submit
)

func (o AdvanceOutcome) String() string {
	switch o {
	case AdvanceBlocked:
		return "blocked"
	case AdvanceMoved:
		return "moved"
	case AdvanceSubmit:
		return "submit"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	DefaultResultMessage   = "Assessment completed."
	TransportErrorMessage  = "An error occurred while submitting the assessment."
	UnexpectedErrorMessage = "An unexpected error occurred."
)

// Result is a successful scoring outcome.
type Result struct {
	HasPotentialDepression bool
	Score                  float64
	Message                string
}

// Snapshot is a read-only view of the wizard for presentation.
type Snapshot struct {
	Phase     Phase
	SessionID string

	// Step is the 1-based position of the current question, 0 outside
	// PhaseAnswering.
	Step  int
	Total int

	// Question and Answer describe the current step. Both are zero outside
	// PhaseAnswering.
	Question catalog.Question
	Answer   catalog.Answer

	// Answered counts questions with a complete answer.
	Answered int

	Progress   float64
	Submitting bool

	// Result is set only in PhaseResult.
	Result *Result

	// Err is the message of the last failed submission, "" if none.
	Err string

	CanAdvance bool
	CanRetreat bool
	IsLastStep bool
}
