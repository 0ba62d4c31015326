package catalog

// Kind identifies how a question is answered.
type Kind string

const (
	KindChoice  Kind = "choice"  // Pick one label from Options
	KindScale   Kind = "scale"   // Pick a number between Min and Max
	KindInteger Kind = "integer" // Type any whole number
)

// DisplayName returns a human-readable name for a kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindChoice:
		return "Single choice"
	case KindScale:
		return "Scale"
	case KindInteger:
		return "Number"
	default:
		return string(k)
	}
}

// Question is a single entry of the questionnaire.
type Question struct {
	// ID is the stable ordering key. Unique and positive.
	ID int

	// Text is the prompt shown to the user.
	Text string

	// Kind selects the input widget and the answer shape.
	Kind Kind

	// Options lists the labels for KindChoice, in display order.
	Options []string

	// Min and Max bound a KindScale answer (inclusive).
	Min int
	Max int

	// Field is the name this answer is sent under to the scoring service.
	Field string
}

// HasOption reports whether label is one of the question's options.
func (q Question) HasOption(label string) bool {
	for _, o := range q.Options {
		if o == label {
			return true
		}
	}
	return false
}
