package wizard

// EventKind identifies a wizard lifecycle transition.
type EventKind int

const (
	EventStarted   EventKind = iota // Start moved Welcome to the first question
	EventReset                      // Reset abandoned or finished a run
	EventCompleted                  // A submission produced a result
	EventFailed                     // A submission failed
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventReset:
		return "reset"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event describes a lifecycle transition.
type Event struct {
	Kind      EventKind
	SessionID string
	Step      int

	// Err is set for EventFailed.
	Err error
}

// Observer receives lifecycle events. It is called without the
// controller's lock held, after the transition took effect.
type Observer func(Event)
