package assessment

// startMsg is sent by the welcome menu to begin a run.
type startMsg struct{}

// submitDoneMsg is sent when a submission started by the screen returns.
type submitDoneMsg struct {
	Err error
}
