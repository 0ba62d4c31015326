package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	Before    int64  // sequence < Before (0 = no bound)
	SessionID string // only events of this session ("" = all)
}

// Session lifecycle actions.
const (
	ActionStart    = "start"
	ActionReset    = "reset"
	ActionComplete = "complete"
)

// SessionEventData captures a wizard lifecycle transition.
type SessionEventData struct {
	SessionID string
	Action    string
	Step      int
}

// SessionEvent is a stored SessionEventData.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// SubmissionEventData captures a single call to the scoring service.
type SubmissionEventData struct {
	SessionID              string
	Endpoint               string
	Success                bool
	HasPotentialDepression bool
	Score                  float64
	Message                string
	ErrorMessage           string
	StatusCode             int
	LatencyMs              int64

	// Answers is the JSON request body that was sent.
	Answers string
}

// SubmissionEvent is a stored SubmissionEventData.
type SubmissionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SubmissionEventData
}

// EventRepo provides append and query access to assessment history.
type EventRepo interface {
	// AppendSessionEvent records a wizard lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendSubmission records a scoring service call.
	AppendSubmission(ctx context.Context, data SubmissionEventData) error

	// SessionEvents returns session events, newest first.
	SessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// Submissions returns submission events, newest first.
	Submissions(ctx context.Context, opts QueryOpts) ([]SubmissionEvent, error)

	// Prune deletes all but the N most recent submissions, along with session
	// events older than the oldest kept submission. keep <= 0 clears everything.
	Prune(ctx context.Context, keep int) error
}
