package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/scoring"
)

// validAnswers holds one answer per default catalog question.
var validAnswers = map[int]catalog.Answer{
	1:  catalog.Choice("Male"),
	2:  catalog.Choice("17-25"),
	3:  catalog.Choice("3"),
	4:  catalog.Scale(6),
	5:  catalog.Choice("7-8 hrs"),
	6:  catalog.Choice("healthy"),
	7:  catalog.Choice("No"),
	8:  catalog.Integer(6),
	9:  catalog.Scale(4),
	10: catalog.Choice("No"),
}

func newController(t *testing.T, responses ...scoring.MockResponse) (*Controller, *scoring.MockScorer) {
	t.Helper()
	mock := scoring.NewMockScorer(responses...)
	return New(catalog.Default(), mock), mock
}

// answerAll starts the wizard and walks to the last question, answering it.
func answerAll(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.Start())
	for id := 1; id <= 10; id++ {
		require.NoError(t, c.RecordAnswer(id, validAnswers[id]))
		if id < 10 {
			require.Equal(t, AdvanceMoved, c.Advance(), "advance from %d", id)
		}
	}
}

func TestNew_StartsAtWelcome(t *testing.T) {
	c, _ := newController(t)
	s := c.Snapshot()
	assert.Equal(t, PhaseWelcome, s.Phase)
	assert.Equal(t, 0, s.Step)
	assert.Equal(t, 10, s.Total)
	assert.Zero(t, s.Progress)
	assert.False(t, s.CanAdvance)
	assert.False(t, s.CanRetreat)
}

func TestStart(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.Start())

	s := c.Snapshot()
	assert.Equal(t, PhaseAnswering, s.Phase)
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, 1, s.Question.ID)
	assert.NotEmpty(t, s.SessionID)

	assert.ErrorIs(t, c.Start(), ErrWrongPhase, "start is only valid from Welcome")
	assert.Equal(t, 1, c.Snapshot().Step)
}

func TestRecordAnswer(t *testing.T) {
	c, _ := newController(t)
	assert.ErrorIs(t, c.RecordAnswer(1, catalog.Choice("Male")), ErrWrongPhase)

	require.NoError(t, c.Start())
	assert.ErrorIs(t, c.RecordAnswer(99, catalog.Choice("Male")), ErrUnknownQuestion)
	assert.ErrorIs(t, c.RecordAnswer(2, catalog.Choice("17-25")), ErrNotCurrentQuestion)

	require.NoError(t, c.RecordAnswer(1, catalog.Choice("Male")))
	require.NoError(t, c.RecordAnswer(1, catalog.Choice("Female")))
	assert.Equal(t, catalog.Choice("Female"), c.Snapshot().Answer, "answers are overwritten")

	// Values are not checked against the question kind.
	require.NoError(t, c.RecordAnswer(1, catalog.Integer(3)))
	assert.Equal(t, catalog.Integer(3), c.Answers()[1])
}

// Advancing with an incomplete answer leaves the step unchanged.
func TestAdvance_BlockedWhenIncomplete(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.Start())

	assert.Equal(t, AdvanceBlocked, c.Advance())
	assert.Equal(t, 1, c.Snapshot().Step)

	require.NoError(t, c.RecordAnswer(1, catalog.Choice("")))
	assert.False(t, c.Snapshot().CanAdvance)
	assert.Equal(t, AdvanceBlocked, c.Advance())
	assert.Equal(t, 1, c.Snapshot().Step)

	require.NoError(t, c.RecordAnswer(1, catalog.Choice("Male")))
	assert.True(t, c.Snapshot().CanAdvance)
	assert.Equal(t, AdvanceMoved, c.Advance())
	assert.Equal(t, 2, c.Snapshot().Step)
}

func TestAdvance_AllowedIffCurrentAnswerComplete(t *testing.T) {
	for k := 1; k < 10; k++ {
		c, _ := newController(t)
		require.NoError(t, c.Start())
		for id := 1; id < k; id++ {
			require.NoError(t, c.RecordAnswer(id, validAnswers[id]))
			require.Equal(t, AdvanceMoved, c.Advance())
		}

		assert.Equal(t, AdvanceBlocked, c.Advance(), "step %d unanswered", k)
		require.NoError(t, c.RecordAnswer(k, validAnswers[k]))
		assert.Equal(t, AdvanceMoved, c.Advance(), "step %d answered", k)
		assert.Equal(t, k+1, c.Snapshot().Step)
	}
}

func TestAdvance_ZeroNumericAnswersAreComplete(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.Start())
	for id := 1; id <= 7; id++ {
		require.NoError(t, c.RecordAnswer(id, validAnswers[id]))
		require.Equal(t, AdvanceMoved, c.Advance())
	}
	require.NoError(t, c.RecordAnswer(8, catalog.Integer(0)))
	assert.Equal(t, AdvanceMoved, c.Advance())
}

func TestAdvance_LastStepRequestsSubmit(t *testing.T) {
	c, mock := newController(t)
	answerAll(t, c)

	s := c.Snapshot()
	assert.True(t, s.IsLastStep)
	assert.Equal(t, AdvanceSubmit, c.Advance())
	assert.Equal(t, 10, c.Snapshot().Step)
	assert.Zero(t, mock.CallCount(), "Advance alone never calls the scorer")
}

func TestRetreat(t *testing.T) {
	c, _ := newController(t)
	assert.False(t, c.Retreat())

	require.NoError(t, c.Start())
	assert.False(t, c.Retreat(), "no-op at step 1")
	assert.Equal(t, 1, c.Snapshot().Step)

	require.NoError(t, c.RecordAnswer(1, validAnswers[1]))
	require.Equal(t, AdvanceMoved, c.Advance())
	assert.True(t, c.Snapshot().CanRetreat)
	assert.True(t, c.Retreat())
	assert.Equal(t, 1, c.Snapshot().Step)
}

func TestRetreatThenAdvanceKeepsAnswers(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.Start())
	for id := 1; id <= 4; id++ {
		require.NoError(t, c.RecordAnswer(id, validAnswers[id]))
		require.Equal(t, AdvanceMoved, c.Advance())
	}
	before := c.Answers()

	require.True(t, c.Retreat())
	require.True(t, c.Retreat())
	assert.Equal(t, 3, c.Snapshot().Step)
	assert.Equal(t, validAnswers[3], c.Snapshot().Answer)

	require.Equal(t, AdvanceMoved, c.Advance())
	require.Equal(t, AdvanceMoved, c.Advance())
	assert.Equal(t, 5, c.Snapshot().Step)
	assert.Equal(t, before, c.Answers())
}

func TestProgress(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{Response: &scoring.Response{Score: 1}})
	assert.Zero(t, c.Progress())

	require.NoError(t, c.Start())
	assert.InDelta(t, 1.0/11.0, c.Progress(), 1e-9)

	for id := 1; id < 10; id++ {
		require.NoError(t, c.RecordAnswer(id, validAnswers[id]))
		require.Equal(t, AdvanceMoved, c.Advance())
		assert.InDelta(t, float64(id+1)/11.0, c.Progress(), 1e-9)
	}

	require.NoError(t, c.RecordAnswer(10, validAnswers[10]))
	_, err := c.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Progress())
}

func TestSubmit_Preconditions(t *testing.T) {
	c, mock := newController(t)
	assert.ErrorIs(t, c.Submit(context.Background()), ErrWrongPhase)

	require.NoError(t, c.Start())
	assert.ErrorIs(t, c.Submit(context.Background()), ErrNotLastStep)
	assert.Zero(t, mock.CallCount())
}

func TestSubmit_RejectedBeforeLastStep(t *testing.T) {
	c, mock := newController(t, scoring.MockResponse{Response: &scoring.Response{Score: 1}})
	answerAll(t, c)
	for c.Retreat() {
	}
	require.Equal(t, 1, c.Snapshot().Step)

	assert.ErrorIs(t, c.Submit(context.Background()), ErrNotLastStep)
	_, err := c.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotLastStep)

	s := c.Snapshot()
	assert.Equal(t, PhaseAnswering, s.Phase)
	assert.Equal(t, 1, s.Step)
	assert.False(t, s.Submitting)
	assert.Empty(t, s.Err)
	assert.Zero(t, mock.CallCount())
}

func TestSubmit_IncompleteOnLastStep(t *testing.T) {
	c, mock := newController(t)
	require.NoError(t, c.Start())
	for id := 1; id < 10; id++ {
		require.NoError(t, c.RecordAnswer(id, validAnswers[id]))
		require.Equal(t, AdvanceMoved, c.Advance())
	}
	require.Equal(t, 10, c.Snapshot().Step)

	assert.ErrorIs(t, c.Submit(context.Background()), ErrIncomplete)
	assert.Zero(t, mock.CallCount())
}

func TestSubmit_PayloadMatchesAnswers(t *testing.T) {
	c, mock := newController(t, scoring.MockResponse{Response: &scoring.Response{Score: 3}})
	answerAll(t, c)
	require.NoError(t, c.Submit(context.Background()))

	require.Equal(t, 1, mock.CallCount())
	req := mock.LastCall()
	require.Len(t, req, 10)
	for _, q := range catalog.Default().All() {
		assert.Equal(t, validAnswers[q.ID], req[q.Field], q.Field)
	}
}

// A full run with a service response carrying a message.
func TestSubmit_SuccessWithMessage(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{
		Response: &scoring.Response{HasPotentialDepression: true, Score: 7, Message: "High risk"},
	})
	answerAll(t, c)

	out, err := c.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AdvanceSubmit, out)

	s := c.Snapshot()
	assert.Equal(t, PhaseResult, s.Phase)
	require.NotNil(t, s.Result)
	assert.True(t, s.Result.HasPotentialDepression)
	assert.Equal(t, 7.0, s.Result.Score)
	assert.Equal(t, "High risk", s.Result.Message)
	assert.False(t, s.Submitting)
	assert.Empty(t, s.Err)
}

// A missing message falls back to the default.
func TestSubmit_SuccessWithoutMessage(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{
		Response: &scoring.Response{HasPotentialDepression: false, Score: 2},
	})
	answerAll(t, c)
	require.NoError(t, c.Submit(context.Background()))

	s := c.Snapshot()
	require.NotNil(t, s.Result)
	assert.False(t, s.Result.HasPotentialDepression)
	assert.Equal(t, DefaultResultMessage, s.Result.Message)
}

// A network failure keeps the user on the last question and allows retry.
func TestSubmit_NetworkFailureThenRetry(t *testing.T) {
	c, mock := newController(t,
		scoring.MockResponse{Err: &scoring.TransportError{Err: errors.New("connection refused")}},
		scoring.MockResponse{Response: &scoring.Response{Score: 4}},
	)
	answerAll(t, c)

	err := c.Submit(context.Background())
	require.Error(t, err)

	s := c.Snapshot()
	assert.Equal(t, PhaseAnswering, s.Phase)
	assert.Equal(t, 10, s.Step)
	assert.Equal(t, TransportErrorMessage, s.Err)
	assert.False(t, s.Submitting)
	assert.Nil(t, s.Result)
	assert.Len(t, c.Answers(), 10)

	require.NoError(t, c.Submit(context.Background()))
	s = c.Snapshot()
	assert.Equal(t, PhaseResult, s.Phase)
	assert.Empty(t, s.Err, "error is cleared by the next attempt")
	assert.Equal(t, 2, mock.CallCount())
}

// A service-reported message is shown verbatim.
func TestSubmit_ServiceErrorMessage(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{
		Err: &scoring.ServiceError{StatusCode: 400, Message: "Invalid input"},
	})
	answerAll(t, c)

	require.Error(t, c.Submit(context.Background()))
	s := c.Snapshot()
	assert.Equal(t, "Invalid input", s.Err)
	assert.Equal(t, 10, s.Step)
	assert.False(t, s.Submitting)
}

func TestSubmit_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", &scoring.TransportError{Err: context.DeadlineExceeded}, TransportErrorMessage},
		{"status without message", &scoring.ServiceError{StatusCode: 500}, TransportErrorMessage},
		{"status with message", &scoring.ServiceError{StatusCode: 503, Message: "Model warming up"}, "Model warming up"},
		{"invalid response", &scoring.InvalidResponseError{Err: errors.New("bad json")}, UnexpectedErrorMessage},
		{"other", errors.New("boom"), UnexpectedErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController(t, scoring.MockResponse{Err: tt.err})
			answerAll(t, c)
			require.Error(t, c.Submit(context.Background()))
			assert.Equal(t, tt.want, c.Snapshot().Err)
		})
	}
}

func TestSubmit_ScorerPanicIsUnexpectedError(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{Panic: "nil map"})
	answerAll(t, c)

	err := c.Submit(context.Background())
	var pe *PanicError
	require.True(t, errors.As(err, &pe), "got %v", err)

	s := c.Snapshot()
	assert.Equal(t, UnexpectedErrorMessage, s.Err)
	assert.False(t, s.Submitting)
	assert.Equal(t, PhaseAnswering, s.Phase)
}

// Reset from Result clears everything.
func TestReset_FromResult(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{Response: &scoring.Response{Score: 5}})
	answerAll(t, c)
	require.NoError(t, c.Submit(context.Background()))
	require.Equal(t, PhaseResult, c.Snapshot().Phase)

	c.Reset()

	s := c.Snapshot()
	assert.Equal(t, PhaseWelcome, s.Phase)
	assert.Empty(t, c.Answers())
	assert.Nil(t, s.Result)
	assert.Empty(t, s.Err)
	assert.False(t, s.Submitting)
	assert.Empty(t, s.SessionID)

	require.NoError(t, c.Start(), "a new run can begin")
}

func TestReset_ClearsErrorMidRun(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{Err: errors.New("boom")})
	answerAll(t, c)
	require.Error(t, c.Submit(context.Background()))

	c.Reset()
	assert.Empty(t, c.Snapshot().Err)
}

func TestBeginSubmit_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	c, mock := newController(t, scoring.MockResponse{
		Response: &scoring.Response{Score: 1},
		Wait:     release,
	})
	answerAll(t, c)

	sub, err := c.BeginSubmit()
	require.NoError(t, err)

	s := c.Snapshot()
	assert.True(t, s.Submitting)
	assert.False(t, s.CanAdvance, "navigation is frozen while submitting")
	assert.False(t, s.CanRetreat)
	assert.False(t, c.Retreat())
	assert.Equal(t, AdvanceBlocked, c.Advance())

	_, err = c.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	done := make(chan error, 1)
	go func() { done <- sub.Run(context.Background()) }()
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, PhaseResult, c.Snapshot().Phase)
}

func TestReset_DropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	c, _ := newController(t,
		scoring.MockResponse{Response: &scoring.Response{Score: 9, Message: "late"}, Wait: release},
	)
	answerAll(t, c)

	sub, err := c.BeginSubmit()
	require.NoError(t, err)

	c.Reset()
	require.NoError(t, c.Start())
	require.NoError(t, c.RecordAnswer(1, validAnswers[1]))

	done := make(chan error, 1)
	go func() { done <- sub.Run(context.Background()) }()
	close(release)
	assert.ErrorIs(t, <-done, ErrStale)

	s := c.Snapshot()
	assert.Equal(t, PhaseAnswering, s.Phase)
	assert.Equal(t, 1, s.Step)
	assert.Nil(t, s.Result)
	assert.False(t, s.Submitting)
	assert.Equal(t, validAnswers[1], s.Answer)
}

func TestReset_StaleFailureDoesNotClearNewSubmission(t *testing.T) {
	releaseOld := make(chan struct{})
	releaseNew := make(chan struct{})
	c, _ := newController(t,
		scoring.MockResponse{Err: errors.New("old"), Wait: releaseOld},
		scoring.MockResponse{Response: &scoring.Response{Score: 2}, Wait: releaseNew},
	)
	answerAll(t, c)
	oldSub, err := c.BeginSubmit()
	require.NoError(t, err)

	c.Reset()
	answerAll(t, c)
	newSub, err := c.BeginSubmit()
	require.NoError(t, err)

	// The mock hands out responses in call order, so run the old one first.
	oldDone := make(chan error, 1)
	go func() { oldDone <- oldSub.Run(context.Background()) }()
	close(releaseOld)
	assert.ErrorIs(t, <-oldDone, ErrStale)

	s := c.Snapshot()
	assert.True(t, s.Submitting, "the new run is still in flight")
	assert.Empty(t, s.Err)

	newDone := make(chan error, 1)
	go func() { newDone <- newSub.Run(context.Background()) }()
	close(releaseNew)
	require.NoError(t, <-newDone)
	assert.Equal(t, PhaseResult, c.Snapshot().Phase)
}

func TestObserverEvents(t *testing.T) {
	var (
		mu     sync.Mutex
		events []Event
	)
	mock := scoring.NewMockScorer(
		scoring.MockResponse{Err: errors.New("boom")},
		scoring.MockResponse{Response: &scoring.Response{Score: 1}},
	)
	c := New(catalog.Default(), mock,
		WithSessionIDs(func() string { return "fixed" }),
		WithObserver(func(e Event) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		}),
	)

	c.Reset() // no run yet, no event
	answerAll(t, c)
	require.Error(t, c.Submit(context.Background()))
	require.NoError(t, c.Submit(context.Background()))
	c.Reset()

	var kinds []EventKind
	for _, e := range events {
		assert.Equal(t, "fixed", e.SessionID)
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventStarted, EventFailed, EventCompleted, EventReset}, kinds)
	assert.Error(t, events[1].Err)
	assert.Equal(t, 10, events[3].Step)
}

func TestSnapshot_IsACopy(t *testing.T) {
	c, _ := newController(t, scoring.MockResponse{Response: &scoring.Response{Score: 1, Message: "ok"}})
	answerAll(t, c)
	require.NoError(t, c.Submit(context.Background()))

	s := c.Snapshot()
	s.Result.Message = "changed"
	assert.Equal(t, "ok", c.Snapshot().Result.Message)

	answers := c.Answers()
	delete(answers, 1)
	assert.Len(t, c.Answers(), 10)
}

func TestSnapshot_AnsweredCount(t *testing.T) {
	c, _ := newController(t)
	require.NoError(t, c.Start())
	require.NoError(t, c.RecordAnswer(1, validAnswers[1]))
	require.Equal(t, AdvanceMoved, c.Advance())
	require.NoError(t, c.RecordAnswer(2, catalog.Choice("")))

	assert.Equal(t, 1, c.Snapshot().Answered)
}

func TestAnswersNeverExceedCatalog(t *testing.T) {
	c, _ := newController(t)
	answerAll(t, c)
	// Re-answering earlier questions after retreating never adds entries.
	for c.Retreat() {
		s := c.Snapshot()
		require.NoError(t, c.RecordAnswer(s.Question.ID, validAnswers[s.Question.ID]))
	}
	assert.Len(t, c.Answers(), 10)
}

func TestPhaseAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "answering", PhaseAnswering.String())
	assert.Equal(t, "submit", AdvanceSubmit.String())
	assert.Equal(t, "reset", EventReset.String())
}
