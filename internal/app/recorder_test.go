package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/scoring"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/wizard"
)

type recordingRepo struct {
	events []store.SessionEventData
	err    error
}

func (r *recordingRepo) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, d)
	return nil
}
func (r *recordingRepo) AppendSubmission(context.Context, store.SubmissionEventData) error {
	return nil
}
func (r *recordingRepo) SessionEvents(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, nil
}
func (r *recordingRepo) Submissions(context.Context, store.QueryOpts) ([]store.SubmissionEvent, error) {
	return nil, nil
}
func (r *recordingRepo) Prune(context.Context, int) error { return nil }

func TestSessionRecorder_Lifecycle(t *testing.T) {
	repo := &recordingRepo{}
	mock := scoring.NewMockScorer(
		scoring.MockResponse{Err: &scoring.TransportError{Err: errors.New("down")}},
		scoring.MockResponse{Response: &scoring.Response{Score: 1}},
	)
	ctl := wizard.New(catalog.Default(), mock,
		wizard.WithObserver(SessionRecorder(repo, nil)),
		wizard.WithSessionIDs(func() string { return "sess-1" }),
	)

	require.NoError(t, ctl.Start())
	for _, q := range catalog.Default().All() {
		var a catalog.Answer
		switch q.Kind {
		case catalog.KindChoice:
			a = catalog.Choice(q.Options[0])
		case catalog.KindScale:
			a = catalog.Scale(q.Min)
		default:
			a = catalog.Integer(4)
		}
		require.NoError(t, ctl.RecordAnswer(q.ID, a))
		if q.ID < catalog.Default().Len() {
			require.Equal(t, wizard.AdvanceMoved, ctl.Advance())
		}
	}

	require.Error(t, ctl.Submit(context.Background()))
	require.NoError(t, ctl.Submit(context.Background()))
	ctl.Reset()

	want := []store.SessionEventData{
		{SessionID: "sess-1", Action: store.ActionStart, Step: 1},
		{SessionID: "sess-1", Action: store.ActionComplete, Step: 10},
		{SessionID: "sess-1", Action: store.ActionReset, Step: 10},
	}
	assert.Equal(t, want, repo.events)
}

func TestSessionRecorder_AppendFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &recordingRepo{err: errors.New("readonly database")}

	rec := SessionRecorder(repo, zap.New(core))
	rec(wizard.Event{Kind: wizard.EventStarted, SessionID: "s", Step: 1})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to record session event", entry.Message)
	assert.Equal(t, "start", entry.ContextMap()["action"])
}

func TestSessionRecorder_IgnoresFailures(t *testing.T) {
	repo := &recordingRepo{}
	rec := SessionRecorder(repo, zap.NewNop())
	rec(wizard.Event{Kind: wizard.EventFailed, SessionID: "s", Step: 10})
	assert.Empty(t, repo.events)
}
