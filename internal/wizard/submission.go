package wizard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/scoring"
)

// Submission is one in-flight scoring attempt, created by BeginSubmit.
// Run may be called from any goroutine, exactly once.
type Submission struct {
	c          *Controller
	generation uint64
	sessionID  string
	request    scoring.Request
}

// BeginSubmit checks the preconditions, marks the wizard as submitting and
// clears the previous error. The returned Submission must be Run.
func (c *Controller) BeginSubmit() (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseAnswering {
		return nil, ErrWrongPhase
	}
	if c.submitting {
		return nil, ErrSubmitInFlight
	}
	if c.step != c.catalog.Len() {
		return nil, ErrNotLastStep
	}

	req := make(scoring.Request, c.catalog.Len())
	for _, q := range c.catalog.All() {
		a, ok := c.answers[q.ID]
		if !ok || !a.Complete() {
			return nil, ErrIncomplete
		}
		req[q.Field] = a
	}

	c.submitting = true
	c.lastError = ""

	return &Submission{
		c:          c,
		generation: c.generation,
		sessionID:  c.sessionID,
		request:    req,
	}, nil
}

// Run calls the scorer once and applies the outcome. It returns nil on
// success, the scoring error on failure, or ErrStale when the wizard was
// reset in the meantime. A panic in the scorer is reported as a failure.
func (s *Submission) Run(ctx context.Context) (err error) {
	start := time.Now()
	var resp *scoring.Response

	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, &PanicError{Value: r}
		}
		err = s.c.finish(s, resp, err, time.Since(start))
	}()

	resp, err = s.c.scorer.Submit(scoring.WithSession(ctx, s.sessionID), s.request)
	return err
}

func (c *Controller) finish(s *Submission, resp *scoring.Response, err error, elapsed time.Duration) error {
	if err == nil && resp == nil {
		err = errors.New("scorer returned no response")
	}

	c.mu.Lock()
	if s.generation != c.generation {
		c.mu.Unlock()
		c.logger.Info("discarding stale submission",
			zap.String("session_id", s.sessionID),
			zap.Duration("elapsed", elapsed),
		)
		return ErrStale
	}

	c.submitting = false

	if err != nil {
		c.lastError = userMessage(err)
		ev := Event{Kind: EventFailed, SessionID: c.sessionID, Step: c.step, Err: err}
		c.mu.Unlock()

		c.logger.Warn("submission failed",
			zap.String("session_id", s.sessionID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		c.emit(ev)
		return err
	}

	msg := resp.Message
	if msg == "" {
		msg = DefaultResultMessage
	}
	c.result = &Result{
		HasPotentialDepression: resp.HasPotentialDepression,
		Score:                  resp.Score,
		Message:                msg,
	}
	c.phase = PhaseResult
	ev := Event{Kind: EventCompleted, SessionID: c.sessionID, Step: c.step}
	c.mu.Unlock()

	c.logger.Info("submission succeeded",
		zap.String("session_id", s.sessionID),
		zap.Bool("has_potential_depression", resp.HasPotentialDepression),
		zap.Float64("score", resp.Score),
		zap.Duration("elapsed", elapsed),
	)
	c.emit(ev)
	return nil
}
