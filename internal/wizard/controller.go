// Package wizard drives a single assessment run: Welcome, one step per
// catalog question, then submission to the scoring service and the result.
package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/catalog"
	"github.com/abhisek/mindcheck/internal/scoring"
)

// Controller owns all wizard state. It is safe for concurrent use; the
// in-flight submission runs outside the lock.
type Controller struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	scorer   scoring.Scorer
	logger   *zap.Logger
	observer Observer
	newID    func() string

	phase      Phase
	step       int
	answers    catalog.AnswerSet
	submitting bool
	result     *Result
	lastError  string
	sessionID  string

	// generation is bumped by Reset so late responses can be recognized.
	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithSessionIDs replaces the session id generator.
func WithSessionIDs(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// New creates a Controller in PhaseWelcome.
func New(cat *catalog.Catalog, scorer scoring.Scorer, opts ...Option) *Controller {
	c := &Controller{
		catalog: cat,
		scorer:  scorer,
		logger:  zap.NewNop(),
		newID:   uuid.NewString,
		phase:   PhaseWelcome,
		answers: make(catalog.AnswerSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the question catalog the wizard walks through.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Start moves from Welcome to the first question.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.phase != PhaseWelcome {
		c.mu.Unlock()
		return ErrWrongPhase
	}
	c.phase = PhaseAnswering
	c.step = 1
	c.sessionID = c.newID()
	ev := Event{Kind: EventStarted, SessionID: c.sessionID, Step: 1}
	c.mu.Unlock()

	c.logger.Info("assessment started", zap.String("session_id", ev.SessionID))
	c.emit(ev)
	return nil
}

// RecordAnswer stores value for the current question, replacing any earlier
// answer. The value is not checked against the question's kind.
func (c *Controller) RecordAnswer(questionID int, value catalog.Answer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseAnswering {
		return ErrWrongPhase
	}
	if _, ok := c.catalog.Get(questionID); !ok {
		return ErrUnknownQuestion
	}
	current, _ := c.catalog.At(c.step)
	if current.ID != questionID {
		return ErrNotCurrentQuestion
	}
	c.answers[questionID] = value
	return nil
}

// Advance moves to the next question when the current one is answered.
// On the last question it returns AdvanceSubmit and leaves the submission
// to the caller.
func (c *Controller) Advance() AdvanceOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.canAdvanceLocked() {
		return AdvanceBlocked
	}
	if c.step < c.catalog.Len() {
		c.step++
		return AdvanceMoved
	}
	return AdvanceSubmit
}

// Retreat moves to the previous question. It reports whether the step
// changed.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.canRetreatLocked() {
		return false
	}
	c.step--
	return true
}

// Next advances and, on the last question, submits synchronously.
func (c *Controller) Next(ctx context.Context) (AdvanceOutcome, error) {
	out := c.Advance()
	if out != AdvanceSubmit {
		return out, nil
	}
	return out, c.Submit(ctx)
}

// Submit sends the answers to the scoring service and waits for the reply.
// A failed attempt leaves the wizard on the last question with the error
// recorded; it may be retried.
func (c *Controller) Submit(ctx context.Context) error {
	sub, err := c.BeginSubmit()
	if err != nil {
		return err
	}
	return sub.Run(ctx)
}

// Reset returns to Welcome and forgets the current run. A submission still
// in flight is discarded when it completes.
func (c *Controller) Reset() {
	c.mu.Lock()
	prev := Event{Kind: EventReset, SessionID: c.sessionID, Step: c.step}
	c.generation++
	c.phase = PhaseWelcome
	c.step = 0
	c.answers = make(catalog.AnswerSet)
	c.submitting = false
	c.result = nil
	c.lastError = ""
	c.sessionID = ""
	c.mu.Unlock()

	if prev.SessionID != "" {
		c.logger.Info("assessment reset",
			zap.String("session_id", prev.SessionID),
			zap.Int("step", prev.Step),
		)
		c.emit(prev)
	}
}

// Progress returns step/(N+1) while answering, 0 in Welcome and 1 in Result.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressLocked()
}

// Answers returns a copy of the recorded answers.
func (c *Controller) Answers() catalog.AnswerSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(catalog.AnswerSet, len(c.answers))
	for id, a := range c.answers {
		out[id] = a
	}
	return out
}

// Snapshot returns the current state for presentation.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Phase:      c.phase,
		SessionID:  c.sessionID,
		Step:       c.step,
		Total:      c.catalog.Len(),
		Progress:   c.progressLocked(),
		Submitting: c.submitting,
		Err:        c.lastError,
		CanAdvance: c.canAdvanceLocked(),
		CanRetreat: c.canRetreatLocked(),
	}
	for _, a := range c.answers {
		if a.Complete() {
			s.Answered++
		}
	}
	if c.phase == PhaseAnswering {
		s.Question, _ = c.catalog.At(c.step)
		s.Answer = c.answers[s.Question.ID]
		s.IsLastStep = c.step == c.catalog.Len()
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}

func (c *Controller) progressLocked() float64 {
	switch c.phase {
	case PhaseAnswering:
		return float64(c.step) / float64(c.catalog.Len()+1)
	case PhaseResult:
		return 1
	default:
		return 0
	}
}

// Navigation is frozen while a submission is in flight so a failure always
// lands on the last question.
func (c *Controller) canAdvanceLocked() bool {
	if c.phase != PhaseAnswering || c.submitting {
		return false
	}
	q, ok := c.catalog.At(c.step)
	if !ok {
		return false
	}
	return c.answers[q.ID].Complete()
}

func (c *Controller) canRetreatLocked() bool {
	return c.phase == PhaseAnswering && !c.submitting && c.step > 1
}

func (c *Controller) emit(ev Event) {
	if c.observer != nil {
		c.observer(ev)
	}
}
