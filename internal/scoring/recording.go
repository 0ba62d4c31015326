package scoring

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/store"
)

// RecordingScorer is a decorator that records every scoring attempt in the
// assessment history.
type RecordingScorer struct {
	inner     Scorer
	eventRepo store.EventRepo
	endpoint  string
	logger    *zap.Logger
}

// WithRecording wraps a Scorer with history recording. The endpoint is
// taken from the inner scorer when it exposes one.
func WithRecording(s Scorer, repo store.EventRepo, logger *zap.Logger) Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &RecordingScorer{inner: s, eventRepo: repo, logger: logger}
	if e, ok := s.(interface{ Endpoint() string }); ok {
		r.endpoint = e.Endpoint()
	}
	return r
}

func (r *RecordingScorer) Submit(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := r.inner.Submit(ctx, req)

	data := store.SubmissionEventData{
		SessionID:  SessionFrom(ctx),
		Endpoint:   r.endpoint,
		Success:    err == nil,
		LatencyMs:  time.Since(start).Milliseconds(),
		StatusCode: StatusCode(err),
	}
	if body, mErr := json.Marshal(req); mErr == nil {
		data.Answers = string(body)
	}
	if resp != nil {
		data.HasPotentialDepression = resp.HasPotentialDepression
		data.Score = resp.Score
		data.Message = resp.Message
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the submission if recording fails. The
	// caller's context may already be done, so record on a fresh one.
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if logErr := r.eventRepo.AppendSubmission(recCtx, data); logErr != nil {
		r.logger.Warn("failed to record submission", zap.Error(logErr))
	}

	return resp, err
}
