package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/wizard"
)

const recordTimeout = 5 * time.Second

// SessionRecorder returns a wizard observer that stores lifecycle events in
// repo. Failed submissions are skipped; the scoring decorator records them.
// Append failures are logged and never reach the wizard.
func SessionRecorder(repo store.EventRepo, logger *zap.Logger) wizard.Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ev wizard.Event) {
		action, ok := sessionAction(ev.Kind)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		err := repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: ev.SessionID,
			Action:    action,
			Step:      ev.Step,
		})
		if err != nil {
			logger.Warn("failed to record session event",
				zap.String("session_id", ev.SessionID),
				zap.String("action", action),
				zap.Error(err),
			)
		}
	}
}

func sessionAction(k wizard.EventKind) (string, bool) {
	switch k {
	case wizard.EventStarted:
		return store.ActionStart, true
	case wizard.EventReset:
		return store.ActionReset, true
	case wizard.EventCompleted:
		return store.ActionComplete, true
	default:
		return "", false
	}
}
