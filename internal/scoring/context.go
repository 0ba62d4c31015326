package scoring

import "context"

type contextKey string

const sessionKey contextKey = "assessment_session"

// WithSession attaches an assessment session id to the context for history
// recording.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom extracts the session id from the context.
func SessionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey).(string); ok {
		return v
	}
	return ""
}
