package scoring

import (
	"context"

	"github.com/abhisek/mindcheck/internal/catalog"
)

// Scorer is the contract for the remote scoring service.
// Implementations send one request per call and never retry.
type Scorer interface {
	Submit(ctx context.Context, req Request) (*Response, error)
}

// Request is the outbound answer payload keyed by wire field name.
type Request map[string]catalog.Answer

// Response is the decoded scoring service reply.
type Response struct {
	HasPotentialDepression bool    `json:"has_potential_depression"`
	Score                  float64 `json:"score"`

	// Message is empty when the service omitted it.
	Message string `json:"message,omitempty"`
}
