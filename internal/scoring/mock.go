package scoring

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is a canned reply for the MockScorer.
type MockResponse struct {
	Response *Response
	Err      error

	// Panic, when set, makes Submit panic with this value.
	Panic any

	// Wait, when set, blocks Submit until the channel is closed.
	Wait <-chan struct{}
}

// MockScorer is a deterministic Scorer for testing.
// It returns canned responses in FIFO order and records all requests.
type MockScorer struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockScorer creates a MockScorer with the given canned responses.
func NewMockScorer(responses ...MockResponse) *MockScorer {
	return &MockScorer{responses: responses}
}

// Submit returns the next canned response, or a TransportError if the
// queue is empty.
func (m *MockScorer) Submit(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, copyRequest(req))
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return nil, &TransportError{Err: errors.New("mock: no canned response")}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Wait != nil {
		select {
		case <-resp.Wait:
		case <-ctx.Done():
			return nil, &TransportError{Err: ctx.Err()}
		}
	}
	if resp.Panic != nil {
		panic(resp.Panic)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	out := *resp.Response
	return &out, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockScorer) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Submit calls made.
func (m *MockScorer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or nil.
func (m *MockScorer) LastCall() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}

func copyRequest(req Request) Request {
	out := make(Request, len(req))
	for k, v := range req {
		out[k] = v
	}
	return out
}
