package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultEndpoint is the scoring service URL used when none is configured.
const DefaultEndpoint = "http://localhost:5000/check"

// DefaultTimeout bounds a single scoring request.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client posts answer sets to the scoring service over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for the given endpoint. An empty endpoint
// selects DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q: missing host", endpoint)
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts req as JSON and decodes the reply. Exactly one HTTP request
// is made per call.
func (c *Client) Submit(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &InvalidRequestError{Err: err}
	}
	if err := validateJSON(RequestSchema, body); err != nil {
		return nil, &InvalidRequestError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &InvalidRequestError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("scoring request failed",
			zap.String("endpoint", c.endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	c.logger.Debug("scoring response",
		zap.String("endpoint", c.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(raw)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	return decodeResponse(raw)
}

// decodeResponse validates and decodes a 2xx body.
func decodeResponse(raw []byte) (*Response, error) {
	if err := validateJSON(ResponseSchema, raw); err != nil {
		return nil, &InvalidResponseError{Body: raw, Err: err}
	}

	// message may be null; decode it through a pointer.
	var wire struct {
		HasPotentialDepression bool    `json:"has_potential_depression"`
		Score                  float64 `json:"score"`
		Message                *string `json:"message"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &InvalidResponseError{Body: raw, Err: err}
	}

	out := &Response{
		HasPotentialDepression: wire.HasPotentialDepression,
		Score:                  wire.Score,
	}
	if wire.Message != nil {
		out.Message = *wire.Message
	}
	return out, nil
}

// errorMessage extracts a non-empty string "message" field from an error
// body. Bodies that are not JSON objects yield "".
func errorMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Message) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(body.Message, &msg); err != nil {
		return ""
	}
	return msg
}
