package presseportal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the root of the presseportal REST API
	DefaultBaseURL = "https://api.presseportal.de/api"
	// DefaultUserAgent is sent with every request unless overridden
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:77.0) Gecko/20100101 Firefox/77.0"
	// DefaultTimeout is the HTTP client timeout used when no client is supplied
	DefaultTimeout = 30 * time.Second

	minAPIKeyLength = 6
	dataFormat      = "json"
)

// Client represents a presseportal API client
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	timeout    time.Duration
	timeoutSet bool
	httpClient *http.Client
	allow      Allowlists
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new presseportal client.
// The key is only checked for format here; no request is made.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if len(apiKey) < minAPIKeyLength {
		return nil, &APIKeyError{Key: apiKey}
	}

	client := &Client{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		allow:     DefaultAllowlists(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	switch {
	case client.httpClient == nil:
		client.httpClient = &http.Client{Timeout: client.timeout}
	case client.timeoutSet && client.httpClient.Timeout == 0:
		hc := *client.httpClient
		hc.Timeout = client.timeout
		client.httpClient = &hc
	}

	return client, nil
}

// Allowlists returns a copy of the allow-lists the client validates against
func (c *Client) Allowlists() Allowlists {
	return c.allow.clone()
}

// TestConnection requests a single story to verify the key and connectivity
func (c *Client) TestConnection(ctx context.Context) error {
	req := c.BuildRequest(pathAllStories, newQuery([]QueryOption{Limit(1)}))
	if _, err := c.Fetch(ctx, req); err != nil {
		return err
	}
	return nil
}

// Envelope is the top-level JSON object returned by the API
type Envelope struct {
	Success json.RawMessage `json:"success,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

type envelopeError struct {
	Code flexString `json:"code"`
	Msg  *string    `json:"msg"`
}

// Fetch performs the GET described by req and validates the response envelope.
func (c *Client) Fetch(ctx context.Context, req *Request) (*Envelope, error) {
	c.logger.Debug().
		Str("url", req.redacted()).
		Msg("Making presseportal API request")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &ConnectionError{Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DataError{
			Reason: fmt.Sprintf("response with status %d is not a JSON object", resp.StatusCode),
			Err:    err,
		}
	}

	if err := env.validate(); err != nil {
		c.logger.Debug().Err(err).Int("status", resp.StatusCode).Msg("presseportal request failed")
		return nil, err
	}

	return &env, nil
}

// validate classifies the envelope as success, API error or unknown
func (e *Envelope) validate() error {
	if present(e.Error) {
		var apiErr envelopeError
		if err := json.Unmarshal(e.Error, &apiErr); err != nil {
			return fmt.Errorf("%w: malformed error object: %v", ErrUnknownEnvelope, err)
		}
		if apiErr.Code == "" || apiErr.Msg == nil {
			return fmt.Errorf("%w: error object without code and msg", ErrUnknownEnvelope)
		}
		return &APIError{Code: string(apiErr.Code), Message: *apiErr.Msg}
	}

	if truthy(e.Success) || present(e.Content) {
		return nil
	}

	return ErrUnknownEnvelope
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case `1`, `"1"`, `true`, `"true"`:
		return true
	default:
		return false
	}
}

// flexString decodes a JSON string or number into a string
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*f = flexString(n.String())
		return nil
	}
}
