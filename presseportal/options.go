package presseportal

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP client timeout.
// Combined with WithHTTPClient it only applies when that client has no timeout
// of its own; the supplied client is copied, not modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
		c.timeoutSet = true
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithAllowlists replaces the built-in allow-lists.
func WithAllowlists(lists Allowlists) Option {
	return func(c *Client) {
		c.allow = lists.clone()
	}
}

// WithRateLimit spaces requests to at most rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// Query holds the optional parameters of a single request.
// Nil pointers are not sent, so the API applies its own defaults.
type Query struct {
	Media      string
	Start      *int
	Limit      *int
	Teaser     *bool
	SearchTerm *string
}

// QueryOption sets one optional parameter on a Query.
type QueryOption func(*Query)

// WithMedia restricts results to stories carrying the given media type.
func WithMedia(media string) QueryOption {
	return func(q *Query) {
		q.Media = media
	}
}

// Start sets the offset into the result list.
func Start(start int) QueryOption {
	return func(q *Query) {
		q.Start = &start
	}
}

// Limit caps the number of results.
func Limit(limit int) QueryOption {
	return func(q *Query) {
		q.Limit = &limit
	}
}

// Teaser requests teaser text instead of the full body when true.
func Teaser(teaser bool) QueryOption {
	return func(q *Query) {
		q.Teaser = &teaser
	}
}

func newQuery(opts []QueryOption) Query {
	var q Query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}
