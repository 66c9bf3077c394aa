package presseportal

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Request is a fully built API call.
type Request struct {
	URL    string
	Params url.Values
	Header http.Header
}

// Encode returns the request URL including the query string.
func (r *Request) Encode() string {
	if len(r.Params) == 0 {
		return r.URL
	}
	return r.URL + "?" + r.Params.Encode()
}

// redacted returns the encoded request with the API key masked, for logging.
func (r *Request) redacted() string {
	params := url.Values{}
	for k, v := range r.Params {
		params[k] = v
	}
	if params.Has("api_key") {
		params.Set("api_key", "***")
	}
	return r.URL + "?" + params.Encode()
}

// BuildRequest assembles URL, query parameters and headers for basePath.
// It performs no I/O; the same inputs always yield the same request.
func (c *Client) BuildRequest(basePath string, q Query) *Request {
	u := c.baseURL + "/" + strings.Trim(basePath, "/")
	if q.Media != "" {
		u += "/" + strings.ToLower(q.Media)
	}

	params := url.Values{
		"api_key": {c.apiKey},
		"format":  {dataFormat},
	}
	if q.Start != nil {
		params.Set("start", strconv.Itoa(*q.Start))
	}
	if q.Limit != nil {
		params.Set("limit", strconv.Itoa(*q.Limit))
	}
	if q.Teaser != nil {
		params.Set("teaser", boolParam(*q.Teaser))
	}
	if q.SearchTerm != nil {
		params.Set("q", *q.SearchTerm)
	}

	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	header.Set("Accept", "application/json")

	return &Request{URL: u, Params: params, Header: header}
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
