package presseportal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		apiKey  string
		wantErr bool
	}{
		{name: "valid key", apiKey: "abcdef", wantErr: false},
		{name: "long key", apiKey: testAPIKey, wantErr: false},
		{name: "too short", apiKey: "12", wantErr: true},
		{name: "five characters", apiKey: "abcde", wantErr: true},
		{name: "empty", apiKey: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAPIKey)
				assert.Equal(t, "valid API key required. key '"+tt.apiKey+"' is not valid", err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
			assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(testAPIKey, logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(testAPIKey, logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("timeout applies to custom client without timeout", func(t *testing.T) {
		customClient := &http.Client{}
		client, err := NewClient(testAPIKey, logger, WithHTTPClient(customClient), WithTimeout(7*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 7*time.Second, client.httpClient.Timeout)
		assert.Zero(t, customClient.Timeout)
	})

	t.Run("custom client timeout wins", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(testAPIKey, logger, WithTimeout(7*time.Second), WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
		assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	})

	t.Run("with base url trims slash", func(t *testing.T) {
		client, err := NewClient(testAPIKey, logger, WithBaseURL("http://localhost:8080/api/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api", client.baseURL)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient(testAPIKey, logger, WithUserAgent("presseportal-test/1.0"))
		require.NoError(t, err)
		req := client.BuildRequest(pathAllStories, Query{})
		assert.Equal(t, "presseportal-test/1.0", req.Header.Get("User-Agent"))
	})

	t.Run("with allowlists copies input", func(t *testing.T) {
		lists := DefaultAllowlists()
		lists.Topics = []string{"umwelt"}
		client, err := NewClient(testAPIKey, logger, WithAllowlists(lists))
		require.NoError(t, err)

		lists.Topics[0] = "changed"
		assert.Equal(t, []string{"umwelt"}, client.Allowlists().Topics)
	})
}

func TestBuildRequest(t *testing.T) {
	client, err := NewClient(testAPIKey, zerolog.Nop())
	require.NoError(t, err)

	t.Run("only mandatory params when nothing is set", func(t *testing.T) {
		req := client.BuildRequest(pathAllStories, Query{})
		assert.Equal(t, DefaultBaseURL+"/article/all", req.URL)
		assert.Equal(t, testAPIKey, req.Params.Get("api_key"))
		assert.Equal(t, "json", req.Params.Get("format"))
		for _, key := range []string{"start", "limit", "teaser", "q"} {
			assert.False(t, req.Params.Has(key), "unexpected param %s", key)
		}
		assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
	})

	t.Run("media appended lower-cased", func(t *testing.T) {
		req := client.BuildRequest(pathAllStories, newQuery([]QueryOption{WithMedia("IMAGE")}))
		assert.Equal(t, DefaultBaseURL+"/article/all/image", req.URL)
	})

	t.Run("optional params", func(t *testing.T) {
		q := newQuery([]QueryOption{Start(0), Limit(20), Teaser(true)})
		req := client.BuildRequest(pathAllStories, q)
		assert.Equal(t, "0", req.Params.Get("start"))
		assert.Equal(t, "20", req.Params.Get("limit"))
		assert.Equal(t, "1", req.Params.Get("teaser"))

		req = client.BuildRequest(pathAllStories, newQuery([]QueryOption{Teaser(false)}))
		assert.Equal(t, "0", req.Params.Get("teaser"))
	})

	t.Run("search term sent as q", func(t *testing.T) {
		term := "berlin"
		req := client.BuildRequest("search/company", Query{SearchTerm: &term})
		assert.Equal(t, "berlin", req.Params.Get("q"))
	})

	t.Run("pure", func(t *testing.T) {
		q := newQuery([]QueryOption{WithMedia("video"), Limit(5)})
		first := client.BuildRequest(pathTopic+"/umwelt", q)
		second := client.BuildRequest(pathTopic+"/umwelt", q)
		assert.Equal(t, first, second)
		assert.Equal(t, first.Encode(), second.Encode())
	})

	t.Run("redacts api key", func(t *testing.T) {
		req := client.BuildRequest(pathAllStories, Query{})
		assert.NotContains(t, req.redacted(), testAPIKey)
		assert.Equal(t, testAPIKey, req.Params.Get("api_key"))
	})
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "success", body: storiesFixture},
		{name: "content without success flag", body: `{"content": {"story": []}}`},
		{name: "api error", body: authFailedFixture, wantErr: &APIError{}},
		{name: "api error with string code", body: `{"error": {"code": "101", "msg": "authentification failed"}}`, wantErr: &APIError{}},
		{name: "malformed json", body: `<html>`, wantErr: ErrInvalidData},
		{name: "empty object", body: `{}`, wantErr: ErrUnknownEnvelope},
		{name: "success zero", body: `{"success": "0"}`, wantErr: ErrUnknownEnvelope},
		{name: "error without msg", body: `{"error": {"code": 101}}`, wantErr: ErrUnknownEnvelope},
		{name: "error not an object", body: `{"error": "boom"}`, wantErr: ErrUnknownEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := fixtureServer(t, tt.body, nil)
			client := newTestClient(t, server)

			env, err := client.Fetch(context.Background(), client.BuildRequest(pathAllStories, Query{}))
			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.NotNil(t, env)
			case *APIError:
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "101", apiErr.Code)
				assert.True(t, apiErr.IsUnauthorized())
			default:
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestFetchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(testAPIKey, zerolog.Nop(), WithBaseURL(url))
	require.NoError(t, err)

	_, err = client.GetStories(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Contains(t, err.Error(), "the API could not be reached")
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server, WithTimeout(50*time.Millisecond))

	_, err := client.GetStories(context.Background())
	assert.ErrorIs(t, err, ErrConnection)
}

func TestTestConnection(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server, _ := fixtureServer(t, storiesFixture, func(r *http.Request) {
			assert.Equal(t, "/api/article/all", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
		})
		client := newTestClient(t, server)
		assert.NoError(t, client.TestConnection(context.Background()))
	})

	t.Run("auth failed", func(t *testing.T) {
		server, _ := fixtureServer(t, authFailedFixture, nil)
		client := newTestClient(t, server)

		err := client.TestConnection(context.Background())
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		client, err := NewClient(testAPIKey, zerolog.Nop())
		require.NoError(t, err)
		assert.Nil(t, client.limiter)

		client, err = NewClient(testAPIKey, zerolog.Nop(), WithRateLimit(0, 5))
		require.NoError(t, err)
		assert.Nil(t, client.limiter)
	})

	t.Run("cancelled wait is a connection error", func(t *testing.T) {
		server, hits := fixtureServer(t, storiesFixture, nil)
		client := newTestClient(t, server, WithRateLimit(0.001, 1))

		_, err := client.GetStories(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err = client.GetStories(ctx)
		assert.ErrorIs(t, err, ErrConnection)
		assert.Equal(t, int32(1), hits.Load())
	})
}
