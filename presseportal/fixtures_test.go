package presseportal

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "NO_KEY_NEEDED_DUE_TO_MOCKING_API"

const storiesFixture = `{
  "success": "1",
  "content": {
    "story": [
      {
        "id": "1234567",
        "url": "https://www.presseportal.de/pm/100255/1234567",
        "title": "Test title",
        "published": "2020-06-02T10:46:09+02:00",
        "highlight": "0",
        "short": "Test short text.",
        "body": "Test body, full text.",
        "language": "de",
        "ressort": "umwelt",
        "keywords": {"keyword": ["Umwelt", "Klimaschutz"]},
        "company": {"id": "100255", "url": "https://www.presseportal.de/nr/100255", "name": "Test GmbH"},
        "media": {
          "image": [{"id": "1", "name": "test_image_url.jpg", "url": "https://cache.pressmailing.net/test_image_url.jpg"}],
          "document": [{"id": "2", "name": "test.pdf"}]
        }
      }
    ]
  }
}`

const entitiesFixture = `{
  "success": "1",
  "content": {
    "result": [
      {"id": "1234", "url": "https://www.presseportal.de/nr/1234", "name": "Berlin Test AG", "type": "company"},
      {"id": 115876, "url": "https://www.presseportal.de/blaulicht/nr/115876", "name": "Feuerwehr Test", "type": "office"}
    ]
  }
}`

const authFailedFixture = `{"error": {"code": 101, "msg": "authentification failed"}}`

// fixtureServer serves body for every request and counts hits
func fixtureServer(t *testing.T, body string, inspect func(r *http.Request)) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &hits
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()

	opts = append([]Option{WithBaseURL(server.URL + "/api")}, opts...)
	client, err := NewClient(testAPIKey, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}
