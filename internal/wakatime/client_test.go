package wakatime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStats = `{
  "data": {
    "languages": [
      {"name": "Python", "percent": 60.0, "text": "3 hrs", "total_seconds": 10800},
      {"name": "Go", "percent": 40.0, "text": "2 hrs", "total_seconds": 7200}
    ],
    "range": "last_7_days"
  }
}`

func TestClient_Languages(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleStats))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "waka_secret", srv.URL+"/")
	langs, err := c.Languages(context.Background(), "last_30_days")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/users/current/stats/last_30_days", gotPath)
	assert.Equal(t, "waka_secret", gotKey)
	require.Len(t, langs, 2)
	assert.Equal(t, Language{Name: "Python", Percent: 60, Text: "3 hrs"}, langs[0])
	assert.Equal(t, Language{Name: "Go", Percent: 40, Text: "2 hrs"}, langs[1])
}

func TestClient_MissingLanguagesIsInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"range": "last_7_days"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.Client(), "", srv.URL).Languages(context.Background(), "last_7_days")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestClient_UnauthorizedIsInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.Client(), "bad", srv.URL).Languages(context.Background(), "last_7_days")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.Client(), "k", srv.URL).Languages(context.Background(), "last_7_days")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidAPIKey)
	assert.Contains(t, err.Error(), "502")
}

func TestParseLanguages_EmptyListIsValid(t *testing.T) {
	langs, err := parseLanguages([]byte(`{"data": {"languages": []}}`))
	require.NoError(t, err)
	assert.Empty(t, langs)
}

func TestParseLanguages_WrongShapeIsInvalidKey(t *testing.T) {
	cases := map[string]string{
		"languages not a list":    `{"data": {"languages": {"Go": 100}}}`,
		"percent as string":       `{"data": {"languages": [{"name": "Go", "percent": "40", "text": "2 hrs"}]}}`,
		"missing name":            `{"data": {"languages": [{"percent": 40, "text": "2 hrs"}]}}`,
		"percent out of range":    `{"data": {"languages": [{"name": "Go", "percent": 140, "text": "2 hrs"}]}}`,
		"null languages":          `{"data": {"languages": null}}`,
		"error body without data": `{"error": "Unauthorized"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseLanguages([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidAPIKey)
		})
	}
}

func TestParseLanguages_NotJSON(t *testing.T) {
	_, err := parseLanguages([]byte("<html>rate limited</html>"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidAPIKey)
}
