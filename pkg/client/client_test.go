package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// captureServer records the last request and answers with status and body
func captureServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var got http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestRequestsCarryAuthHeadersAndCookies(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{"success":true,"closed_count":0}`)

	c := New(srv.URL+"/",
		WithToken("secret"),
		WithHeaders(map[string]string{"X-Trace": "abc"}),
		WithCookies(&http.Cookie{Name: "region", Value: "eu"}),
	)
	_, err := c.CloseAllSessions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/browser/session/close_all", got.URL.Path)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "abc", got.Header.Get("X-Trace"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	ck, err := got.Cookie("region")
	require.NoError(t, err)
	assert.Equal(t, "eu", ck.Value)
}

func TestCustomAuthHeader(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{}`)

	c := New(srv.URL, WithToken("k"), WithAuthHeader("X-API-Key", ""))
	_, err := c.ListSessions(context.Background(), models.Opt[models.StatusFilter]{})
	require.NoError(t, err)

	assert.Equal(t, "k", got.Header.Get("X-API-Key"))
	assert.Empty(t, got.Header.Get("Authorization"))
}

func TestNoTokenSendsNoAuth(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{}`)

	_, err := New(srv.URL).ListSessions(context.Background(), models.Opt[models.StatusFilter]{})
	require.NoError(t, err)
	assert.Empty(t, got.Header.Get("Authorization"))
}

func TestListPathCarriesFilter(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{}`)

	_, err := New(srv.URL).ListSessions(context.Background(), models.Some(models.FilterClosed))
	require.NoError(t, err)
	assert.Equal(t, "closed", got.URL.Query().Get("status"))
}

func TestWithLeavesOriginalUntouched(t *testing.T) {
	base := New("https://api.example.com", WithToken("a"), WithHeaders(map[string]string{"X-One": "1"}))
	derived := base.With(WithToken("b"), WithHeaders(map[string]string{"X-Two": "2"}), WithRaiseOnUnexpectedStatus(true))

	assert.Equal(t, "Bearer a", base.requestHeaders().Get("Authorization"))
	assert.Empty(t, base.requestHeaders().Get("X-Two"))
	assert.False(t, base.RaiseOnUnexpectedStatus())

	assert.Equal(t, "Bearer b", derived.requestHeaders().Get("Authorization"))
	assert.Equal(t, "1", derived.requestHeaders().Get("X-One"))
	assert.True(t, derived.RaiseOnUnexpectedStatus())
	assert.NotSame(t, base.HTTPClient(), derived.HTTPClient())
}

func TestWithHTTPClientIsNotMutated(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}
	c := New("https://api.example.com", WithHTTPClient(hc), WithTimeout(5*time.Second))

	assert.Nil(t, hc.Transport)
	assert.Equal(t, time.Minute, hc.Timeout)
	assert.Equal(t, 5*time.Second, c.HTTPClient().Timeout)
	assert.Equal(t, "https://api.example.com", c.BaseURL())
}

func TestCallerHeaderWins(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, `{}`)
	c := New(srv.URL, WithToken("default"), WithHeaders(map[string]string{"X-Trace": "t"}))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/anything", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer override")
	resp, err := c.HTTPClient().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer override", got.Header.Get("Authorization"))
	assert.Equal(t, "t", got.Header.Get("X-Trace"))
	// the caller's request is left as it was
	assert.Empty(t, req.Header.Get("X-Trace"))
}

func TestLiveURL(t *testing.T) {
	c := New("https://api.example.com")
	id := mustUUID(t, "5f0c6f52-8a4e-4f0e-9d0c-2f6a1b9d7e11")
	assert.Equal(t, "wss://api.example.com/browser/session/"+id.String()+"/live", c.LiveURL(id))

	c = New("http://localhost:8080")
	assert.Equal(t, "ws://localhost:8080/browser/session/"+id.String()+"/live", c.LiveURL(id))
}
