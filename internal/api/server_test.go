package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const testToken = "test-key"

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.Tokens == nil {
		cfg.Tokens = []string{testToken}
	}
	server, err := NewServer(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(server.Routes())
	t.Cleanup(func() {
		srv.Close()
		server.Close()
	})
	return srv
}

// call sends a request with the test token and returns status and body
func call(t *testing.T, srv *httptest.Server, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	status, body := call(t, srv, http.MethodPost, "/browser/session", `{"visible":true}`)
	require.Equal(t, http.StatusOK, status, body)
	id := gjson.Get(body, "session_id").String()
	require.NotEmpty(t, id)
	return id
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, Config{})

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer wrong"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/browser/session", nil)
		require.NoError(t, err)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		assert.Equal(t, "UNAUTHORIZED", gjson.GetBytes(body, "error_code").String())
		assert.False(t, gjson.GetBytes(body, "success").Bool())
	}
}

func TestCreateAndDescribe(t *testing.T) {
	srv := newTestServer(t, Config{})

	status, body := call(t, srv, http.MethodPost, "/browser/session", "")
	require.Equal(t, http.StatusOK, status, body)
	id := gjson.Get(body, "session_id").String()
	assert.Equal(t, "active", gjson.Get(body, "status").String())
	assert.Equal(t, "about:blank", gjson.Get(body, "live_session.url").String())
	assert.Equal(t, int64(1280), gjson.Get(body, "live_session.viewport.width").Int())
	assert.True(t, strings.HasSuffix(gjson.Get(body, "embed_url").String(), "/embed/"+id))

	status, body = call(t, srv, http.MethodGet, "/browser/session/"+id+"/status", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, gjson.Get(body, "session_id").String())
	assert.True(t, gjson.Get(body, "closed_at").Exists())
	assert.Equal(t, gjson.Null, gjson.Get(body, "closed_at").Type)
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(t, Config{})
	first := createSession(t, srv)
	createSession(t, srv)
	_, _ = call(t, srv, http.MethodPost, "/browser/session/"+first+"/close", "")

	_, body := call(t, srv, http.MethodGet, "/browser/session", "")
	assert.Equal(t, int64(2), gjson.Get(body, "count").Int())
	assert.False(t, gjson.Get(body, "filtered_by").Exists())

	_, body = call(t, srv, http.MethodGet, "/browser/session?status=closed", "")
	assert.Equal(t, int64(1), gjson.Get(body, "count").Int())
	assert.Equal(t, "closed", gjson.Get(body, "filtered_by").String())
	assert.Equal(t, first, gjson.Get(body, "sessions.0.session_id").String())

	status, body := call(t, srv, http.MethodGet, "/browser/session?status=sleeping", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST", gjson.Get(body, "error_code").String())
}

func TestCloseAll(t *testing.T) {
	srv := newTestServer(t, Config{})
	createSession(t, srv)
	createSession(t, srv)

	status, body := call(t, srv, http.MethodPost, "/browser/session/close_all", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), gjson.Get(body, "closed_count").Int())
	assert.Equal(t, "Closed 2 active sessions", gjson.Get(body, "message").String())
}

func TestSessionErrors(t *testing.T) {
	srv := newTestServer(t, Config{})
	id := createSession(t, srv)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown id", http.MethodGet, "/browser/session/" + uuid.NewString() + "/status", "", 404, "SESSION_NOT_FOUND"},
		{"malformed id", http.MethodGet, "/browser/session/not-a-uuid/status", "", 404, "SESSION_NOT_FOUND"},
		{"bad timeout", http.MethodPost, "/browser/session/" + id + "/timeout", `{"timeout":30}`, 400, "INVALID_TIMEOUT"},
		{"bad url", http.MethodPost, "/browser/session/" + id + "/navigate", `{"url":"not a url"}`, 400, "INVALID_URL"},
		{"missing body", http.MethodPost, "/browser/session/" + id + "/click", "", 400, "INVALID_REQUEST"},
		{"bad wait", http.MethodPost, "/browser/session/" + id + "/click", `{"selector":"a","wait":"forever"}`, 400, "INVALID_REQUEST"},
		{"missing element", http.MethodPost, "/browser/session/" + id + "/click", `{"selector":"#nope"}`, 400, "ELEMENT_NOT_FOUND"},
		{"unknown route", http.MethodGet, "/nowhere", "", 404, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status, body)
			assert.Equal(t, tt.code, gjson.Get(body, "error_code").String())
			assert.NotEmpty(t, gjson.Get(body, "error").String())
		})
	}
}

func TestActionsOnClosedSession(t *testing.T) {
	srv := newTestServer(t, Config{})
	id := createSession(t, srv)
	status, _ := call(t, srv, http.MethodPost, "/browser/session/"+id+"/close", "")
	require.Equal(t, http.StatusOK, status)

	status, body := call(t, srv, http.MethodPost, "/browser/session/"+id+"/navigate", `{"url":"https://example.com"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SESSION_NOT_ACTIVE", gjson.Get(body, "error_code").String())
}

func TestSessionLimit(t *testing.T) {
	srv := newTestServer(t, Config{MaxSessions: 1})
	createSession(t, srv)

	status, body := call(t, srv, http.MethodPost, "/browser/session", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "SESSION_LIMIT", gjson.Get(body, "error_code").String())
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, Config{RatePerMinute: 1, RateBurst: 2})

	for i := 0; i < 2; i++ {
		status, _ := call(t, srv, http.MethodGet, "/browser/session", "")
		require.Equal(t, http.StatusOK, status)
	}
	status, body := call(t, srv, http.MethodGet, "/browser/session", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Rate limit exceeded", gjson.Get(body, "error").String())
}

func TestActions(t *testing.T) {
	srv := newTestServer(t, Config{})
	id := createSession(t, srv)
	base := "/browser/session/" + id

	status, body := call(t, srv, http.MethodPost, base+"/navigate", `{"url":"https://example.com","wait":"load"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "navigate", gjson.Get(body, "action").String())
	assert.Equal(t, "Example Domain", gjson.Get(body, "title").String())

	status, body = call(t, srv, http.MethodPost, base+"/type_text", `{"selector":"#q","text":"go","delay":1}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "type_text", gjson.Get(body, "action").String())
	assert.Equal(t, "go", gjson.Get(body, "text").String())

	status, body = call(t, srv, http.MethodPost, base+"/drag_and_drop", `{"source_selector":".draggable","target_selector":".drop-zone"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "drag_and_drop", gjson.Get(body, "action").String())

	status, body = call(t, srv, http.MethodPost, base+"/press_key", `{"selector":"#q","key":"Enter"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "press", gjson.Get(body, "action").String())

	_, body = call(t, srv, http.MethodGet, base+"/context", "")
	assert.Equal(t, "https://example.com/search?q=go", gjson.Get(body, "context.url").String())
	assert.Equal(t, "2", gjson.Get(body, `context.cookies.#(domain=="example.com").value`).String())
	assert.Equal(t, "go - Example Domain", gjson.Get(body, "context.local_storage.last_title").String())
}

func TestScrapePage(t *testing.T) {
	srv := newTestServer(t, Config{})
	id := createSession(t, srv)
	base := "/browser/session/" + id
	call(t, srv, http.MethodPost, base+"/navigate", `{"url":"https://example.com"}`)

	_, body := call(t, srv, http.MethodPost, base+"/scrape_page", "")
	assert.True(t, gjson.Get(body, "data.html").Exists())
	assert.True(t, gjson.Get(body, "data.text").Exists())
	assert.False(t, gjson.Get(body, "data.json").Exists())

	_, body = call(t, srv, http.MethodPost, base+"/scrape_page", `{"include_html":false,"format":["html","json"]}`)
	assert.False(t, gjson.Get(body, "data.html").Exists())
	assert.Equal(t, "Example Domain", gjson.Get(body, "data.json.title").String())

	status, body := call(t, srv, http.MethodPost, base+"/scrape_page", `{"format":["xml"]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REQUEST", gjson.Get(body, "error_code").String())
}

func TestScrapeInformation(t *testing.T) {
	srv := newTestServer(t, Config{})
	id := createSession(t, srv)
	base := "/browser/session/" + id
	call(t, srv, http.MethodPost, base+"/navigate", `{"url":"https://example.com"}`)

	status, body := call(t, srv, http.MethodPost, base+"/scrape_information", `{"description":"headings","level_of_detail":"brief"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Example Domain", gjson.Get(body, "data.headings.0").String())

	status, _ = call(t, srv, http.MethodPost, base+"/scrape_information", `{"description":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTimeoutExpiresSession(t *testing.T) {
	srv := newTestServer(t, Config{TimeoutUnit: time.Millisecond})
	id := createSession(t, srv)

	assert.Eventually(t, func() bool {
		_, body := call(t, srv, http.MethodGet, "/browser/session/"+id+"/status", "")
		return gjson.Get(body, "status").String() == "closed"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestUpdateTimeout(t *testing.T) {
	srv := newTestServer(t, Config{})
	id := createSession(t, srv)

	status, body := call(t, srv, http.MethodPost, "/browser/session/"+id+"/timeout", `{"timeout":600}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, int64(600), gjson.Get(body, "timeout").Int())

	var parsed struct {
		ExpiresAt time.Time `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	assert.WithinDuration(t, time.Now().Add(600*time.Second), parsed.ExpiresAt, 5*time.Second)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})
	createSession(t, srv)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `aidolon_mock_requests_total{method="POST",route="/browser/session",status_code="200"} 1`)
	assert.Contains(t, text, "aidolon_mock_active_sessions 1")
}
