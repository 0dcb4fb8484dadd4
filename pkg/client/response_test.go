package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestStatusDispatch(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   ResultKind
	}{
		{"ok", http.StatusOK, `{"success":true,"status":"active"}`, KindSuccess},
		{"bad request", http.StatusBadRequest, `{"success":false,"error":"bad","error_code":"INVALID_TIMEOUT"}`, KindError},
		{"unauthorized", http.StatusUnauthorized, `{"error":"nope","error_code":"UNAUTHORIZED"}`, KindError},
		{"not found", http.StatusNotFound, `{"error":"Session not found","error_code":"SESSION_NOT_FOUND"}`, KindError},
		{"server error", http.StatusInternalServerError, `{"error":"boom","error_code":"INTERNAL_ERROR"}`, KindError},
		{"rate limited", http.StatusTooManyRequests, `{"error":"Rate limit exceeded"}`, KindUnexpected},
		{"teapot", http.StatusTeapot, `short and stout`, KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := captureServer(t, tt.status, tt.body)
			resp, err := New(srv.URL).GetSessionStatusDetailed(context.Background(), uuid.New())
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, string(resp.Content))
			assert.Equal(t, tt.kind, resp.Parsed.Kind())
			assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
		})
	}
}

func TestDocumentedErrorBody(t *testing.T) {
	srv, _ := captureServer(t, http.StatusNotFound, `{"success":false,"error":"Session not found","error_code":"SESSION_NOT_FOUND","request_id":"r1"}`)
	c := New(srv.URL)

	resp, err := c.GetSessionStatusDetailed(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, resp.Parsed.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Parsed.Error.Code.Value())
	assert.Equal(t, "Session not found", resp.Parsed.Error.Message.Value())
	assert.Contains(t, resp.Parsed.Error.Extra, "request_id")

	_, err = c.GetSessionStatus(context.Background(), uuid.New())
	var apiErr *models.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "SESSION_NOT_FOUND: Session not found", err.Error())
}

func TestUnexpectedStatus(t *testing.T) {
	srv, _ := captureServer(t, http.StatusTeapot, `I'm a teapot`)
	c := New(srv.URL)

	resp, err := c.CloseAllSessionsDetailed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindUnexpected, resp.Parsed.Kind())

	raising := c.With(WithRaiseOnUnexpectedStatus(true))
	resp, err = raising.CloseAllSessionsDetailed(context.Background())
	var unexpected *UnexpectedStatusError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, http.StatusTeapot, unexpected.StatusCode)
	assert.Equal(t, "unexpected status code: 418\n\nResponse content:\nI'm a teapot", err.Error())
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	// plain calls fail either way
	_, err = c.CloseAllSessions(context.Background())
	assert.ErrorAs(t, err, &unexpected)
}

func TestMalformedSuccessBody(t *testing.T) {
	srv, _ := captureServer(t, http.StatusOK, `not json`)

	resp, err := New(srv.URL).CloseAllSessionsDetailed(context.Background())
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "not json", string(resp.Content))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListSessions(context.Background(), models.Opt[models.StatusFilter]{})
	require.Error(t, err)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).CloseAllSessions(context.Background())
	require.Error(t, err)
}

// conventionsAgree calls one operation through all four entry points and
// checks that they decode the same payload.
func conventionsAgree[T any](
	t *testing.T,
	detailedFn func(context.Context) (*Response[T], error),
	plainFn func(context.Context) (*T, error),
	detailedAsyncFn func(context.Context) *Future[*Response[T]],
	asyncFn func(context.Context) *Future[*T],
) *T {
	t.Helper()
	ctx := context.Background()

	detailed, err := detailedFn(ctx)
	require.NoError(t, err)
	require.Equal(t, KindSuccess, detailed.Parsed.Kind())
	plain, err := plainFn(ctx)
	require.NoError(t, err)
	detailedAsync, err := detailedAsyncFn(ctx).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, KindSuccess, detailedAsync.Parsed.Kind())
	async, err := asyncFn(ctx).Await(ctx)
	require.NoError(t, err)

	assert.Equal(t, *detailed.Parsed.Success, *plain)
	assert.Equal(t, *detailed.Parsed.Success, *detailedAsync.Parsed.Success)
	assert.Equal(t, detailed.Content, detailedAsync.Content)
	assert.Equal(t, detailed.StatusCode, detailedAsync.StatusCode)
	assert.Equal(t, *plain, *async)
	return plain
}

func TestFourConventionsAgree(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		body string
		path string
		run  func(t *testing.T, c *Client)
	}{
		{
			name: "close all",
			body: `{"success":true,"closed_count":2,"message":"Closed 2 active sessions"}`,
			path: "/browser/session/close_all",
			run: func(t *testing.T, c *Client) {
				got := conventionsAgree(t,
					c.CloseAllSessionsDetailed,
					c.CloseAllSessions,
					c.CloseAllSessionsDetailedAsync,
					c.CloseAllSessionsAsync,
				)
				assert.Equal(t, 2, got.ClosedCount.Value())
			},
		},
		{
			name: "click",
			body: `{"success":true,"action":"click","selector":"#go","trace":"t1"}`,
			path: "/browser/session/" + id.String() + "/click",
			run: func(t *testing.T, c *Client) {
				body := models.ClickBody{Selector: "#go", Wait: models.Some(models.WaitNavigation)}
				got := conventionsAgree(t,
					func(ctx context.Context) (*Response[models.ClickResponse], error) {
						return c.ClickDetailed(ctx, id, body)
					},
					func(ctx context.Context) (*models.ClickResponse, error) { return c.Click(ctx, id, body) },
					func(ctx context.Context) *Future[*Response[models.ClickResponse]] {
						return c.ClickDetailedAsync(ctx, id, body)
					},
					func(ctx context.Context) *Future[*models.ClickResponse] { return c.ClickAsync(ctx, id, body) },
				)
				assert.Equal(t, "#go", got.Selector.Value())
				assert.Equal(t, "click", got.Action.Value())
			},
		},
		{
			name: "generate pdf",
			body: `{"success":true,"action":"generate_pdf","data":"JVBERi0="}`,
			path: "/browser/session/" + id.String() + "/generate_pdf",
			run: func(t *testing.T, c *Client) {
				body := models.GeneratePDFBody{}
				got := conventionsAgree(t,
					func(ctx context.Context) (*Response[models.GeneratePDFResponse], error) {
						return c.GeneratePDFDetailed(ctx, id, body)
					},
					func(ctx context.Context) (*models.GeneratePDFResponse, error) {
						return c.GeneratePDF(ctx, id, body)
					},
					func(ctx context.Context) *Future[*Response[models.GeneratePDFResponse]] {
						return c.GeneratePDFDetailedAsync(ctx, id, body)
					},
					func(ctx context.Context) *Future[*models.GeneratePDFResponse] {
						return c.GeneratePDFAsync(ctx, id, body)
					},
				)
				assert.Equal(t, "JVBERi0=", got.Data.Value())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := captureServer(t, http.StatusOK, tt.body)
			tt.run(t, New(srv.URL))
			assert.Equal(t, http.MethodPost, got.Method)
			assert.Equal(t, tt.path, got.URL.Path)
		})
	}
}

func TestFutureAwaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	f := spawn(context.Background(), func(context.Context) (int, error) {
		<-release
		return 7, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	<-f.Done()
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFutureCarriesError(t *testing.T) {
	boom := errors.New("boom")
	f := spawn(context.Background(), func(context.Context) (string, error) { return "", boom })
	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}
