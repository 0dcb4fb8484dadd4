package client_test

import (
	"context"
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/api"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/browser"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/client"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

func newMockAPI(t *testing.T) *client.Client {
	t.Helper()
	return newMockAPIWith(t, api.Config{})
}

func newMockAPIWith(t *testing.T, cfg api.Config) *client.Client {
	t.Helper()
	cfg.Tokens = []string{"test-key"}
	cfg.LiveInterval = 10 * time.Millisecond
	server, err := api.NewServer(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(server.Routes())
	t.Cleanup(func() {
		srv.Close()
		server.Close()
	})
	return client.New(srv.URL, client.WithToken("test-key"))
}

func TestSessionLifecycle(t *testing.T) {
	c := newMockAPI(t)
	ctx := context.Background()

	created, err := c.CreateSession(ctx, browser.DefaultCreateBody())
	require.NoError(t, err)
	id := created.SessionID.Value()
	assert.Equal(t, models.StatusActive, created.Status.Value())
	assert.True(t, strings.HasSuffix(created.EmbedURL.Value(), "/embed/"+id.String()))

	nav, err := c.Navigate(ctx, id, models.NavigateBody{URL: "https://www.example.com"})
	require.NoError(t, err)
	assert.True(t, nav.Success.Value())
	assert.Equal(t, "Example Domain", nav.Title.Value())

	click, err := c.Click(ctx, id, models.ClickBody{Selector: "a", Wait: models.Some(models.WaitNavigation)})
	require.NoError(t, err)
	assert.True(t, click.Success.Value())
	assert.Equal(t, "click", click.Action.Value())
	assert.Equal(t, "a", click.Selector.Value())

	status, err := c.GetSessionStatus(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, status.LiveSession.Value().URL.Value(), "iana.org")

	closed, err := c.CloseSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, closed.Status.Value())

	// closing twice is a documented error, not a transport failure
	resp, err := c.CloseSessionDetailed(ctx, id)
	require.NoError(t, err)
	require.Equal(t, client.KindError, resp.Parsed.Kind())
	assert.Equal(t, "SESSION_NOT_ACTIVE", resp.Parsed.Error.Code.Value())
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	c := newMockAPI(t)

	resp, err := c.GetSessionStatusDetailed(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	require.NotNil(t, resp.Parsed.Error)
	assert.NotEmpty(t, resp.Parsed.Error.Message.Value())
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Parsed.Error.Code.Value())
}

func TestBadTokenIsUnauthorized(t *testing.T) {
	c := newMockAPI(t).With(client.WithToken("wrong"))

	resp, err := c.ListSessionsDetailed(context.Background(), models.Opt[models.StatusFilter]{})
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", resp.Parsed.Error.Code.Value())
}

func TestInvalidTimeout(t *testing.T) {
	c := newMockAPI(t)

	_, err := c.CreateSession(context.Background(), models.CreateSessionBody{Timeout: models.Some(10)})
	var apiErr *models.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_TIMEOUT", apiErr.Code.Value())
}

func TestExtraction(t *testing.T) {
	c := newMockAPI(t)
	ctx := context.Background()

	created, err := c.CreateSession(ctx, models.CreateSessionBody{})
	require.NoError(t, err)
	id := created.SessionID.Value()
	_, err = c.Navigate(ctx, id, models.NavigateBody{URL: "https://example.com"})
	require.NoError(t, err)

	pdf, err := c.GeneratePDF(ctx, id, models.GeneratePDFBody{})
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(pdf.Data.Value())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"))

	shot, err := c.TakeScreenshot(ctx, id, models.ScreenshotBody{})
	require.NoError(t, err)
	raw, err = base64.StdEncoding.DecodeString(shot.Data.Value())
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(raw[:4]))

	scrape, err := c.ScrapePage(ctx, id, models.ScrapePageBody{Format: models.Some([]models.ScrapeFormat{models.FormatText})})
	require.NoError(t, err)
	data := scrape.Data.Value()
	assert.Contains(t, data.Text.Value(), "Example Domain")
	assert.False(t, data.HTML.IsSet())

	info, err := c.ScrapeInformation(ctx, id, models.ScrapeInformationBody{Description: "all links"})
	require.NoError(t, err)
	assert.Equal(t, "all links", info.Description.Value())
	assert.Contains(t, info.Data.Value().Extra, "links")
}

func TestFormFlow(t *testing.T) {
	c := newMockAPI(t)
	ctx := context.Background()

	err := browser.With(ctx, c, browser.DefaultCreateBody(), func(s *browser.Session) error {
		if _, err := s.Navigate(ctx, "https://example.com"); err != nil {
			return err
		}
		if _, err := s.Type(ctx, "#q", "gophers"); err != nil {
			return err
		}
		_, err := s.Press(ctx, "#q", "Enter", "navigation")
		if err != nil {
			return err
		}

		bc, err := c.GetBrowserContext(ctx, s.ID())
		if err != nil {
			return err
		}
		assert.Equal(t, "gophers - Example Domain", bc.Context.Value().Title.Value())
		return nil
	})
	require.NoError(t, err)

	list, err := c.ListSessions(ctx, models.Some(models.FilterActive))
	require.NoError(t, err)
	assert.Zero(t, list.Count.Value())
}

func TestWatchLiveSession(t *testing.T) {
	c := newMockAPI(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := c.CreateSession(ctx, models.CreateSessionBody{})
	require.NoError(t, err)
	id := created.SessionID.Value()

	updates, err := c.WatchLiveSession(ctx, id)
	require.NoError(t, err)

	first := <-updates
	assert.Equal(t, 1280, first.Viewport.Value().Width.Value())

	_, err = c.Navigate(ctx, id, models.NavigateBody{URL: "https://example.com"})
	require.NoError(t, err)

	var seen models.LiveSession
	for snap := range updates {
		seen = snap
		if strings.Contains(snap.URL.Value(), "example.com") {
			break
		}
	}
	assert.Equal(t, "Example Domain", seen.Title.Value())

	_, err = c.CloseSession(ctx, id)
	require.NoError(t, err)
	for range updates {
	}
	require.NoError(t, ctx.Err(), "feed should end when the session closes")
}

func TestWrapperCloseAfterServerExpiry(t *testing.T) {
	c := newMockAPIWith(t, api.Config{TimeoutUnit: time.Millisecond})
	ctx := context.Background()

	s, err := browser.Open(ctx, c, models.CreateSessionBody{Timeout: models.Some(60)})
	require.NoError(t, err)
	id := s.ID()

	require.Eventually(t, func() bool {
		status, err := c.GetSessionStatus(ctx, id)
		return err == nil && status.Status.Value() == models.StatusClosed
	}, 2*time.Second, 20*time.Millisecond)

	err = s.Close(ctx)
	var apiErr *models.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "SESSION_NOT_ACTIVE", apiErr.Code.Value())
	assert.Equal(t, browser.StateClosed, s.State())
	assert.Equal(t, uuid.Nil, s.ID())

	assert.NoError(t, s.Close(ctx))
}
