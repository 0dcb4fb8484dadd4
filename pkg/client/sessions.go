package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

const sessionRoot = "/browser/session"

// sessionPath builds the path of an endpoint scoped to one session.
func sessionPath(id uuid.UUID, endpoint string) string {
	return sessionRoot + "/" + url.PathEscape(id.String()) + "/" + endpoint
}

// listPath adds the status filter to the listing path when it is set.
func listPath(status models.Opt[models.StatusFilter]) string {
	f, ok := status.Get()
	if !ok {
		return sessionRoot
	}
	return sessionRoot + "?" + url.Values{"status": {string(f)}}.Encode()
}

// CreateSessionDetailed starts a new browser session.
func (c *Client) CreateSessionDetailed(ctx context.Context, body models.CreateSessionBody) (*Response[models.CreateSessionResponse], error) {
	return send[models.CreateSessionResponse](ctx, c, http.MethodPost, sessionRoot, body)
}

func (c *Client) CreateSession(ctx context.Context, body models.CreateSessionBody) (*models.CreateSessionResponse, error) {
	return payload[models.CreateSessionResponse](c.CreateSessionDetailed(ctx, body))
}

func (c *Client) CreateSessionDetailedAsync(ctx context.Context, body models.CreateSessionBody) *Future[*Response[models.CreateSessionResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.CreateSessionResponse], error) {
		return c.CreateSessionDetailed(ctx, body)
	})
}

func (c *Client) CreateSessionAsync(ctx context.Context, body models.CreateSessionBody) *Future[*models.CreateSessionResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.CreateSessionResponse, error) {
		return c.CreateSession(ctx, body)
	})
}

// ListSessionsDetailed lists the caller's sessions, optionally filtered by status.
func (c *Client) ListSessionsDetailed(ctx context.Context, status models.Opt[models.StatusFilter]) (*Response[models.ListSessionsResponse], error) {
	return send[models.ListSessionsResponse](ctx, c, http.MethodGet, listPath(status), nil)
}

func (c *Client) ListSessions(ctx context.Context, status models.Opt[models.StatusFilter]) (*models.ListSessionsResponse, error) {
	return payload[models.ListSessionsResponse](c.ListSessionsDetailed(ctx, status))
}

func (c *Client) ListSessionsDetailedAsync(ctx context.Context, status models.Opt[models.StatusFilter]) *Future[*Response[models.ListSessionsResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.ListSessionsResponse], error) {
		return c.ListSessionsDetailed(ctx, status)
	})
}

func (c *Client) ListSessionsAsync(ctx context.Context, status models.Opt[models.StatusFilter]) *Future[*models.ListSessionsResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.ListSessionsResponse, error) {
		return c.ListSessions(ctx, status)
	})
}

// CloseAllSessionsDetailed closes every active session of the caller.
func (c *Client) CloseAllSessionsDetailed(ctx context.Context) (*Response[models.CloseAllSessionsResponse], error) {
	return send[models.CloseAllSessionsResponse](ctx, c, http.MethodPost, sessionRoot+"/close_all", nil)
}

func (c *Client) CloseAllSessions(ctx context.Context) (*models.CloseAllSessionsResponse, error) {
	return payload[models.CloseAllSessionsResponse](c.CloseAllSessionsDetailed(ctx))
}

func (c *Client) CloseAllSessionsDetailedAsync(ctx context.Context) *Future[*Response[models.CloseAllSessionsResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.CloseAllSessionsResponse], error) {
		return c.CloseAllSessionsDetailed(ctx)
	})
}

func (c *Client) CloseAllSessionsAsync(ctx context.Context) *Future[*models.CloseAllSessionsResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.CloseAllSessionsResponse, error) {
		return c.CloseAllSessions(ctx)
	})
}

// GetSessionStatusDetailed fetches the current state of one session.
func (c *Client) GetSessionStatusDetailed(ctx context.Context, sessionID uuid.UUID) (*Response[models.SessionStatusResponse], error) {
	return send[models.SessionStatusResponse](ctx, c, http.MethodGet, sessionPath(sessionID, "status"), nil)
}

func (c *Client) GetSessionStatus(ctx context.Context, sessionID uuid.UUID) (*models.SessionStatusResponse, error) {
	return payload[models.SessionStatusResponse](c.GetSessionStatusDetailed(ctx, sessionID))
}

func (c *Client) GetSessionStatusDetailedAsync(ctx context.Context, sessionID uuid.UUID) *Future[*Response[models.SessionStatusResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.SessionStatusResponse], error) {
		return c.GetSessionStatusDetailed(ctx, sessionID)
	})
}

func (c *Client) GetSessionStatusAsync(ctx context.Context, sessionID uuid.UUID) *Future[*models.SessionStatusResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.SessionStatusResponse, error) {
		return c.GetSessionStatus(ctx, sessionID)
	})
}

// CloseSessionDetailed closes one session.
func (c *Client) CloseSessionDetailed(ctx context.Context, sessionID uuid.UUID) (*Response[models.CloseSessionResponse], error) {
	return send[models.CloseSessionResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "close"), nil)
}

func (c *Client) CloseSession(ctx context.Context, sessionID uuid.UUID) (*models.CloseSessionResponse, error) {
	return payload[models.CloseSessionResponse](c.CloseSessionDetailed(ctx, sessionID))
}

func (c *Client) CloseSessionDetailedAsync(ctx context.Context, sessionID uuid.UUID) *Future[*Response[models.CloseSessionResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.CloseSessionResponse], error) {
		return c.CloseSessionDetailed(ctx, sessionID)
	})
}

func (c *Client) CloseSessionAsync(ctx context.Context, sessionID uuid.UUID) *Future[*models.CloseSessionResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.CloseSessionResponse, error) {
		return c.CloseSession(ctx, sessionID)
	})
}

// UpdateSessionTimeoutDetailed sets a new inactivity timeout for one session.
func (c *Client) UpdateSessionTimeoutDetailed(ctx context.Context, sessionID uuid.UUID, body models.UpdateTimeoutBody) (*Response[models.UpdateTimeoutResponse], error) {
	return send[models.UpdateTimeoutResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "timeout"), body)
}

func (c *Client) UpdateSessionTimeout(ctx context.Context, sessionID uuid.UUID, body models.UpdateTimeoutBody) (*models.UpdateTimeoutResponse, error) {
	return payload[models.UpdateTimeoutResponse](c.UpdateSessionTimeoutDetailed(ctx, sessionID, body))
}

func (c *Client) UpdateSessionTimeoutDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.UpdateTimeoutBody) *Future[*Response[models.UpdateTimeoutResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.UpdateTimeoutResponse], error) {
		return c.UpdateSessionTimeoutDetailed(ctx, sessionID, body)
	})
}

func (c *Client) UpdateSessionTimeoutAsync(ctx context.Context, sessionID uuid.UUID, body models.UpdateTimeoutBody) *Future[*models.UpdateTimeoutResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.UpdateTimeoutResponse, error) {
		return c.UpdateSessionTimeout(ctx, sessionID, body)
	})
}

// GetBrowserContextDetailed fetches the cookies, storage and page state of one session.
func (c *Client) GetBrowserContextDetailed(ctx context.Context, sessionID uuid.UUID) (*Response[models.BrowserContextResponse], error) {
	return send[models.BrowserContextResponse](ctx, c, http.MethodGet, sessionPath(sessionID, "context"), nil)
}

func (c *Client) GetBrowserContext(ctx context.Context, sessionID uuid.UUID) (*models.BrowserContextResponse, error) {
	return payload[models.BrowserContextResponse](c.GetBrowserContextDetailed(ctx, sessionID))
}

func (c *Client) GetBrowserContextDetailedAsync(ctx context.Context, sessionID uuid.UUID) *Future[*Response[models.BrowserContextResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.BrowserContextResponse], error) {
		return c.GetBrowserContextDetailed(ctx, sessionID)
	})
}

func (c *Client) GetBrowserContextAsync(ctx context.Context, sessionID uuid.UUID) *Future[*models.BrowserContextResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.BrowserContextResponse, error) {
		return c.GetBrowserContext(ctx, sessionID)
	})
}
