package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// LiveURL returns the WebSocket address of a session's live feed.
func (c *Client) LiveURL(sessionID uuid.UUID) string {
	u := c.baseURL + sessionPath(sessionID, "live")
	switch {
	case strings.HasPrefix(u, "https://"):
		return "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// WatchLiveSession streams snapshots of what the session's browser shows.
// The channel closes when ctx ends or the server ends the feed.
func (c *Client) WatchLiveSession(ctx context.Context, sessionID uuid.UUID) (<-chan models.LiveSession, error) {
	header := c.requestHeaders()
	if len(c.cookies) > 0 {
		r := &http.Request{Header: http.Header{}}
		for _, ck := range c.cookies {
			r.AddCookie(ck)
		}
		header.Set("Cookie", r.Header.Get("Cookie"))
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.LiveURL(sessionID), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial live feed: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial live feed: %w", err)
	}

	updates := make(chan models.LiveSession)
	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-finished:
		}
	}()
	go func() {
		defer close(updates)
		defer close(finished)
		defer conn.Close()
		for {
			var snap models.LiveSession
			if err := conn.ReadJSON(&snap); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
					c.logger.Debug("live feed closed", zap.String("session_id", sessionID.String()), zap.Error(err))
				}
				return
			}
			select {
			case updates <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates, nil
}
