package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// NavigateDetailed loads a URL in the session's browser.
func (c *Client) NavigateDetailed(ctx context.Context, sessionID uuid.UUID, body models.NavigateBody) (*Response[models.NavigateResponse], error) {
	return send[models.NavigateResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "navigate"), body)
}

func (c *Client) Navigate(ctx context.Context, sessionID uuid.UUID, body models.NavigateBody) (*models.NavigateResponse, error) {
	return payload[models.NavigateResponse](c.NavigateDetailed(ctx, sessionID, body))
}

func (c *Client) NavigateDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.NavigateBody) *Future[*Response[models.NavigateResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.NavigateResponse], error) {
		return c.NavigateDetailed(ctx, sessionID, body)
	})
}

func (c *Client) NavigateAsync(ctx context.Context, sessionID uuid.UUID, body models.NavigateBody) *Future[*models.NavigateResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.NavigateResponse, error) {
		return c.Navigate(ctx, sessionID, body)
	})
}

// ClickDetailed clicks an element described by a selector.
func (c *Client) ClickDetailed(ctx context.Context, sessionID uuid.UUID, body models.ClickBody) (*Response[models.ClickResponse], error) {
	return send[models.ClickResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "click"), body)
}

func (c *Client) Click(ctx context.Context, sessionID uuid.UUID, body models.ClickBody) (*models.ClickResponse, error) {
	return payload[models.ClickResponse](c.ClickDetailed(ctx, sessionID, body))
}

func (c *Client) ClickDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.ClickBody) *Future[*Response[models.ClickResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.ClickResponse], error) {
		return c.ClickDetailed(ctx, sessionID, body)
	})
}

func (c *Client) ClickAsync(ctx context.Context, sessionID uuid.UUID, body models.ClickBody) *Future[*models.ClickResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.ClickResponse, error) {
		return c.Click(ctx, sessionID, body)
	})
}

// TypeTextDetailed types text into an element.
func (c *Client) TypeTextDetailed(ctx context.Context, sessionID uuid.UUID, body models.TypeTextBody) (*Response[models.TypeTextResponse], error) {
	return send[models.TypeTextResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "type_text"), body)
}

func (c *Client) TypeText(ctx context.Context, sessionID uuid.UUID, body models.TypeTextBody) (*models.TypeTextResponse, error) {
	return payload[models.TypeTextResponse](c.TypeTextDetailed(ctx, sessionID, body))
}

func (c *Client) TypeTextDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.TypeTextBody) *Future[*Response[models.TypeTextResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.TypeTextResponse], error) {
		return c.TypeTextDetailed(ctx, sessionID, body)
	})
}

func (c *Client) TypeTextAsync(ctx context.Context, sessionID uuid.UUID, body models.TypeTextBody) *Future[*models.TypeTextResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.TypeTextResponse, error) {
		return c.TypeText(ctx, sessionID, body)
	})
}

// PressKeyDetailed presses a key on an element.
func (c *Client) PressKeyDetailed(ctx context.Context, sessionID uuid.UUID, body models.PressKeyBody) (*Response[models.PressKeyResponse], error) {
	return send[models.PressKeyResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "press_key"), body)
}

func (c *Client) PressKey(ctx context.Context, sessionID uuid.UUID, body models.PressKeyBody) (*models.PressKeyResponse, error) {
	return payload[models.PressKeyResponse](c.PressKeyDetailed(ctx, sessionID, body))
}

func (c *Client) PressKeyDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.PressKeyBody) *Future[*Response[models.PressKeyResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.PressKeyResponse], error) {
		return c.PressKeyDetailed(ctx, sessionID, body)
	})
}

func (c *Client) PressKeyAsync(ctx context.Context, sessionID uuid.UUID, body models.PressKeyBody) *Future[*models.PressKeyResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.PressKeyResponse, error) {
		return c.PressKey(ctx, sessionID, body)
	})
}

// DragAndDropDetailed drags one element onto another.
func (c *Client) DragAndDropDetailed(ctx context.Context, sessionID uuid.UUID, body models.DragAndDropBody) (*Response[models.DragAndDropResponse], error) {
	return send[models.DragAndDropResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "drag_and_drop"), body)
}

func (c *Client) DragAndDrop(ctx context.Context, sessionID uuid.UUID, body models.DragAndDropBody) (*models.DragAndDropResponse, error) {
	return payload[models.DragAndDropResponse](c.DragAndDropDetailed(ctx, sessionID, body))
}

func (c *Client) DragAndDropDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.DragAndDropBody) *Future[*Response[models.DragAndDropResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.DragAndDropResponse], error) {
		return c.DragAndDropDetailed(ctx, sessionID, body)
	})
}

func (c *Client) DragAndDropAsync(ctx context.Context, sessionID uuid.UUID, body models.DragAndDropBody) *Future[*models.DragAndDropResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.DragAndDropResponse, error) {
		return c.DragAndDrop(ctx, sessionID, body)
	})
}
