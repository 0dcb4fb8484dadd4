package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// TakeScreenshotDetailed captures the page as a base64 PNG.
func (c *Client) TakeScreenshotDetailed(ctx context.Context, sessionID uuid.UUID, body models.ScreenshotBody) (*Response[models.ScreenshotResponse], error) {
	return send[models.ScreenshotResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "screenshot"), body)
}

func (c *Client) TakeScreenshot(ctx context.Context, sessionID uuid.UUID, body models.ScreenshotBody) (*models.ScreenshotResponse, error) {
	return payload[models.ScreenshotResponse](c.TakeScreenshotDetailed(ctx, sessionID, body))
}

func (c *Client) TakeScreenshotDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.ScreenshotBody) *Future[*Response[models.ScreenshotResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.ScreenshotResponse], error) {
		return c.TakeScreenshotDetailed(ctx, sessionID, body)
	})
}

func (c *Client) TakeScreenshotAsync(ctx context.Context, sessionID uuid.UUID, body models.ScreenshotBody) *Future[*models.ScreenshotResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.ScreenshotResponse, error) {
		return c.TakeScreenshot(ctx, sessionID, body)
	})
}

// ScrapePageDetailed returns page content in the requested formats.
func (c *Client) ScrapePageDetailed(ctx context.Context, sessionID uuid.UUID, body models.ScrapePageBody) (*Response[models.ScrapePageResponse], error) {
	return send[models.ScrapePageResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "scrape_page"), body)
}

func (c *Client) ScrapePage(ctx context.Context, sessionID uuid.UUID, body models.ScrapePageBody) (*models.ScrapePageResponse, error) {
	return payload[models.ScrapePageResponse](c.ScrapePageDetailed(ctx, sessionID, body))
}

func (c *Client) ScrapePageDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.ScrapePageBody) *Future[*Response[models.ScrapePageResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.ScrapePageResponse], error) {
		return c.ScrapePageDetailed(ctx, sessionID, body)
	})
}

func (c *Client) ScrapePageAsync(ctx context.Context, sessionID uuid.UUID, body models.ScrapePageBody) *Future[*models.ScrapePageResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.ScrapePageResponse, error) {
		return c.ScrapePage(ctx, sessionID, body)
	})
}

// ScrapeInformationDetailed extracts information matching a plain-language description.
func (c *Client) ScrapeInformationDetailed(ctx context.Context, sessionID uuid.UUID, body models.ScrapeInformationBody) (*Response[models.ScrapeInformationResponse], error) {
	return send[models.ScrapeInformationResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "scrape_information"), body)
}

func (c *Client) ScrapeInformation(ctx context.Context, sessionID uuid.UUID, body models.ScrapeInformationBody) (*models.ScrapeInformationResponse, error) {
	return payload[models.ScrapeInformationResponse](c.ScrapeInformationDetailed(ctx, sessionID, body))
}

func (c *Client) ScrapeInformationDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.ScrapeInformationBody) *Future[*Response[models.ScrapeInformationResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.ScrapeInformationResponse], error) {
		return c.ScrapeInformationDetailed(ctx, sessionID, body)
	})
}

func (c *Client) ScrapeInformationAsync(ctx context.Context, sessionID uuid.UUID, body models.ScrapeInformationBody) *Future[*models.ScrapeInformationResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.ScrapeInformationResponse, error) {
		return c.ScrapeInformation(ctx, sessionID, body)
	})
}

// GeneratePDFDetailed renders the page as a base64 PDF.
func (c *Client) GeneratePDFDetailed(ctx context.Context, sessionID uuid.UUID, body models.GeneratePDFBody) (*Response[models.GeneratePDFResponse], error) {
	return send[models.GeneratePDFResponse](ctx, c, http.MethodPost, sessionPath(sessionID, "generate_pdf"), body)
}

func (c *Client) GeneratePDF(ctx context.Context, sessionID uuid.UUID, body models.GeneratePDFBody) (*models.GeneratePDFResponse, error) {
	return payload[models.GeneratePDFResponse](c.GeneratePDFDetailed(ctx, sessionID, body))
}

func (c *Client) GeneratePDFDetailedAsync(ctx context.Context, sessionID uuid.UUID, body models.GeneratePDFBody) *Future[*Response[models.GeneratePDFResponse]] {
	return spawn(ctx, func(ctx context.Context) (*Response[models.GeneratePDFResponse], error) {
		return c.GeneratePDFDetailed(ctx, sessionID, body)
	})
}

func (c *Client) GeneratePDFAsync(ctx context.Context, sessionID uuid.UUID, body models.GeneratePDFBody) *Future[*models.GeneratePDFResponse] {
	return spawn(ctx, func(ctx context.Context) (*models.GeneratePDFResponse, error) {
		return c.GeneratePDF(ctx, sessionID, body)
	})
}
