package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/browser"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// maxCaptureDelay caps the delay a capture request may ask for
const maxCaptureDelay = 10 * time.Second

// actionPage decodes the body and resolves the active page of the target session
func (h *Handler) actionPage(w http.ResponseWriter, r *http.Request, body any, allowEmpty bool) (uuid.UUID, *browser.Page, bool) {
	id, owner, ok := h.sessionTarget(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}
	if err := decodeBody(r, body, allowEmpty); err != nil {
		fail(w, err)
		return uuid.Nil, nil, false
	}
	page, err := h.sessionMgr.ActivePage(owner, id)
	if err != nil {
		fail(w, err)
		return uuid.Nil, nil, false
	}
	return id, page, true
}

// waitFor validates an optional wait strategy
func waitFor(o models.Opt[models.WaitStrategy]) (string, error) {
	w := o.OrElse(models.WaitAuto)
	if !w.Valid() {
		return "", invalidRequest("invalid wait strategy %q", w)
	}
	return string(w), nil
}

// trackNavigation records a visit when the action moved the page
func (h *Handler) trackNavigation(id uuid.UUID, page *browser.Page, before string) {
	url, title := page.Location()
	if url == before {
		return
	}
	h.logger.Debug("page navigated", zap.String("session_id", id.String()), zap.String("url", url))
	h.sessionMgr.RecordVisit(id, url, title)
}

// Navigate handles POST /browser/session/{id}/navigate
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req models.NavigateBody
	id, page, ok := h.actionPage(w, r, &req, false)
	if !ok {
		return
	}
	if req.URL == "" {
		fail(w, invalidRequest("url is required"))
		return
	}
	wait, err := waitFor(req.Wait)
	if err != nil {
		fail(w, err)
		return
	}

	before, _ := page.Location()
	if err := page.Navigate(req.URL, wait); err != nil {
		fail(w, err)
		return
	}
	h.trackNavigation(id, page, before)

	url, title := page.Location()
	writeJSON(w, http.StatusOK, models.NavigateResponse{
		Success: models.Some(true),
		Action:  models.Some("navigate"),
		URL:     models.Some(url),
		Title:   models.Some(title),
	})
}

// Click handles POST /browser/session/{id}/click
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	var req models.ClickBody
	id, page, ok := h.actionPage(w, r, &req, false)
	if !ok {
		return
	}
	if req.Selector == "" {
		fail(w, invalidRequest("selector is required"))
		return
	}
	wait, err := waitFor(req.Wait)
	if err != nil {
		fail(w, err)
		return
	}

	before, _ := page.Location()
	if err := page.Click(req.Selector, wait); err != nil {
		fail(w, err)
		return
	}
	h.trackNavigation(id, page, before)

	writeJSON(w, http.StatusOK, models.ClickResponse{
		Success:  models.Some(true),
		Action:   models.Some("click"),
		Selector: models.Some(req.Selector),
	})
}

// TypeText handles POST /browser/session/{id}/type_text
func (h *Handler) TypeText(w http.ResponseWriter, r *http.Request) {
	var req models.TypeTextBody
	_, page, ok := h.actionPage(w, r, &req, false)
	if !ok {
		return
	}
	if req.Selector == "" {
		fail(w, invalidRequest("selector is required"))
		return
	}
	if d, ok := req.Delay.Get(); ok && d < 0 {
		fail(w, invalidRequest("delay must not be negative"))
		return
	}

	if err := page.Type(req.Selector, req.Text); err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TypeTextResponse{
		Success:  models.Some(true),
		Action:   models.Some("type_text"),
		Selector: models.Some(req.Selector),
		Text:     models.Some(req.Text),
	})
}

// PressKey handles POST /browser/session/{id}/press_key
func (h *Handler) PressKey(w http.ResponseWriter, r *http.Request) {
	var req models.PressKeyBody
	id, page, ok := h.actionPage(w, r, &req, false)
	if !ok {
		return
	}
	if req.Selector == "" || req.Key == "" {
		fail(w, invalidRequest("selector and key are required"))
		return
	}
	wait, err := waitFor(req.Wait)
	if err != nil {
		fail(w, err)
		return
	}

	before, _ := page.Location()
	if err := page.Press(req.Selector, req.Key, wait); err != nil {
		fail(w, err)
		return
	}
	h.trackNavigation(id, page, before)

	writeJSON(w, http.StatusOK, models.PressKeyResponse{
		Success:  models.Some(true),
		Action:   models.Some("press"),
		Selector: models.Some(req.Selector),
		Key:      models.Some(req.Key),
	})
}

// DragAndDrop handles POST /browser/session/{id}/drag_and_drop
func (h *Handler) DragAndDrop(w http.ResponseWriter, r *http.Request) {
	var req models.DragAndDropBody
	_, page, ok := h.actionPage(w, r, &req, false)
	if !ok {
		return
	}
	if req.SourceSelector == "" || req.TargetSelector == "" {
		fail(w, invalidRequest("source_selector and target_selector are required"))
		return
	}

	if err := page.DragAndDrop(req.SourceSelector, req.TargetSelector); err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.DragAndDropResponse{
		Success:        models.Some(true),
		Action:         models.Some("drag_and_drop"),
		SourceSelector: models.Some(req.SourceSelector),
		TargetSelector: models.Some(req.TargetSelector),
	})
}

// TakeScreenshot handles POST /browser/session/{id}/screenshot
func (h *Handler) TakeScreenshot(w http.ResponseWriter, r *http.Request) {
	var req models.ScreenshotBody
	_, page, ok := h.actionPage(w, r, &req, true)
	if !ok {
		return
	}
	if err := pause(r.Context(), req.Delay); err != nil {
		fail(w, err)
		return
	}

	png, err := page.Screenshot(req.FullPage.OrElse(false))
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ScreenshotResponse{
		Success: models.Some(true),
		Action:  models.Some("screenshot"),
		Data:    models.Some(base64.StdEncoding.EncodeToString(png)),
	})
}

// ScrapePage handles POST /browser/session/{id}/scrape_page
func (h *Handler) ScrapePage(w http.ResponseWriter, r *http.Request) {
	var req models.ScrapePageBody
	_, page, ok := h.actionPage(w, r, &req, true)
	if !ok {
		return
	}

	formats := req.Format.OrElse(nil)
	if len(formats) == 0 {
		formats = []models.ScrapeFormat{models.FormatHTML, models.FormatText}
	}
	for _, f := range formats {
		if f != models.FormatHTML && f != models.FormatText && f != models.FormatJSON {
			fail(w, invalidRequest("invalid format %q", f))
			return
		}
	}

	res, err := page.Scrape(browser.ScrapeOptions{
		Selector:   req.Selector.OrElse(""),
		HTML:       slices.Contains(formats, models.FormatHTML) && req.IncludeHTML.OrElse(true),
		Text:       slices.Contains(formats, models.FormatText),
		JSON:       slices.Contains(formats, models.FormatJSON),
		Screenshot: req.Screenshot.OrElse(false),
	})
	if err != nil {
		fail(w, err)
		return
	}

	var data models.ScrapePageData
	if res.HTML != nil {
		data.HTML = models.Some(*res.HTML)
	}
	if res.Text != nil {
		data.Text = models.Some(*res.Text)
	}
	if res.JSON != nil {
		raw, err := json.Marshal(res.JSON)
		if err != nil {
			fail(w, err)
			return
		}
		data.JSON = models.Some(json.RawMessage(raw))
	}
	if res.Screenshot != nil {
		data.Screenshot = models.Some(base64.StdEncoding.EncodeToString(res.Screenshot))
	}

	writeJSON(w, http.StatusOK, models.ScrapePageResponse{
		Success: models.Some(true),
		Action:  models.Some("scrape"),
		Data:    models.Some(data),
	})
}

// ScrapeInformation handles POST /browser/session/{id}/scrape_information
func (h *Handler) ScrapeInformation(w http.ResponseWriter, r *http.Request) {
	var req models.ScrapeInformationBody
	_, page, ok := h.actionPage(w, r, &req, false)
	if !ok {
		return
	}
	if req.Description == "" {
		fail(w, invalidRequest("description is required"))
		return
	}
	level := req.LevelOfDetail.OrElse(models.DetailStandard)
	if level != models.DetailBrief && level != models.DetailStandard && level != models.DetailFull {
		fail(w, invalidRequest("invalid level_of_detail %q", level))
		return
	}

	var data models.ScrapeInformationData
	for k, v := range page.Describe(req.Description, string(level)) {
		if err := data.Extra.Set(k, v); err != nil {
			fail(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, models.ScrapeInformationResponse{
		Success:     models.Some(true),
		Action:      models.Some("scrape_information"),
		Description: models.Some(req.Description),
		Data:        models.Some(data),
	})
}

// GeneratePDF handles POST /browser/session/{id}/generate_pdf
func (h *Handler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePDFBody
	_, page, ok := h.actionPage(w, r, &req, true)
	if !ok {
		return
	}
	if err := pause(r.Context(), req.Delay); err != nil {
		fail(w, err)
		return
	}

	pdf, err := page.PDF(req.Landscape.OrElse(false))
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GeneratePDFResponse{
		Success: models.Some(true),
		Action:  models.Some("pdf"),
		Data:    models.Some(base64.StdEncoding.EncodeToString(pdf)),
	})
}

// pause waits out a capture delay given in seconds
func pause(ctx context.Context, delay models.Opt[float64]) error {
	secs, ok := delay.Get()
	if !ok || secs == 0 {
		return nil
	}
	if secs < 0 {
		return invalidRequest("delay must not be negative")
	}
	d := min(time.Duration(secs*float64(time.Second)), maxCaptureDelay)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
