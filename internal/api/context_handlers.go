package api

import (
	"net/http"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// GetBrowserContext handles GET /browser/session/{id}/context
func (h *Handler) GetBrowserContext(w http.ResponseWriter, r *http.Request) {
	id, owner, ok := h.sessionTarget(w, r)
	if !ok {
		return
	}

	bctx, err := h.sessionMgr.Context(owner, id)
	if err != nil {
		fail(w, err)
		return
	}
	st, _, err := h.sessionMgr.LiveState(owner, id)
	if err != nil {
		fail(w, err)
		return
	}

	cookies := make([]models.Cookie, 0, len(bctx.Cookies))
	for _, ck := range bctx.Cookies {
		cookies = append(cookies, models.Cookie{
			Name:   ck.Name,
			Value:  ck.Value,
			Domain: models.Some(ck.Domain),
			Path:   models.Some(ck.Path),
		})
	}

	writeJSON(w, http.StatusOK, models.BrowserContextResponse{
		Success: models.Some(true),
		Context: models.Some(models.BrowserContext{
			URL:       models.Some(st.URL),
			Title:     models.Some(st.Title),
			UserAgent: models.Some(st.UserAgent),
			Viewport: models.Some(models.Viewport{
				Width:  models.Some(st.Viewport.Width),
				Height: models.Some(st.Viewport.Height),
			}),
			Cookies:      models.Some(cookies),
			LocalStorage: models.Some(bctx.LocalStorage),
		}),
	})
}
