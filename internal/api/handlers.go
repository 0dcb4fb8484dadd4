package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/proxy"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/session"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sessionMgr *session.Manager
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(sessionMgr *session.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		sessionMgr: sessionMgr,
		logger:     logger,
	}
}

// CreateSession handles POST /browser/session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionBody
	if err := decodeBody(r, &req, true); err != nil {
		fail(w, err)
		return
	}

	sess, err := h.sessionMgr.CreateSession(ownerFrom(r), req.Visible.OrElse(false), req.Timeout.OrElse(0))
	if err != nil {
		fail(w, err)
		return
	}
	view := h.describe(r, sess)

	writeJSON(w, http.StatusOK, models.CreateSessionResponse{
		Success:     models.Some(true),
		SessionID:   models.Some(sess.ID),
		Status:      models.Some(sess.Status),
		EmbedURL:    view.EmbedURL,
		CreatedAt:   models.Some(sess.CreatedAt),
		LiveSession: view.LiveSession,
	})
}

// ListSessions handles GET /browser/session
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	filter := models.FilterAll
	var status models.SessionStatus
	filtered := false

	if raw := r.URL.Query().Get("status"); raw != "" {
		filter = models.StatusFilter(raw)
		if !filter.Valid() {
			fail(w, invalidRequest("invalid status filter %q", raw))
			return
		}
		filtered = true
	}
	if filter != models.FilterAll {
		status = models.SessionStatus(filter)
	}

	sessions := h.sessionMgr.ListSessions(ownerFrom(r), status)
	views := make([]models.BrowserSession, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, h.describe(r, s))
	}

	resp := models.ListSessionsResponse{
		Success:  models.Some(true),
		Sessions: models.Some(views),
		Count:    models.Some(len(views)),
	}
	if filtered {
		resp.FilteredBy = models.Some(filter)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CloseAllSessions handles POST /browser/session/close_all
func (h *Handler) CloseAllSessions(w http.ResponseWriter, r *http.Request) {
	n := h.sessionMgr.CloseAll(ownerFrom(r))
	writeJSON(w, http.StatusOK, models.CloseAllSessionsResponse{
		Success:     models.Some(true),
		ClosedCount: models.Some(n),
		Message:     models.Some(fmt.Sprintf("Closed %d active sessions", n)),
	})
}

// GetSessionStatus handles GET /browser/session/{id}/status
func (h *Handler) GetSessionStatus(w http.ResponseWriter, r *http.Request) {
	id, owner, ok := h.sessionTarget(w, r)
	if !ok {
		return
	}

	sess, err := h.sessionMgr.GetSession(owner, id)
	if err != nil {
		fail(w, err)
		return
	}
	view := h.describe(r, sess)

	writeJSON(w, http.StatusOK, models.SessionStatusResponse{
		Success:      models.Some(true),
		SessionID:    models.Some(sess.ID),
		Status:       models.Some(sess.Status),
		CreatedAt:    models.Some(sess.CreatedAt),
		UpdatedAt:    view.UpdatedAt,
		LastActiveAt: view.LastActiveAt,
		ClosedAt:     view.ClosedAt,
		EmbedURL:     view.EmbedURL,
		LiveSession:  view.LiveSession,
	})
}

// CloseSession handles POST /browser/session/{id}/close
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, owner, ok := h.sessionTarget(w, r)
	if !ok {
		return
	}

	sess, err := h.sessionMgr.CloseSession(owner, id)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CloseSessionResponse{
		Success:   models.Some(true),
		SessionID: models.Some(sess.ID),
		Status:    models.Some(sess.Status),
		ClosedAt:  models.Some(sess.ClosedAt),
	})
}

// UpdateSessionTimeout handles POST /browser/session/{id}/timeout
func (h *Handler) UpdateSessionTimeout(w http.ResponseWriter, r *http.Request) {
	id, owner, ok := h.sessionTarget(w, r)
	if !ok {
		return
	}

	var req models.UpdateTimeoutBody
	if err := decodeBody(r, &req, false); err != nil {
		fail(w, err)
		return
	}

	sess, err := h.sessionMgr.UpdateTimeout(owner, id, req.Timeout)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UpdateTimeoutResponse{
		Success:   models.Some(true),
		SessionID: models.Some(sess.ID),
		Timeout:   models.Some(sess.Timeout),
		ExpiresAt: models.Some(sess.ExpiresAt),
	})
}

// sessionTarget parses the {id} route variable. Malformed ids cannot name
// a session, so they are reported as not found.
func (h *Handler) sessionTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		fail(w, session.ErrSessionNotFound)
		return uuid.Nil, "", false
	}
	return id, ownerFrom(r), true
}

// describe renders a session in its wire form
func (h *Handler) describe(r *http.Request, s session.Session) models.BrowserSession {
	view := models.BrowserSession{
		SessionID:    s.ID,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		EmbedURL:     models.Some(embedURL(r, s.ID)),
		UpdatedAt:    models.Some(s.UpdatedAt),
		LastActiveAt: models.Some(s.LastActiveAt),
		ClosedAt:     models.Null[time.Time](),
	}
	if !s.ClosedAt.IsZero() {
		view.ClosedAt = models.Some(s.ClosedAt)
	}
	if st, _, err := h.sessionMgr.LiveState(s.Owner, s.ID); err == nil {
		view.LiveSession = models.Some(proxy.Snapshot(st))
	}
	return view
}

func embedURL(r *http.Request, id uuid.UUID) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return fmt.Sprintf("%s://%s/embed/%s", scheme, r.Host, id)
}
