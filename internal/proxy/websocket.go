package proxy

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/browser"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/session"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 5 * time.Second

// Server streams live-session snapshots over WebSocket
type Server struct {
	sessionMgr *session.Manager
	interval   time.Duration
	logger     *zap.Logger
}

func NewServer(sessionMgr *session.Manager, interval time.Duration, logger *zap.Logger) *Server {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		sessionMgr: sessionMgr,
		interval:   interval,
		logger:     logger,
	}
}

// Snapshot converts a page state to its wire form
func Snapshot(st browser.State) models.LiveSession {
	return models.LiveSession{
		URL:       models.Some(st.URL),
		Title:     models.Some(st.Title),
		IsLoading: models.Some(st.IsLoading),
		Viewport: models.Some(models.Viewport{
			Width:  models.Some(st.Viewport.Width),
			Height: models.Some(st.Viewport.Height),
		}),
	}
}

// HandleLiveConnection sends a snapshot on connect and another whenever the
// page changes, until the session closes or the client hangs up. The
// caller has already authenticated owner and checked the session exists.
func (s *Server) HandleLiveConnection(w http.ResponseWriter, r *http.Request, owner string, sessionID uuid.UUID) {
	clientConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}
	defer clientConn.Close()

	log := s.logger.With(zap.String("session_id", sessionID.String()))
	log.Debug("live client connected")

	// The client never sends anything we act on; reading detects hang-ups.
	gone := make(chan error, 1)
	go func() {
		for {
			if _, _, err := clientConn.ReadMessage(); err != nil {
				gone <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastVersion uint64
	first := true
	for {
		st, sess, err := s.sessionMgr.LiveState(owner, sessionID)
		if err != nil {
			s.closeWith(clientConn, websocket.CloseGoingAway, "session not found")
			return
		}
		if first || st.Version != lastVersion {
			clientConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := clientConn.WriteJSON(Snapshot(st)); err != nil {
				log.Debug("failed to write snapshot", zap.Error(err))
				return
			}
			first = false
			lastVersion = st.Version
		}
		if sess.Status != models.StatusActive {
			s.closeWith(clientConn, websocket.CloseNormalClosure, "session closed")
			return
		}

		select {
		case err := <-gone:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("live client dropped", zap.Error(err))
			}
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
