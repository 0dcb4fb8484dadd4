package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/browser"
	contextmgr "github.com/shehryarbajwa/aidolon-browser-go/internal/context"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/proxy"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/ratelimit"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/session"
)

// Config configures the mock API server
type Config struct {
	// Tokens accepted as bearer tokens; empty accepts any non-empty token
	Tokens        []string
	RatePerMinute int
	RateBurst     int
	MaxSessions   int64
	// TimeoutUnit scales session timeouts; tests shrink it to expire sessions fast
	TimeoutUnit  time.Duration
	LiveInterval time.Duration
	// StorePath archives closed session contexts when set
	StorePath string
	Viewport  browser.Viewport
	Logger    *zap.Logger
}

// Server is the in-memory implementation of the browser automation API
type Server struct {
	handler     *Handler
	sessionMgr  *session.Manager
	proxyServer *proxy.Server
	rateLimiter *ratelimit.Limiter
	metrics     *Metrics
	tokens      map[string]bool
	logger      *zap.Logger
}

// NewServer wires the managers behind the API
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctxMgr, err := contextmgr.NewManager(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create context manager: %w", err)
	}

	pool := browser.NewPool(cfg.Viewport, "")
	sessionMgr := session.NewManager(pool, ctxMgr, session.Options{
		MaxSessions: cfg.MaxSessions,
		TimeoutUnit: cfg.TimeoutUnit,
		Logger:      logger.Named("session"),
	})

	tokens := make(map[string]bool, len(cfg.Tokens))
	for _, t := range cfg.Tokens {
		tokens[t] = true
	}

	return &Server{
		handler:     NewHandler(sessionMgr, logger),
		sessionMgr:  sessionMgr,
		proxyServer: proxy.NewServer(sessionMgr, cfg.LiveInterval, logger.Named("live")),
		rateLimiter: ratelimit.NewLimiter(cfg.RatePerMinute, cfg.RateBurst),
		metrics:     NewMetrics(sessionMgr),
		tokens:      tokens,
		logger:      logger,
	}, nil
}

// Close ends every active session
func (s *Server) Close() {
	s.sessionMgr.Shutdown()
}

// Routes configures all HTTP routes
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	h := s.handler

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).Methods("GET")

	api := r.PathPrefix("/browser/session").Subrouter()
	api.Use(AuthMiddleware(s.tokens))
	api.Use(RateLimitMiddleware(s.rateLimiter))

	api.HandleFunc("", h.CreateSession).Methods("POST")
	api.HandleFunc("", h.ListSessions).Methods("GET")
	api.HandleFunc("/close_all", h.CloseAllSessions).Methods("POST")
	api.HandleFunc("/{id}/status", h.GetSessionStatus).Methods("GET")
	api.HandleFunc("/{id}/close", h.CloseSession).Methods("POST")
	api.HandleFunc("/{id}/timeout", h.UpdateSessionTimeout).Methods("POST")
	api.HandleFunc("/{id}/context", h.GetBrowserContext).Methods("GET")

	api.HandleFunc("/{id}/navigate", h.Navigate).Methods("POST")
	api.HandleFunc("/{id}/click", h.Click).Methods("POST")
	api.HandleFunc("/{id}/type_text", h.TypeText).Methods("POST")
	api.HandleFunc("/{id}/press_key", h.PressKey).Methods("POST")
	api.HandleFunc("/{id}/drag_and_drop", h.DragAndDrop).Methods("POST")

	api.HandleFunc("/{id}/screenshot", h.TakeScreenshot).Methods("POST")
	api.HandleFunc("/{id}/scrape_page", h.ScrapePage).Methods("POST")
	api.HandleFunc("/{id}/scrape_information", h.ScrapeInformation).Methods("POST")
	api.HandleFunc("/{id}/generate_pdf", h.GeneratePDF).Methods("POST")

	api.HandleFunc("/{id}/live", func(w http.ResponseWriter, r *http.Request) {
		id, owner, ok := h.sessionTarget(w, r)
		if !ok {
			return
		}
		s.proxyServer.HandleLiveConnection(w, r, owner, id)
	}).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such endpoint")
	})

	r.Use(s.metrics.Middleware)
	r.Use(LoggingMiddleware(s.logger))
	r.Use(corsMiddleware)

	return r
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
