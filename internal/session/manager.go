package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/browser"
	contextmgr "github.com/shehryarbajwa/aidolon-browser-go/internal/context"
	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

const (
	MinTimeout     = 60
	MaxTimeout     = 21600
	DefaultTimeout = 300
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionNotActive = errors.New("session is not active")
	ErrInvalidTimeout   = fmt.Errorf("timeout must be between %d and %d seconds", MinTimeout, MaxTimeout)
	ErrSessionLimit     = errors.New("active session limit reached")
)

// Session is a snapshot of one browser session
type Session struct {
	ID           uuid.UUID
	Owner        string
	Status       models.SessionStatus
	Visible      bool
	Timeout      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastActiveAt time.Time
	ClosedAt     time.Time
	ExpiresAt    time.Time
}

// entry is the live record behind a Session
type entry struct {
	Session
	page  *browser.Page
	timer *time.Timer
}

// Options tunes a Manager
type Options struct {
	// MaxSessions caps concurrently active sessions per owner
	MaxSessions int64
	// TimeoutUnit is the length of one timeout step, a second unless tests shrink it
	TimeoutUnit time.Duration
	Logger      *zap.Logger
}

// Manager handles all session operations
type Manager struct {
	sessions    sync.Map // uuid.UUID -> *entry
	concurrency map[string]*semaphore.Weighted
	mu          sync.RWMutex
	stateMu     sync.Mutex
	pool        *browser.Pool
	contextMgr  *contextmgr.Manager
	maxSessions int64
	timeoutUnit time.Duration
	logger      *zap.Logger
}

// NewManager creates a new session manager
func NewManager(pool *browser.Pool, ctxMgr *contextmgr.Manager, opts Options) *Manager {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 10
	}
	if opts.TimeoutUnit <= 0 {
		opts.TimeoutUnit = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Manager{
		concurrency: make(map[string]*semaphore.Weighted),
		pool:        pool,
		contextMgr:  ctxMgr,
		maxSessions: opts.MaxSessions,
		timeoutUnit: opts.TimeoutUnit,
		logger:      opts.Logger,
	}
}

// CreateSession launches a page for owner. A zero timeout means the default.
func (m *Manager) CreateSession(owner string, visible bool, timeout int) (Session, error) {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout < MinTimeout || timeout > MaxTimeout {
		return Session{}, ErrInvalidTimeout
	}

	if err := m.acquireSlot(owner); err != nil {
		return Session{}, err
	}

	id := uuid.New()
	page, err := m.pool.Launch(id)
	if err != nil {
		m.releaseSlot(owner)
		return Session{}, err
	}
	m.contextMgr.CreateContext(id)

	now := time.Now().UTC()
	e := &entry{
		Session: Session{
			ID:           id,
			Owner:        owner,
			Status:       models.StatusActive,
			Visible:      visible,
			Timeout:      timeout,
			CreatedAt:    now,
			UpdatedAt:    now,
			LastActiveAt: now,
			ExpiresAt:    now.Add(m.duration(timeout)),
		},
		page: page,
	}

	m.stateMu.Lock()
	e.timer = time.AfterFunc(m.duration(timeout), func() { m.handleTimeout(id) })
	m.sessions.Store(id, e)
	snap := e.Session
	m.stateMu.Unlock()

	m.logger.Info("session created", zap.String("session_id", id.String()), zap.Int("timeout", timeout))
	return snap, nil
}

// GetSession returns a session of owner
func (m *Manager) GetSession(owner string, id uuid.UUID) (Session, error) {
	e, err := m.lookup(owner, id)
	if err != nil {
		return Session{}, err
	}
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return e.Session, nil
}

// ListSessions returns owner's sessions, oldest first. An empty status
// returns all of them.
func (m *Manager) ListSessions(owner string, status models.SessionStatus) []Session {
	var sessions []Session

	m.stateMu.Lock()
	m.sessions.Range(func(_, value any) bool {
		e := value.(*entry)
		if e.Owner != owner {
			return true
		}
		if status != "" && e.Status != status {
			return true
		}
		sessions = append(sessions, e.Session)
		return true
	})
	m.stateMu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

// ActiveCount reports how many sessions are active across all owners
func (m *Manager) ActiveCount() int {
	n := 0
	m.stateMu.Lock()
	m.sessions.Range(func(_, value any) bool {
		if value.(*entry).Status == models.StatusActive {
			n++
		}
		return true
	})
	m.stateMu.Unlock()
	return n
}

// CloseSession closes an active session
func (m *Manager) CloseSession(owner string, id uuid.UUID) (Session, error) {
	e, err := m.lookup(owner, id)
	if err != nil {
		return Session{}, err
	}

	m.stateMu.Lock()
	if e.Status != models.StatusActive {
		m.stateMu.Unlock()
		return Session{}, ErrSessionNotActive
	}
	m.closeLocked(e)
	snap := e.Session
	m.stateMu.Unlock()

	m.afterClose(snap)
	return snap, nil
}

// CloseAll closes every active session of owner and reports how many
func (m *Manager) CloseAll(owner string) int {
	var closed []Session

	m.stateMu.Lock()
	m.sessions.Range(func(_, value any) bool {
		e := value.(*entry)
		if e.Owner == owner && e.Status == models.StatusActive {
			m.closeLocked(e)
			closed = append(closed, e.Session)
		}
		return true
	})
	m.stateMu.Unlock()

	for _, s := range closed {
		m.afterClose(s)
	}
	return len(closed)
}

// UpdateTimeout replaces the inactivity timeout of an active session
func (m *Manager) UpdateTimeout(owner string, id uuid.UUID, timeout int) (Session, error) {
	if timeout < MinTimeout || timeout > MaxTimeout {
		return Session{}, ErrInvalidTimeout
	}
	e, err := m.lookup(owner, id)
	if err != nil {
		return Session{}, err
	}

	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	if e.Status != models.StatusActive {
		return Session{}, ErrSessionNotActive
	}

	now := time.Now().UTC()
	e.Timeout = timeout
	e.UpdatedAt = now
	m.resetTimerLocked(e, now)
	return e.Session, nil
}

// ActivePage returns the page of an active session and counts the call as
// activity, pushing the expiry back.
func (m *Manager) ActivePage(owner string, id uuid.UUID) (*browser.Page, error) {
	e, err := m.lookup(owner, id)
	if err != nil {
		return nil, err
	}

	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	if e.Status != models.StatusActive {
		return nil, ErrSessionNotActive
	}

	now := time.Now().UTC()
	e.LastActiveAt = now
	e.UpdatedAt = now
	m.resetTimerLocked(e, now)
	return e.page, nil
}

// LiveState returns what the session's page shows. Closed sessions keep
// their last page for inspection.
func (m *Manager) LiveState(owner string, id uuid.UUID) (browser.State, Session, error) {
	e, err := m.lookup(owner, id)
	if err != nil {
		return browser.State{}, Session{}, err
	}
	m.stateMu.Lock()
	snap, page := e.Session, e.page
	m.stateMu.Unlock()
	return page.State(), snap, nil
}

// RecordVisit stores the navigation in the session's context
func (m *Manager) RecordVisit(id uuid.UUID, url, title string) {
	if err := m.contextMgr.RecordVisit(id, url, title); err != nil {
		m.logger.Warn("failed to record visit", zap.String("session_id", id.String()), zap.Error(err))
	}
}

// Context returns the browser context of a session
func (m *Manager) Context(owner string, id uuid.UUID) (*contextmgr.Context, error) {
	if _, err := m.lookup(owner, id); err != nil {
		return nil, err
	}
	return m.contextMgr.GetContext(id)
}

// Shutdown closes every active session
func (m *Manager) Shutdown() {
	var closed []Session
	m.stateMu.Lock()
	m.sessions.Range(func(_, value any) bool {
		e := value.(*entry)
		if e.Status == models.StatusActive {
			m.closeLocked(e)
			closed = append(closed, e.Session)
		}
		return true
	})
	m.stateMu.Unlock()

	for _, s := range closed {
		m.afterClose(s)
	}
	m.sessions.Range(func(key, _ any) bool {
		m.pool.Stop(key.(uuid.UUID))
		return true
	})
}

// lookup finds a session; sessions of other owners do not exist for the caller.
func (m *Manager) lookup(owner string, id uuid.UUID) (*entry, error) {
	value, ok := m.sessions.Load(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	e := value.(*entry)
	if e.Owner != owner {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (m *Manager) closeLocked(e *entry) {
	now := time.Now().UTC()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.Status = models.StatusClosed
	e.ClosedAt = now
	e.UpdatedAt = now
}

// afterClose releases what a closed session held. Runs without stateMu.
func (m *Manager) afterClose(s Session) {
	if err := m.contextMgr.SaveContextData(s.ID); err != nil {
		m.logger.Warn("failed to save context", zap.String("session_id", s.ID.String()), zap.Error(err))
	}
	m.releaseSlot(s.Owner)
	m.logger.Info("session closed", zap.String("session_id", s.ID.String()))
}

func (m *Manager) resetTimerLocked(e *entry, now time.Time) {
	d := m.duration(e.Timeout)
	e.ExpiresAt = now.Add(d)
	if e.timer != nil {
		e.timer.Stop()
	}
	id := e.ID
	e.timer = time.AfterFunc(d, func() { m.handleTimeout(id) })
}

func (m *Manager) duration(timeout int) time.Duration {
	return time.Duration(timeout) * m.timeoutUnit
}

// acquireSlot tries to acquire a concurrency slot for the owner
func (m *Manager) acquireSlot(owner string) error {
	m.mu.Lock()
	sem, exists := m.concurrency[owner]
	if !exists {
		sem = semaphore.NewWeighted(m.maxSessions)
		m.concurrency[owner] = sem
	}
	m.mu.Unlock()

	if !sem.TryAcquire(1) {
		return ErrSessionLimit
	}
	return nil
}

// releaseSlot releases a concurrency slot for the owner
func (m *Manager) releaseSlot(owner string) {
	m.mu.RLock()
	sem := m.concurrency[owner]
	m.mu.RUnlock()

	if sem != nil {
		sem.Release(1)
	}
}

// handleTimeout closes a session whose inactivity timeout elapsed
func (m *Manager) handleTimeout(id uuid.UUID) {
	value, ok := m.sessions.Load(id)
	if !ok {
		return
	}
	e := value.(*entry)

	m.stateMu.Lock()
	// a reset may have raced with this timer firing
	if e.Status != models.StatusActive || time.Now().UTC().Before(e.ExpiresAt) {
		m.stateMu.Unlock()
		return
	}
	m.closeLocked(e)
	snap := e.Session
	m.stateMu.Unlock()

	m.logger.Info("session timed out", zap.String("session_id", id.String()))
	m.afterClose(snap)
}
