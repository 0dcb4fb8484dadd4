package browser

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrNoPage is returned for sessions that have no page in the pool
var ErrNoPage = errors.New("no page for session")

// Viewport is the size of every launched page
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport matches a common desktop window
var DefaultViewport = Viewport{Width: 1280, Height: 720}

// Pool owns the simulated pages, one per session.
type Pool struct {
	pages     sync.Map // uuid.UUID -> *Page
	viewport  Viewport
	userAgent string
}

func NewPool(viewport Viewport, userAgent string) *Pool {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = DefaultViewport
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (X11; Linux x86_64) AidolonMock/1.0"
	}
	return &Pool{
		viewport:  viewport,
		userAgent: userAgent,
	}
}

// Launch opens a blank page for sessionID.
func (p *Pool) Launch(sessionID uuid.UUID) (*Page, error) {
	page, err := newPage(p.viewport, p.userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to launch page: %w", err)
	}
	if _, loaded := p.pages.LoadOrStore(sessionID, page); loaded {
		return nil, fmt.Errorf("page for session %s already exists", sessionID)
	}
	return page, nil
}

// Get returns the page of sessionID
func (p *Pool) Get(sessionID uuid.UUID) (*Page, error) {
	value, ok := p.pages.Load(sessionID)
	if !ok {
		return nil, ErrNoPage
	}
	return value.(*Page), nil
}

// Stop discards the page of sessionID. Stopping an unknown session is a no-op.
func (p *Pool) Stop(sessionID uuid.UUID) {
	p.pages.Delete(sessionID)
}

// Len reports how many pages are open
func (p *Pool) Len() int {
	n := 0
	p.pages.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
