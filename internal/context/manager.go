package ctxmgr

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrContextNotFound = errors.New("context not found")

// Cookie is a cookie set on a session's browser
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// Context is the persistent browser state of one session
type Context struct {
	SessionID    uuid.UUID         `json:"session_id"`
	Cookies      []Cookie          `json:"cookies"`
	LocalStorage map[string]string `json:"local_storage"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DataPath     string            `json:"-"`
}

// Manager handles context persistence
type Manager struct {
	contexts  sync.Map // uuid.UUID -> *Context
	storePath string   // empty keeps contexts in memory only
	mu        sync.Mutex
}

// NewManager creates a context manager. With a non-empty storePath,
// closed sessions have their context archived there.
func NewManager(storePath string) (*Manager, error) {
	if storePath != "" {
		if err := os.MkdirAll(storePath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	return &Manager{
		storePath: storePath,
	}, nil
}

// CreateContext starts an empty context for a session
func (m *Manager) CreateContext(sessionID uuid.UUID) *Context {
	now := time.Now().UTC()
	ctx := &Context{
		SessionID:    sessionID,
		LocalStorage: make(map[string]string),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.contexts.Store(sessionID, ctx)
	return ctx
}

// GetContext returns a copy of the context of a session
func (m *Manager) GetContext(sessionID uuid.UUID) (*Context, error) {
	value, ok := m.contexts.Load(sessionID)
	if !ok {
		return nil, ErrContextNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	src := value.(*Context)
	cp := *src
	cp.Cookies = append([]Cookie(nil), src.Cookies...)
	cp.LocalStorage = make(map[string]string, len(src.LocalStorage))
	for k, v := range src.LocalStorage {
		cp.LocalStorage[k] = v
	}
	return &cp, nil
}

// RecordVisit updates the context after the browser loaded rawURL: the
// host gets a visit counter cookie and local storage remembers the page.
func (m *Manager) RecordVisit(sessionID uuid.UUID, rawURL, title string) error {
	value, ok := m.contexts.Load(sessionID)
	if !ok {
		return ErrContextNotFound
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse visited url: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ctx := value.(*Context)

	visits := 1
	for i, ck := range ctx.Cookies {
		if ck.Name == "visits" && ck.Domain == u.Hostname() {
			n, _ := strconv.Atoi(ck.Value)
			visits = n + 1
			ctx.Cookies = append(ctx.Cookies[:i], ctx.Cookies[i+1:]...)
			break
		}
	}
	ctx.Cookies = append(ctx.Cookies, Cookie{
		Name:   "visits",
		Value:  strconv.Itoa(visits),
		Domain: u.Hostname(),
		Path:   "/",
	})
	sort.Slice(ctx.Cookies, func(i, j int) bool { return ctx.Cookies[i].Domain < ctx.Cookies[j].Domain })

	ctx.LocalStorage["last_url"] = rawURL
	ctx.LocalStorage["last_title"] = title
	ctx.UpdatedAt = time.Now().UTC()
	return nil
}

// DeleteContext removes a context and its archive
func (m *Manager) DeleteContext(sessionID uuid.UUID) error {
	ctx, err := m.GetContext(sessionID)
	if err != nil {
		return err
	}

	if ctx.DataPath != "" {
		if err := os.Remove(ctx.DataPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete context data: %w", err)
		}
	}

	m.contexts.Delete(sessionID)
	return nil
}

// SaveContextData archives the context as gzipped JSON. Without a store
// path it does nothing.
func (m *Manager) SaveContextData(sessionID uuid.UUID) error {
	if m.storePath == "" {
		return nil
	}
	ctx, err := m.GetContext(sessionID)
	if err != nil {
		return err
	}

	archivePath := filepath.Join(m.storePath, fmt.Sprintf("%s.json.gz", sessionID))
	if err := writeArchive(archivePath, ctx); err != nil {
		return fmt.Errorf("failed to archive context data: %w", err)
	}

	if value, ok := m.contexts.Load(sessionID); ok {
		m.mu.Lock()
		value.(*Context).DataPath = archivePath
		m.mu.Unlock()
	}
	return nil
}

// LoadContextData reads an archived context back
func (m *Manager) LoadContextData(sessionID uuid.UUID) (*Context, error) {
	archivePath := filepath.Join(m.storePath, fmt.Sprintf("%s.json.gz", sessionID))
	file, err := os.Open(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrContextNotFound
		}
		return nil, err
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open context archive: %w", err)
	}
	defer gzReader.Close()

	var ctx Context
	if err := json.NewDecoder(gzReader).Decode(&ctx); err != nil {
		return nil, fmt.Errorf("failed to decode context archive: %w", err)
	}
	ctx.DataPath = archivePath
	return &ctx, nil
}

func writeArchive(path string, ctx *Context) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	if err := json.NewEncoder(gzWriter).Encode(ctx); err != nil {
		gzWriter.Close()
		return err
	}
	return gzWriter.Close()
}
