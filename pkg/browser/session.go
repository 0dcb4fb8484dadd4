// Package browser offers a stateful wrapper over one remote browser session.
package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

var (
	// ErrNoActiveSession is returned by actions on a session that was never
	// started or has been closed. No request is sent.
	ErrNoActiveSession = errors.New("browser: no active session")
	ErrAlreadyStarted  = errors.New("browser: session already started")
)

// API is the part of the client a Session needs. *client.Client satisfies it.
type API interface {
	CreateSession(ctx context.Context, body models.CreateSessionBody) (*models.CreateSessionResponse, error)
	CloseSession(ctx context.Context, sessionID uuid.UUID) (*models.CloseSessionResponse, error)
	Navigate(ctx context.Context, sessionID uuid.UUID, body models.NavigateBody) (*models.NavigateResponse, error)
	Click(ctx context.Context, sessionID uuid.UUID, body models.ClickBody) (*models.ClickResponse, error)
	TypeText(ctx context.Context, sessionID uuid.UUID, body models.TypeTextBody) (*models.TypeTextResponse, error)
	PressKey(ctx context.Context, sessionID uuid.UUID, body models.PressKeyBody) (*models.PressKeyResponse, error)
}

// State is the lifecycle position of a Session
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "uninitialized"
	}
}

// DefaultCreateBody asks for a visible browser with a five minute timeout.
func DefaultCreateBody() models.CreateSessionBody {
	return models.CreateSessionBody{
		Visible: models.Some(true),
		Timeout: models.Some(300),
	}
}

// Session drives one remote browser. It is not safe for concurrent use.
type Session struct {
	api     API
	id      uuid.UUID
	state   State
	created *models.CreateSessionResponse
	logger  *zap.Logger
}

// Option configures a Session
type Option func(*Session)

// WithLogger reports lifecycle events to logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an unstarted Session
func New(api API, opts ...Option) *Session {
	s := &Session{api: api, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a remote session and returns it started.
func Open(ctx context.Context, api API, body models.CreateSessionBody, opts ...Option) (*Session, error) {
	s := New(api, opts...)
	if err := s.Start(ctx, body); err != nil {
		return nil, err
	}
	return s, nil
}

// Start creates the remote session
func (s *Session) Start(ctx context.Context, body models.CreateSessionBody) error {
	if s.state != StateUninitialized {
		return ErrAlreadyStarted
	}

	resp, err := s.api.CreateSession(ctx, body)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	id, ok := resp.SessionID.Get()
	if !ok {
		return errors.New("create session: response has no session_id")
	}

	s.id = id
	s.created = resp
	s.state = StateActive
	s.logger.Info("browser session started", zap.String("session_id", id.String()))
	return nil
}

// ID returns the remote session id, or uuid.Nil when the session is not active
func (s *Session) ID() uuid.UUID { return s.id }

// State returns where the session is in its lifecycle
func (s *Session) State() State { return s.state }

// Created returns the response of the create call, nil before Start
func (s *Session) Created() *models.CreateSessionResponse { return s.created }

// Navigate loads url and waits for the default strategy.
func (s *Session) Navigate(ctx context.Context, url string) (*models.NavigateResponse, error) {
	if s.state != StateActive {
		return nil, ErrNoActiveSession
	}
	return s.api.Navigate(ctx, s.id, models.NavigateBody{URL: url})
}

// Click clicks selector. wait names a WaitStrategy; unknown names fall back to auto.
func (s *Session) Click(ctx context.Context, selector, wait string) (*models.ClickResponse, error) {
	if s.state != StateActive {
		return nil, ErrNoActiveSession
	}
	return s.api.Click(ctx, s.id, models.ClickBody{
		Selector: selector,
		Wait:     models.Some(models.ParseWaitStrategy(wait)),
	})
}

// Type types text into selector
func (s *Session) Type(ctx context.Context, selector, text string) (*models.TypeTextResponse, error) {
	if s.state != StateActive {
		return nil, ErrNoActiveSession
	}
	return s.api.TypeText(ctx, s.id, models.TypeTextBody{Selector: selector, Text: text})
}

// Press presses key on selector. wait behaves as in Click.
func (s *Session) Press(ctx context.Context, selector, key, wait string) (*models.PressKeyResponse, error) {
	if s.state != StateActive {
		return nil, ErrNoActiveSession
	}
	return s.api.PressKey(ctx, s.id, models.PressKeyBody{
		Selector: selector,
		Key:      key,
		Wait:     models.Some(models.ParseWaitStrategy(wait)),
	})
}

// Close ends the remote session. Closing a session that is not active does
// nothing. Once the server has answered, even with an error body, the session
// is closed and the error is returned. Transport and unexpected-status
// failures leave it active so Close can be retried.
func (s *Session) Close(ctx context.Context) error {
	if s.state != StateActive {
		return nil
	}

	id := s.id
	_, err := s.api.CloseSession(ctx, id)
	if err != nil {
		if apiErr := (*models.Error)(nil); !errors.As(err, &apiErr) {
			return fmt.Errorf("close session %s: %w", id, err)
		}
		err = fmt.Errorf("close session %s: %w", id, err)
	}

	s.id = uuid.Nil
	s.state = StateClosed
	s.logger.Info("browser session closed", zap.String("session_id", id.String()), zap.Error(err))
	return err
}

// With opens a session, runs fn and closes the session exactly once, also
// when fn fails or panics. Errors from fn and Close are joined.
func With(ctx context.Context, api API, body models.CreateSessionBody, fn func(*Session) error, opts ...Option) (err error) {
	s, err := Open(ctx, api, body, opts...)
	if err != nil {
		return err
	}
	defer func() {
		// close even when ctx was cancelled inside fn
		err = errors.Join(err, s.Close(context.WithoutCancel(ctx)))
	}()

	return fn(s)
}
