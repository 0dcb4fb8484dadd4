package models

import (
	"time"

	"github.com/google/uuid"
)

// Viewport is the browser window size in CSS pixels
type Viewport struct {
	Width  Opt[int] `json:"width,omitzero"`
	Height Opt[int] `json:"height,omitzero"`
	Extra  Extra    `json:"-"`
}

func (v Viewport) MarshalJSON() ([]byte, error) {
	type plain Viewport
	return marshalWithExtra(plain(v), v.Extra)
}

func (v *Viewport) UnmarshalJSON(data []byte) error {
	type plain Viewport
	return unmarshalWithExtra(data, (*plain)(v), &v.Extra)
}

// LiveSession describes what the remote browser is showing right now
type LiveSession struct {
	URL       Opt[string]   `json:"url,omitzero"`
	Title     Opt[string]   `json:"title,omitzero"`
	IsLoading Opt[bool]     `json:"is_loading,omitzero"`
	Viewport  Opt[Viewport] `json:"viewport,omitzero"`
	Extra     Extra         `json:"-"`
}

func (l LiveSession) MarshalJSON() ([]byte, error) {
	type plain LiveSession
	return marshalWithExtra(plain(l), l.Extra)
}

func (l *LiveSession) UnmarshalJSON(data []byte) error {
	type plain LiveSession
	return unmarshalWithExtra(data, (*plain)(l), &l.Extra)
}

// BrowserSession represents a server-side browser instance
type BrowserSession struct {
	SessionID    uuid.UUID        `json:"session_id"`
	Status       SessionStatus    `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	EmbedURL     Opt[string]      `json:"embed_url,omitzero"`
	UpdatedAt    Opt[time.Time]   `json:"updated_at,omitzero"`
	LastActiveAt Opt[time.Time]   `json:"last_active_at,omitzero"`
	ClosedAt     Opt[time.Time]   `json:"closed_at,omitzero"`
	LiveSession  Opt[LiveSession] `json:"live_session,omitzero"`
	Extra        Extra            `json:"-"`
}

func (s BrowserSession) MarshalJSON() ([]byte, error) {
	type plain BrowserSession
	return marshalWithExtra(plain(s), s.Extra)
}

func (s *BrowserSession) UnmarshalJSON(data []byte) error {
	type plain BrowserSession
	return unmarshalWithExtra(data, (*plain)(s), &s.Extra)
}

// CreateSessionBody is the payload for creating a new session
type CreateSessionBody struct {
	Visible Opt[bool] `json:"visible,omitzero"`
	Timeout Opt[int]  `json:"timeout,omitzero"`
	Extra   Extra     `json:"-"`
}

func (b CreateSessionBody) MarshalJSON() ([]byte, error) {
	type plain CreateSessionBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *CreateSessionBody) UnmarshalJSON(data []byte) error {
	type plain CreateSessionBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

// CreateSessionResponse is returned when a session is created
type CreateSessionResponse struct {
	Success     Opt[bool]          `json:"success,omitzero"`
	SessionID   Opt[uuid.UUID]     `json:"session_id,omitzero"`
	Status      Opt[SessionStatus] `json:"status,omitzero"`
	EmbedURL    Opt[string]        `json:"embed_url,omitzero"`
	CreatedAt   Opt[time.Time]     `json:"created_at,omitzero"`
	LiveSession Opt[LiveSession]   `json:"live_session,omitzero"`
	Extra       Extra              `json:"-"`
}

func (r CreateSessionResponse) MarshalJSON() ([]byte, error) {
	type plain CreateSessionResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *CreateSessionResponse) UnmarshalJSON(data []byte) error {
	type plain CreateSessionResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// ListSessionsResponse lists the caller's sessions
type ListSessionsResponse struct {
	Success    Opt[bool]             `json:"success,omitzero"`
	Sessions   Opt[[]BrowserSession] `json:"sessions,omitzero"`
	Count      Opt[int]              `json:"count,omitzero"`
	FilteredBy Opt[StatusFilter]     `json:"filtered_by,omitzero"`
	Extra      Extra                 `json:"-"`
}

func (r ListSessionsResponse) MarshalJSON() ([]byte, error) {
	type plain ListSessionsResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *ListSessionsResponse) UnmarshalJSON(data []byte) error {
	type plain ListSessionsResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// SessionStatusResponse reports the state of one session
type SessionStatusResponse struct {
	Success      Opt[bool]          `json:"success,omitzero"`
	SessionID    Opt[uuid.UUID]     `json:"session_id,omitzero"`
	Status       Opt[SessionStatus] `json:"status,omitzero"`
	CreatedAt    Opt[time.Time]     `json:"created_at,omitzero"`
	UpdatedAt    Opt[time.Time]     `json:"updated_at,omitzero"`
	LastActiveAt Opt[time.Time]     `json:"last_active_at,omitzero"`
	ClosedAt     Opt[time.Time]     `json:"closed_at,omitzero"`
	EmbedURL     Opt[string]        `json:"embed_url,omitzero"`
	LiveSession  Opt[LiveSession]   `json:"live_session,omitzero"`
	Extra        Extra              `json:"-"`
}

func (r SessionStatusResponse) MarshalJSON() ([]byte, error) {
	type plain SessionStatusResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *SessionStatusResponse) UnmarshalJSON(data []byte) error {
	type plain SessionStatusResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// CloseSessionResponse confirms a session was closed
type CloseSessionResponse struct {
	Success   Opt[bool]          `json:"success,omitzero"`
	SessionID Opt[uuid.UUID]     `json:"session_id,omitzero"`
	Status    Opt[SessionStatus] `json:"status,omitzero"`
	ClosedAt  Opt[time.Time]     `json:"closed_at,omitzero"`
	Extra     Extra              `json:"-"`
}

func (r CloseSessionResponse) MarshalJSON() ([]byte, error) {
	type plain CloseSessionResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *CloseSessionResponse) UnmarshalJSON(data []byte) error {
	type plain CloseSessionResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// CloseAllSessionsResponse reports how many sessions were closed
type CloseAllSessionsResponse struct {
	Success     Opt[bool]   `json:"success,omitzero"`
	ClosedCount Opt[int]    `json:"closed_count,omitzero"`
	Message     Opt[string] `json:"message,omitzero"`
	Extra       Extra       `json:"-"`
}

func (r CloseAllSessionsResponse) MarshalJSON() ([]byte, error) {
	type plain CloseAllSessionsResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *CloseAllSessionsResponse) UnmarshalJSON(data []byte) error {
	type plain CloseAllSessionsResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// UpdateTimeoutBody sets a new inactivity timeout in seconds
type UpdateTimeoutBody struct {
	Timeout int   `json:"timeout"`
	Extra   Extra `json:"-"`
}

func (b UpdateTimeoutBody) MarshalJSON() ([]byte, error) {
	type plain UpdateTimeoutBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *UpdateTimeoutBody) UnmarshalJSON(data []byte) error {
	type plain UpdateTimeoutBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

// UpdateTimeoutResponse echoes the applied timeout
type UpdateTimeoutResponse struct {
	Success   Opt[bool]      `json:"success,omitzero"`
	SessionID Opt[uuid.UUID] `json:"session_id,omitzero"`
	Timeout   Opt[int]       `json:"timeout,omitzero"`
	ExpiresAt Opt[time.Time] `json:"expires_at,omitzero"`
	Extra     Extra          `json:"-"`
}

func (r UpdateTimeoutResponse) MarshalJSON() ([]byte, error) {
	type plain UpdateTimeoutResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *UpdateTimeoutResponse) UnmarshalJSON(data []byte) error {
	type plain UpdateTimeoutResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}
