// Package client talks to the Aidolon browser automation API.
//
// Every operation comes in four flavours: OpDetailed returns the full
// response envelope, Op returns only the decoded success payload, and the
// Async variants run either of those on a goroutine and hand back a Future.
package client

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAuthHeader = "Authorization"
	defaultAuthPrefix = "Bearer"
)

// Client holds the connection settings shared by every binding.
// A Client is safe for concurrent use once built.
type Client struct {
	baseURL           string
	token             string
	authHeader        string
	authPrefix        string
	headers           map[string]string
	cookies           []*http.Cookie
	timeout           time.Duration
	raiseOnUnexpected bool
	base              *http.Client
	httpClient        *http.Client
	logger            *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithToken authenticates every request with token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithAuthHeader changes the header carrying the token and the prefix put
// in front of it. An empty prefix sends the bare token.
func WithAuthHeader(name, prefix string) Option {
	return func(c *Client) {
		c.authHeader = name
		c.authPrefix = prefix
	}
}

// WithHeaders adds headers to every request
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithCookies adds cookies to every request
func WithCookies(cookies ...*http.Cookie) Option {
	return func(c *Client) { c.cookies = append(c.cookies, cookies...) }
}

// WithTimeout bounds each request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient uses hc for transport. Its Transport is wrapped, never mutated.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// WithRaiseOnUnexpectedStatus makes detailed calls return an
// *UnexpectedStatusError for undocumented status codes.
func WithRaiseOnUnexpectedStatus(raise bool) Option {
	return func(c *Client) { c.raiseOnUnexpected = raise }
}

// WithLogger logs requests at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: defaultAuthHeader,
		authPrefix: defaultAuthPrefix,
		headers:    make(map[string]string),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = c.buildHTTPClient()
	return c
}

// With returns a copy of c with opts applied on top of its settings.
// c itself is left untouched.
func (c *Client) With(opts ...Option) *Client {
	clone := *c
	clone.headers = make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		clone.headers[k] = v
	}
	clone.cookies = append([]*http.Cookie(nil), c.cookies...)
	for _, opt := range opts {
		opt(&clone)
	}
	clone.httpClient = clone.buildHTTPClient()
	return &clone
}

// BaseURL returns the API root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RaiseOnUnexpectedStatus reports whether detailed calls fail on undocumented status codes
func (c *Client) RaiseOnUnexpectedStatus() bool {
	return c.raiseOnUnexpected
}

// HTTPClient returns the handle every request goes through. Headers, cookies
// and auth are applied by its transport, so requests built by hand get them too.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) buildHTTPClient() *http.Client {
	var hc http.Client
	if c.base != nil {
		hc = *c.base
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	hc.Transport = newTransport(hc.Transport, c)
	return &hc
}

// authValue is the value of the auth header, or "" without a token.
func (c *Client) authValue() string {
	if c.token == "" {
		return ""
	}
	if c.authPrefix == "" {
		return c.token
	}
	return c.authPrefix + " " + c.token
}

// requestHeaders returns the static headers sent with every request.
func (c *Client) requestHeaders() http.Header {
	h := make(http.Header, len(c.headers)+1)
	for k, v := range c.headers {
		h.Set(k, v)
	}
	if v := c.authValue(); v != "" {
		h.Set(c.authHeader, v)
	}
	return h
}
