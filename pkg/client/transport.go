package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// transport applies the client's headers, cookies and auth to every
// outgoing request and logs the exchange.
type transport struct {
	base    http.RoundTripper
	headers http.Header
	cookies []*http.Cookie
	logger  *zap.Logger
}

func newTransport(base http.RoundTripper, c *Client) *transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{
		base:    base,
		headers: c.requestHeaders(),
		cookies: c.cookies,
		logger:  c.logger,
	}
}

// RoundTrip implements http.RoundTripper
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())
	for k, vs := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header[k] = vs
		}
	}
	for _, ck := range t.cookies {
		req.AddCookie(ck)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	t.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}
