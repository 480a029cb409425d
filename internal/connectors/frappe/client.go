package frappe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kisanmitra/formbridge/internal/core/ports/driven"
	"github.com/kisanmitra/formbridge/internal/logger"
)

// Ensure Client implements the gateway port.
var _ driven.ERPGateway = (*Client)(nil)

// maxErrorBody caps how much of an upstream error body is carried in
// error values.
const maxErrorBody = 2048

// Client talks to the upstream Frappe resource API. Safe for
// concurrent use; the only shared state is the session cache.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	sessions     *sessionCache
	rateLimiter  *RateLimiter
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewClient creates a connector for the upstream at cfg.BaseURL.
// No network traffic happens until the first call needs a session.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// Per-call deadlines come from contexts; the transport-level
		// timeout is a backstop only.
		httpClient:   &http.Client{Timeout: cfg.WriteTimeout + 5*time.Second},
		sessions:     newSessionCache(cfg.Credentials),
		rateLimiter:  NewRateLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// SetCredentials swaps the upstream service account. The cached
// session is dropped; the next call logs in with the new credentials.
// Used by config hot-reload.
func (c *Client) SetCredentials(username, password string) {
	c.sessions.setCreds(Credentials{Username: username, Password: password})
	logger.Info("upstream credentials updated, session invalidated")
}

// response is an upstream reply the retry layer has already vetted for
// session expiry but not yet for success.
type response struct {
	status int
	body   []byte
}

// call performs one authenticated upstream request with the
// single-retry-on-expiry rule: a 403 discards the session observed by
// this call, logs in again, and repeats the request exactly once.
// Still-403 answers after a fresh login are returned as-is for the
// caller to map.
func (c *Client) call(ctx context.Context, op, method, rawURL string, body []byte, timeout time.Duration) (*response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, wrapTransportError(op, err)
	}

	sess, err := c.acquireSession(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTrip(ctx, op, method, rawURL, body, timeout, sess)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusForbidden {
		return resp, nil
	}

	// Session expired. Drop it and retry once with a fresh login; if
	// credentials are actually invalid the login itself fails and the
	// operation gives up there.
	logger.Debug("%s: session expired, logging in again", op)
	c.sessions.invalidate(sess)
	sess, err = c.acquireSession(ctx)
	if err != nil {
		return nil, err
	}
	return c.roundTrip(ctx, op, method, rawURL, body, timeout, sess)
}

// roundTrip performs a single HTTP exchange under its own deadline.
func (c *Client) roundTrip(ctx context.Context, op, method, rawURL string, body []byte, timeout time.Duration, sess *session) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	sess.apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, wrapTransportError(op, err)
	}

	return &response{status: resp.StatusCode, body: data}, nil
}

// get performs an authenticated read with the read timeout.
func (c *Client) get(ctx context.Context, op, rawURL string) (*response, error) {
	return c.call(ctx, op, http.MethodGet, rawURL, nil, c.readTimeout)
}

// post performs an authenticated write with the write timeout.
func (c *Client) post(ctx context.Context, op, rawURL string, body []byte) (*response, error) {
	return c.call(ctx, op, http.MethodPost, rawURL, body, c.writeTimeout)
}

// resourceURL builds {base}/api/resource/{parts...} with each path
// segment escaped. Doctype names contain spaces ("Sales Invoice").
func (c *Client) resourceURL(parts ...string) string {
	var sb strings.Builder
	sb.WriteString(c.baseURL)
	sb.WriteString("/api/resource")
	for _, p := range parts {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(p))
	}
	return sb.String()
}

// methodURL builds {base}/api/method/{name} with query parameters.
func (c *Client) methodURL(name string, query url.Values) string {
	u := c.baseURL + "/api/method/" + name
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
