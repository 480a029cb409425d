package frappe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/logger"
)

// session is one authenticated upstream login: the cookies the ERP set
// on a successful login exchange. Immutable once constructed; refresh
// replaces the whole value.
type session struct {
	cookies []*http.Cookie
}

// apply attaches the session cookies to an outgoing request.
func (s *session) apply(req *http.Request) {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
}

// sessionCache holds the process-wide cached session and the
// credentials that produce it. Concurrent refreshes are tolerated: a
// second login simply overwrites the cache with an equally valid
// session, at the cost of one duplicate upstream login call.
type sessionCache struct {
	mu          sync.RWMutex
	current     *session
	credentials Credentials
}

func newSessionCache(creds Credentials) *sessionCache {
	return &sessionCache{credentials: creds}
}

// get returns the cached session, or nil when none is held.
func (c *sessionCache) get() *session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// put replaces the cached session.
func (c *sessionCache) put(s *session) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
}

// invalidate drops the cached session if it is still the one the
// caller observed. A session another request already replaced is left
// alone so concurrent retries don't discard each other's fresh logins.
func (c *sessionCache) invalidate(observed *session) {
	c.mu.Lock()
	if c.current == observed {
		c.current = nil
	}
	c.mu.Unlock()
}

// creds returns the current credentials.
func (c *sessionCache) creds() Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credentials
}

// setCreds replaces the credentials and drops any cached session so
// the next call logs in with the new account.
func (c *sessionCache) setCreds(creds Credentials) {
	c.mu.Lock()
	c.credentials = creds
	c.current = nil
	c.mu.Unlock()
}

// acquireSession returns the cached session, logging in first when
// none is held. Login failure is fatal for the current operation and
// is never retried here.
func (c *Client) acquireSession(ctx context.Context) (*session, error) {
	if s := c.sessions.get(); s != nil {
		return s, nil
	}
	return c.login(ctx)
}

// login performs the upstream login exchange and caches the resulting
// cookie set.
func (c *Client) login(ctx context.Context) (*session, error) {
	creds := c.sessions.creds()

	body, err := json.Marshal(map[string]string{
		"usr": creds.Username,
		"pwd": creds.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("encode login body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/method/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportError("login", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream returned status %d",
			domain.ErrAuthenticationFailed, resp.StatusCode)
	}

	s := &session{cookies: resp.Cookies()}
	c.sessions.put(s)
	logger.Debug("logged in to upstream as %s", creds.Username)
	return s, nil
}
