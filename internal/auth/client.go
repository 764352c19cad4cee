package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Token endpoint routes on the remote issuer.
const (
	tokenPath   = "/api/token/"
	refreshPath = "/api/token/refresh/"
	logoutPath  = "/api/logout/"
)

// ErrNoSession is returned when a refresh is attempted without a stored
// refresh token.
var ErrNoSession = errors.New("auth: no stored session")

// Client talks to the token issuer. It uses a plain HTTP client: auth
// endpoints never carry a bearer header and never trigger refresh.
type Client struct {
	baseURL string
	http    *http.Client
	store   Store

	mu   sync.Mutex
	pair TokenPair

	// forcedOut latches after the first forced logout so a burst of failing
	// requests cannot re-trigger logout handling.
	forcedOut bool
	onLogout  func()
}

// NewClient loads any stored session from store. onLogout runs once when
// the session is forcibly terminated; it may be nil.
func NewClient(baseURL string, store Store, onLogout func()) (*Client, error) {
	pair, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		store:    store,
		pair:     pair,
		onLogout: onLogout,
	}, nil
}

// AccessToken returns the current access token, or "".
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pair.Access
}

// HasValidSession reports whether either token of the stored pair is still
// usable locally.
func (c *Client) HasValidSession() bool {
	c.mu.Lock()
	pair := c.pair
	c.mu.Unlock()
	return !Expired(pair.Access) || !Expired(pair.Refresh)
}

// Login obtains a fresh token pair and stores it. A successful login also
// re-arms forced-logout handling for the new session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var pair TokenPair
	if err := c.post(ctx, tokenPath, body, &pair); err != nil {
		return err
	}

	c.mu.Lock()
	c.pair = pair
	c.forcedOut = false
	c.mu.Unlock()

	if err := c.store.Save(pair); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Refresh exchanges the refresh token for a new access token and stores it.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	refresh := c.pair.Refresh
	c.mu.Unlock()
	if refresh == "" {
		return "", ErrNoSession
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := c.post(ctx, refreshPath, map[string]string{"refresh": refresh}, &out); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.pair.Access = out.Access
	pair := c.pair
	c.mu.Unlock()

	if err := c.store.Save(pair); err != nil {
		slog.Warn("failed to persist refreshed token", "error", err)
	}
	return out.Access, nil
}

// Logout revokes the refresh token server-side when possible and always
// clears the local session.
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	refresh := c.pair.Refresh
	c.mu.Unlock()

	if refresh != "" {
		// Best effort: local cleanup happens regardless.
		if err := c.post(ctx, logoutPath, map[string]string{"refresh": refresh}, nil); err != nil {
			slog.Debug("server-side logout failed", "error", err)
		}
	}
	c.ForceLogout()
}

// ForceLogout clears stored credentials and fires the logout callback.
// Subsequent calls are no-ops until the next successful login.
func (c *Client) ForceLogout() {
	c.mu.Lock()
	if c.forcedOut {
		c.mu.Unlock()
		return
	}
	c.forcedOut = true
	c.pair = TokenPair{}
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		slog.Warn("failed to clear stored session", "error", err)
	}
	if c.onLogout != nil {
		c.onLogout()
	}
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("auth: %s returned %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// isAuthEndpoint reports whether the path belongs to the token issuer.
// Those requests never carry a bearer header and never trigger refresh.
func isAuthEndpoint(path string) bool {
	return strings.Contains(path, tokenPath) ||
		strings.Contains(path, refreshPath) ||
		strings.Contains(path, logoutPath)
}
