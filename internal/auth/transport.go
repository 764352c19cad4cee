package auth

import (
	"io"
	"net/http"
)

// Transport is an http.RoundTripper that injects the bearer token and
// applies the refresh-once, retry-once policy: a 401 triggers at most one
// token refresh and at most one replay of the original request. A failed
// refresh forces client-side logout.
type Transport struct {
	auth *Client
	base http.RoundTripper
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(auth *Client, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{auth: auth, base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthEndpoint(req.URL.Path) {
		return t.base.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	if token := t.auth.AccessToken(); token != "" {
		authed.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(authed)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// The retry replays the request body; without GetBody the original
	// 401 is all we can return.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	access, refreshErr := t.auth.Refresh(req.Context())
	if refreshErr != nil {
		t.auth.ForceLogout()
		return resp, nil
	}

	drainAndClose(resp.Body)

	retry := req.Clone(req.Context())
	retry.Header.Set("Authorization", "Bearer "+access)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	return t.base.RoundTrip(retry)
}

// drainAndClose lets the underlying connection be reused before the retry.
func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, 4096))
	body.Close()
}

// HTTPClient returns an http.Client whose transport enforces the session
// policy. Pass it to the API client.
func (c *Client) HTTPClient() *http.Client {
	return &http.Client{Transport: NewTransport(c, nil)}
}
