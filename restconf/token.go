// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
)

// TokenState is the client's local record of a bearer token. At most one
// TokenState is associated with a client at a time; acquiring a new token
// replaces it atomically.
type TokenState struct {
	// Value is the opaque token string
	Value string

	// IssuedAt is when the token was acquired
	IssuedAt time.Time

	// ExpiresAt is the instant at which the token stops being usable
	ExpiresAt time.Time
}

// expired reports whether the token is unusable at the given instant.
// A nil TokenState is always expired. The token is expired at and after
// ExpiresAt, valid strictly before it.
func (t *TokenState) expired(now time.Time) bool {
	return t == nil || !now.Before(t.ExpiresAt)
}

// TokenExpired reports whether the client's bearer token is expired.
// True when no token has ever been acquired. Pure function of stored
// state and wall-clock time; performs no network I/O.
func (c *Client) TokenExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token.expired(time.Now())
}

// Token returns a copy of the current token state. The second return
// value is false when no token is held.
func (c *Client) Token() (TokenState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return TokenState{}, false
	}
	return *c.token, true
}

// RefreshToken re-acquires the bearer token if it is expired. While the
// token is still valid this is a no-op that performs zero network calls,
// so it is safe to invoke before every dispatch.
func (c *Client) RefreshToken(ctx context.Context, username, password string) error {
	if !c.TokenExpired() {
		c.logger.Debug(ctx, "token still valid, refresh skipped", "host", c.Host)
		return nil
	}

	c.logger.Info(ctx, "token expired, re-acquiring", "host", c.Host)
	return c.AuthenticateToken(ctx, username, password)
}

// parseTokenResponse extracts the token value and lifetime from a token
// endpoint response. Devices omit expires_in in some firmware trains;
// DefaultTokenLifetime applies then.
func parseTokenResponse(body string) (string, time.Duration) {
	token := gjson.Get(body, "token").String()

	expiresIn := DefaultTokenLifetime
	if v := gjson.Get(body, "expires_in"); v.Exists() && v.Int() > 0 {
		expiresIn = time.Duration(v.Int()) * time.Second
	}
	return token, expiresIn
}
