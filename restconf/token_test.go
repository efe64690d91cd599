// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// TestTokenExpired tests expiry evaluation against fixed reference times
func TestTokenExpired(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(time.Hour)
	state := &TokenState{Value: "tok", IssuedAt: issued, ExpiresAt: expires}

	tests := []struct {
		name  string
		state *TokenState
		now   time.Time
		want  bool
	}{
		{
			name:  "no token held",
			state: nil,
			now:   issued,
			want:  true,
		},
		{
			name:  "strictly before expiry",
			state: state,
			now:   expires.Add(-1 * time.Nanosecond),
			want:  false,
		},
		{
			name:  "exactly at expiry",
			state: state,
			now:   expires,
			want:  true,
		},
		{
			name:  "after expiry",
			state: state,
			now:   expires.Add(time.Minute),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.expired(tt.now); got != tt.want {
				t.Errorf("Expected expired=%v at %v, got %v", tt.want, tt.now, got)
			}
		})
	}
}

// TestTokenExpiredNoToken tests that a fresh client reports an expired token
func TestTokenExpiredNoToken(t *testing.T) {
	client, err := NewClient("192.168.1.1")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if !client.TokenExpired() {
		t.Errorf("Expected TokenExpired true when no token is held")
	}
	if _, ok := client.Token(); ok {
		t.Errorf("Expected no token state on fresh client")
	}
}

// TestRefreshTokenValidNoNetwork tests that refreshing a valid token
// performs no network I/O
func TestRefreshTokenValidNoNetwork(t *testing.T) {
	var exchanges atomic.Int64

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/restconf"+DefaultTokenPath {
			exchanges.Add(1)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"token":"tok1","expires_in":3600}`)) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`)) //nolint:errcheck
	}

	client, _ := newTestClient(t, http.HandlerFunc(handler))
	ctx := context.Background()

	if err := client.AuthenticateToken(ctx, "admin", "secret"); err != nil {
		t.Fatalf("AuthenticateToken failed: %v", err)
	}
	if exchanges.Load() != 1 {
		t.Fatalf("Expected 1 token exchange, got %d", exchanges.Load())
	}

	before, _ := client.Token()

	if err := client.RefreshToken(ctx, "admin", "secret"); err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}

	if exchanges.Load() != 1 {
		t.Errorf("Expected no additional exchange while token is valid, got %d total", exchanges.Load())
	}
	after, _ := client.Token()
	if after.Value != before.Value || !after.ExpiresAt.Equal(before.ExpiresAt) {
		t.Errorf("Expected token state unchanged by no-op refresh")
	}
}

// TestRefreshTokenExpired tests that an expired token triggers exactly one
// new exchange
func TestRefreshTokenExpired(t *testing.T) {
	var exchanges atomic.Int64

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/restconf"+DefaultTokenPath {
			n := exchanges.Add(1)
			w.WriteHeader(http.StatusOK)
			if n == 1 {
				w.Write([]byte(`{"token":"tok1","expires_in":3600}`)) //nolint:errcheck
			} else {
				w.Write([]byte(`{"token":"tok2","expires_in":3600}`)) //nolint:errcheck
			}
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`)) //nolint:errcheck
	}

	client, _ := newTestClient(t, http.HandlerFunc(handler))
	ctx := context.Background()

	if err := client.AuthenticateToken(ctx, "admin", "secret"); err != nil {
		t.Fatalf("AuthenticateToken failed: %v", err)
	}

	// Force expiry
	client.mu.Lock()
	client.token.ExpiresAt = time.Now().Add(-time.Minute)
	client.mu.Unlock()

	if !client.TokenExpired() {
		t.Fatalf("Expected token to report expired")
	}

	if err := client.RefreshToken(ctx, "admin", "secret"); err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}

	if exchanges.Load() != 2 {
		t.Errorf("Expected exactly 2 exchanges after expired refresh, got %d", exchanges.Load())
	}
	state, ok := client.Token()
	if !ok || state.Value != "tok2" {
		t.Errorf("Expected refreshed token tok2, got %+v (ok=%v)", state, ok)
	}
	if client.TokenExpired() {
		t.Errorf("Expected refreshed token to be valid")
	}
}

// TestParseTokenResponse tests token response parsing across payload shapes
func TestParseTokenResponse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantToken string
		wantTTL   time.Duration
	}{
		{
			name:      "token with expires_in",
			body:      `{"token":"abc","expires_in":1800}`,
			wantToken: "abc",
			wantTTL:   30 * time.Minute,
		},
		{
			name:      "expires_in omitted",
			body:      `{"token":"abc"}`,
			wantToken: "abc",
			wantTTL:   DefaultTokenLifetime,
		},
		{
			name:      "zero expires_in falls back to default",
			body:      `{"token":"abc","expires_in":0}`,
			wantToken: "abc",
			wantTTL:   DefaultTokenLifetime,
		},
		{
			name:      "no token field",
			body:      `{"message":"ok"}`,
			wantToken: "",
			wantTTL:   DefaultTokenLifetime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ttl := parseTokenResponse(tt.body)
			if token != tt.wantToken {
				t.Errorf("Expected token %q, got %q", tt.wantToken, token)
			}
			if ttl != tt.wantTTL {
				t.Errorf("Expected lifetime %v, got %v", tt.wantTTL, ttl)
			}
		})
	}
}
