// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// TestValidatePath tests request path validation
func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid data path", "/data/ietf-interfaces:interfaces", false},
		{"valid keyed path", "/data/ietf-interfaces:interfaces/interface=Loopback100", false},
		{"empty path", "", true},
		{"missing leading slash", "data/ietf-interfaces:interfaces", true},
		{"null byte", "/data/\x00bad", true},
		{"too long", "/" + strings.Repeat("a", MaxPathLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error for path %q", tt.path)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error for path %q: %v", tt.path, err)
			}
		})
	}
}

// TestDoNoCredentialMode tests that dispatch before authentication fails
// without touching the network
func TestDoNoCredentialMode(t *testing.T) {
	var requests atomic.Int64
	handler := func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}

	client, _ := newTestClient(t, http.HandlerFunc(handler))

	_, err := client.Get(context.Background(), "/data/ietf-interfaces:interfaces")
	if err == nil {
		t.Fatalf("Expected error before authentication")
	}
	if !strings.Contains(err.Error(), "no credential mode established") {
		t.Errorf("Unexpected error: %v", err)
	}
	if requests.Load() != 0 {
		t.Errorf("Expected zero network requests, got %d", requests.Load())
	}
}

// TestDoExpiredTokenFailFast tests that dispatch with an expired bearer
// token fails before any network I/O
func TestDoExpiredTokenFailFast(t *testing.T) {
	var dataRequests atomic.Int64

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/restconf"+DefaultTokenPath {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"token":"tok1","expires_in":3600}`)) //nolint:errcheck
			return
		}
		dataRequests.Add(1)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`)) //nolint:errcheck
	}

	client, _ := newTestClient(t, http.HandlerFunc(handler))
	ctx := context.Background()

	if err := client.AuthenticateToken(ctx, "admin", "secret"); err != nil {
		t.Fatalf("AuthenticateToken failed: %v", err)
	}

	client.mu.Lock()
	client.token.ExpiresAt = time.Now().Add(-time.Second)
	client.mu.Unlock()

	res, err := client.Get(ctx, "/data/ietf-interfaces:interfaces")
	if err == nil {
		t.Fatalf("Expected error for expired token")
	}
	if res.Kind != KindAuthExpired {
		t.Errorf("Expected KindAuthExpired on result, got %s", res.Kind)
	}
	if ErrorKind(err) != KindAuthExpired {
		t.Errorf("Expected KindAuthExpired on error, got %s", ErrorKind(err))
	}
	if dataRequests.Load() != 0 {
		t.Errorf("Expected zero data requests with expired token, got %d", dataRequests.Load())
	}
}

// TestDoSuccess tests a successful dispatch returning the raw device body
func TestDoSuccess(t *testing.T) {
	const deviceBody = `{"ietf-interfaces:interfaces":{"interface":[{"name":"Loopback100","enabled":true}]}}`

	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ContentTypeYANGJSON)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(deviceBody)) //nolint:errcheck
	}

	client, _ := newTestClient(t, http.HandlerFunc(handler))
	ctx := context.Background()

	if err := client.AuthenticateBasic(ctx, "admin", "secret"); err != nil {
		t.Fatalf("AuthenticateBasic failed: %v", err)
	}

	res, err := client.Get(ctx, "/data/ietf-interfaces:interfaces")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !res.OK {
		t.Errorf("Expected OK result")
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", res.StatusCode)
	}
	if res.Body != deviceBody {
		t.Errorf("Expected raw body passthrough, got: %s", res.Body)
	}
	name := res.GetValue("ietf-interfaces:interfaces.interface.0.name").String()
	if name != "Loopback100" {
		t.Errorf("Expected Loopback100, got %q", name)
	}
}

// TestDoNotFound tests fault parsing and classification for missing data
func TestDoNotFound(t *testing.T) {
	const faultDoc = `{"ietf-restconf:errors":{"error":[{"error-type":"application","error-tag":"invalid-value","error-message":"uri keypath not found"}]}}`

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/restconf"+CapabilitiesPath {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`)) //nolint:errcheck
			return
		}
		w.Header().Set("Content-Type", ContentTypeYANGJSON)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(faultDoc)) //nolint:errcheck
	}

	client, _ := newTestClient(t, http.HandlerFunc(handler))
	ctx := context.Background()

	if err := client.AuthenticateBasic(ctx, "admin", "secret"); err != nil {
		t.Fatalf("AuthenticateBasic failed: %v", err)
	}

	res, err := client.Get(ctx, "/data/ietf-interfaces:interfaces/interface=NoSuch")
	if err == nil {
		t.Fatalf("Expected error for missing resource")
	}
	if res.Kind != KindNotFound {
		t.Errorf("Expected KindNotFound, got %s", res.Kind)
	}
	if len(res.Faults) != 1 {
		t.Fatalf("Expected 1 parsed fault, got %d", len(res.Faults))
	}
	if res.Faults[0].Tag != "invalid-value" {
		t.Errorf("Unexpected fault tag: %s", res.Faults[0].Tag)
	}
	if res.Faults[0].Message != "uri keypath not found" {
		t.Errorf("Unexpected fault message: %s", res.Faults[0].Message)
	}
}

// TestDoConflict tests conflict classification from both status code and
// fault tag
func TestDoConflict(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "409 status",
			status: http.StatusConflict,
			body:   `{}`,
		},
		{
			name:   "data-exists tag on 400",
			status: http.StatusBadRequest,
			body:   `{"ietf-restconf:errors":{"error":[{"error-type":"application","error-tag":"data-exists","error-message":"object already exists"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/restconf"+CapabilitiesPath {
					w.WriteHeader(http.StatusOK)
					w.Write([]byte(`{}`)) //nolint:errcheck
					return
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body)) //nolint:errcheck
			}

			client, _ := newTestClient(t, http.HandlerFunc(handler))
			ctx := context.Background()

			if err := client.AuthenticateBasic(ctx, "admin", "secret"); err != nil {
				t.Fatalf("AuthenticateBasic failed: %v", err)
			}

			res, err := client.Post(ctx, "/data/ietf-interfaces:interfaces", `{"ietf-interfaces:interface":{"name":"Loopback100"}}`)
			if err == nil {
				t.Fatalf("Expected conflict error")
			}
			if res.Kind != KindConflict {
				t.Errorf("Expected KindConflict, got %s", res.Kind)
			}
			if ErrorKind(err) != KindConflict {
				t.Errorf("Expected KindConflict on error, got %s", ErrorKind(err))
			}
		})
	}
}

// TestDoTransportError tests that an unreachable device surfaces as a
// transport kind
func TestDoTransportError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`)) //nolint:errcheck
	}

	client, srv := newTestClient(t, http.HandlerFunc(handler))
	ctx := context.Background()

	if err := client.AuthenticateBasic(ctx, "admin", "secret"); err != nil {
		t.Fatalf("AuthenticateBasic failed: %v", err)
	}

	srv.Close()

	res, err := client.Get(ctx, "/data/ietf-interfaces:interfaces")
	if err == nil {
		t.Fatalf("Expected transport error against closed server")
	}
	if res.Kind != KindTransport {
		t.Errorf("Expected KindTransport, got %s", res.Kind)
	}
	if ErrorKind(err) != KindTransport {
		t.Errorf("Expected KindTransport on error, got %s", ErrorKind(err))
	}
}

// TestMethodWrappers tests that each wrapper dispatches its HTTP method
func TestMethodWrappers(t *testing.T) {
	var gotMethod, gotBody string

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/restconf"+CapabilitiesPath {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`)) //nolint:errcheck
			return
		}
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusNoContent)
	}

	client, _ := newTestClient(t, http.HandlerFunc(handler))
	ctx := context.Background()

	if err := client.AuthenticateBasic(ctx, "admin", "secret"); err != nil {
		t.Fatalf("AuthenticateBasic failed: %v", err)
	}

	const path = "/data/ietf-interfaces:interfaces/interface=Loopback100"
	const payload = `{"ietf-interfaces:interface":{"name":"Loopback100"}}`

	tests := []struct {
		name       string
		call       func() (Res, error)
		wantMethod string
		wantBody   string
	}{
		{"get", func() (Res, error) { return client.Get(ctx, path) }, http.MethodGet, ""},
		{"post", func() (Res, error) { return client.Post(ctx, path, payload) }, http.MethodPost, payload},
		{"put", func() (Res, error) { return client.Put(ctx, path, payload) }, http.MethodPut, payload},
		{"patch", func() (Res, error) { return client.Patch(ctx, path, payload) }, http.MethodPatch, payload},
		{"delete", func() (Res, error) { return client.Delete(ctx, path) }, http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMethod, gotBody = "", ""
			res, err := tt.call()
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			if !res.OK {
				t.Errorf("Expected OK result")
			}
			if gotMethod != tt.wantMethod {
				t.Errorf("Expected method %s, got %s", tt.wantMethod, gotMethod)
			}
			if gotBody != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, gotBody)
			}
		})
	}
}
