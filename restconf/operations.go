// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Input validation constants
const (
	// MaxPathLength is the maximum length for a RESTCONF resource path
	MaxPathLength = 1024

	// MaxBodySize caps how much of a response body is read (10MB)
	MaxBodySize = 10 * 1024 * 1024
)

// validatePath validates a RESTCONF resource path.
//
// Paths are rooted at the client's /restconf base and must start with "/",
// e.g. "/data/ietf-interfaces:interfaces/interface=Loopback100".
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with '/': %s", path)
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("path exceeds maximum length of %d characters", MaxPathLength)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains null byte")
	}
	return nil
}

// Do dispatches one request through the authenticated session and returns
// the raw response unmodified. This is the single network entry point for
// all read/write operations; it does not interpret payload semantics.
//
// Preconditions: a credential mode must be established via one of the
// Authenticate* methods. In bearer-token mode an expired token fails fast
// with KindAuthExpired and performs no network I/O.
//
// Side effect: exactly one network round trip per call (zero if
// fast-failed). There is no retry; a repeated create against an existing
// resource surfaces the device's conflict fault to the caller.
//
// Example:
//
//	res, err := client.Do(ctx, http.MethodGet,
//	    "/data/ietf-interfaces:interfaces", "")
//	if err != nil {
//	    if restconf.ErrorKind(err) == restconf.KindAuthExpired {
//	        // re-authenticate and retry at the caller's discretion
//	    }
//	}
func (c *Client) Do(ctx context.Context, method, path, body string) (Res, error) {
	if err := validatePath(path); err != nil {
		return Res{Kind: KindFault}, fmt.Errorf("%s: %w", opName(method), err)
	}

	c.mu.RLock()
	mode := c.authMode
	token := c.token
	headers := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		headers[k] = v
	}
	username, password := c.username, c.password
	httpClient := c.httpClient
	c.mu.RUnlock()

	if mode == AuthNone {
		return Res{Kind: KindFault}, &ClientError{
			Operation: opName(method),
			Kind:      KindFault,
			Message:   "no credential mode established (call an Authenticate method first)",
		}
	}

	// Fail fast on a locally known-expired token: no network I/O.
	if mode == AuthToken && token.expired(time.Now()) {
		c.logger.Warn(ctx, "bearer token expired, dispatch refused",
			"method", method,
			"path", path)
		return Res{Kind: KindAuthExpired}, &ClientError{
			Operation: opName(method),
			Kind:      KindAuthExpired,
			Message:   "authentication expired",
		}
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Res{Kind: KindFault}, fmt.Errorf("%s: %w", opName(method), err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if mode == AuthBasic {
		req.SetBasicAuth(username, password)
	}

	c.logger.Debug(ctx, "RESTCONF request",
		"method", method,
		"path", path,
		"body", redactSecrets(body))

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "RESTCONF transport failure",
			"method", method,
			"path", path,
			"error", err.Error())
		return Res{Kind: KindTransport}, &ClientError{
			Operation: opName(method),
			Kind:      KindTransport,
			Message:   err.Error(),
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := readBody(resp)
	if err != nil {
		return Res{StatusCode: resp.StatusCode, Kind: KindTransport}, &ClientError{
			Operation:  opName(method),
			Kind:       KindTransport,
			StatusCode: resp.StatusCode,
			Message:    err.Error(),
		}
	}

	res := Res{StatusCode: resp.StatusCode, Body: raw}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		res.OK = true
		c.logger.Debug(ctx, "RESTCONF response",
			"method", method,
			"path", path,
			"status", resp.StatusCode)
		return res, nil
	}

	res.Faults = parseFaults(raw)
	res.Kind = classify(resp.StatusCode, res.Faults)

	cerr := &ClientError{
		Operation:  opName(method),
		Kind:       res.Kind,
		StatusCode: resp.StatusCode,
		Faults:     res.Faults,
		Message:    faultMessage(resp.StatusCode, res.Faults),
	}

	c.logger.Warn(ctx, "RESTCONF request rejected",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"kind", res.Kind.String())

	return res, cerr
}

// Get retrieves the resource at path.
func (c *Client) Get(ctx context.Context, path string) (Res, error) {
	return c.Do(ctx, http.MethodGet, path, "")
}

// Post creates a resource under path. The device rejects the request with
// a conflict-class fault when the resource already exists.
func (c *Client) Post(ctx context.Context, path, body string) (Res, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put replaces the full resource at path.
func (c *Client) Put(ctx context.Context, path, body string) (Res, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch merges the partial payload into the resource at path, leaving
// unnamed fields unchanged.
func (c *Client) Patch(ctx context.Context, path, body string) (Res, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) (Res, error) {
	return c.Do(ctx, http.MethodDelete, path, "")
}

// readBody drains a response body up to MaxBodySize.
func readBody(resp *http.Response) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(raw), nil
}

// opName lowercases an HTTP method for error and log context.
func opName(method string) string {
	return strings.ToLower(method)
}
