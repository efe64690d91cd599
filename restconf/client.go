// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/netascode/go-netdev/logging"
)

// Default client configuration values
const (
	DefaultPort              = 443
	DefaultConnectTimeout    = 30 * time.Second
	DefaultUseTLS            = true
	DefaultVerifyCertificate = true

	// DefaultTokenLifetime is assumed when the token endpoint does not
	// declare expires_in.
	DefaultTokenLifetime = time.Hour
)

// RESTCONF protocol constants
const (
	// ContentTypeYANGJSON is the media type for YANG JSON payloads
	ContentTypeYANGJSON = "application/yang-data+json"

	// CapabilitiesPath is the read-only probe resource used to verify
	// credentials after authentication
	CapabilitiesPath = "/data/ietf-restconf-monitoring:restconf-state/capabilities"

	// DefaultTokenPath is the token exchange endpoint. Token support is
	// device-specific; override with the TokenEndpoint option.
	DefaultTokenPath = "/auth/token"
)

// secretFieldPatterns match JSON credential fields that must never reach
// log output.
var secretFieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"password"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"token"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"secret"\s*:\s*"[^"]*"`),
}

var secretFieldReplacements = []string{
	`"password":"[REDACTED]"`,
	`"token":"[REDACTED]"`,
	`"secret":"[REDACTED]"`,
}

// AuthMode identifies the credential mode active on a client. Exactly one
// mode is active at a time; re-authenticating replaces the prior mode.
type AuthMode int

const (
	// AuthNone means no Authenticate* call has succeeded or been attempted
	AuthNone AuthMode = iota

	// AuthBasic is HTTP basic authentication
	AuthBasic

	// AuthToken is bearer-token authentication with tracked expiry
	AuthToken

	// AuthCertificate is mutual-TLS client certificate authentication
	AuthCertificate
)

// String returns the string representation of an AuthMode.
func (m AuthMode) String() string {
	switch m {
	case AuthNone:
		return "none"
	case AuthBasic:
		return "basic"
	case AuthToken:
		return "token"
	case AuthCertificate:
		return "certificate"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Client represents an authenticated RESTCONF session to one network
// device. It owns its HTTP transport exclusively; no state is shared
// across clients.
type Client struct {
	httpClient *http.Client

	// mu synchronizes access to credential mode, headers, and token state
	mu sync.RWMutex

	// Connection parameters
	Host string
	Port int

	// TLS options
	UseTLS             bool
	VerifyCertificate  bool
	InsecureSkipVerify bool // Alias for !VerifyCertificate

	// ConnectTimeout is applied once to the underlying HTTP client at
	// construction; per-call timeouts are not independently configurable.
	ConnectTimeout time.Duration

	// TokenPath is the device token exchange endpoint
	TokenPath string

	username string // unexported for security
	password string // unexported for security
	certFile string
	keyFile  string

	authMode AuthMode
	headers  map[string]string
	token    *TokenState

	logger  logging.Logger
	baseURL string
}

// NewClient creates a new RESTCONF client for the given host and options.
//
// Construction performs no network I/O. Credentials are established
// afterwards with exactly one of AuthenticateBasic, AuthenticateToken, or
// AuthenticateCertificate.
//
// Example:
//
//	client, err := restconf.NewClient(
//	    "192.168.1.1",
//	    restconf.Port(443),
//	    restconf.VerifyCertificate(false), // lab only
//	    restconf.ConnectTimeout(15*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err) // configuration error
//	}
//	defer client.Close()
//
// Returns a configured Client or an error if validation fails.
func NewClient(host string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Host:              host,
		Port:              DefaultPort,
		UseTLS:            DefaultUseTLS,
		VerifyCertificate: DefaultVerifyCertificate,
		ConnectTimeout:    DefaultConnectTimeout,
		TokenPath:         DefaultTokenPath,
		authMode:          AuthNone,
		headers:           map[string]string{},
		logger:            &logging.NoOpLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	client.InsecureSkipVerify = !client.VerifyCertificate

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.baseURL = client.buildBaseURL()
	client.httpClient = client.buildHTTPClient(nil)

	client.logger.Info(context.Background(), "RESTCONF client created",
		"host", client.Host,
		"base_url", client.baseURL)

	return client, nil
}

// validateConfig validates client configuration before use.
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got: %v", c.ConnectTimeout)
	}

	if c.UseTLS && c.InsecureSkipVerify {
		c.logger.Warn(context.Background(), "TLS certificate verification disabled",
			"host", c.Host,
			"recommendation", "use only in lab environments")
	}
	if !c.UseTLS {
		c.logger.Warn(context.Background(), "TLS disabled - credentials transmitted in clear text",
			"host", c.Host)
	}

	return nil
}

// buildBaseURL assembles scheme://host:port/restconf. A host that already
// carries an explicit port (host:port or [v6]:port) is used as-is and the
// Port field is ignored; bare IPv6 hosts are bracketed.
func (c *Client) buildBaseURL() string {
	address := c.Host
	if !hasExplicitPort(address) {
		address = net.JoinHostPort(strings.Trim(c.Host, "[]"), strconv.Itoa(c.Port))
	}
	scheme := "https"
	if !c.UseTLS {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/restconf", scheme, address)
}

// hasExplicitPort reports whether host already carries a port. A bare IPv6
// address contains colons but no port.
func hasExplicitPort(host string) bool {
	if strings.HasPrefix(host, "[") {
		return strings.Contains(host, "]:")
	}
	return strings.Count(host, ":") == 1
}

// buildHTTPClient constructs the transport. A non-nil cert installs a
// client certificate for mutual TLS.
func (c *Client) buildHTTPClient(cert *tls.Certificate) *http.Client {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: c.InsecureSkipVerify, //nolint:gosec // Explicit lab-mode opt-in via VerifyCertificate(false)
	}
	if cert != nil {
		tlsConfig.Certificates = []tls.Certificate{*cert}
	}

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		},
		Timeout: c.ConnectTimeout,
	}
}

// BaseURL returns the session base URL including the /restconf root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AuthMode returns the currently active credential mode.
func (c *Client) AuthMode() AuthMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authMode
}

// Close releases the transport handle and clears all credential state.
// The client cannot be reused afterwards. Safe to call multiple times.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	c.authMode = AuthNone
	c.token = nil
	c.username = ""
	c.password = ""
	c.certFile = ""
	c.keyFile = ""
	c.headers = map[string]string{}

	c.logger.Info(context.Background(), "RESTCONF session closed",
		"host", c.Host)

	return nil
}

// setMode switches the active credential mode, resetting the default
// headers and discarding any prior token. Caller must hold the write lock.
func (c *Client) setMode(mode AuthMode) {
	c.authMode = mode
	c.token = nil
	c.headers = map[string]string{
		"Accept":       ContentTypeYANGJSON,
		"Content-Type": ContentTypeYANGJSON,
	}
}

// AuthenticateBasic establishes HTTP basic authentication and verifies it
// with one read-only probe against the capabilities resource.
//
// On probe failure the credential mode remains set but unverified, and the
// error is returned for the caller to inspect. Any previously held token
// and its Authorization header are discarded.
func (c *Client) AuthenticateBasic(ctx context.Context, username, password string) error {
	c.mu.Lock()
	c.username = username
	c.password = password
	c.certFile = ""
	c.keyFile = ""
	c.setMode(AuthBasic)
	c.httpClient = c.buildHTTPClient(nil)
	c.mu.Unlock()

	if err := c.probe(ctx); err != nil {
		c.logger.Warn(ctx, "basic authentication probe failed",
			"host", c.Host,
			"error", err.Error())
		return err
	}

	c.logger.Info(ctx, "basic authentication verified", "host", c.Host)
	return nil
}

// AuthenticateCertificate establishes mutual-TLS authentication from a
// certificate and private key file pair, then verifies reachability with
// one probe request.
//
// Missing or unreadable credential files fail with KindCertificateMissing
// before any network I/O; probe failures surface as transport or fault
// kinds instead.
func (c *Client) AuthenticateCertificate(ctx context.Context, certFile, keyFile string) error {
	for _, f := range []string{certFile, keyFile} {
		if _, err := os.Stat(f); err != nil {
			return &ClientError{
				Operation: "authenticate-certificate",
				Kind:      KindCertificateMissing,
				Message:   fmt.Sprintf("certificate file not found: %s", filepath.Base(f)),
			}
		}
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return &ClientError{
			Operation: "authenticate-certificate",
			Kind:      KindCertificateMissing,
			Message:   fmt.Sprintf("certificate load failed: %v", err),
		}
	}

	c.mu.Lock()
	c.username = ""
	c.password = ""
	c.certFile = certFile
	c.keyFile = keyFile
	c.setMode(AuthCertificate)
	c.httpClient = c.buildHTTPClient(&cert)
	c.mu.Unlock()

	if err := c.probe(ctx); err != nil {
		c.logger.Warn(ctx, "certificate authentication probe failed",
			"host", c.Host,
			"error", err.Error())
		return err
	}

	c.logger.Info(ctx, "certificate authentication verified", "host", c.Host)
	return nil
}

// AuthenticateToken exchanges a username/password pair for an opaque
// bearer token at the device token endpoint and establishes bearer-token
// mode with the token embedded in the default headers.
//
// Token endpoints are device-specific and may not exist; an absent
// endpoint is reported as a failure (typically KindNotFound), never a
// crash. The server-declared expires_in governs the tracked expiry;
// DefaultTokenLifetime applies when the server omits it.
func (c *Client) AuthenticateToken(ctx context.Context, username, password string) error {
	payload, err := Body{}.
		Set("username", username).
		Set("password", password).
		String()
	if err != nil {
		return fmt.Errorf("authenticate-token: building request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.TokenPath,
		strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("authenticate-token: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug(ctx, "token exchange request",
		"host", c.Host,
		"endpoint", c.TokenPath)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{
			Operation: "authenticate-token",
			Kind:      KindTransport,
			Message:   err.Error(),
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := readBody(resp)
	if err != nil {
		return &ClientError{
			Operation: "authenticate-token",
			Kind:      KindTransport,
			Message:   err.Error(),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		faults := parseFaults(body)
		return &ClientError{
			Operation:  "authenticate-token",
			Kind:       classify(resp.StatusCode, faults),
			StatusCode: resp.StatusCode,
			Faults:     faults,
			Message:    "token endpoint refused exchange (may be unsupported on this device)",
		}
	}

	token, expiresIn := parseTokenResponse(body)
	if token == "" {
		return &ClientError{
			Operation:  "authenticate-token",
			Kind:       KindFault,
			StatusCode: resp.StatusCode,
			Message:    "token endpoint returned no token",
		}
	}

	now := time.Now()
	state := &TokenState{
		Value:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(expiresIn),
	}

	c.mu.Lock()
	c.username = ""
	c.password = ""
	c.certFile = ""
	c.keyFile = ""
	c.setMode(AuthToken)
	c.token = state
	c.headers["Authorization"] = "Bearer " + token
	c.httpClient = c.buildHTTPClient(nil)
	c.mu.Unlock()

	c.logger.Info(ctx, "token authentication established",
		"host", c.Host,
		"expires_at", state.ExpiresAt.Format(time.RFC3339))

	return nil
}

// probe issues the read-only verification request through the dispatcher.
func (c *Client) probe(ctx context.Context) error {
	_, err := c.Do(ctx, http.MethodGet, CapabilitiesPath, "")
	return err
}

// redactSecrets replaces credential fields in a JSON payload with
// [REDACTED] before it reaches log output.
func redactSecrets(payload string) string {
	result := payload
	for i, pattern := range secretFieldPatterns {
		result = pattern.ReplaceAllString(result, secretFieldReplacements[i])
	}
	return result
}
