// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package netconf

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/netascode/go-netdev/logging"
)

// Default client configuration values
const (
	DefaultPort           = 830
	DefaultConnectTimeout = 30 * time.Second
)

// readBufferSize is the chunk size for draining session frames.
const readBufferSize = 4096

// Client represents a NETCONF session to one network device over the SSH
// netconf subsystem. The transport is acquired lazily on the first
// operation (or explicitly with Connect) and released with Close.
//
// A Client is safe for concurrent use; RPCs are serialized because a
// NETCONF session carries one exchange at a time.
type Client struct {
	// Connection parameters
	Host string
	Port int

	// ConnectTimeout bounds the SSH dial
	ConnectTimeout time.Duration

	// SkipHostKeyCheck disables SSH host key verification
	SkipHostKeyCheck bool

	username       string
	password       string
	privateKey     []byte
	knownHostsFile string

	// mu serializes connection setup and RPC exchanges
	mu sync.Mutex

	sshClient  *ssh.Client
	session    *ssh.Session
	stdin      io.WriteCloser
	stdout     io.Reader
	sessionID  string
	serverCaps []string
	connected  bool

	logger logging.Logger
}

// NewClient creates a new NETCONF client for the given host and username.
//
// Construction performs no network I/O. Exactly one of Password or
// PrivateKey must be supplied for SSH authentication.
//
// Example:
//
//	client, err := netconf.NewClient(
//	    "192.168.1.1",
//	    "admin",
//	    netconf.Password("secret"),
//	    netconf.Port(830),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
func NewClient(host, username string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Host:           host,
		Port:           DefaultPort,
		ConnectTimeout: DefaultConnectTimeout,
		username:       username,
		logger:         &logging.NoOpLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

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
	if strings.TrimSpace(c.username) == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if c.password == "" && len(c.privateKey) == 0 {
		return fmt.Errorf("either a password or a private key is required")
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got: %v", c.ConnectTimeout)
	}

	if c.SkipHostKeyCheck {
		c.logger.Warn(context.Background(), "SSH host key verification disabled",
			"host", c.Host,
			"recommendation", "use only in lab environments")
	}

	return nil
}

// Connect acquires the SSH transport, requests the netconf subsystem, and
// exchanges hello messages. It is a no-op when the session is already
// established; operations call it implicitly.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureConnected(ctx)
}

// ensureConnected establishes the session if needed. Caller must hold mu.
func (c *Client) ensureConnected(ctx context.Context) error {
	if c.connected {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	authMethods, err := c.authMethods()
	if err != nil {
		return err
	}

	hostKeyCallback, err := c.hostKeyCallback()
	if err != nil {
		return err
	}

	sshConfig := &ssh.ClientConfig{
		User:            c.username,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         c.ConnectTimeout,
	}

	addr := net.JoinHostPort(c.Host, fmt.Sprintf("%d", c.Port))
	c.logger.Debug(ctx, "dialing NETCONF transport", "address", addr)

	sshClient, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return &RPCError{
			Operation: "connect",
			Message:   fmt.Sprintf("ssh dial %s: %v", addr, err),
		}
	}

	session, err := sshClient.NewSession()
	if err != nil {
		sshClient.Close() //nolint:errcheck
		return &RPCError{
			Operation: "connect",
			Message:   fmt.Sprintf("ssh session: %v", err),
		}
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()   //nolint:errcheck
		sshClient.Close() //nolint:errcheck
		return &RPCError{
			Operation: "connect",
			Message:   fmt.Sprintf("stdin pipe: %v", err),
		}
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()   //nolint:errcheck
		sshClient.Close() //nolint:errcheck
		return &RPCError{
			Operation: "connect",
			Message:   fmt.Sprintf("stdout pipe: %v", err),
		}
	}

	if err := session.RequestSubsystem("netconf"); err != nil {
		session.Close()   //nolint:errcheck
		sshClient.Close() //nolint:errcheck
		return &RPCError{
			Operation: "connect",
			Message:   fmt.Sprintf("netconf subsystem: %v", err),
		}
	}

	c.sshClient = sshClient
	c.session = session
	c.stdin = stdin
	c.stdout = stdout

	if err := c.exchangeHello(ctx); err != nil {
		c.teardown()
		return err
	}

	c.connected = true
	c.logger.Info(ctx, "NETCONF session established",
		"host", c.Host,
		"session_id", c.sessionID)

	return nil
}

// authMethods assembles SSH authentication from the configured credential.
func (c *Client) authMethods() ([]ssh.AuthMethod, error) {
	if len(c.privateKey) > 0 {
		signer, err := ssh.ParsePrivateKey(c.privateKey)
		if err != nil {
			return nil, fmt.Errorf("parsing private key: %w", err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}
	return []ssh.AuthMethod{ssh.Password(c.password)}, nil
}

// hostKeyCallback selects host key verification. A known_hosts file takes
// precedence; otherwise SkipHostKeyCheck must be explicitly enabled.
func (c *Client) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if c.knownHostsFile != "" {
		callback, err := knownhosts.New(c.knownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("known_hosts file: %w", err)
		}
		return callback, nil
	}
	if !c.SkipHostKeyCheck {
		return nil, fmt.Errorf("host key verification requires KnownHosts or SkipHostKeyCheck(true)")
	}
	return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // Explicit lab-mode opt-in
}

// exchangeHello sends the client hello and parses the server hello,
// recording session-id and capabilities. Caller must hold mu.
func (c *Client) exchangeHello(ctx context.Context) error {
	if _, err := c.stdin.Write([]byte(clientHello)); err != nil {
		return &RPCError{
			Operation: "hello",
			Message:   fmt.Sprintf("sending hello: %v", err),
		}
	}

	raw, err := c.readFrame()
	if err != nil {
		return &RPCError{
			Operation: "hello",
			Message:   fmt.Sprintf("reading server hello: %v", err),
		}
	}

	hello, err := parseHello(raw)
	if err != nil {
		return &RPCError{
			Operation: "hello",
			Message:   err.Error(),
		}
	}

	c.sessionID = hello.SessionID
	c.serverCaps = hello.Capabilities

	c.logger.Debug(ctx, "server hello received",
		"session_id", hello.SessionID,
		"capabilities", len(hello.Capabilities))

	return nil
}

// readFrame drains the session stream until the end-of-message marker and
// returns the frame without it. Caller must hold mu.
func (c *Client) readFrame() (string, error) {
	var frame strings.Builder
	buf := make([]byte, readBufferSize)

	for {
		n, err := c.stdout.Read(buf)
		if n > 0 {
			frame.Write(buf[:n])
			if strings.HasSuffix(frame.String(), messageEnd) {
				break
			}
		}
		if err != nil {
			if err == io.EOF && strings.HasSuffix(frame.String(), messageEnd) {
				break
			}
			return "", fmt.Errorf("reading frame: %w", err)
		}
	}

	return strings.TrimSuffix(frame.String(), messageEnd), nil
}

// SessionID returns the server-assigned session identifier, empty before
// the session is established.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// ServerCapabilities returns the capability URIs announced in the server
// hello, nil before the session is established.
func (c *Client) ServerCapabilities() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	caps := make([]string, len(c.serverCaps))
	copy(caps, c.serverCaps)
	return caps
}

// HasCapability reports whether the server announced the given capability
// URI in its hello. Version parameters are ignored, so both
// "urn:ietf:params:netconf:capability:candidate:1.0" and the bare
// "urn:ietf:params:netconf:capability:candidate" match.
func (c *Client) HasCapability(uri string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, capability := range c.serverCaps {
		if capability == uri || strings.HasPrefix(capability, uri+":") || strings.HasPrefix(capability, uri+"?") {
			return true
		}
	}
	return false
}

// Connected reports whether the session is currently established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close sends close-session when the session is up and releases the SSH
// transport. Safe to call multiple times.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	// Best effort; the transport is torn down regardless.
	frame := wrapRPC(newMessageID(), "<close-session/>")
	if _, err := c.stdin.Write([]byte(frame)); err == nil {
		c.readFrame() //nolint:errcheck
	}

	c.teardown()

	c.logger.Info(context.Background(), "NETCONF session closed", "host", c.Host)
	return nil
}

// teardown releases the transport and clears session state. Caller must
// hold mu.
func (c *Client) teardown() {
	if c.session != nil {
		c.session.Close() //nolint:errcheck
		c.session = nil
	}
	if c.sshClient != nil {
		c.sshClient.Close() //nolint:errcheck
		c.sshClient = nil
	}
	c.stdin = nil
	c.stdout = nil
	c.sessionID = ""
	c.serverCaps = nil
	c.connected = false
}
