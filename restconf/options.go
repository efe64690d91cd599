// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"time"

	"github.com/netascode/go-netdev/logging"
)

// Client configuration options using the functional options pattern

// Port sets the RESTCONF port (default: 443). Ignored when the host
// passed to NewClient already carries a port.
func Port(port int) func(*Client) {
	return func(c *Client) {
		c.Port = port
	}
}

// TLS enables or disables HTTPS (default: true).
//
// WARNING: Disabling TLS transmits credentials in clear text. Only use
// this in isolated lab environments.
func TLS(enabled bool) func(*Client) {
	return func(c *Client) {
		c.UseTLS = enabled
	}
}

// VerifyCertificate enables or disables TLS certificate verification
// (default: true).
//
// WARNING: Disabling verification makes the connection vulnerable to
// Man-in-the-Middle attacks. Lab sandboxes commonly require this because
// they present self-signed certificates.
//
// Example:
//
//	client, _ := restconf.NewClient("sandbox-iosxe-latest-1.cisco.com",
//	    restconf.VerifyCertificate(false))
func VerifyCertificate(verify bool) func(*Client) {
	return func(c *Client) {
		c.VerifyCertificate = verify
	}
}

// ConnectTimeout sets the session-wide timeout applied to the transport
// at construction time (default: 30s). Individual calls cannot override it.
func ConnectTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.ConnectTimeout = duration
	}
}

// TokenEndpoint overrides the device token exchange path (default:
// /auth/token). The path is relative to the /restconf base.
func TokenEndpoint(path string) func(*Client) {
	return func(c *Client) {
		c.TokenPath = path
	}
}

// WithLogger configures a custom logger for the client.
//
// By default the client uses logging.NoOpLogger, which discards all
// messages. Request and response payloads logged at Debug level have
// credential fields redacted first.
//
// Example:
//
//	logger := logging.NewDefaultLogger(logging.LevelDebug)
//	client, _ := restconf.NewClient("192.168.1.1",
//	    restconf.WithLogger(logger))
func WithLogger(logger logging.Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
