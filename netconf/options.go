// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package netconf

import (
	"time"

	"github.com/netascode/go-netdev/logging"
)

// Port sets the NETCONF SSH port. Default is 830.
func Port(port int) func(*Client) {
	return func(c *Client) {
		c.Port = port
	}
}

// Password sets SSH password authentication.
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// PrivateKey sets SSH public key authentication from a PEM-encoded
// private key. Takes precedence over Password when both are set.
func PrivateKey(key []byte) func(*Client) {
	return func(c *Client) {
		c.privateKey = key
	}
}

// KnownHosts enables host key verification against an OpenSSH
// known_hosts file.
func KnownHosts(path string) func(*Client) {
	return func(c *Client) {
		c.knownHostsFile = path
	}
}

// SkipHostKeyCheck disables SSH host key verification. Use only in lab
// environments; a warning is logged when enabled.
func SkipHostKeyCheck(skip bool) func(*Client) {
	return func(c *Client) {
		c.SkipHostKeyCheck = skip
	}
}

// ConnectTimeout sets the SSH dial timeout. Default is 30 seconds.
func ConnectTimeout(timeout time.Duration) func(*Client) {
	return func(c *Client) {
		c.ConnectTimeout = timeout
	}
}

// WithLogger sets a custom logger implementation. Default is the no-op
// logger.
func WithLogger(logger logging.Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
