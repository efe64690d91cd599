// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package netconf

import (
	"fmt"
	"strings"
)

// Fault is one rpc-error entry from a NETCONF rpc-reply (RFC 6241
// section 4.3).
type Fault struct {
	// Type is the error layer: transport, rpc, protocol, or application
	Type string `xml:"error-type"`

	// Tag is the machine-readable error condition, e.g. lock-denied
	Tag string `xml:"error-tag"`

	// Severity is error or warning
	Severity string `xml:"error-severity"`

	// Message is the human-readable description supplied by the device
	Message string `xml:"error-message"`

	// Path identifies the offending element, when the device provides it
	Path string `xml:"error-path"`
}

// RPCError represents a NETCONF rpc-reply carrying one or more rpc-error
// entries, or a transport failure during the exchange.
type RPCError struct {
	// Operation is the RPC name that failed (get-config, edit-config, ...)
	Operation string

	// MessageID correlates the error with the request frame, empty for
	// transport failures
	MessageID string

	// Faults holds the structured rpc-error entries, empty for transport
	// failures
	Faults []Fault

	// Message is a human-readable summary
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if len(e.Faults) == 0 {
		return fmt.Sprintf("netconf: %s failed: %s", e.Operation, e.Message)
	}

	parts := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		if f.Message != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Tag, strings.TrimSpace(f.Message)))
		} else {
			parts = append(parts, f.Tag)
		}
	}
	return fmt.Sprintf("netconf: %s failed: %s", e.Operation, strings.Join(parts, "; "))
}

// HasTag reports whether any fault carries the given error-tag.
func (e *RPCError) HasTag(tag string) bool {
	for _, f := range e.Faults {
		if f.Tag == tag {
			return true
		}
	}
	return false
}
