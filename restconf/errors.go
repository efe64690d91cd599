// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a RESTCONF exchange so callers can branch
// on values instead of matching error strings or raw status codes.
type Kind int

const (
	// KindNone indicates a successful exchange (2xx status).
	KindNone Kind = iota

	// KindNotFound indicates the addressed resource does not exist (404
	// or a data-missing fault).
	KindNotFound

	// KindConflict indicates the request collided with existing state,
	// e.g. a create against an already-created resource (409 or a
	// data-exists fault).
	KindConflict

	// KindAuthExpired indicates the bearer token expired before dispatch.
	// No network I/O was performed.
	KindAuthExpired

	// KindTransport indicates a connectivity failure: host unreachable,
	// TLS failure, or timeout. No device response was received.
	KindTransport

	// KindCertificateMissing indicates a client certificate or key file
	// could not be read before any network I/O was attempted.
	KindCertificateMissing

	// KindFault covers all other device rejections, carrying the
	// structured fault entries from the response.
	KindFault
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindAuthExpired:
		return "auth-expired"
	case KindTransport:
		return "transport"
	case KindCertificateMissing:
		return "certificate-missing"
	case KindFault:
		return "fault"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Fault is one structured error entry from an ietf-restconf:errors
// document (RFC 8040 section 7.1).
type Fault struct {
	// Type is the error layer: transport, rpc, protocol, or application
	Type string

	// Tag is the machine-readable error condition, e.g. data-exists
	Tag string

	// Message is the human-readable description supplied by the device
	Message string
}

// ClientError represents a failed RESTCONF exchange with operation context.
// It is returned alongside the Res so callers can use either the tagged
// result value or standard error handling.
type ClientError struct {
	// Operation is the lowercase method name that failed (get, post, ...)
	Operation string

	// Kind is the classified outcome
	Kind Kind

	// StatusCode is the HTTP status, zero if no response was received
	StatusCode int

	// Faults holds the structured errors parsed from the response body
	Faults []Fault

	// Message is a human-readable summary
	Message string
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("restconf: %s failed: %s (status %d, kind %s)",
			e.Operation, e.Message, e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("restconf: %s failed: %s (kind %s)", e.Operation, e.Message, e.Kind)
}

// ErrorKind extracts the Kind from an error returned by this package.
// Returns KindNone when err is nil or not a ClientError.
func ErrorKind(err error) Kind {
	var cerr *ClientError
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return KindNone
}

// classify maps an HTTP status and parsed faults to a result Kind. Fault
// tags take precedence over the bare status code because devices differ
// in which status they attach to data-exists and data-missing conditions.
func classify(status int, faults []Fault) Kind {
	for _, f := range faults {
		switch f.Tag {
		case "data-exists", "resource-denied", "lock-denied", "in-use":
			return KindConflict
		case "data-missing", "unknown-element":
			return KindNotFound
		}
	}

	switch status {
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	}
	return KindFault
}

// faultMessage derives a one-line summary from the first fault, falling
// back to the bare status code.
func faultMessage(status int, faults []Fault) string {
	if len(faults) > 0 {
		f := faults[0]
		if f.Message != "" {
			return fmt.Sprintf("%s: %s", f.Tag, f.Message)
		}
		return f.Tag
	}
	return fmt.Sprintf("device returned status %d", status)
}
