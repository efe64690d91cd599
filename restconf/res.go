// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"github.com/tidwall/gjson"
)

// Res represents the raw outcome of one RESTCONF exchange. The dispatcher
// does not interpret payload semantics; the body is returned unmodified
// and callers query it with GetValue.
type Res struct {
	// StatusCode is the HTTP status, zero if no response was received
	StatusCode int

	// Body is the raw response body
	Body string

	// OK indicates a 2xx status
	OK bool

	// Kind classifies a failed exchange; KindNone on success
	Kind Kind

	// Faults holds structured errors parsed from an ietf-restconf:errors
	// document, empty on success
	Faults []Fault
}

// GetValue retrieves a value from the response body using a gjson path.
// Module-qualified YANG keys are used verbatim, e.g.:
//
//	res, _ := client.Get(ctx, "/data/ietf-interfaces:interfaces/interface=Loopback100")
//	name := res.GetValue("ietf-interfaces:interface.0.name").String()
//	enabled := res.GetValue("ietf-interfaces:interface.0.enabled").Bool()
//
// Returns gjson.Result which can be converted to specific types with
// String(), Int(), Bool(), or Array().
func (r Res) GetValue(path string) gjson.Result {
	if r.Body == "" {
		return gjson.Result{}
	}
	return gjson.Get(r.Body, path)
}

// parseFaults extracts the error list from an ietf-restconf:errors
// document. Returns nil when the body is not a fault document.
func parseFaults(body string) []Fault {
	entries := gjson.Get(body, "ietf-restconf:errors.error")
	if !entries.Exists() {
		return nil
	}

	var faults []Fault
	for _, e := range entries.Array() {
		faults = append(faults, Fault{
			Type:    e.Get("error-type").String(),
			Tag:     e.Get("error-tag").String(),
			Message: e.Get("error-message").String(),
		})
	}
	return faults
}
