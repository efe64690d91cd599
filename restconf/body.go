// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package restconf

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building YANG JSON payloads using
// sjson for path-based manipulation.
//
// The builder tracks the first error internally so calls can be chained;
// check it with String() or Err().
//
// Example:
//
//	body := restconf.Body{}.
//	    Set("ietf-interfaces:interface.name", "Loopback100").
//	    Set("ietf-interfaces:interface.description", "Test loopback").
//	    Set("ietf-interfaces:interface.type", "iana-if-type:softwareLoopback").
//	    Set("ietf-interfaces:interface.enabled", true)
//
//	payload, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := client.Post(ctx, "/data/ietf-interfaces:interfaces", payload)
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body.
//
// The path uses dot notation for nested fields. Module-qualified YANG
// keys contain colons and are used verbatim
// (e.g. "ietf-interfaces:interface.enabled").
//
// Once an error occurs, subsequent operations are no-ops preserving it.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result}
}

// SetRaw inserts a pre-built JSON fragment at the specified path and
// returns a new Body. Useful for nested YANG subtrees such as address
// lists:
//
//	body := restconf.Body{}.
//	    Set("ietf-interfaces:interface.name", "Loopback100").
//	    SetRaw("ietf-interfaces:interface.ietf-ip:ipv4.address",
//	        `[{"ip":"192.168.100.1","netmask":"255.255.255.255"}]`)
func (b Body) SetRaw(path, rawJSON string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, rawJSON)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result}
}

// Delete removes a value at the specified JSON path and returns a new Body.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result}
}

// String returns the JSON string and any error encountered while building.
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process.
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string for further processing with gjson. Returns
// an empty string if an error occurred; check Err() first.
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}

// Bytes returns the JSON byte slice and any error encountered while
// building.
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
