// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package restconf provides a simple, fluent API for configuring network
// devices over RESTCONF (RFC 8040).
//
// The client owns a single authenticated session to one device. Exactly one
// credential mode (basic, bearer token, or client certificate) is active at
// a time; re-authenticating fully replaces the previous mode and its
// headers. Every dispatch performs exactly one HTTP round trip - there is
// no retry layer - and non-2xx outcomes are classified into tagged result
// kinds (NotFound, Conflict, AuthExpired, Transport, Fault) so callers can
// branch on values instead of matching error strings.
//
// # Quick Start
//
//	client, err := restconf.NewClient(
//	    "192.168.1.1",
//	    restconf.VerifyCertificate(false), // lab only
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	if err := client.AuthenticateBasic(ctx, "admin", "secret"); err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Get(ctx, "/data/ietf-interfaces:interfaces")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := res.GetValue("ietf-interfaces:interfaces.interface.0.name").String()
//
// # JSON Manipulation
//
// Use the Body builder for constructing YANG JSON payloads:
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
//	res, err = client.Post(ctx, "/data/ietf-interfaces:interfaces", payload)
//
// # Token Authentication
//
// Devices that expose a token endpoint exchange credentials for a bearer
// token with a server-declared lifetime. The client tracks the expiry and
// refuses to dispatch with an expired token (no network I/O is performed):
//
//	if err := client.AuthenticateToken(ctx, "admin", "secret"); err != nil {
//	    log.Fatal(err) // endpoint may not exist on all devices
//	}
//	// ... later ...
//	if err := client.RefreshToken(ctx, "admin", "secret"); err != nil {
//	    log.Fatal(err) // no-op while the token is still valid
//	}
//
// # References
//
//   - RESTCONF: https://datatracker.ietf.org/doc/html/rfc8040
//   - YANG interfaces model: https://datatracker.ietf.org/doc/html/rfc8343
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package restconf
