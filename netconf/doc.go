// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package netconf is a NETCONF client library for network device
// configuration over SSH (RFC 6241, RFC 6242).
//
// # Quick Start
//
// Create a client and retrieve the running configuration:
//
//	client, err := netconf.NewClient("192.168.1.1", "admin",
//	    netconf.Password("secret"),
//	    netconf.SkipHostKeyCheck(true), // lab only
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	res, err := client.GetConfig(ctx, netconf.Running, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Data)
//
// The transport is acquired lazily on the first operation and released
// with Close. Connect can be called explicitly to separate connection
// errors from operation errors.
//
// # Configuration Changes
//
// Edit the candidate datastore under a lock, then commit:
//
//	config := `<interfaces xmlns="urn:ietf:params:xml:ns:yang:ietf-interfaces">
//	  <interface><name>Loopback100</name><enabled>true</enabled></interface>
//	</interfaces>`
//
//	if _, err := client.Lock(ctx, netconf.Candidate); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Unlock(ctx, netconf.Candidate)
//
//	if _, err := client.EditConfig(ctx, netconf.Candidate, config); err != nil {
//	    client.DiscardChanges(ctx)
//	    log.Fatal(err)
//	}
//	if _, err := client.Commit(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Device rejections carry the structured rpc-error entries from the
// reply:
//
//	res, err := client.EditConfig(ctx, netconf.Running, config)
//	if err != nil {
//	    var rpcErr *netconf.RPCError
//	    if errors.As(err, &rpcErr) {
//	        for _, f := range rpcErr.Faults {
//	            fmt.Printf("%s/%s: %s\n", f.Type, f.Tag, f.Message)
//	        }
//	    }
//	}
//
// # References
//
//   - RFC 6241 (NETCONF protocol)
//   - RFC 6242 (NETCONF over SSH)
package netconf
