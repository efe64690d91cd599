// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package lifecycle drives a full create, read, update, delete pass for an
// interface configuration against a RESTCONF device, reporting the outcome
// of every step.
//
// The orchestrator holds no transport state of its own; it runs against
// any Dispatcher, normally a *restconf.Client:
//
//	client, _ := restconf.NewClient("192.168.1.1")
//	client.AuthenticateBasic(ctx, "admin", "secret")
//
//	orch := lifecycle.NewOrchestrator(client)
//	report, err := orch.Run(ctx, lifecycle.Interface{
//	    Name:        "Loopback100",
//	    Description: "created by go-netdev",
//	    Type:        lifecycle.TypeSoftwareLoopback,
//	    Enabled:     true,
//	}, "updated by go-netdev")
//
//	for _, step := range report.Steps {
//	    fmt.Printf("%-14s ok=%v status=%d\n", step.Name, step.OK, step.StatusCode)
//	}
//
// A failed create aborts the pass immediately. Once the interface exists
// on the device, the delete step always runs so no test configuration is
// left behind, even when an intermediate step failed.
package lifecycle
