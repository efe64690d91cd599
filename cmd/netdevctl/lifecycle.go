// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netascode/go-netdev/lifecycle"
)

func lifecycleCmd() *cobra.Command {
	var (
		name               string
		description        string
		updatedDescription string
		ifType             string
		address            string
		netmask            string
	)

	cmd := &cobra.Command{
		Use:   "lifecycle",
		Short: "Run a create/read/update/delete pass for an interface",
		Long: `Run a full configuration lifecycle pass: create the interface, read
it back, update its description, verify the update, and delete it. The
delete step always runs once the create succeeded, so the device is left
clean even when an intermediate step fails.

Example:
  netdevctl lifecycle --name Loopback100 --host 192.168.1.1 -u admin -p secret -k`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := newRestconfClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close() //nolint:errcheck

			intf := lifecycle.Interface{
				Name:        name,
				Description: description,
				Type:        ifType,
				Enabled:     true,
			}
			if address != "" {
				intf.IPv4Addresses = []lifecycle.IPv4Address{{IP: address, Netmask: netmask}}
			}

			orch := lifecycle.NewOrchestrator(client, lifecycle.WithLogger(newLogger()))
			report, runErr := orch.Run(ctx, intf, updatedDescription)

			for _, step := range report.Steps {
				status := "ok"
				if !step.OK {
					status = fmt.Sprintf("FAILED (%s)", step.Kind)
				}
				fmt.Printf("%-14s %s\n", step.Name, status)
			}

			if runErr != nil {
				return fmt.Errorf("lifecycle pass failed: %w", runErr)
			}
			fmt.Println("lifecycle pass completed")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Loopback100", "Interface name")
	cmd.Flags().StringVar(&description, "description", "created by netdevctl", "Initial description")
	cmd.Flags().StringVar(&updatedDescription, "updated-description", "updated by netdevctl", "Description applied in the update step")
	cmd.Flags().StringVar(&ifType, "type", lifecycle.TypeSoftwareLoopback, "iana-if-type identity")
	cmd.Flags().StringVar(&address, "address", "", "Optional IPv4 address")
	cmd.Flags().StringVar(&netmask, "netmask", "255.255.255.255", "Netmask for --address")

	return cmd
}
