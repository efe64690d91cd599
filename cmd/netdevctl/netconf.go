// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netascode/go-netdev/netconf"
)

// knownHostsPath returns the user's OpenSSH known_hosts file.
func knownHostsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "known_hosts"
	}
	return filepath.Join(home, ".ssh", "known_hosts")
}

// newNetconfClient builds a NETCONF client from the shared flags.
func newNetconfClient() (*netconf.Client, error) {
	if err := requireDevice(); err != nil {
		return nil, err
	}

	opts := []func(*netconf.Client){
		netconf.Password(password),
		netconf.WithLogger(newLogger()),
	}
	if port != 0 {
		opts = append(opts, netconf.Port(port))
	}
	if insecure {
		opts = append(opts, netconf.SkipHostKeyCheck(true))
	} else {
		opts = append(opts, netconf.KnownHosts(knownHostsPath()))
	}

	return netconf.NewClient(host, username, opts...)
}

func netconfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netconf",
		Short: "NETCONF operations",
	}

	cmd.AddCommand(netconfCapabilitiesCmd())
	cmd.AddCommand(netconfGetConfigCmd())

	return cmd
}

func netconfCapabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show the capabilities announced in the server hello",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newNetconfClient()
			if err != nil {
				return err
			}
			defer client.Close() //nolint:errcheck

			if err := client.Connect(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("session-id: %s\n", client.SessionID())
			for _, c := range client.ServerCapabilities() {
				fmt.Println(c)
			}
			return nil
		},
	}
}

func netconfGetConfigCmd() *cobra.Command {
	var (
		source string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "get-config",
		Short: "Retrieve configuration from a datastore",
		Long: `Retrieve configuration from a datastore and print the raw XML data.

Example:
  netdevctl netconf get-config --source running --host 192.168.1.1 -u admin -p secret -k`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newNetconfClient()
			if err != nil {
				return err
			}
			defer client.Close() //nolint:errcheck

			res, err := client.GetConfig(cmd.Context(), netconf.Datastore(source), filter)
			if err != nil {
				return err
			}
			fmt.Println(res.Data)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", string(netconf.Running), "Source datastore: running, candidate, or startup")
	cmd.Flags().StringVar(&filter, "filter", "", "Subtree filter XML")

	return cmd
}
