// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// netdevctl exercises the go-netdev RESTCONF and NETCONF clients against
// a live device from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/netascode/go-netdev/restconf"
)

var (
	host     string
	port     int
	username string
	password string
	authMode string
	insecure bool
	verbose  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "netdevctl",
		Short: "RESTCONF and NETCONF device client",
		Long: `netdevctl drives network devices over RESTCONF (JSON/HTTPS) and
NETCONF (XML/SSH) using the go-netdev client libraries.

Credentials can be supplied via flags, a netdevctl.yaml config file, or
NETDEV_* environment variables (NETDEV_HOST, NETDEV_USERNAME, ...).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Device hostname or IP")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Device port (default 443 RESTCONF, 830 NETCONF)")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "Device username")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "Device password")
	rootCmd.PersistentFlags().StringVar(&authMode, "auth", "basic", "RESTCONF credential mode: basic or token")
	rootCmd.PersistentFlags().BoolVarP(&insecure, "insecure", "k", false, "Skip TLS certificate and SSH host key verification")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(capabilitiesCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(lifecycleCmd())
	rootCmd.AddCommand(netconfCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers the netdevctl.yaml config file and NETDEV_* env vars
// under explicit flags.
func loadConfig(cmd *cobra.Command) {
	viper.SetConfigName("netdevctl")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.netdev")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("netdev")
	viper.AutomaticEnv()

	viper.ReadInConfig() //nolint:errcheck // Config file is optional

	if !cmd.Flags().Changed("host") && viper.IsSet("host") {
		host = viper.GetString("host")
	}
	if !cmd.Flags().Changed("port") && viper.IsSet("port") {
		port = viper.GetInt("port")
	}
	if !cmd.Flags().Changed("username") && viper.IsSet("username") {
		username = viper.GetString("username")
	}
	if !cmd.Flags().Changed("password") && viper.IsSet("password") {
		password = viper.GetString("password")
	}
}

// requireDevice validates the shared device parameters.
func requireDevice() error {
	if host == "" {
		return fmt.Errorf("device host is required (--host or NETDEV_HOST)")
	}
	if username == "" {
		return fmt.Errorf("device username is required (--username or NETDEV_USERNAME)")
	}
	if password == "" {
		return fmt.Errorf("device password is required (--password or NETDEV_PASSWORD)")
	}
	return nil
}

// newRestconfClient builds an authenticated RESTCONF client from the
// shared flags.
func newRestconfClient(ctx context.Context) (*restconf.Client, error) {
	if err := requireDevice(); err != nil {
		return nil, err
	}

	opts := []func(*restconf.Client){
		restconf.WithLogger(newLogger()),
	}
	if port != 0 {
		opts = append(opts, restconf.Port(port))
	}
	if insecure {
		opts = append(opts, restconf.VerifyCertificate(false))
	}

	client, err := restconf.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}

	switch authMode {
	case "basic":
		err = client.AuthenticateBasic(ctx, username, password)
	case "token":
		err = client.AuthenticateToken(ctx, username, password)
	default:
		return nil, fmt.Errorf("unknown credential mode %q (want basic or token)", authMode)
	}
	if err != nil {
		client.Close() //nolint:errcheck
		return nil, err
	}

	return client, nil
}

func capabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show RESTCONF capabilities of the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := newRestconfClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close() //nolint:errcheck

			res, err := client.Get(ctx, restconf.CapabilitiesPath)
			if err != nil {
				return err
			}

			caps := res.GetValue("ietf-restconf-monitoring:capabilities.capability")
			for _, c := range caps.Array() {
				fmt.Println(c.String())
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Retrieve a RESTCONF data resource",
		Long: `Retrieve a RESTCONF data resource and print the raw JSON body.

Example:
  netdevctl get /data/ietf-interfaces:interfaces --host 192.168.1.1 -u admin -p secret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := newRestconfClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close() //nolint:errcheck

			res, err := client.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(res.Body)
			return nil
		},
	}
}
