package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
)

func init() {
	rootCmd.AddCommand(cmdDevices)
}

var cmdDevices = &cobra.Command{
	Use:   "devices",
	Short: "List clients connected to the running hotspot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		devices, err := client.New(serverURL).Devices(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(devices) == 0 {
			fmt.Fprintln(out, "No connected devices")
			return nil
		}

		for _, d := range devices {
			line := "[" + d.MAC + "]"
			if d.IP != "" {
				line += " ip=" + d.IP
			}
			if d.Hostname != "" {
				line += " hostname=" + d.Hostname
			}
			if d.Vendor != "" {
				line += fmt.Sprintf(" vendor=%q", d.Vendor)
			}
			if d.SignalDBm != nil {
				line += fmt.Sprintf(" signal=%ddBm", *d.SignalDBm)
			}
			if d.ConnectedAt != nil {
				line += fmt.Sprintf(" connected=%s", time.Since(*d.ConnectedAt).Round(time.Second))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
