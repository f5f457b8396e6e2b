package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
)

var interfacesRefresh bool

func init() {
	rootCmd.AddCommand(cmdInterfaces)
	cmdInterfaces.Flags().BoolVar(&interfacesRefresh, "refresh", false, "Force a fresh hardware scan")
}

var cmdInterfaces = &cobra.Command{
	Use:   "interfaces",
	Short: "List wireless interfaces and their hotspot capability",
	Long:  `Shows every detected wireless interface and whether its radio can run an access point while staying associated as a client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		resp, err := client.New(serverURL).Interfaces(ctx, interfacesRefresh)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(resp.Interfaces) == 0 {
			fmt.Fprintln(out, "No wireless interfaces found")
			return nil
		}

		for _, iface := range resp.Interfaces {
			line := fmt.Sprintf("[%s] phy=%d up=%t", iface.Name, iface.Phy, iface.Up)
			if iface.SSID != "" {
				line += fmt.Sprintf(" ssid=%q", iface.SSID)
			}
			if iface.Channel > 0 {
				line += fmt.Sprintf(" channel=%d (%d MHz)", iface.Channel, iface.FrequencyMHz)
			}
			line += " hotspot=" + capabilityLabel(iface.SupportsAPManaged)
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func capabilityLabel(capable bool) string {
	if capable {
		return "supported"
	}
	return "unsupported"
}
