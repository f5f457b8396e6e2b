package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
)

func init() {
	rootCmd.AddCommand(cmdStatus)
}

var cmdStatus = &cobra.Command{
	Use:   "status",
	Short: "Show the hotspot state",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		resp, err := client.New(serverURL).Status(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "State: %s\n", resp.State)

		sess := resp.Session
		if sess == nil {
			return nil
		}
		fmt.Fprintf(out, "Session: %s\n", sess.ID)
		fmt.Fprintf(out, "  SSID:      %s\n", sess.SSID)
		fmt.Fprintf(out, "  Interface: %s\n", sess.Interface)
		if sess.Channel > 0 {
			fmt.Fprintf(out, "  Channel:   %d\n", sess.Channel)
		}
		if sess.Gateway != "" {
			fmt.Fprintf(out, "  Gateway:   %s\n", sess.Gateway)
		}
		if sess.PID > 0 {
			fmt.Fprintf(out, "  PID:       %d\n", sess.PID)
		}
		fmt.Fprintf(out, "  Started:   %s\n", sess.StartedAt.Format(time.RFC3339))
		if sess.StoppedAt != nil {
			fmt.Fprintf(out, "  Stopped:   %s\n", sess.StoppedAt.Format(time.RFC3339))
		}
		if sess.Error != "" {
			fmt.Fprintf(out, "  Error:     %s\n", sess.Error)
		}
		return nil
	},
}
