package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
)

func init() {
	rootCmd.AddCommand(cmdWatch)
}

var cmdWatch = &cobra.Command{
	Use:   "watch",
	Short: "Stream daemon events until interrupted",
	Long:  `Subscribes to the daemon's WebSocket stream and prints session transitions, device updates, interface rescans and helper output as they happen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events, err := client.New(serverURL).Events(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Watching events (Ctrl-C to stop)...")
		for ev := range events {
			fmt.Fprintf(out, "[%s] %s\n", ev.Topic, compactJSON(ev.Payload))
		}
		return nil
	},
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
