package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
	"github.com/idkspot/idkspot-go/internal/services/version"
)

func init() {
	rootCmd.AddCommand(cmdVersion)
}

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Show client and daemon versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "client: %s\n", version.String())

		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
		defer cancel()

		health, err := client.New(serverURL).Health(ctx)
		if err != nil {
			fmt.Fprintln(out, "daemon: unreachable")
			return nil
		}
		fmt.Fprintf(out, "daemon: %s (up %s)\n", health.Version, health.Uptime)
		return nil
	},
}
