package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
)

var stopTimeout int

func init() {
	rootCmd.AddCommand(cmdStop)
	cmdStop.Flags().IntVar(&stopTimeout, "timeout", 30, "Seconds to wait for the hotspot to shut down")
}

var cmdStop = &cobra.Command{
	Use:   "stop",
	Short: "Stop the hotspot",
	Long:  `Asks the daemon to tear down the access point. Stopping an already stopped hotspot is not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(stopTimeout)*time.Second)
		defer cancel()

		runSpin := spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(os.Stdout))
		runSpin.Suffix = " Stopping hotspot..."
		runSpin.Start()

		resp, err := client.New(serverURL).Stop(ctx)
		runSpin.Stop()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Hotspot stopped (state %s)\n", resp.State)
		return nil
	},
}
