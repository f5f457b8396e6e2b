package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
	"github.com/idkspot/idkspot-go/internal/services/hotspot"
)

var (
	startSSID       string
	startPassphrase string
	startInterface  string
	startChannel    int
	startTimeout    int
)

func init() {
	rootCmd.AddCommand(cmdStart)

	cmdStart.Flags().StringVar(&startSSID, "ssid", "", "Network name (daemon default when omitted)")
	cmdStart.Flags().StringVar(&startPassphrase, "passphrase", "", "WPA2 passphrase, 8-63 characters")
	cmdStart.Flags().StringVar(&startInterface, "interface", "", "Wireless interface to use (auto-selected when omitted)")
	cmdStart.Flags().IntVar(&startChannel, "channel", 0, "Wi-Fi channel (interface's current channel when 0)")
	cmdStart.Flags().IntVar(&startTimeout, "timeout", 60, "Seconds to wait for the hotspot to come up")
	_ = cmdStart.MarkFlagRequired("passphrase")
}

var cmdStart = &cobra.Command{
	Use:   "start",
	Short: "Start the hotspot",
	Long:  `Asks the daemon to bring up the access point and waits until it is broadcasting or has failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if startTimeout <= 0 {
			return errors.New("timeout must be greater than 0 seconds")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(startTimeout)*time.Second)
		defer cancel()

		runSpin := spinner.New(spinner.CharSets[21], 120*time.Millisecond, spinner.WithWriter(os.Stdout))
		runSpin.Suffix = " Starting hotspot..."
		runSpin.Start()

		sess, err := client.New(serverURL).Start(ctx, hotspot.Config{
			SSID:       startSSID,
			Passphrase: startPassphrase,
			Interface:  startInterface,
			Channel:    startChannel,
		})
		runSpin.Stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Hotspot %q is up on %s", sess.SSID, sess.Interface)
		if sess.Channel > 0 {
			fmt.Fprintf(out, " (channel %d)", sess.Channel)
		}
		fmt.Fprintln(out)
		if sess.Gateway != "" {
			fmt.Fprintf(out, "Gateway: %s\n", sess.Gateway)
		}
		return nil
	},
}
