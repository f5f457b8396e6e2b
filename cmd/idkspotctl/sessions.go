package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
)

var sessionsLimit int

func init() {
	rootCmd.AddCommand(cmdSessions)
	cmdSessions.Flags().IntVar(&sessionsLimit, "limit", 10, "Maximum number of sessions to show")
}

var cmdSessions = &cobra.Command{
	Use:   "sessions",
	Short: "Show recent hotspot sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		sessions, err := client.New(serverURL).Sessions(ctx, sessionsLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions recorded")
			return nil
		}

		for _, sess := range sessions {
			line := fmt.Sprintf("[%s] ssid=%q interface=%s state=%s started=%s",
				sess.ID, sess.SSID, sess.Interface, sess.State, sess.StartedAt.Format(time.RFC3339))
			if sess.StoppedAt != nil {
				line += " stopped=" + sess.StoppedAt.Format(time.RFC3339)
			}
			if sess.ExitCode != nil {
				line += fmt.Sprintf(" exit=%d", *sess.ExitCode)
			}
			if sess.Error != nil && *sess.Error != "" {
				line += fmt.Sprintf(" error=%q", *sess.Error)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
