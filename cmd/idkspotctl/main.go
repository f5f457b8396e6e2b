package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/idkspot/idkspot-go/internal/client"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "idkspotctl [command]",
	Short: "idkspotctl: manage the idkspot Wi-Fi hotspot daemon",
	Long:  `idkspotctl talks to a running idkspotd instance over its HTTP API to inspect wireless hardware, start and stop the hotspot, and watch events.`,
}

func init() {
	defaultServer := os.Getenv("IDKSPOT_SERVER")
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "Base URL of the idkspotd API")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
