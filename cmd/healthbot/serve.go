package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FabioCLima/healthbot-project/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP session API",
	Long:  `Starts the HealthBot engine in server mode, exposing sessions as a JSON API with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := baseOptions(cmd)
		opts.Store, _ = cmd.Flags().GetString("store")
		addr, _ := cmd.Flags().GetString("addr")

		if err := cli.RunServe(opts, addr); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	serveCmd.Flags().String("store", "", "Checkpoint backend: memory, file or redis")
}
