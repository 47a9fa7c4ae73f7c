package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FabioCLima/healthbot-project/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive conversation in the terminal",
	Long:  `Starts the HealthBot conversation loop on stdin/stdout. Use --session to resume a checkpointed conversation.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := baseOptions(cmd)
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Store, _ = cmd.Flags().GetString("store")
		opts.Topic, _ = cmd.Flags().GetString("topic")

		if err := cli.RunSession(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("session", "", "Resume the session with this ID")
	runCmd.Flags().String("store", "", "Checkpoint backend: memory, file or redis")
	runCmd.Flags().String("topic", "", "Seed the first topic instead of prompting for it")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
}
