package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	healthbot "github.com/FabioCLima/healthbot-project"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of healthbot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("healthbot version %s\n", strings.TrimSpace(healthbot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
