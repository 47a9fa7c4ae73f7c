package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FabioCLima/healthbot-project/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "healthbot",
	Short: "HealthBot is a conversational health education assistant",
	Long: `HealthBot guides a conversation through topic selection, web research,
summarization, a comprehension quiz, and grading. Sessions pause whenever
user input is needed and can be checkpointed and resumed.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a .env file with API keys")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and lifecycle tracing")
}

// baseOptions collects the persistent flags shared by every command.
func baseOptions(cmd *cobra.Command) cli.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.RunOptions{
		ConfigPath: configPath,
		EnvFile:    envFile,
		Debug:      debug,
	}
}
