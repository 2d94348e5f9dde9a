package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "butler",
	Short: "Personal health assistant",
	Long: `Butler answers nutrition and fitness questions by delegating to
specialist workers and combining their answers.

With no arguments, launches an interactive chat session.

Core capabilities:
- Analyzes meals and estimates calories, optionally from a photo
- Suggests exercises and workout plans
- Chains nutrition analysis into exercise recommendations
- Remembers your health profile and answers questions about it`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
