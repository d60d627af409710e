package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Generate recurring machine maintenance reminders",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(migrateCmd)
}
