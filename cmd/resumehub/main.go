// Package main is the resumehub CLI: the HTTP server plus migration, seed
// and sync commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumehub",
	Short: "Resume builder backend with platform integrations",
	Long: "resumehub imports projects, courses and achievements from GitHub, Coursera and " +
		"Devfolio and merges them into each user's resume.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
