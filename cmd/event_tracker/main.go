// Package main provides the entry point for the event tracker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "event_tracker",
	Short: "Event sponsor and attendee tracker",
	Long:  "Event tracker scans event websites for sponsors and attendees, enriches tracked companies with decision-maker contacts via Apollo.io, and reports membership changes between scans.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
