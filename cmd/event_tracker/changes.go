package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show sponsor and attendee changes since the last scan",
	Args:  cobra.NoArgs,
	RunE:  runChanges,
}

func init() {
	rootCmd.AddCommand(changesCmd)
}

func runChanges(cmd *cobra.Command, _ []string) error {
	application, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer application.close()

	report, err := application.tracker.Changes(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(report.Summary())
	return nil
}
