package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan an event website for sponsors and attendees",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	application, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer application.close()

	report, err := application.tracker.Scan(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(report.Summary())
	return nil
}
