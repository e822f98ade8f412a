package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <sequence-id>",
	Short: "Find decision makers at tracked companies and add them to a sequence",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	application, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer application.close()

	report, err := application.tracker.Enrich(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(report.Summary())
	return nil
}
