package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JAlbertCode/event-tracker/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tracker as an MCP server on stdio",
	Long:  `Expose the scan-event-website, enrich-contacts and get-changes tools to an MCP host over standard input/output.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer application.close()

	return server.Run(ctx, server.Deps{
		Tracker: application.tracker,
		Log:     application.log,
	})
}
