package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pdfchat/internal/app"
	"pdfchat/internal/config"
)

var application *app.App

var rootCmd = &cobra.Command{
	Use:   "pdfchatctl",
	Short: "Operate a pdfchat index from the command line",
	Long: `pdfchatctl runs one-off sync passes against the configured Google Drive
folder and inspects the recorded sync history.

It reads the same environment variables and .env file as the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		// Logs go to stderr so command output stays parseable.
		slog.SetDefault(config.NewLogger(cfg, cmd.ErrOrStderr()))

		application, err = app.New(cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
			application = nil
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
