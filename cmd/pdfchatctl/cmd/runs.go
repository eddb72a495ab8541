package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pdfchat/internal/domain"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded sync runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if application.Runs == nil {
			return errors.New("sync history disabled (DB_PATH=off)")
		}
		runs, err := application.Runs.List(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		return printRuns(cmd.OutOrStdout(), runs)
	},
}

func printRuns(w io.Writer, runs []*domain.SyncResult) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no sync runs recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tSTARTED\tDURATION\tFILES\tUNCHANGED\tCHUNKS\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.RunID,
			r.StartedAt.UTC().Format(time.RFC3339),
			r.Duration().Round(time.Millisecond),
			r.FilesProcessed,
			r.FilesUnchanged,
			r.ChunksIndexed,
			len(r.FailedFiles),
		)
	}
	return tw.Flush()
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
