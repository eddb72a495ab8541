package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pdfchat/internal/domain"
)

var (
	syncForce    bool
	syncQuestion string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass over the Drive folder",
	Long: `Run one sync pass over the configured Drive folder and print the result.

The index lives in memory, so it is discarded when the command exits. Use
--ask to query it before that happens.

Examples:
  pdfchatctl sync
  pdfchatctl sync --ask "refund policy"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		run := application.Pipeline.Run
		if syncForce {
			run = application.Pipeline.Rebuild
		}
		result, err := run(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printResult(out, result)

		if syncQuestion == "" {
			return nil
		}
		answer, err := application.Engine.Answer(ctx, syncQuestion)
		if err != nil {
			return err
		}
		printAnswer(out, answer)
		return nil
	},
}

func printResult(w io.Writer, r *domain.SyncResult) {
	fmt.Fprintf(w, "run %s finished in %s\n", r.RunID, r.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "  indexed files:   %d\n", r.FilesProcessed)
	fmt.Fprintf(w, "  unchanged files: %d\n", r.FilesUnchanged)
	fmt.Fprintf(w, "  indexed chunks:  %d\n", r.ChunksIndexed)
	fmt.Fprintf(w, "  failed files:    %d\n", len(r.FailedFiles))
	for _, f := range r.FailedFiles {
		fmt.Fprintf(w, "    %s (%s): %s\n", f.Filename, f.DocumentID, f.Error)
	}
}

func printAnswer(w io.Writer, a *domain.Answer) {
	fmt.Fprintln(w, a.Summary)
	for i, m := range a.Matches {
		fmt.Fprintf(w, "\n[%d] %s\n%s\n", i+1, m.Filename, m.Excerpt)
	}
}

func init() {
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "clear the index before syncing")
	syncCmd.Flags().StringVar(&syncQuestion, "ask", "", "question to answer after the sync completes")
	rootCmd.AddCommand(syncCmd)
}
