package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aheien/tbvec/pkg/journal"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List recorded runs or show one run's report",
	Long: `List the decode and hash runs recorded in the journal, or show the
full checksum report of a single run.

Examples:
  tbvec runs
  tbvec runs 2HhsVbxAN92akArMiyx5BvkLFea`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		j, err := container.GetJournalOpener()(filepath.Join(dataDir, "journal"))
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer j.Close()

		if len(args) == 1 {
			return showRun(j, args[0], cmd.OutOrStdout())
		}
		return listRuns(j, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the run journal")
}

// listRuns writes a summary line per recorded run, oldest first
func listRuns(j *journal.Journal, out io.Writer) error {
	runs, err := j.Runs()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  %-6s  %s  lines=%d messages=%d\n",
			run.ID, run.StartedAt.Format(time.RFC3339), run.Command, run.Source,
			run.Lines, run.Messages)
	}
	return nil
}

// showRun writes one run's header and per-message checksum report
func showRun(j *journal.Journal, id string, out io.Writer) error {
	run, err := j.Run(id)
	if err != nil {
		return fmt.Errorf("failed to get run %s: %w", id, err)
	}

	entries, err := j.Entries(id)
	if err != nil {
		return fmt.Errorf("failed to get run messages: %w", err)
	}

	fmt.Fprintf(out, "Run %s: %s %s at %s, %d lines, %d messages\n",
		run.ID, run.Command, run.Source, run.StartedAt.Format(time.RFC3339),
		run.Lines, run.Messages)
	for _, entry := range entries {
		fmt.Fprintf(out, "Checksum: 32'h%08x Content: %q\n", entry.Checksum, entry.Body)
	}
	return nil
}
