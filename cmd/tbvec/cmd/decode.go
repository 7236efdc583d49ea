package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aheien/tbvec/pkg/journal"
	"github.com/aheien/tbvec/pkg/stream"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <source>",
	Short: "Reconstruct messages from a vector file",
	Long: `Decode a vector file back into its framed messages. Each
reconstructed message is written to the destination as one line, and a
checksum report line is printed per message.

The destination is truncated before writing, so it always holds exactly
the decoded content.

Examples:
  tbvec decode vectors.txt -o messages.txt
  tbvec decode vectors.txt -o messages.txt --journal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, _ := cmd.Flags().GetString("output")
		useJournal, _ := cmd.Flags().GetBool("journal")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		messages, lines, err := decodeFile(args[0], dest, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if useJournal {
			runID, err := recordRun("decode", args[0], dataDir, lines, messages)
			if err != nil {
				return err
			}
			cmd.Printf("Recorded run %s\n", runID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("output", "o", "", "Destination text file (required)")
	decodeCmd.Flags().Bool("journal", false, "Record the run in the journal")
	decodeCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the run journal")
	decodeCmd.MarkFlagRequired("output")
}

// decodeFile reconstructs messages from the vector file at sourcePath,
// writing one message body per line to destPath and a checksum report line
// per message to report. It returns the messages and the number of source
// lines consumed.
func decodeFile(sourcePath, destPath string, report io.Writer) ([]stream.Message, int, error) {
	source, err := os.Open(sourcePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer source.Close()

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open destination file: %w", err)
	}
	defer dest.Close()

	reader := stream.NewLineReader(source, stream.ReaderConfig{})
	asm := stream.NewAssembler(reader)
	out := bufio.NewWriter(dest)

	var messages []stream.Message
	for asm.Next() {
		msg := asm.Message()

		if _, err := out.Write(msg.Body); err != nil {
			return messages, reader.Line(), fmt.Errorf("failed to write to destination: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return messages, reader.Line(), fmt.Errorf("failed to write to destination: %w", err)
		}

		fmt.Fprintln(report, msg.Report())
		messages = append(messages, msg)
	}
	if err := asm.Err(); err != nil {
		return messages, reader.Line(), fmt.Errorf("failed to decode %s: %w", sourcePath, err)
	}

	if err := out.Flush(); err != nil {
		return messages, reader.Line(), fmt.Errorf("failed to write to destination: %w", err)
	}

	return messages, reader.Line(), nil
}

// recordRun appends a decode or hash run to the journal under dataDir
func recordRun(command, source, dataDir string, lines int, messages []stream.Message) (string, error) {
	if container == nil {
		return "", fmt.Errorf("dependency container not initialized")
	}

	j, err := container.GetJournalOpener()(filepath.Join(dataDir, "journal"))
	if err != nil {
		return "", fmt.Errorf("failed to open journal: %w", err)
	}
	defer j.Close()

	entries := make([]journal.Entry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, journal.Entry{
			Checksum: msg.Checksum,
			Body:     msg.Body,
		})
	}

	runID, err := j.Append(journal.Run{
		Command: command,
		Source:  source,
		Lines:   lines,
	}, entries)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	return runID, nil
}
