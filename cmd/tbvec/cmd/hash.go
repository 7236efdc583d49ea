package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aheien/tbvec/pkg/stream"
)

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash <source>",
	Short: "Report message checksums from a vector file",
	Long: `Reconstruct the messages in a vector file and print a checksum
report line per message. No output file is written.

Examples:
  tbvec hash vectors.txt
  tbvec hash vectors.txt --journal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useJournal, _ := cmd.Flags().GetBool("journal")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		messages, lines, err := hashFile(args[0], cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if useJournal {
			runID, err := recordRun("hash", args[0], dataDir, lines, messages)
			if err != nil {
				return err
			}
			cmd.Printf("Recorded run %s\n", runID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().Bool("journal", false, "Record the run in the journal")
	hashCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the run journal")
}

// hashFile reconstructs messages from the vector file at sourcePath and
// writes a checksum report line per message to report. It returns the
// messages and the number of source lines consumed.
func hashFile(sourcePath string, report io.Writer) ([]stream.Message, int, error) {
	source, err := os.Open(sourcePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer source.Close()

	reader := stream.NewLineReader(source, stream.ReaderConfig{})
	asm := stream.NewAssembler(reader)

	var messages []stream.Message
	for asm.Next() {
		msg := asm.Message()
		fmt.Fprintln(report, msg.Report())
		messages = append(messages, msg)
	}
	if err := asm.Err(); err != nil {
		return messages, reader.Line(), fmt.Errorf("failed to decode %s: %w", sourcePath, err)
	}

	return messages, reader.Line(), nil
}
