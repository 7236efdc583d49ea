package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aheien/tbvec/pkg/stream"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <source>",
	Short: "Frame a text file as vector records",
	Long: `Encode each line of a text file as vector records: one length
announcement followed by one data record per byte.

The destination is opened in append mode, so successive encodes build up
a single vector file.

Example:
  tbvec encode messages.txt -o vectors.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, _ := cmd.Flags().GetString("output")

		records, err := encodeFile(args[0], dest)
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d lines\n", records)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringP("output", "o", "", "Destination vector file (required)")
	encodeCmd.MarkFlagRequired("output")
}

// encodeFile frames every line of sourcePath as vector records appended to
// destPath, returning the number of records written.
func encodeFile(sourcePath, destPath string) (int64, error) {
	source, err := os.Open(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer source.Close()

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open destination file: %w", err)
	}
	defer dest.Close()

	writer := stream.NewLineWriter(dest, stream.WriterConfig{})
	records, err := writer.EncodeFrom(source)
	if err != nil {
		return records, fmt.Errorf("failed to encode %s: %w", sourcePath, err)
	}

	return records, nil
}
