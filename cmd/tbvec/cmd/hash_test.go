package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aheien/tbvec/pkg/di"
	"github.com/aheien/tbvec/pkg/journal"
	"github.com/aheien/tbvec/pkg/stream"
)

func TestHashFile(t *testing.T) {
	// Create temporary directory for test
	tmpDir, err := os.MkdirTemp("", "tbvec_hash_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	vectorPath := filepath.Join(tmpDir, "vectors.txt")
	require.NoError(t, os.WriteFile(vectorPath, []byte(vectorsAD), 0644))

	t.Run("reports checksums without writing a file", func(t *testing.T) {
		var report bytes.Buffer
		messages, lines, err := hashFile(vectorPath, &report)
		assert.NoError(t, err)
		assert.Equal(t, 3, lines)
		require.Len(t, messages, 1)
		assert.Equal(t, "Checksum: 32'h00c80086 Content: \"AD\"\n", report.String())
	})

	t.Run("missing source file", func(t *testing.T) {
		var report bytes.Buffer
		_, _, err := hashFile(filepath.Join(tmpDir, "missing.txt"), &report)
		assert.Error(t, err)
		assert.Empty(t, report.String())
	})
}

func TestRecordRun(t *testing.T) {
	// Create temporary directory for test
	tmpDir, err := os.MkdirTemp("", "tbvec_recordrun_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dataDir := filepath.Join(tmpDir, "data")
	messages := []stream.Message{{Checksum: 0x00C80086, Body: []byte("AD")}}

	t.Run("appends the run to the journal", func(t *testing.T) {
		SetContainer(di.NewContainer())
		defer SetContainer(nil)

		runID, err := recordRun("hash", "vectors.txt", dataDir, 3, messages)
		require.NoError(t, err)
		assert.NotEmpty(t, runID)

		j, err := journal.Open(filepath.Join(dataDir, "journal"))
		require.NoError(t, err)
		defer j.Close()

		run, err := j.Run(runID)
		require.NoError(t, err)
		assert.Equal(t, "hash", run.Command)
		assert.Equal(t, "vectors.txt", run.Source)
		assert.Equal(t, 3, run.Lines)
		assert.Equal(t, 1, run.Messages)

		entries, err := j.Entries(runID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, uint32(0x00C80086), entries[0].Checksum)
		assert.Equal(t, []byte("AD"), entries[0].Body)
	})

	t.Run("container not initialized", func(t *testing.T) {
		SetContainer(nil)

		_, err := recordRun("hash", "vectors.txt", dataDir, 3, messages)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "container not initialized")
	})
}
