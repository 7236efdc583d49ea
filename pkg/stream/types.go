// Package stream moves testbench vector records between text form and
// reconstructed messages.
package stream

import (
	"fmt"

	"github.com/aheien/tbvec/pkg/codec"
)

// ReaderConfig holds configuration for the vector line reader
type ReaderConfig struct {
	CommentPrefix string // Lines starting with this prefix are skipped ("#" when empty)
	MaxLineSize   int    // Maximum accepted line length in bytes (0 = scanner default)
}

// WriterConfig holds configuration for the vector line writer
type WriterConfig struct {
	BufferSize int // Write buffer size (0 = default)
}

// RecordSource provides streaming access to decoded records.
// ReadNext returns io.EOF after the last record.
type RecordSource interface {
	ReadNext() (codec.Record, error)
}

// Message is one reconstructed message body with its checksum
type Message struct {
	Checksum uint32 // Rolling checksum of Body
	Body     []byte // Message bytes in arrival order
}

// Text returns the body as a string
func (m Message) Text() string {
	return string(m.Body)
}

// Report renders the message in the standard report line form
func (m Message) Report() string {
	return fmt.Sprintf("Checksum: 32'h%08x Content: %q", m.Checksum, m.Body)
}
