package stream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aheien/tbvec/pkg/codec"
)

// LineReader reads vector lines from a text stream and decodes them into
// records, skipping comment and blank lines
type LineReader struct {
	scanner *bufio.Scanner
	codec   *codec.LineCodec
	config  ReaderConfig
	line    int
}

var _ RecordSource = (*LineReader)(nil)

// NewLineReader creates a reader over r with the given configuration
func NewLineReader(r io.Reader, config ReaderConfig) *LineReader {
	if config.CommentPrefix == "" {
		config.CommentPrefix = "#"
	}

	scanner := bufio.NewScanner(r)
	if config.MaxLineSize > 0 {
		scanner.Buffer(nil, config.MaxLineSize)
	}

	return &LineReader{
		scanner: scanner,
		codec:   codec.NewLineCodec(),
		config:  config,
	}
}

// ReadNext returns the next record in the stream. Comment and blank lines
// are skipped but still counted, so decode errors carry the line number of
// the offending source line. io.EOF signals a clean end of input.
func (r *LineReader) ReadNext() (codec.Record, error) {
	for r.scanner.Scan() {
		r.line++

		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, r.config.CommentPrefix) {
			continue
		}

		record, err := r.codec.Decode(text)
		if err != nil {
			return codec.Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return record, nil
	}

	if err := r.scanner.Err(); err != nil {
		return codec.Record{}, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return codec.Record{}, io.EOF
}

// Line returns the number of source lines consumed so far, comments and
// blanks included
func (r *LineReader) Line() int {
	return r.line
}
