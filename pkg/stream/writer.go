package stream

import (
	"bufio"
	"io"

	"github.com/aheien/tbvec/pkg/codec"
)

// LineWriter renders records as vector lines on an output stream
type LineWriter struct {
	writer *bufio.Writer
	codec  *codec.LineCodec
	count  int64 // Records written so far
}

// NewLineWriter creates a writer emitting vector lines to w
func NewLineWriter(w io.Writer, config WriterConfig) *LineWriter {
	var writer *bufio.Writer
	if config.BufferSize > 0 {
		writer = bufio.NewWriterSize(w, config.BufferSize)
	} else {
		writer = bufio.NewWriter(w)
	}

	return &LineWriter{
		writer: writer,
		codec:  codec.NewLineCodec(),
	}
}

// WriteRecord renders one record as a single vector line
func (w *LineWriter) WriteRecord(record codec.Record) error {
	if _, err := w.writer.WriteString(w.codec.Encode(record)); err != nil {
		return err
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return err
	}

	w.count++
	return nil
}

// WriteMessage writes the record framing for one message body: a length
// record announcing len(body) bytes, then one data record per byte. It
// returns the number of records written. An empty body writes only the
// length record.
func (w *LineWriter) WriteMessage(body []byte) (int, error) {
	if err := w.WriteRecord(codec.LengthRecord(uint32(len(body)))); err != nil {
		return 0, err
	}

	for i, b := range body {
		if err := w.WriteRecord(codec.DataRecord(b)); err != nil {
			return 1 + i, err
		}
	}

	return 1 + len(body), nil
}

// EncodeFrom frames every line of src as one message and flushes the
// result. It returns the total number of records written.
func (w *LineWriter) EncodeFrom(src io.Reader) (int64, error) {
	scanner := bufio.NewScanner(src)

	var total int64
	for scanner.Scan() {
		n, err := w.WriteMessage(scanner.Bytes())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	if err := scanner.Err(); err != nil {
		return total, err
	}

	return total, w.Flush()
}

// Records returns the number of records written so far
func (w *LineWriter) Records() int64 {
	return w.count
}

// Flush drains buffered output to the underlying writer
func (w *LineWriter) Flush() error {
	return w.writer.Flush()
}
