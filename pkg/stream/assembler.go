package stream

import (
	"errors"
	"io"

	"github.com/aheien/tbvec/pkg/codec"
	"github.com/aheien/tbvec/pkg/rollsum"
)

// Assembler folds a record stream back into framed messages.
//
// A length record arms the assembler with the number of body bytes to
// collect; each data record then contributes one byte until the count is
// exhausted, at which point a message is emitted and the state resets. Data
// records arriving while no bytes are outstanding are dropped, and a length
// record arriving mid-message re-arms the counter without discarding bytes
// already collected.
type Assembler struct {
	source    RecordSource
	digest    *rollsum.Digest
	body      []byte
	remaining uint32
	msg       Message
	err       error
	done      bool
}

// NewAssembler creates an assembler draining records from source
func NewAssembler(source RecordSource) *Assembler {
	return &Assembler{
		source: source,
		digest: rollsum.New(),
	}
}

// Next advances to the next complete message. It returns false when the
// record stream is exhausted or reading fails; Err tells the two apart.
// A partial message pending at end of stream is discarded.
func (a *Assembler) Next() bool {
	if a.done {
		return false
	}

	for {
		record, err := a.source.ReadNext()
		if err != nil {
			a.done = true
			if !errors.Is(err, io.EOF) {
				a.err = err
			}
			return false
		}

		if a.apply(record) {
			return true
		}
	}
}

// apply folds one record into the state machine, reporting whether it
// completed a message. The length channel is handled before the data
// channel, so a record carrying both applies its data byte against the
// freshly announced length.
func (a *Assembler) apply(record codec.Record) bool {
	if record.LengthValid {
		a.remaining = record.Length
	}

	if record.DataValid && a.remaining > 0 {
		a.body = append(a.body, record.Data)
		a.digest.WriteByte(record.Data) // never fails
		a.remaining--

		if a.remaining == 0 {
			a.msg = Message{Checksum: a.digest.Sum32(), Body: a.body}
			a.body = nil
			a.digest.Reset()
			return true
		}
	}

	return false
}

// Message returns the message produced by the most recent successful Next
func (a *Assembler) Message() Message {
	return a.msg
}

// Err returns the first error encountered while reading records. Reaching
// end of stream, with or without a dangling partial message, is not an
// error.
func (a *Assembler) Err() error {
	return a.err
}
