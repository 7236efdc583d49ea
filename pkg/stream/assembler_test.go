package stream

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aheien/tbvec/pkg/codec"
	"github.com/aheien/tbvec/pkg/rollsum"
)

// sliceSource feeds a fixed record sequence to an assembler
type sliceSource struct {
	records []codec.Record
	pos     int
}

func (s *sliceSource) ReadNext() (codec.Record, error) {
	if s.pos >= len(s.records) {
		return codec.Record{}, io.EOF
	}
	record := s.records[s.pos]
	s.pos++
	return record, nil
}

// failingSource returns its records, then a terminal error
type failingSource struct {
	records []codec.Record
	err     error
	pos     int
}

func (s *failingSource) ReadNext() (codec.Record, error) {
	if s.pos >= len(s.records) {
		return codec.Record{}, s.err
	}
	record := s.records[s.pos]
	s.pos++
	return record, nil
}

func messageRecords(body string) []codec.Record {
	records := []codec.Record{codec.LengthRecord(uint32(len(body)))}
	for _, b := range []byte(body) {
		records = append(records, codec.DataRecord(b))
	}
	return records
}

func TestAssembler_SingleMessage(t *testing.T) {
	asm := NewAssembler(&sliceSource{records: messageRecords("AD")})

	require.True(t, asm.Next())
	msg := asm.Message()
	assert.Equal(t, []byte("AD"), msg.Body)
	assert.Equal(t, uint32(0x00C80086), msg.Checksum)

	assert.False(t, asm.Next())
	assert.NoError(t, asm.Err())
}

func TestAssembler_BackToBackMessages(t *testing.T) {
	records := append(messageRecords("AD"), messageRecords("AD")...)
	asm := NewAssembler(&sliceSource{records: records})

	require.True(t, asm.Next())
	first := asm.Message()

	require.True(t, asm.Next())
	second := asm.Message()

	// Checksum state resets between messages, so identical bodies hash
	// identically.
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, first.Checksum, second.Checksum)

	assert.False(t, asm.Next())
	assert.NoError(t, asm.Err())
}

func TestAssembler_IdleCyclesIgnored(t *testing.T) {
	records := []codec.Record{
		{},
		codec.LengthRecord(1),
		{},
		codec.DataRecord('X'),
		{},
	}
	asm := NewAssembler(&sliceSource{records: records})

	require.True(t, asm.Next())
	assert.Equal(t, []byte("X"), asm.Message().Body)
	assert.False(t, asm.Next())
}

func TestAssembler_DataBeforeLengthDropped(t *testing.T) {
	records := append([]codec.Record{
		codec.DataRecord(0xEE),
		codec.DataRecord(0xFF),
	}, messageRecords("AD")...)
	asm := NewAssembler(&sliceSource{records: records})

	require.True(t, asm.Next())
	msg := asm.Message()

	// The stray bytes contribute to neither the body nor the checksum.
	assert.Equal(t, []byte("AD"), msg.Body)
	assert.Equal(t, rollsum.Checksum([]byte("AD")), msg.Checksum)
}

func TestAssembler_TrailingDataDropped(t *testing.T) {
	records := append(messageRecords("AD"),
		codec.DataRecord(0xEE),
		codec.DataRecord(0xFF),
	)
	asm := NewAssembler(&sliceSource{records: records})

	require.True(t, asm.Next())
	assert.Equal(t, []byte("AD"), asm.Message().Body)

	assert.False(t, asm.Next())
	assert.NoError(t, asm.Err())
}

func TestAssembler_LengthOverwriteMidMessage(t *testing.T) {
	records := []codec.Record{
		codec.LengthRecord(5),
		codec.DataRecord('A'),
		codec.DataRecord('B'),
		codec.LengthRecord(1),
		codec.DataRecord('C'),
	}
	asm := NewAssembler(&sliceSource{records: records})

	// Re-arming the counter keeps the bytes already collected: the message
	// closes after one more byte with all three in the body.
	require.True(t, asm.Next())
	msg := asm.Message()
	assert.Equal(t, []byte("ABC"), msg.Body)
	assert.Equal(t, rollsum.Checksum([]byte("ABC")), msg.Checksum)
}

func TestAssembler_ZeroLengthProducesNothing(t *testing.T) {
	records := []codec.Record{
		codec.LengthRecord(0),
		codec.DataRecord('A'),
	}
	asm := NewAssembler(&sliceSource{records: records})

	assert.False(t, asm.Next())
	assert.NoError(t, asm.Err())
}

func TestAssembler_DanglingPartialDiscarded(t *testing.T) {
	records := []codec.Record{
		codec.LengthRecord(3),
		codec.DataRecord('A'),
		codec.DataRecord('B'),
	}
	asm := NewAssembler(&sliceSource{records: records})

	assert.False(t, asm.Next())
	assert.NoError(t, asm.Err())
}

func TestAssembler_BothChannelsInOneRecord(t *testing.T) {
	records := []codec.Record{
		{LengthValid: true, Length: 1, DataValid: true, Data: 'Z'},
	}
	asm := NewAssembler(&sliceSource{records: records})

	// The length applies before the data byte, so a single record can carry
	// a complete one-byte message.
	require.True(t, asm.Next())
	msg := asm.Message()
	assert.Equal(t, []byte("Z"), msg.Body)
	assert.Equal(t, rollsum.Checksum([]byte("Z")), msg.Checksum)
}

func TestAssembler_SourceErrorSurfaced(t *testing.T) {
	readErr := errors.New("device unplugged")
	asm := NewAssembler(&failingSource{
		records: messageRecords("AD"),
		err:     readErr,
	})

	require.True(t, asm.Next())
	assert.False(t, asm.Next())
	assert.ErrorIs(t, asm.Err(), readErr)
}

func TestAssembler_NotRestartable(t *testing.T) {
	asm := NewAssembler(&sliceSource{records: messageRecords("AD")})

	require.True(t, asm.Next())
	assert.False(t, asm.Next())
	assert.False(t, asm.Next())
}

func TestAssembler_FromLineReader(t *testing.T) {
	input := strings.Join([]string{
		"# two-byte message",
		"1_00000000000000000000000000000010_0_00000000",
		"0_00000000000000000000000000000000_1_01000001",
		"0_00000000000000000000000000000000_1_01000100",
	}, "\n")

	reader := NewLineReader(strings.NewReader(input), ReaderConfig{})
	asm := NewAssembler(reader)

	require.True(t, asm.Next())
	msg := asm.Message()
	assert.Equal(t, "AD", msg.Text())
	assert.Equal(t, uint32(0x00C80086), msg.Checksum)
	assert.Equal(t, `Checksum: 32'h00c80086 Content: "AD"`, msg.Report())

	assert.False(t, asm.Next())
	assert.NoError(t, asm.Err())
}

func TestAssembler_ParseErrorStopsStream(t *testing.T) {
	input := strings.Join([]string{
		"1_00000000000000000000000000000010_0_00000000",
		"not_a_vector_line",
	}, "\n")

	reader := NewLineReader(strings.NewReader(input), ReaderConfig{})
	asm := NewAssembler(reader)

	assert.False(t, asm.Next())
	require.Error(t, asm.Err())
	assert.Contains(t, asm.Err().Error(), "line 2")
}
