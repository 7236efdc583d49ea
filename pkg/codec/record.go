package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record represents one parsed vector line: a length channel and a data
// channel, each gated by its own valid flag
type Record struct {
	LengthValid bool   // Length field carries a meaningful value
	Length      uint32 // Announced message body length in bytes
	DataValid   bool   // Data field carries a meaningful value
	Data        uint8  // One message body byte
}

// Parse errors
var (
	ErrTokenCount  = errors.New("record line must have exactly 4 fields")
	ErrFlagDigit   = errors.New("valid flag must be 0 or 1")
	ErrLengthField = errors.New("malformed length field")
	ErrDataField   = errors.New("malformed data field")
)

// ParseError reports which field of a vector line failed to parse
type ParseError struct {
	Field string // field name: line, length_valid, length, data_valid, data
	Token string // offending token
	Err   error  // underlying cause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LengthRecord creates a record announcing an n-byte message body
func LengthRecord(n uint32) Record {
	return Record{LengthValid: true, Length: n}
}

// DataRecord creates a record carrying one message body byte
func DataRecord(b byte) Record {
	return Record{DataValid: true, Data: b}
}

// String renders the record in canonical wire form:
// underscore-separated flags and zero-padded binary fields
func (r Record) String() string {
	return fmt.Sprintf("%d_%032b_%d_%08b",
		flagBit(r.LengthValid), r.Length, flagBit(r.DataValid), r.Data)
}

// LineCodec handles translation between records and their text line form
type LineCodec struct{}

// NewLineCodec creates a new line codec instance
func NewLineCodec() *LineCodec {
	return &LineCodec{}
}

// Encode serializes a record into a vector line
// Format: <length_valid>_<length:32 binary digits>_<data_valid>_<data:8 binary digits>
func (c *LineCodec) Encode(r Record) string {
	return r.String()
}

// Decode parses a vector line into a Record. Spaces and underscores are
// interchangeable separators; binary fields shorter than their canonical
// width are accepted, values out of range are not.
func (c *LineCodec) Decode(line string) (Record, error) {
	fields := strings.Split(strings.ReplaceAll(line, " ", "_"), "_")
	if len(fields) != 4 {
		return Record{}, &ParseError{
			Field: "line",
			Token: line,
			Err:   fmt.Errorf("%w, got %d", ErrTokenCount, len(fields)),
		}
	}

	lengthValid, err := parseFlag(fields[0])
	if err != nil {
		return Record{}, &ParseError{Field: "length_valid", Token: fields[0], Err: err}
	}

	length, err := strconv.ParseUint(fields[1], 2, 32)
	if err != nil {
		return Record{}, &ParseError{
			Field: "length",
			Token: fields[1],
			Err:   fmt.Errorf("%w: %v", ErrLengthField, err),
		}
	}

	dataValid, err := parseFlag(fields[2])
	if err != nil {
		return Record{}, &ParseError{Field: "data_valid", Token: fields[2], Err: err}
	}

	data, err := strconv.ParseUint(fields[3], 2, 8)
	if err != nil {
		return Record{}, &ParseError{
			Field: "data",
			Token: fields[3],
			Err:   fmt.Errorf("%w: %v", ErrDataField, err),
		}
	}

	return Record{
		LengthValid: lengthValid,
		Length:      uint32(length),
		DataValid:   dataValid,
		Data:        uint8(data),
	}, nil
}

// parseFlag accepts exactly the digits 0 and 1
func parseFlag(token string) (bool, error) {
	switch token {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, ErrFlagDigit
	}
}

func flagBit(v bool) int {
	if v {
		return 1
	}
	return 0
}
