// Package codec parses and renders the vector lines exchanged with the
// testbench record stream.
//
// Each line describes one clock cycle on a two-channel interface: a length
// channel announcing how many body bytes the next message has, and a data
// channel carrying a single body byte. Either channel, both, or neither may
// be valid on a given cycle.
//
// # Line Format
//
// Records are rendered as four separator-delimited fields:
//
//	<length_valid>_<length>_<data_valid>_<data>
//
// Fields:
//   - length_valid: single digit, 0 or 1
//   - length: unsigned 32-bit value in binary, canonically zero-padded to 32 digits
//   - data_valid: single digit, 0 or 1
//   - data: unsigned 8-bit value in binary, canonically zero-padded to 8 digits
//
// On input, spaces and underscores are interchangeable separators and binary
// fields may be shorter than their canonical width. Encode always emits the
// canonical underscore-separated, zero-padded form, so any accepted line
// re-encodes to a stable representation.
//
// A line whose flags are both 0 is an idle cycle; it parses successfully and
// carries no information. Comment and blank line filtering is a framing
// concern and happens upstream of this package.
//
// # Usage
//
// Basic encoding and decoding:
//
//	lc := codec.NewLineCodec()
//
//	// Render records
//	line := lc.Encode(codec.LengthRecord(5))
//	body := lc.Encode(codec.DataRecord('A'))
//
//	// Parse a line
//	record, err := lc.Decode(line)
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Decode rejects lines with the wrong field count, flags other than the
// digits 0 and 1, and length or data fields that are not binary numbers in
// range. All failures are reported as a *ParseError naming the offending
// field and token, wrapping one of the sentinel errors:
//
//   - ErrTokenCount
//   - ErrFlagDigit
//   - ErrLengthField
//   - ErrDataField
//
// Callers can match with errors.Is, or pull out the field and token with
// errors.As.
//
// # Thread Safety
//
// LineCodec instances are stateless and safe for concurrent use. Record is a
// plain value type.
package codec
