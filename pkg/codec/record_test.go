package codec

import (
	"errors"
	"math"
	"testing"
)

func TestLineCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewLineCodec()

	testCases := []struct {
		name   string
		record Record
		line   string
	}{
		{
			name:   "idle cycle",
			record: Record{},
			line:   "0_00000000000000000000000000000000_0_00000000",
		},
		{
			name:   "length record",
			record: LengthRecord(5),
			line:   "1_00000000000000000000000000000101_0_00000000",
		},
		{
			name:   "zero length record",
			record: LengthRecord(0),
			line:   "1_00000000000000000000000000000000_0_00000000",
		},
		{
			name:   "max length record",
			record: LengthRecord(math.MaxUint32),
			line:   "1_11111111111111111111111111111111_0_00000000",
		},
		{
			name:   "data record",
			record: DataRecord('A'),
			line:   "0_00000000000000000000000000000000_1_01000001",
		},
		{
			name:   "max data record",
			record: DataRecord(0xFF),
			line:   "0_00000000000000000000000000000000_1_11111111",
		},
		{
			name:   "both channels valid",
			record: Record{LengthValid: true, Length: 3, DataValid: true, Data: 0x41},
			line:   "1_00000000000000000000000000000011_1_01000001",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := codec.Encode(tc.record)
			if encoded != tc.line {
				t.Errorf("Encode mismatch: got %q, want %q", encoded, tc.line)
			}

			decoded, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if decoded != tc.record {
				t.Errorf("Round trip mismatch: got %+v, want %+v", decoded, tc.record)
			}
		})
	}
}

func TestLineCodec_Decode_Separators(t *testing.T) {
	codec := NewLineCodec()
	want := Record{LengthValid: true, Length: 5}

	testCases := []struct {
		name string
		line string
	}{
		{
			name: "underscores",
			line: "1_00000000000000000000000000000101_0_00000000",
		},
		{
			name: "spaces",
			line: "1 00000000000000000000000000000101 0 00000000",
		},
		{
			name: "mixed separators",
			line: "1 00000000000000000000000000000101_0 00000000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := codec.Decode(tc.line)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != want {
				t.Errorf("Decode mismatch: got %+v, want %+v", got, want)
			}
		})
	}
}

func TestLineCodec_Decode_ShortBinaryFields(t *testing.T) {
	codec := NewLineCodec()

	got, err := codec.Decode("1_101_1_1000001")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := Record{LengthValid: true, Length: 5, DataValid: true, Data: 0x41}
	if got != want {
		t.Errorf("Decode mismatch: got %+v, want %+v", got, want)
	}
}

func TestLineCodec_Decode_Errors(t *testing.T) {
	codec := NewLineCodec()

	testCases := []struct {
		name     string
		line     string
		sentinel error
		field    string
	}{
		{
			name:     "empty line",
			line:     "",
			sentinel: ErrTokenCount,
			field:    "line",
		},
		{
			name:     "too few fields",
			line:     "1_101_0",
			sentinel: ErrTokenCount,
			field:    "line",
		},
		{
			name:     "too many fields",
			line:     "1_101_0_0_0",
			sentinel: ErrTokenCount,
			field:    "line",
		},
		{
			name:     "doubled separator",
			line:     "1__101_0_0",
			sentinel: ErrTokenCount,
			field:    "line",
		},
		{
			name:     "length flag out of range",
			line:     "2_101_0_0",
			sentinel: ErrFlagDigit,
			field:    "length_valid",
		},
		{
			name:     "length flag not a digit",
			line:     "true_101_0_0",
			sentinel: ErrFlagDigit,
			field:    "length_valid",
		},
		{
			name:     "data flag out of range",
			line:     "0_101_7_0",
			sentinel: ErrFlagDigit,
			field:    "data_valid",
		},
		{
			name:     "length not binary",
			line:     "1_123_0_0",
			sentinel: ErrLengthField,
			field:    "length",
		},
		{
			name:     "length overflows 32 bits",
			line:     "1_111111111111111111111111111111111_0_0",
			sentinel: ErrLengthField,
			field:    "length",
		},
		{
			name:     "data not binary",
			line:     "0_101_1_0x41",
			sentinel: ErrDataField,
			field:    "data",
		},
		{
			name:     "data overflows 8 bits",
			line:     "0_101_1_111111111",
			sentinel: ErrDataField,
			field:    "data",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.line)
			if err == nil {
				t.Fatalf("Expected decode to fail for %q, but it succeeded", tc.line)
			}

			if !errors.Is(err, tc.sentinel) {
				t.Errorf("Expected sentinel %v, got %v", tc.sentinel, err)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if parseErr.Field != tc.field {
				t.Errorf("Field mismatch: got %q, want %q", parseErr.Field, tc.field)
			}
		})
	}
}

func TestRecord_String(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "zero record",
			record: Record{},
			want:   "0_00000000000000000000000000000000_0_00000000",
		},
		{
			name:   "length record",
			record: LengthRecord(9),
			want:   "1_00000000000000000000000000001001_0_00000000",
		},
		{
			name:   "data record",
			record: DataRecord(0x57),
			want:   "0_00000000000000000000000000000000_1_01010111",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.String(); got != tc.want {
				t.Errorf("String mismatch: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLineCodec_DecodeIsCanonicalizing(t *testing.T) {
	codec := NewLineCodec()

	// A sloppy but valid line re-encodes to the canonical form.
	decoded, err := codec.Decode("1 101 0 0")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := "1_00000000000000000000000000000101_0_00000000"
	if got := codec.Encode(decoded); got != want {
		t.Errorf("Canonical form mismatch: got %q, want %q", got, want)
	}
}
