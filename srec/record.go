package srec

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// RecordType is the digit following the 'S' marker.
type RecordType byte

// Record types.
const (
	S0 RecordType = iota // header, 16-bit address (normally 0x0000)
	S1                   // data, 16-bit address
	S2                   // data, 24-bit address
	S3                   // data, 32-bit address
	S4                   // reserved
	S5                   // 16-bit record count
	S6                   // 24-bit record count
	S7                   // termination, 32-bit start address
	S8                   // termination, 24-bit start address
	S9                   // termination, 16-bit start address
)

// Constants for record layout.
const (
	// MaxByteCount is the largest value of the byte count field
	MaxByteCount = 0xFF

	// MaxDataBytes is the largest payload any record type can carry (S0/S1/S5/S9)
	MaxDataBytes = MaxByteCount - 2 - 1

	// markerLength covers the 'S' marker and the type digit
	markerLength = 2
)

// AddressBytes returns the width of the address field in bytes.
func (t RecordType) AddressBytes() int {
	switch t {
	case S2, S6, S8:
		return 3
	case S3, S7:
		return 4
	default:
		return 2
	}
}

// MaxData returns the largest payload a record of this type can carry.
func (t RecordType) MaxData() int {
	return MaxByteCount - t.AddressBytes() - 1
}

// IsHeader reports whether t is S0.
func (t RecordType) IsHeader() bool { return t == S0 }

// IsData reports whether t is one of S1, S2 or S3.
func (t RecordType) IsData() bool { return t >= S1 && t <= S3 }

// IsCount reports whether t is S5 or S6.
func (t RecordType) IsCount() bool { return t == S5 || t == S6 }

// IsTermination reports whether t is one of S7, S8 or S9.
func (t RecordType) IsTermination() bool { return t >= S7 && t <= S9 }

func (t RecordType) String() string {
	return fmt.Sprintf("S%d", byte(t))
}

// Record is a single decoded S-record line.
//
// For count records Address holds the count, for termination records it
// holds the start address.
type Record struct {
	// Type is the record type digit
	Type RecordType

	// Address is the address field, widened to 32 bits
	Address uint32

	// Data is the record payload
	Data []byte

	// Checksum is the record checksum
	Checksum byte
}

// NewRecord builds a record of type t and fills in its checksum.
func NewRecord(t RecordType, address uint32, data []byte) *Record {
	r := &Record{
		Type:    t,
		Address: address,
		Data:    make([]byte, len(data)),
	}
	copy(r.Data, data)
	r.Checksum = Checksum(r.byteCount(), address, t.AddressBytes(), r.Data)
	return r
}

func (r *Record) byteCount() byte {
	return byte(r.Type.AddressBytes() + len(r.Data) + 1)
}

// End returns one past the last address written by a data record.
func (r *Record) End() uint64 {
	return uint64(r.Address) + uint64(len(r.Data))
}

// Encode returns the record as an S-record line without a line terminator.
// Hex digits are uppercase and the checksum is always recomputed.
func (r *Record) Encode() string {
	addrBytes := r.Type.AddressBytes()
	byteCount := r.byteCount()

	var sb strings.Builder
	sb.Grow(markerLength + 2*(int(byteCount)+1))
	sb.WriteString(r.Type.String())
	fmt.Fprintf(&sb, "%02X%0*X", byteCount, 2*addrBytes, r.Address)
	sb.WriteString(strings.ToUpper(hex.EncodeToString(r.Data)))
	fmt.Fprintf(&sb, "%02X", Checksum(byteCount, r.Address, addrBytes, r.Data))
	return sb.String()
}

func (r *Record) String() string {
	return r.Encode()
}

// DecodeLine decodes a single S-record line.
//
// Line format:
//
//	S[Type(1)][ByteCount(2)][Address(4|6|8)][Data(2*N)][Checksum(2)]
//
// ByteCount covers the address, data and checksum bytes. Trailing whitespace
// is ignored; hex digits may be in either case.
func DecodeLine(line string) (*Record, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	if len(line) == 0 || line[0] != 'S' {
		return nil, ErrMissingMarker
	}
	if len(line) < markerLength || line[1] < '0' || line[1] > '9' {
		return nil, ErrInvalidType
	}
	t := RecordType(line[1] - '0')
	if t == S4 {
		return nil, ErrReservedType
	}

	d := fieldReader{line: line, pos: markerLength}

	bc, err := d.bytes(1, "byte count")
	if err != nil {
		return nil, err
	}
	byteCount := bc[0]

	addrBytes := t.AddressBytes()
	dataLen := int(byteCount) - addrBytes - 1
	if dataLen < 0 {
		return nil, fmt.Errorf("%w: byte count %d too small for %s", ErrPayloadLengthMismatch, byteCount, t)
	}

	addr, err := d.bytes(addrBytes, "address")
	if err != nil {
		return nil, err
	}
	var address uint32
	for _, b := range addr {
		address = address<<8 | uint32(b)
	}

	data, err := d.bytes(dataLen, "data")
	if err != nil {
		return nil, err
	}

	cs, err := d.bytes(1, "checksum")
	if err != nil {
		return nil, err
	}

	calculated := Checksum(byteCount, address, addrBytes, data)
	if cs[0] != calculated {
		return nil, &ChecksumMismatchError{Expected: calculated, Actual: cs[0]}
	}

	if d.pos != len(line) {
		return nil, fmt.Errorf("%w: %q", ErrTrailingData, line[d.pos:])
	}

	r := &Record{
		Type:     t,
		Address:  address,
		Data:     data,
		Checksum: cs[0],
	}
	if t.IsData() && r.End() > 1<<32 {
		return nil, fmt.Errorf("%w: 0x%08X+%d", ErrAddressOverflow, address, len(data))
	}

	return r, nil
}

// fieldReader walks the hex fields of a line.
type fieldReader struct {
	line string
	pos  int
}

// bytes decodes the next n bytes (2n hex digits). When the line is too short
// the available characters are still checked so that bad hex is reported
// ahead of the length problem.
func (f *fieldReader) bytes(n int, field string) ([]byte, error) {
	need := 2 * n
	rest := f.line[f.pos:]
	if len(rest) < need {
		if i := strings.IndexFunc(rest, notHex); i >= 0 {
			return nil, fmt.Errorf("%w: %s has invalid character %q at column %d",
				ErrMalformedHex, field, rest[i], f.pos+i+1)
		}
		return nil, fmt.Errorf("%w: line ends in %s (need %d hex digits, have %d)",
			ErrPayloadLengthMismatch, field, need, len(rest))
	}

	chunk := rest[:need]
	if i := strings.IndexFunc(chunk, notHex); i >= 0 {
		return nil, fmt.Errorf("%w: %s has invalid character %q at column %d",
			ErrMalformedHex, field, chunk[i], f.pos+i+1)
	}
	out, err := hex.DecodeString(chunk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	f.pos += need
	return out, nil
}

func notHex(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return false
	}
	return true
}
