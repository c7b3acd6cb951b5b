package srec

import (
	"errors"
	"fmt"
)

// Record-level decode errors.
var (
	ErrMissingMarker         = errors.New("missing 'S' record marker")
	ErrInvalidType           = errors.New("invalid record type")
	ErrReservedType          = errors.New("reserved record type S4")
	ErrMalformedHex          = errors.New("malformed hex")
	ErrPayloadLengthMismatch = errors.New("payload length mismatch")
	ErrTrailingData          = errors.New("trailing data after checksum")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrAddressOverflow       = errors.New("data extends past 32-bit address space")
)

// File-level consistency errors.
var (
	ErrEmptyFile            = errors.New("empty file")
	ErrMultipleHeaders      = errors.New("multiple header records")
	ErrMultipleCountRecords = errors.New("multiple count records")
	ErrMultipleTerminators  = errors.New("multiple termination records")
	ErrRecordCountMismatch  = errors.New("record count mismatch")
)

// Query and serialization errors.
var (
	// ErrAddressNotPresent is returned when an address was never written by any data record.
	ErrAddressNotPresent = errors.New("address not present")

	// ErrAddressOutOfRange is returned when a pinned address family cannot represent an address.
	ErrAddressOutOfRange = errors.New("address out of range for record family")

	// ErrTooManyRecords is returned when the data record count does not fit an S6 record.
	ErrTooManyRecords = errors.New("too many data records for count record")
)

// ChecksumMismatchError reports a record whose embedded checksum differs from
// the computed one.
type ChecksumMismatchError struct {
	// Expected is the checksum computed from the record contents
	Expected byte

	// Actual is the checksum found in the line
	Actual byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: got 0x%02X, expected 0x%02X", e.Actual, e.Expected)
}

// Is reports whether target is ErrChecksumMismatch.
func (e *ChecksumMismatchError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// RecordCountMismatchError reports an S5/S6 record whose value differs from
// the number of data records that precede it.
type RecordCountMismatchError struct {
	Declared uint32
	Actual   uint32
}

func (e *RecordCountMismatchError) Error() string {
	return fmt.Sprintf("record count mismatch: declared %d, found %d data records",
		e.Declared, e.Actual)
}

// Is reports whether target is ErrRecordCountMismatch.
func (e *RecordCountMismatchError) Is(target error) bool {
	return target == ErrRecordCountMismatch
}

// LineError attaches a 1-based line number to an error raised while parsing a file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
