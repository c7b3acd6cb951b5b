package srec

import "runtime"

// AddressFamily selects the data record type used by a Writer.
type AddressFamily int

// Address families.
const (
	// FamilyAuto picks the narrowest of S1, S2 and S3 for each record
	FamilyAuto AddressFamily = iota

	// Family16 emits S1 data records and an S9 terminator
	Family16

	// Family24 emits S2 data records and an S8 terminator
	Family24

	// Family32 emits S3 data records and an S7 terminator
	Family32
)

func (f AddressFamily) String() string {
	switch f {
	case FamilyAuto:
		return "auto"
	case Family16:
		return "16"
	case Family24:
		return "24"
	case Family32:
		return "32"
	default:
		return "unknown"
	}
}

// dataType returns the data record type of a pinned family.
func (f AddressFamily) dataType() RecordType {
	switch f {
	case Family24:
		return S2
	case Family32:
		return S3
	default:
		return S1
	}
}

// WriterConfig holds the serializer configuration.
type WriterConfig struct {
	// MaxPayload is the maximum number of data bytes per data record.
	// Default is 16 bytes
	MaxPayload int

	// Family pins the data record type, or FamilyAuto
	Family AddressFamily

	// LineEnding terminates every emitted line
	LineEnding string

	// CountRecord enables the S5/S6 record after the data records
	CountRecord bool
}

// DefaultMaxPayload is the default number of data bytes per record.
const DefaultMaxPayload = 16

// defaultWriterConfig returns the default configuration.
func defaultWriterConfig() WriterConfig {
	return WriterConfig{
		MaxPayload:  DefaultMaxPayload,
		Family:      FamilyAuto,
		LineEnding:  platformLineEnding(),
		CountRecord: true,
	}
}

func platformLineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// WriterOption is a functional option for configuring a Writer.
type WriterOption func(*WriterConfig)

// WithMaxPayload sets the maximum data bytes per record. Values outside
// 1..MaxDataBytes are ignored; the value is further capped per record type.
//
// Example:
//
//	text, err := srec.Format(f, srec.WithMaxPayload(32))
func WithMaxPayload(n int) WriterOption {
	return func(c *WriterConfig) {
		if n > 0 && n <= MaxDataBytes {
			c.MaxPayload = n
		}
	}
}

// WithAddressFamily pins the data record type.
//
// Example:
//
//	text, err := srec.Format(f, srec.WithAddressFamily(srec.Family32))
func WithAddressFamily(family AddressFamily) WriterOption {
	return func(c *WriterConfig) {
		if family >= FamilyAuto && family <= Family32 {
			c.Family = family
		}
	}
}

// WithLineEnding sets the line terminator. Only "\n", "\r\n" and "\r" are accepted.
func WithLineEnding(ending string) WriterOption {
	return func(c *WriterConfig) {
		switch ending {
		case "\n", "\r\n", "\r":
			c.LineEnding = ending
		}
	}
}

// WithCountRecord enables or disables the S5/S6 count record.
// Default is true.
func WithCountRecord(enabled bool) WriterOption {
	return func(c *WriterConfig) {
		c.CountRecord = enabled
	}
}
