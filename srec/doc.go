// Package srec parses and writes Motorola S-record files.
//
// # S-record Format
//
// An S-record file is line-oriented ASCII. Every line is one record:
//
//	S[Type(1)][ByteCount(2)][Address(4|6|8)][Data(2*N)][Checksum(2)]
//
// Example record:
//
//	S107123401020304A8
//	  1        = Type (S1: data, 16-bit address)
//	  07       = Byte count (address + data + checksum bytes)
//	  1234     = Address
//	  01020304 = Data
//	  A8       = Checksum (0xFF minus the low byte of the sum of all preceding bytes)
//
// Record types:
//
//	S0       header, free-form payload
//	S1 S2 S3 data with 16, 24 and 32-bit addresses
//	S4       reserved
//	S5 S6    number of preceding data records (16 and 24-bit)
//	S7 S8 S9 termination with a 32, 24 or 16-bit start address
//
// # Usage
//
// Parse text that the caller has already read:
//
//	f, err := srec.Parse(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Header: %q\n", f.HeaderText())
//	for _, r := range f.AddressRanges() {
//	    fmt.Println(r)
//	}
//
// Data records are assembled into an AddressSpace. Where records overlap,
// the later one wins. Addresses never written are absent, not zero:
//
//	b, err := f.ByteAt(0x8000)
//	if errors.Is(err, srec.ErrAddressNotPresent) {
//	    // gap
//	}
//
// Write the file back out, re-chunked:
//
//	text, err := srec.Format(f, srec.WithMaxPayload(32))
//
// # Error Handling
//
// Malformed input is rejected, never repaired. Errors raised while parsing a
// file are wrapped in *LineError carrying the 1-based line number. Use
// errors.Is with the Err* sentinels, or errors.As with *ChecksumMismatchError
// and *RecordCountMismatchError for details.
//
// The package does not open files or log. A File and its AddressSpace are
// read-only once built and may be shared between goroutines.
package srec
