package srec

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Address limits per family.
const (
	max16 = 0xFFFF
	max24 = 0xFFFFFF

	// MaxCount is the largest record count an S6 record can hold
	MaxCount = max24
)

// Writer serializes Files as S-record text.
type Writer struct {
	w      io.Writer
	config WriterConfig
}

// NewWriter creates a Writer that writes to w.
//
// Example:
//
//	w := srec.NewWriter(os.Stdout,
//	    srec.WithMaxPayload(32),
//	    srec.WithAddressFamily(srec.Family32),
//	)
//	err := w.Write(f)
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	cfg := defaultWriterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Writer{w: w, config: cfg}
}

// Config returns the effective writer configuration.
func (w *Writer) Config() WriterConfig {
	return w.config
}

// Format serializes f to a string.
func Format(f *File, opts ...WriterOption) (string, error) {
	var sb strings.Builder
	if err := NewWriter(&sb, opts...).Write(f); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Records returns the records Write would emit for f, in order: header,
// data in ascending address order, count, termination. A count record is
// always emitted when nothing else would be.
func (w *Writer) Records(f *File) ([]*Record, error) {
	if f == nil {
		return nil, fmt.Errorf("file cannot be nil")
	}

	var out []*Record
	if f.Header != nil {
		out = append(out, NewRecord(S0, f.Header.Address, f.Header.Data))
	}

	widest := S1
	numData := 0
	for _, seg := range f.Space().segments {
		recs, err := w.chunk(seg)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			if r.Type > widest {
				widest = r.Type
			}
		}
		numData += len(recs)
		out = append(out, recs...)
	}

	// An empty image still needs one line to parse back
	if w.config.CountRecord || (f.Header == nil && numData == 0 && f.Termination == nil) {
		switch {
		case numData <= max16:
			out = append(out, NewRecord(S5, uint32(numData), nil))
		case numData <= MaxCount:
			out = append(out, NewRecord(S6, uint32(numData), nil))
		default:
			return nil, fmt.Errorf("%w: %d", ErrTooManyRecords, numData)
		}
	}

	if start, ok := f.StartAddress(); ok {
		t, err := w.terminationType(widest, start)
		if err != nil {
			return nil, err
		}
		out = append(out, NewRecord(t, start, nil))
	}

	return out, nil
}

// Write serializes f, one record per line.
func (w *Writer) Write(f *File) error {
	records, err := w.Records(f)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w.w)
	for _, r := range records {
		if _, err := bw.WriteString(r.Encode()); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		if _, err := bw.WriteString(w.config.LineEnding); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// chunk splits a segment into data records.
func (w *Writer) chunk(seg Segment) ([]*Record, error) {
	var out []*Record
	addr := uint64(seg.Address)
	data := seg.Data
	for len(data) > 0 {
		n := min(len(data), w.config.MaxPayload)
		t, err := w.dataType(addr, n)
		if err != nil {
			return nil, err
		}
		n = min(n, t.MaxData())

		out = append(out, NewRecord(t, uint32(addr), data[:n]))
		data = data[n:]
		addr += uint64(n)
	}
	return out, nil
}

// dataType picks the record type for n bytes at addr.
func (w *Writer) dataType(addr uint64, n int) (RecordType, error) {
	last := addr + uint64(n) - 1
	if w.config.Family != FamilyAuto {
		t := w.config.Family.dataType()
		if !fits(t, last) {
			return 0, fmt.Errorf("%w: 0x%08X in %s records", ErrAddressOutOfRange, last, t)
		}
		return t, nil
	}
	switch {
	case last <= max16:
		return S1, nil
	case last <= max24:
		return S2, nil
	default:
		return S3, nil
	}
}

// terminationType pairs the terminator with the widest data type emitted,
// widening it further if the start address needs more bytes.
func (w *Writer) terminationType(widest RecordType, start uint32) (RecordType, error) {
	if w.config.Family != FamilyAuto {
		widest = w.config.Family.dataType()
		if !fits(widest, uint64(start)) {
			return 0, fmt.Errorf("%w: start address 0x%08X in %s records",
				ErrAddressOutOfRange, start, widest)
		}
	}
	for !fits(widest, uint64(start)) {
		widest++
	}
	// S1->S9, S2->S8, S3->S7
	return S9 + S1 - widest, nil
}

func fits(t RecordType, addr uint64) bool {
	return addr < uint64(1)<<(8*t.AddressBytes())
}
