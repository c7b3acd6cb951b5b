package srec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Constants for file parsing.
const (
	// MaxLineLength bounds a single input line. The longest valid record is
	// 2 + 2*256 characters; the rest is headroom for trailing whitespace.
	MaxLineLength = 64 * 1024

	// DefaultRecordCapacity is the default initial capacity for the data records slice
	DefaultRecordCapacity = 256
)

// Parse parses S-record text.
//
// Example:
//
//	f, err := srec.Parse(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Header: %q\n", f.HeaderText())
//	b, err := f.ByteAt(0x8000)
func Parse(text string) (*File, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader parses S-record text from any io.Reader.
// Lines may end in "\n", "\r\n" or "\r"; blank lines are skipped.
func ParseReader(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineLength)
	scanner.Split(scanLines)

	p := &fileParser{data: make([]*Record, 0, DefaultRecordCapacity)}

	lineNum := 0
	nonBlank := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Skip empty lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank++

		if err := p.add(line); err != nil {
			return nil, &LineError{Line: lineNum, Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if nonBlank == 0 {
		return nil, ErrEmptyFile
	}

	return NewFile(p.header, p.data, p.count, p.termination), nil
}

// fileParser classifies decoded records and enforces file-level rules.
type fileParser struct {
	header      *Record
	data        []*Record
	count       *Record
	termination *Record
}

func (p *fileParser) add(line string) error {
	r, err := DecodeLine(line)
	if err != nil {
		return err
	}

	switch {
	case r.Type.IsHeader():
		if p.header != nil {
			return ErrMultipleHeaders
		}
		p.header = r

	case r.Type.IsData():
		p.data = append(p.data, r)

	case r.Type.IsCount():
		if p.count != nil {
			return ErrMultipleCountRecords
		}
		if uint64(r.Address) != uint64(len(p.data)) {
			return &RecordCountMismatchError{Declared: r.Address, Actual: uint32(len(p.data))}
		}
		p.count = r

	case r.Type.IsTermination():
		if p.termination != nil {
			return ErrMultipleTerminators
		}
		p.termination = r
	}

	return nil
}

// scanLines is a bufio.SplitFunc that accepts "\n", "\r\n" and a lone "\r"
// as line terminators.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r': swallow a following '\n', asking for more input if needed
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
