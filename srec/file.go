package srec

// File represents a complete parsed S-record file.
type File struct {
	// Header is the S0 record, or nil if the file has none
	Header *Record

	// Data holds the S1/S2/S3 records in file order
	Data []*Record

	// Count is the S5/S6 record, or nil if the file has none
	Count *Record

	// Termination is the S7/S8/S9 record, or nil if the file has none
	Termination *Record

	space *AddressSpace
}

// NewFile builds a File from its records and assembles the data records
// into an AddressSpace. The records are not validated; use Parse for that.
func NewFile(header *Record, data []*Record, count, termination *Record) *File {
	return &File{
		Header:      header,
		Data:        data,
		Count:       count,
		Termination: termination,
		space:       Assemble(data),
	}
}

// Space returns the assembled address space. A File not built by Parse,
// Merge or NewFile has its data records assembled on each call.
func (f *File) Space() *AddressSpace {
	if f.space == nil {
		return Assemble(f.Data)
	}
	return f.space
}

// HeaderData returns the raw header payload, or nil without a header.
func (f *File) HeaderData() []byte {
	if f.Header == nil {
		return nil
	}
	return f.Header.Data
}

// HeaderText returns the header payload as text with trailing NUL bytes removed.
func (f *File) HeaderText() string {
	data := f.HeaderData()
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return string(data)
}

// StartAddress returns the execution start address from the termination record.
func (f *File) StartAddress() (uint32, bool) {
	if f.Termination == nil {
		return 0, false
	}
	return f.Termination.Address, true
}

// ByteAt returns the byte at address. See AddressSpace.ByteAt.
func (f *File) ByteAt(address uint32) (byte, error) {
	return f.Space().ByteAt(address)
}

// Slice returns n cells starting at start. See AddressSpace.Slice.
func (f *File) Slice(start uint32, n int) []Cell {
	return f.Space().Slice(start, n)
}

// AddressRanges returns the contiguous runs of present addresses.
func (f *File) AddressRanges() []AddressRange {
	return f.Space().AddressRanges()
}

// Merge combines files into a new File. Data records are concatenated in
// argument order, so where images overlap the later file wins. Header and
// termination records come from the last file that has one. The result has
// no count record.
func Merge(files ...*File) *File {
	var (
		header, termination *Record
		data                []*Record
	)
	for _, f := range files {
		if f == nil {
			continue
		}
		if f.Header != nil {
			header = f.Header
		}
		if f.Termination != nil {
			termination = f.Termination
		}
		data = append(data, f.Data...)
	}
	return NewFile(header, data, nil, termination)
}
