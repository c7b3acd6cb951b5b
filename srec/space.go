package srec

import (
	"fmt"
	"slices"
	"sort"
)

// maxAddressEnd is one past the highest 32-bit address.
const maxAddressEnd = uint64(1) << 32

// Segment is a contiguous run of present bytes.
type Segment struct {
	// Address is the address of Data[0]
	Address uint32

	// Data holds the bytes of the run
	Data []byte
}

// End returns one past the last address of the segment.
func (s Segment) End() uint64 {
	return uint64(s.Address) + uint64(len(s.Data))
}

// AddressRange is a half-open address interval [Start, End).
type AddressRange struct {
	Start uint64
	End   uint64
}

// Len returns the number of addresses in the range.
func (r AddressRange) Len() uint64 {
	return r.End - r.Start
}

func (r AddressRange) String() string {
	return fmt.Sprintf("[0x%08X, 0x%08X)", r.Start, r.End)
}

// Cell is one position of a Slice result.
type Cell struct {
	Value   byte
	Present bool
}

// AddressSpace is a sparse map from 32-bit address to byte value.
//
// It is kept as an ascending list of non-overlapping, non-adjacent segments.
// An AddressSpace is never modified after Assemble returns and is safe for
// concurrent readers.
type AddressSpace struct {
	segments []Segment
}

// Assemble writes the payload of every data record, in order, into a new
// AddressSpace. Where records overlap the later record wins. Non-data
// records are ignored.
func Assemble(records []*Record) *AddressSpace {
	s := &AddressSpace{}
	for _, r := range records {
		if r == nil || !r.Type.IsData() {
			continue
		}
		s.write(r.Address, r.Data)
	}
	return s
}

// write stores data at address, merging with every segment it overlaps or
// touches so that segments stay maximal.
func (s *AddressSpace) write(address uint32, data []byte) {
	if len(data) == 0 {
		return
	}
	start := uint64(address)
	end := start + uint64(len(data))

	// First segment that ends at or after start (overlapping or adjacent)
	i := sort.Search(len(s.segments), func(k int) bool {
		return s.segments[k].End() >= start
	})
	// One past the last segment that starts at or before end
	j := i
	for j < len(s.segments) && uint64(s.segments[j].Address) <= end {
		j++
	}

	if i == j {
		seg := Segment{Address: address, Data: make([]byte, len(data))}
		copy(seg.Data, data)
		s.segments = slices.Insert(s.segments, i, seg)
		return
	}

	newStart := min(start, uint64(s.segments[i].Address))
	newEnd := max(end, s.segments[j-1].End())

	buf := make([]byte, newEnd-newStart)
	for _, seg := range s.segments[i:j] {
		copy(buf[uint64(seg.Address)-newStart:], seg.Data)
	}
	copy(buf[start-newStart:], data)

	s.segments = slices.Replace(s.segments, i, j, Segment{Address: uint32(newStart), Data: buf})
}

// find returns the segment containing address.
func (s *AddressSpace) find(address uint32) (Segment, bool) {
	i := sort.Search(len(s.segments), func(k int) bool {
		return s.segments[k].End() > uint64(address)
	})
	if i < len(s.segments) && s.segments[i].Address <= address {
		return s.segments[i], true
	}
	return Segment{}, false
}

// ByteAt returns the byte stored at address, or ErrAddressNotPresent.
func (s *AddressSpace) ByteAt(address uint32) (byte, error) {
	seg, ok := s.find(address)
	if !ok {
		return 0, fmt.Errorf("%w: 0x%08X", ErrAddressNotPresent, address)
	}
	return seg.Data[address-seg.Address], nil
}

// Contains reports whether address holds a byte.
func (s *AddressSpace) Contains(address uint32) bool {
	_, ok := s.find(address)
	return ok
}

// Slice returns n cells starting at start. Absent addresses, including any
// past 0xFFFFFFFF, come back with Present set to false.
func (s *AddressSpace) Slice(start uint32, n int) []Cell {
	if n <= 0 {
		return nil
	}
	cells := make([]Cell, n)

	i := sort.Search(len(s.segments), func(k int) bool {
		return s.segments[k].End() > uint64(start)
	})
	end := uint64(start) + uint64(n)
	for ; i < len(s.segments) && uint64(s.segments[i].Address) < end; i++ {
		seg := s.segments[i]
		lo := max(uint64(seg.Address), uint64(start))
		hi := min(seg.End(), end)
		for a := lo; a < hi; a++ {
			cells[a-uint64(start)] = Cell{Value: seg.Data[a-uint64(seg.Address)], Present: true}
		}
	}
	return cells
}

// Bytes returns a copy of the n bytes starting at start. Every address in
// the range must be present, otherwise ErrAddressNotPresent is returned.
func (s *AddressSpace) Bytes(start uint32, n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}
	seg, ok := s.find(start)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%08X", ErrAddressNotPresent, start)
	}
	// Segments are maximal, so a fully present range lies inside one segment
	end := uint64(start) + uint64(n)
	if end > seg.End() {
		return nil, fmt.Errorf("%w: 0x%08X", ErrAddressNotPresent, seg.End())
	}
	off := start - seg.Address
	out := make([]byte, n)
	copy(out, seg.Data[off:])
	return out, nil
}

// AddressRanges returns the maximal contiguous runs of present addresses in
// ascending order.
func (s *AddressSpace) AddressRanges() []AddressRange {
	ranges := make([]AddressRange, len(s.segments))
	for i, seg := range s.segments {
		ranges[i] = AddressRange{Start: uint64(seg.Address), End: seg.End()}
	}
	return ranges
}

// Segments returns a copy of the segments in ascending address order.
func (s *AddressSpace) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	for i, seg := range s.segments {
		out[i] = Segment{Address: seg.Address, Data: slices.Clone(seg.Data)}
	}
	return out
}

// Len returns the number of present addresses.
func (s *AddressSpace) Len() uint64 {
	var n uint64
	for _, seg := range s.segments {
		n += uint64(len(seg.Data))
	}
	return n
}

// Empty reports whether no address is present.
func (s *AddressSpace) Empty() bool {
	return s == nil || len(s.segments) == 0
}

// Bounds returns the lowest present address and one past the highest. ok is
// false for an empty space.
func (s *AddressSpace) Bounds() (r AddressRange, ok bool) {
	if len(s.segments) == 0 {
		return AddressRange{}, false
	}
	return AddressRange{
		Start: uint64(s.segments[0].Address),
		End:   s.segments[len(s.segments)-1].End(),
	}, true
}

// ToBinary flattens n bytes starting at start into a byte slice, filling
// absent addresses with fill.
func (s *AddressSpace) ToBinary(start uint32, n int, fill byte) []byte {
	if n <= 0 {
		return []byte{}
	}
	out := make([]byte, n)
	for i, c := range s.Slice(start, n) {
		if c.Present {
			out[i] = c.Value
		} else {
			out[i] = fill
		}
	}
	return out
}

// Equal reports whether both spaces hold the same bytes at the same addresses.
func (s *AddressSpace) Equal(other *AddressSpace) bool {
	if s == nil || other == nil {
		return s.Empty() && other.Empty()
	}
	return slices.EqualFunc(s.segments, other.segments, func(a, b Segment) bool {
		return a.Address == b.Address && slices.Equal(a.Data, b.Data)
	})
}
