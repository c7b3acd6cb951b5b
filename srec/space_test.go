package srec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(t RecordType, address uint32, b ...byte) *Record {
	return NewRecord(t, address, b)
}

func TestAssembleLastWriteWins(t *testing.T) {
	s := Assemble([]*Record{
		rec(S1, 0x10, 1, 2, 3, 4),
		rec(S1, 0x12, 9, 9),
	})

	for addr, want := range map[uint32]byte{0x10: 1, 0x11: 2, 0x12: 9, 0x13: 9} {
		got, err := s.ByteAt(addr)
		require.NoError(t, err)
		assert.Equal(t, want, got, "address 0x%X", addr)
	}
	assert.Equal(t, []AddressRange{{Start: 0x10, End: 0x14}}, s.AddressRanges())
}

func TestAssembleSparseGaps(t *testing.T) {
	s := Assemble([]*Record{rec(S1, 0x100, 0xAA, 0xBB)})

	_, err := s.ByteAt(0x0FF)
	assert.ErrorIs(t, err, ErrAddressNotPresent)

	b, err := s.ByteAt(0x100)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), b)

	b, err = s.ByteAt(0x101)
	require.NoError(t, err)
	assert.Equal(t, byte(0xBB), b)

	_, err = s.ByteAt(0x102)
	assert.ErrorIs(t, err, ErrAddressNotPresent)
}

func TestAssemblePresentZeroIsNotAbsent(t *testing.T) {
	s := Assemble([]*Record{rec(S1, 0x00, 0x00)})

	b, err := s.ByteAt(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0), b)
	assert.True(t, s.Contains(0))
	assert.False(t, s.Contains(1))
}

func TestAssembleMerging(t *testing.T) {
	tests := []struct {
		name     string
		records  []*Record
		segments []Segment
	}{
		{
			name:     "empty",
			records:  nil,
			segments: []Segment{},
		},
		{
			name:     "empty payload is ignored",
			records:  []*Record{rec(S1, 0x10)},
			segments: []Segment{},
		},
		{
			name:     "non-data records are ignored",
			records:  []*Record{rec(S0, 0, 'H'), NewRecord(S5, 1, nil), NewRecord(S9, 0x10, nil)},
			segments: []Segment{},
		},
		{
			name:    "adjacent records coalesce",
			records: []*Record{rec(S1, 0x10, 1, 2), rec(S1, 0x12, 3, 4)},
			segments: []Segment{
				{Address: 0x10, Data: []byte{1, 2, 3, 4}},
			},
		},
		{
			name:    "out of order adjacent records coalesce",
			records: []*Record{rec(S1, 0x12, 3, 4), rec(S1, 0x10, 1, 2)},
			segments: []Segment{
				{Address: 0x10, Data: []byte{1, 2, 3, 4}},
			},
		},
		{
			name:    "disjoint records stay apart and sorted",
			records: []*Record{rec(S1, 0x30, 3), rec(S1, 0x10, 1), rec(S1, 0x20, 2)},
			segments: []Segment{
				{Address: 0x10, Data: []byte{1}},
				{Address: 0x20, Data: []byte{2}},
				{Address: 0x30, Data: []byte{3}},
			},
		},
		{
			name: "bridge joins neighbours and overrides both",
			records: []*Record{
				rec(S1, 0x10, 1, 1, 1),
				rec(S1, 0x15, 2, 2, 2),
				rec(S1, 0x12, 7, 7, 7, 7),
			},
			segments: []Segment{
				{Address: 0x10, Data: []byte{1, 1, 7, 7, 7, 7, 2, 2}},
			},
		},
		{
			name: "write covering several segments",
			records: []*Record{
				rec(S1, 0x11, 1),
				rec(S1, 0x13, 2),
				rec(S1, 0x15, 3),
				rec(S1, 0x10, 9, 9, 9, 9, 9, 9, 9),
			},
			segments: []Segment{
				{Address: 0x10, Data: []byte{9, 9, 9, 9, 9, 9, 9}},
			},
		},
		{
			name:    "earlier patch is overwritten by later full write",
			records: []*Record{rec(S1, 0x12, 5), rec(S1, 0x10, 1, 2, 3, 4)},
			segments: []Segment{
				{Address: 0x10, Data: []byte{1, 2, 3, 4}},
			},
		},
		{
			name:    "top of the 32-bit space",
			records: []*Record{rec(S3, 0xFFFFFFFE, 1, 2), rec(S3, 0xFFFFFFFF, 3)},
			segments: []Segment{
				{Address: 0xFFFFFFFE, Data: []byte{1, 3}},
			},
		},
		{
			name:    "mixed families share one space",
			records: []*Record{rec(S1, 0xFFFE, 1, 2), rec(S2, 0x010000, 3), rec(S3, 0x010001, 4)},
			segments: []Segment{
				{Address: 0xFFFE, Data: []byte{1, 2, 3, 4}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Assemble(tt.records)
			assert.Equal(t, tt.segments, s.Segments())
		})
	}
}

func TestAssembleDoesNotAliasRecordData(t *testing.T) {
	r := rec(S1, 0x10, 1, 2)
	s := Assemble([]*Record{r})
	r.Data[0] = 0xFF

	b, err := s.ByteAt(0x10)
	require.NoError(t, err)
	assert.Equal(t, byte(1), b)
}

func TestSlice(t *testing.T) {
	s := Assemble([]*Record{rec(S1, 0x10, 1, 2), rec(S1, 0x14, 3)})

	got := s.Slice(0x0F, 7)
	want := []Cell{
		{},
		{Value: 1, Present: true},
		{Value: 2, Present: true},
		{},
		{},
		{Value: 3, Present: true},
		{},
	}
	assert.Equal(t, want, got)

	assert.Nil(t, s.Slice(0x10, 0))
	assert.Len(t, s.Slice(0xFFFFFFF0, 64), 64, "positions past the 32-bit space are gaps")
}

func TestSliceTopOfSpace(t *testing.T) {
	s := Assemble([]*Record{rec(S3, 0xFFFFFFFF, 0xAB)})

	got := s.Slice(0xFFFFFFFE, 4)
	assert.Equal(t, []Cell{{}, {Value: 0xAB, Present: true}, {}, {}}, got)
}

func TestBytes(t *testing.T) {
	s := Assemble([]*Record{rec(S1, 0x10, 1, 2, 3, 4), rec(S1, 0x20, 5)})

	b, err := s.Bytes(0x11, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3}, b)

	b, err = s.Bytes(0x10, 0)
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = s.Bytes(0x12, 4)
	assert.ErrorIs(t, err, ErrAddressNotPresent)

	_, err = s.Bytes(0x15, 1)
	assert.ErrorIs(t, err, ErrAddressNotPresent)
}

func TestAddressRangesAndBounds(t *testing.T) {
	s := Assemble([]*Record{rec(S1, 0x20, 1), rec(S1, 0x10, 1, 2), rec(S1, 0x12, 3)})

	assert.Equal(t, []AddressRange{
		{Start: 0x10, End: 0x13},
		{Start: 0x20, End: 0x21},
	}, s.AddressRanges())
	assert.Equal(t, uint64(4), s.Len())

	bounds, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, AddressRange{Start: 0x10, End: 0x21}, bounds)
	assert.Equal(t, uint64(0x11), bounds.Len())

	empty := Assemble(nil)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.AddressRanges())
	_, ok = empty.Bounds()
	assert.False(t, ok)
}

func TestToBinary(t *testing.T) {
	s := Assemble([]*Record{rec(S1, 0x10, 1, 2), rec(S1, 0x13, 3)})

	assert.Equal(t, []byte{0xFF, 1, 2, 0xFF, 3, 0xFF}, s.ToBinary(0x0F, 6, 0xFF))
	assert.Equal(t, []byte{0, 0}, s.ToBinary(0x100, 2, 0x00))
	assert.Empty(t, s.ToBinary(0, 0, 0xFF))
	assert.Empty(t, s.ToBinary(0, -1, 0xFF))
}

func TestEqual(t *testing.T) {
	a := Assemble([]*Record{rec(S1, 0x10, 1, 2)})
	b := Assemble([]*Record{rec(S1, 0x11, 2), rec(S1, 0x10, 1)})
	c := Assemble([]*Record{rec(S1, 0x10, 1, 3)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Assemble(nil)))

	var none *AddressSpace
	assert.False(t, a.Equal(nil))
	assert.True(t, Assemble(nil).Equal(nil))
	assert.True(t, none.Equal(Assemble(nil)))
	assert.True(t, none.Empty())
}

func BenchmarkAssemble(b *testing.B) {
	records := make([]*Record, 0, 4096)
	payload := make([]byte, 32)
	for i := 0; i < cap(records); i++ {
		records = append(records, NewRecord(S3, uint32(i*32), payload))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Assemble(records)
	}
}

func BenchmarkByteAt(b *testing.B) {
	records := make([]*Record, 0, 1024)
	payload := make([]byte, 16)
	for i := 0; i < cap(records); i++ {
		records = append(records, NewRecord(S3, uint32(i*64), payload))
	}
	s := Assemble(records)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.ByteAt(uint32(i % (1024 * 64)))
	}
}
