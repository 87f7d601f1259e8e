package wire_test

import (
	"io"
	"testing"

	"github.com/Alia5/hidplus/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLayout(t *testing.T) {
	type testCase struct {
		name   string
		record wire.Record
		check  func(t *testing.T, b []byte)
	}

	cases := []testCase{
		{
			name:   "empty",
			record: wire.NewRecord(0, [wire.SlotCount]wire.Slot{}),
			check: func(t *testing.T, b []byte) {
				want := make([]byte, wire.RecordSize)
				want[0], want[1] = 0x76, 0x32
				assert.Equal(t, want, b)
			},
		},
		{
			name: "first slot pro with A and full right stick",
			record: wire.NewRecord(1, [wire.SlotCount]wire.Slot{
				{Kind: 1, Buttons: 1, LeftX: -1, RightX: 32767},
			}),
			check: func(t *testing.T, b []byte) {
				assert.Equal(t, []byte{
					0x76, 0x32, // magic
					0x01, 0x00, // connected
					0x01, 0x00, // kind
					0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // buttons
					0xFF, 0xFF, 0xFF, 0xFF, // lx
					0x00, 0x00, 0x00, 0x00, // ly
					0xFF, 0x7F, 0x00, 0x00, // rx
					0x00, 0x00, 0x00, 0x00, // ry
				}, b[:30])
				assert.Equal(t, make([]byte, wire.RecordSize-30), b[30:])
			},
		},
		{
			name: "last slot",
			record: wire.NewRecord(1, [wire.SlotCount]wire.Slot{
				3: {Kind: 3, Buttons: 1 << 27, RightY: -32767},
			}),
			check: func(t *testing.T, b []byte) {
				o := 4 + 3*26
				assert.Equal(t, []byte{0x03, 0x00}, b[o:o+2])
				assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00}, b[o+2:o+10])
				assert.Equal(t, []byte{0x01, 0x80, 0xFF, 0xFF}, b[o+22:o+26])
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := c.record.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, b, 108)
			c.check(t, b)
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	in := wire.NewRecord(3, [wire.SlotCount]wire.Slot{
		{Kind: 1, Buttons: 0x0FFFFFFF, LeftX: 32767, LeftY: -32767, RightX: 12, RightY: -12},
		{Kind: 2, Buttons: 1 << 12, LeftX: -1},
		{},
		{Kind: 3, Buttons: 1 << 15, RightY: 100},
	})

	var out wire.Record
	require.NoError(t, out.UnmarshalBinary(wire.Encode(in)))
	assert.Equal(t, in, out)
}

func TestRecordUnmarshalErrors(t *testing.T) {
	var r wire.Record
	assert.ErrorIs(t, r.UnmarshalBinary(make([]byte, wire.RecordSize-1)), io.ErrUnexpectedEOF)
	assert.ErrorIs(t, r.UnmarshalBinary(make([]byte, wire.RecordSize)), wire.ErrBadMagic)
}

func TestResetRecord(t *testing.T) {
	r := wire.ResetRecord()
	assert.Equal(t, wire.Magic, r.Magic)
	assert.Equal(t, uint16(wire.SlotCount), r.Connected)
	for _, s := range r.Slots {
		assert.Equal(t, wire.Slot{}, s)
	}
}
