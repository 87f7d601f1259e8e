// Package wire encodes the fixed input record consumed by the console-side
// receiver.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	Magic     uint16 = 0x3276
	SlotCount        = 4

	headerSize = 4
	slotSize   = 2 + 8 + 4*4
	RecordSize = headerSize + SlotCount*slotSize // 108
)

var ErrBadMagic = errors.New("bad record magic")

// Slot is one controller's state as it appears on the wire. Only the low 28
// bits of Buttons are meaningful.
type Slot struct {
	Kind           uint16
	Buttons        uint64
	LeftX, LeftY   int32
	RightX, RightY int32
}

// Record is the whole datagram payload.
// Total size: 108 bytes (fixed), little-endian.
// Layout:
//
//	Magic:     2 bytes (u16, 0x3276)
//	Connected: 2 bytes (u16)
//	4 x slot:
//	  Kind:    2 bytes (u16, 0 = none)
//	  Buttons: 8 bytes (u64)
//	  LX, LY, RX, RY: 4 bytes each (i32)
type Record struct {
	Magic     uint16
	Connected uint16
	Slots     [SlotCount]Slot
}

// NewRecord builds a record with the correct magic.
func NewRecord(connected int, slots [SlotCount]Slot) Record {
	return Record{Magic: Magic, Connected: uint16(connected), Slots: slots}
}

// ResetRecord is the record sent while tearing every controller down: all
// slots neutral with kind 0. The header claims every slot so the receiver
// visits (and detaches) each of them; it only walks the first Connected
// entries.
func ResetRecord() Record {
	return NewRecord(SlotCount, [SlotCount]Slot{})
}

// MarshalBinary encodes r to exactly RecordSize bytes.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, RecordSize)
	binary.LittleEndian.PutUint16(b[0:2], r.Magic)
	binary.LittleEndian.PutUint16(b[2:4], r.Connected)

	o := headerSize
	for _, s := range r.Slots {
		binary.LittleEndian.PutUint16(b[o:o+2], s.Kind)
		binary.LittleEndian.PutUint64(b[o+2:o+10], s.Buttons)
		binary.LittleEndian.PutUint32(b[o+10:o+14], uint32(s.LeftX))
		binary.LittleEndian.PutUint32(b[o+14:o+18], uint32(s.LeftY))
		binary.LittleEndian.PutUint32(b[o+18:o+22], uint32(s.RightX))
		binary.LittleEndian.PutUint32(b[o+22:o+26], uint32(s.RightY))
		o += slotSize
	}
	return b, nil
}

// UnmarshalBinary decodes a record and checks its magic. Trailing bytes are
// ignored.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) < RecordSize {
		return io.ErrUnexpectedEOF
	}
	magic := binary.LittleEndian.Uint16(data[0:2])
	if magic != Magic {
		return fmt.Errorf("%w: 0x%04x", ErrBadMagic, magic)
	}
	r.Magic = magic
	r.Connected = binary.LittleEndian.Uint16(data[2:4])

	o := headerSize
	for i := range r.Slots {
		r.Slots[i] = Slot{
			Kind:    binary.LittleEndian.Uint16(data[o : o+2]),
			Buttons: binary.LittleEndian.Uint64(data[o+2 : o+10]),
			LeftX:   int32(binary.LittleEndian.Uint32(data[o+10 : o+14])),
			LeftY:   int32(binary.LittleEndian.Uint32(data[o+14 : o+18])),
			RightX:  int32(binary.LittleEndian.Uint32(data[o+18 : o+22])),
			RightY:  int32(binary.LittleEndian.Uint32(data[o+22 : o+26])),
		}
		o += slotSize
	}
	return nil
}

// Encode is MarshalBinary without the always-nil error.
func Encode(r Record) []byte {
	b, _ := r.MarshalBinary()
	return b
}
