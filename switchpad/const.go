package switchpad

// Bit is a button's position in the 28-bit key mask understood by the
// receiver. Values are fixed by the receiver firmware.
type Bit uint8

const (
	BitA      Bit = 0
	BitB      Bit = 1
	BitX      Bit = 2
	BitY      Bit = 3
	BitLStick Bit = 4 // left stick click
	BitRStick Bit = 5 // right stick click
	BitL      Bit = 6
	BitR      Bit = 7
	BitZL     Bit = 8
	BitZR     Bit = 9
	BitPlus   Bit = 10
	BitMinus  Bit = 11
	BitDLeft  Bit = 12
	BitDUp    Bit = 13
	BitDRight Bit = 14
	BitDDown  Bit = 15

	// Stick directions and sideways SL/SR. Never produced by MapButton.
	BitLStickLeft  Bit = 16
	BitLStickUp    Bit = 17
	BitLStickRight Bit = 18
	BitLStickDown  Bit = 19
	BitRStickLeft  Bit = 20
	BitRStickUp    Bit = 21
	BitRStickRight Bit = 22
	BitRStickDown  Bit = 23
	BitSLLeft      Bit = 24
	BitSRLeft      Bit = 25
	BitSLRight     Bit = 26
	BitSRRight     Bit = 27
)

const (
	MaskBits   = 28
	ButtonMask = uint32(1)<<MaskBits - 1
)

// Mask returns the single-bit mask for b.
func (b Bit) Mask() uint32 {
	return uint32(1) << b
}

// StickMax is the stored value of a fully deflected stick axis.
const StickMax = 32767
