package switchpad

import (
	"fmt"

	"github.com/Alia5/hidplus/input"
)

// Bits shared by every kind.
var commonBits = map[input.Button]Bit{
	input.LeftBumper:   BitL,
	input.RightBumper:  BitR,
	input.LeftTrigger:  BitZL,
	input.RightTrigger: BitZR,
	input.Start:        BitPlus,
	input.Select:       BitMinus,
	input.DPadUp:       BitDUp,
	input.DPadDown:     BitDDown,
	input.DPadLeft:     BitDLeft,
	input.DPadRight:    BitDRight,
}

// Face buttons, indexed North, East, South, West.
//
// A single sideways Joy-Con has no face buttons of its own on the console
// side: its four buttons are reported as the D-pad, rotated to match how the
// controller is held.
var faceBits = map[Kind][4]Bit{
	KindProController:       {BitX, BitA, BitB, BitY},
	KindJoyConLeftSideways:  {BitDRight, BitDDown, BitDLeft, BitDUp},
	KindJoyConRightSideways: {BitDLeft, BitDUp, BitDRight, BitDDown},
}

// MapButton returns the key mask bit that b sets on a controller of kind k.
// Every canonical button maps for every bindable kind.
func MapButton(b input.Button, k Kind) (Bit, error) {
	face, ok := faceBits[k]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidKind, k)
	}
	switch b {
	case input.North:
		return face[0], nil
	case input.East:
		return face[1], nil
	case input.South:
		return face[2], nil
	case input.West:
		return face[3], nil
	}
	if bit, ok := commonBits[b]; ok {
		return bit, nil
	}
	return 0, fmt.Errorf("button %d has no mapping", b)
}
