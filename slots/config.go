package slots

import (
	"fmt"
	"strings"

	"github.com/Alia5/hidplus/switchpad"
	"github.com/Alia5/hidplus/wire"
)

// Count is the number of controller slots the receiver emulates.
const Count = wire.SlotCount

// Gesture selects the input that asks for an unbound gamepad to be assigned
// a slot.
type Gesture uint8

const (
	// GestureTriggers binds on the press that leaves both triggers held.
	GestureTriggers Gesture = iota
	// GestureStart binds when Start is pressed.
	GestureStart
)

func (g Gesture) String() string {
	switch g {
	case GestureTriggers:
		return "triggers"
	case GestureStart:
		return "start"
	default:
		return fmt.Sprintf("gesture(%d)", uint8(g))
	}
}

func ParseGesture(s string) (Gesture, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "triggers", "":
		return GestureTriggers, nil
	case "start":
		return GestureStart, nil
	default:
		return 0, fmt.Errorf("unknown bind gesture %q (expected triggers or start)", s)
	}
}

// Config is the static per-slot setup. A slot whose kind is KindNone never
// accepts a gamepad.
type Config struct {
	Kinds   [Count]switchpad.Kind
	Gesture Gesture
}

// DefaultConfig emulates a Pro Controller on every slot.
func DefaultConfig() Config {
	return Config{
		Kinds: [Count]switchpad.Kind{
			switchpad.KindProController,
			switchpad.KindProController,
			switchpad.KindProController,
			switchpad.KindProController,
		},
		Gesture: GestureTriggers,
	}
}
