package input

// Button is a backend-agnostic gamepad button. Face buttons are positional
// (North is the top face button regardless of its printed label).
type Button uint8

const (
	North Button = iota
	South
	East
	West
	LeftBumper
	RightBumper
	LeftTrigger
	RightTrigger
	Start
	Select
	DPadUp
	DPadDown
	DPadLeft
	DPadRight

	ButtonCount = int(DPadRight) + 1
)

// Axis is a backend-agnostic analog stick axis, normalized to [-1, 1].
// Positive Y is up.
type Axis uint8

const (
	LeftX Axis = iota
	LeftY
	RightX
	RightY

	AxisCount = int(RightY) + 1
)

var buttonNames = [ButtonCount]string{
	"north", "south", "east", "west",
	"left-bumper", "right-bumper", "left-trigger", "right-trigger",
	"start", "select",
	"dpad-up", "dpad-down", "dpad-left", "dpad-right",
}

var axisNames = [AxisCount]string{"left-x", "left-y", "right-x", "right-y"}

func (b Button) String() string {
	if int(b) < ButtonCount {
		return buttonNames[b]
	}
	return "unknown"
}

// Valid reports whether b is one of the canonical buttons.
func (b Button) Valid() bool { return int(b) < ButtonCount }

func (a Axis) String() string {
	if int(a) < AxisCount {
		return axisNames[a]
	}
	return "unknown"
}

// Valid reports whether a is one of the canonical axes.
func (a Axis) Valid() bool { return int(a) < AxisCount }
