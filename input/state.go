package input

import "math"

// AxisMax is the magnitude that maps to a fully deflected axis.
const AxisMax = math.MaxInt16

// State is a complete polled snapshot of one device.
type State struct {
	Buttons [ButtonCount]bool
	Axes    [AxisCount]float32
}

// NormalizeAxis converts a raw signed 16-bit range reading to [-1, 1].
// -32768 is clamped to -1.
func NormalizeAxis(raw int) float32 {
	v := float32(raw) / AxisMax
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}

// TriggerPressed reports whether an analog trigger reading counts as a press
// of the trigger's pseudo-button.
func TriggerPressed(raw int) bool {
	return raw > 0
}

// Tracker turns successive State snapshots into change events.
// The zero value is not usable; use NewTracker.
type Tracker struct {
	last map[SourceID]State
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[SourceID]State)}
}

// Update records st as the current state of id and appends one event per
// button or axis that differs from the previous snapshot to dst. A device
// seen for the first time is compared against the neutral state. Buttons
// are emitted before axes, each in canonical order.
func (t *Tracker) Update(dst []Event, id SourceID, st State) []Event {
	prev := t.last[id]
	for i, pressed := range st.Buttons {
		if pressed != prev.Buttons[i] {
			dst = append(dst, NewButtonEvent(id, Button(i), pressed))
		}
	}
	for i, v := range st.Axes {
		if v != prev.Axes[i] {
			dst = append(dst, NewAxisEvent(id, Axis(i), v))
		}
	}
	t.last[id] = st
	return dst
}

// Forget drops the remembered state of id so that a device reusing the id
// starts from neutral.
func (t *Tracker) Forget(id SourceID) {
	delete(t.last, id)
}
