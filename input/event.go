package input

import "fmt"

// SourceID identifies a physical device within one backend's current
// session. Ids may be reused after a reconnect.
type SourceID int

// Source qualifies a SourceID with the index of the backend that owns it.
// Two backends may hand out the same raw id.
type Source struct {
	Backend int
	ID      SourceID
}

func (s Source) String() string {
	return fmt.Sprintf("%d:%d", s.Backend, s.ID)
}

type EventType uint8

const (
	ButtonEvent EventType = iota
	AxisEvent
)

// Event is a single canonical input change. Button is only meaningful for
// ButtonEvent, Axis only for AxisEvent.
//
// For buttons any non-zero Value means pressed.
type Event struct {
	Type   EventType
	Source SourceID
	Button Button
	Axis   Axis
	Value  float32
}

func NewButtonEvent(id SourceID, b Button, pressed bool) Event {
	var v float32
	if pressed {
		v = 1
	}
	return Event{Type: ButtonEvent, Source: id, Button: b, Value: v}
}

func NewAxisEvent(id SourceID, a Axis, value float32) Event {
	return Event{Type: AxisEvent, Source: id, Axis: a, Value: value}
}

// Pressed reports whether a button event represents a press.
func (e Event) Pressed() bool {
	return e.Type == ButtonEvent && e.Value != 0
}

func (e Event) String() string {
	switch e.Type {
	case ButtonEvent:
		return fmt.Sprintf("button %s=%g (source %d)", e.Button, e.Value, e.Source)
	case AxisEvent:
		return fmt.Sprintf("axis %s=%g (source %d)", e.Axis, e.Value, e.Source)
	default:
		return fmt.Sprintf("unknown event (source %d)", e.Source)
	}
}
