// Package switchpad models one emulated Nintendo Switch controller slot:
// which physical source drives it, which controller kind it emulates, and
// its current buttons and sticks.
package switchpad

import (
	"errors"
	"fmt"

	"github.com/Alia5/hidplus/input"
)

var (
	ErrAlreadyBound   = errors.New("pad is already bound")
	ErrNotBound       = errors.New("pad is not bound")
	ErrSourceMismatch = errors.New("event source does not own this pad")
	ErrInvalidKind    = errors.New("invalid controller kind")
)

// Stick is an (x, y) pair in [-StickMax, StickMax].
type Stick struct {
	X, Y int32
}

// Pad is either unbound (no source, KindNone, neutral) or bound to exactly
// one source with a real kind. The zero value is an unbound pad.
type Pad struct {
	bound   bool
	source  input.Source
	kind    Kind
	buttons uint32
	left    Stick
	right   Stick
}

// Assign binds the pad to src, emulating kind k, and resets it to neutral.
func (p *Pad) Assign(src input.Source, k Kind) error {
	if p.bound {
		return ErrAlreadyBound
	}
	if !k.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidKind, k)
	}
	p.reset()
	p.bound = true
	p.source = src
	p.kind = k
	return nil
}

// Disconnect unbinds the pad and resets it to neutral. Calling it on an
// unbound pad is a no-op.
func (p *Pad) Disconnect() {
	*p = Pad{}
}

// ApplyEvent updates the pad from an event produced by src.
func (p *Pad) ApplyEvent(src input.Source, ev input.Event) error {
	if !p.bound {
		return ErrNotBound
	}
	if src != p.source {
		return ErrSourceMismatch
	}
	switch ev.Type {
	case input.ButtonEvent:
		bit, err := MapButton(ev.Button, p.kind)
		if err != nil {
			return err
		}
		if ev.Value != 0 {
			p.buttons |= bit.Mask()
		} else {
			p.buttons &^= bit.Mask()
		}
	case input.AxisEvent:
		v := StickValue(ev.Value)
		switch ev.Axis {
		case input.LeftX:
			p.left.X = v
		case input.LeftY:
			p.left.Y = v
		case input.RightX:
			p.right.X = v
		case input.RightY:
			p.right.Y = v
		default:
			return fmt.Errorf("axis %d has no mapping", ev.Axis)
		}
	default:
		return fmt.Errorf("unknown event type %d", ev.Type)
	}
	return nil
}

func (p *Pad) reset() {
	p.buttons = 0
	p.left = Stick{}
	p.right = Stick{}
}

func (p *Pad) Bound() bool          { return p.bound }
func (p *Pad) Source() input.Source { return p.source }
func (p *Pad) Kind() Kind           { return p.kind }
func (p *Pad) Buttons() uint32      { return p.buttons }
func (p *Pad) Left() Stick          { return p.left }
func (p *Pad) Right() Stick         { return p.right }

// StickValue scales a normalized axis value to the stored integer range,
// truncating toward zero. Out-of-range input is clamped.
func StickValue(v float32) int32 {
	switch {
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	case v != v: // NaN
		return 0
	}
	return int32(v * StickMax)
}
