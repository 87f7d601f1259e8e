// Package slots assigns physical gamepads to the receiver's fixed controller
// slots and routes their input to the matching virtual pad.
package slots

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alia5/hidplus/input"
	"github.com/Alia5/hidplus/switchpad"
	"github.com/Alia5/hidplus/wire"
)

// AssignmentError reports that no slot could take a gamepad.
type AssignmentError struct {
	Source input.Source
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("couldn't assign gamepad (id: %s) since there were no slots available", e.Source)
}

// Manager owns the slot pads and the source to slot table. It is not safe
// for concurrent use; the session drives it from a single loop.
type Manager struct {
	cfg     Config
	readers []input.Reader
	logger  *slog.Logger

	pads  [Count]switchpad.Pad
	table map[input.Source]int
	// held buttons of sources that are not bound yet, for gesture detection
	held map[input.Source]*[input.ButtonCount]bool
}

// New creates a manager with every slot unbound. readers[i] is backend i;
// sources are qualified by that index.
func New(cfg Config, readers []input.Reader, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:     cfg,
		readers: readers,
		logger:  logger,
		table:   make(map[input.Source]int),
		held:    make(map[input.Source]*[input.ButtonCount]bool),
	}
}

// Acquire binds src to the first eligible slot and returns a status message
// naming the 1-based slot. A slot is eligible when it has a configured kind
// and is either unbound or bound to a source its backend no longer reports.
func (m *Manager) Acquire(src input.Source) (string, error) {
	if i, ok := m.table[src]; ok && m.pads[i].Source() == src && m.pads[i].Bound() {
		return fmt.Sprintf("Gamepad (id: %s) is already connected to slot %d.", src, i+1), nil
	}
	for i := range m.pads {
		kind := m.cfg.Kinds[i]
		if !kind.Valid() {
			continue
		}
		pad := &m.pads[i]
		if pad.Bound() {
			if m.alive(pad.Source()) {
				continue
			}
			m.release(i)
		}
		if err := pad.Assign(src, kind); err != nil {
			return "", fmt.Errorf("slot %d: %w", i+1, err)
		}
		m.table[src] = i
		delete(m.held, src)
		return fmt.Sprintf("Gamepad (id: %s) connected to slot %d.", src, i+1), nil
	}
	return "", &AssignmentError{Source: src}
}

// Dispatch routes one event from backend to its bound pad. Events from
// unbound sources only feed bind gesture detection.
func (m *Manager) Dispatch(backend int, ev input.Event) {
	src := input.Source{Backend: backend, ID: ev.Source}
	if i, ok := m.table[src]; ok {
		pad := &m.pads[i]
		if pad.Bound() && pad.Source() == src {
			if err := pad.ApplyEvent(src, ev); err != nil {
				m.logger.Debug("Dropped event", "slot", i+1, "event", ev.String(), "error", err)
			}
			return
		}
		delete(m.table, src)
	}

	if !m.gesture(src, ev) {
		return
	}
	msg, err := m.Acquire(src)
	if err != nil {
		var ae *AssignmentError
		if errors.As(err, &ae) {
			m.logger.Warn(err.Error())
		} else {
			m.logger.Error("Failed to assign gamepad", "source", src.String(), "error", err)
		}
		return
	}
	m.logger.Info(msg)
}

// gesture records ev for an unbound source and reports whether it completes
// the configured bind gesture. Only a transition to pressed counts.
func (m *Manager) gesture(src input.Source, ev input.Event) bool {
	if ev.Type != input.ButtonEvent || !ev.Button.Valid() {
		return false
	}
	held, ok := m.held[src]
	if !ok {
		held = new([input.ButtonCount]bool)
		m.held[src] = held
	}
	was := held[ev.Button]
	held[ev.Button] = ev.Pressed()
	if was || !ev.Pressed() {
		return false
	}

	switch m.cfg.Gesture {
	case GestureStart:
		return ev.Button == input.Start
	case GestureTriggers:
		isTrigger := ev.Button == input.LeftTrigger || ev.Button == input.RightTrigger
		return isTrigger && held[input.LeftTrigger] && held[input.RightTrigger]
	default:
		return false
	}
}

// Sweep unbinds every slot whose source its backend no longer reports, and
// forgets gesture state of vanished unbound sources.
func (m *Manager) Sweep() {
	for i := range m.pads {
		pad := &m.pads[i]
		if !pad.Bound() || m.alive(pad.Source()) {
			continue
		}
		m.logger.Info("Gamepad disconnected", "slot", i+1, "source", pad.Source().String())
		m.release(i)
	}
	for src := range m.held {
		if !m.alive(src) {
			delete(m.held, src)
		}
	}
}

// Poll reads one batch from every backend and dispatches it in order. A
// failing backend is logged and skipped for this round.
func (m *Manager) Poll() {
	for b, r := range m.readers {
		events, err := r.Read()
		if err != nil {
			m.logger.Warn("Failed to read input", "backend", r.Name(), "error", err)
			continue
		}
		for _, ev := range events {
			m.Dispatch(b, ev)
		}
	}
}

// Reset unbinds every slot.
func (m *Manager) Reset() {
	for i := range m.pads {
		m.pads[i].Disconnect()
	}
	clear(m.table)
	clear(m.held)
}

// Connected returns the number of bound slots.
func (m *Manager) Connected() int {
	n := 0
	for i := range m.pads {
		if m.pads[i].Bound() {
			n++
		}
	}
	return n
}

// Slot returns a copy of pad i.
func (m *Manager) Slot(i int) switchpad.Pad {
	return m.pads[i]
}

// Lookup returns the slot bound to src.
func (m *Manager) Lookup(src input.Source) (int, bool) {
	i, ok := m.table[src]
	return i, ok
}

// Snapshot builds the wire record for the current slot states.
func (m *Manager) Snapshot() wire.Record {
	var slots [Count]wire.Slot
	for i := range m.pads {
		pad := &m.pads[i]
		if !pad.Bound() {
			continue
		}
		l, r := pad.Left(), pad.Right()
		slots[i] = wire.Slot{
			Kind:    pad.Kind().Code(),
			Buttons: uint64(pad.Buttons() & switchpad.ButtonMask),
			LeftX:   l.X,
			LeftY:   l.Y,
			RightX:  r.X,
			RightY:  r.Y,
		}
	}
	return wire.NewRecord(m.Connected(), slots)
}

func (m *Manager) alive(src input.Source) bool {
	if src.Backend < 0 || src.Backend >= len(m.readers) {
		return false
	}
	return m.readers[src.Backend].IsConnected(src.ID)
}

func (m *Manager) release(i int) {
	pad := &m.pads[i]
	if j, ok := m.table[pad.Source()]; ok && j == i {
		delete(m.table, pad.Source())
	}
	pad.Disconnect()
}
