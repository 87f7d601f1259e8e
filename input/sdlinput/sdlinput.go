// Package sdlinput reads gamepads through SDL3's gamepad API. SDL normalizes
// button positions across controller families, so the mapping below is the
// same for every device it recognizes.
package sdlinput

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/Alia5/hidplus/input"
	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/sdl"
)

// Name identifies this backend in logs.
const Name = "sdl"

var buttonMap = [...]struct {
	canon input.Button
	sdl   sdl.GamepadButton
}{
	{input.North, sdl.GAMEPAD_BUTTON_NORTH},
	{input.South, sdl.GAMEPAD_BUTTON_SOUTH},
	{input.East, sdl.GAMEPAD_BUTTON_EAST},
	{input.West, sdl.GAMEPAD_BUTTON_WEST},
	{input.LeftBumper, sdl.GAMEPAD_BUTTON_LEFT_SHOULDER},
	{input.RightBumper, sdl.GAMEPAD_BUTTON_RIGHT_SHOULDER},
	{input.Start, sdl.GAMEPAD_BUTTON_START},
	{input.Select, sdl.GAMEPAD_BUTTON_BACK},
	{input.DPadUp, sdl.GAMEPAD_BUTTON_DPAD_UP},
	{input.DPadDown, sdl.GAMEPAD_BUTTON_DPAD_DOWN},
	{input.DPadLeft, sdl.GAMEPAD_BUTTON_DPAD_LEFT},
	{input.DPadRight, sdl.GAMEPAD_BUTTON_DPAD_RIGHT},
}

var axisMap = [...]struct {
	canon  input.Axis
	sdl    sdl.GamepadAxis
	invert bool
}{
	{input.LeftX, sdl.GAMEPAD_AXIS_LEFTX, false},
	{input.LeftY, sdl.GAMEPAD_AXIS_LEFTY, true},
	{input.RightX, sdl.GAMEPAD_AXIS_RIGHTX, false},
	{input.RightY, sdl.GAMEPAD_AXIS_RIGHTY, true},
}

// gamepad is the part of *sdl.Gamepad the state mapping needs.
type gamepad interface {
	Button(sdl.GamepadButton) bool
	Axis(sdl.GamepadAxis) int16
}

// readState maps one SDL gamepad to a canonical snapshot. SDL reports Y
// axes growing downwards; canonical Y grows upwards.
func readState(g gamepad) input.State {
	var st input.State
	for _, m := range buttonMap {
		st.Buttons[m.canon] = g.Button(m.sdl)
	}
	st.Buttons[input.LeftTrigger] = input.TriggerPressed(int(g.Axis(sdl.GAMEPAD_AXIS_LEFT_TRIGGER)))
	st.Buttons[input.RightTrigger] = input.TriggerPressed(int(g.Axis(sdl.GAMEPAD_AXIS_RIGHT_TRIGGER)))
	for _, m := range axisMap {
		v := input.NormalizeAxis(int(g.Axis(m.sdl)))
		if m.invert {
			v = -v
		}
		st.Axes[m.canon] = v
	}
	return st
}

type Reader struct {
	logger    *slog.Logger
	unload    func()
	pads      map[sdl.JoystickID]*sdl.Gamepad
	tracker   *input.Tracker
	connected map[input.SourceID]bool
}

// Open loads the embedded SDL library and initializes its gamepad
// subsystem. Close releases both.
func Open(logger *slog.Logger) (*Reader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	unload := binsdl.Load().Unload
	if err := sdl.Init(sdl.INIT_GAMEPAD); err != nil {
		unload()
		return nil, fmt.Errorf("init SDL gamepad subsystem: %w", err)
	}
	return &Reader{
		logger:    logger,
		unload:    unload,
		pads:      make(map[sdl.JoystickID]*sdl.Gamepad),
		tracker:   input.NewTracker(),
		connected: make(map[input.SourceID]bool),
	}, nil
}

func (r *Reader) Name() string { return Name }

// Read refreshes SDL's gamepad state, opens newly attached gamepads, closes
// removed ones and returns what changed since the previous call.
func (r *Reader) Read() ([]input.Event, error) {
	sdl.UpdateGamepads()
	ids, err := sdl.GetGamepads()
	if err != nil {
		return nil, fmt.Errorf("list gamepads: %w", err)
	}

	present := make(map[sdl.JoystickID]bool, len(ids))
	for _, id := range ids {
		present[id] = true
		if _, ok := r.pads[id]; ok {
			continue
		}
		g, err := id.OpenGamepad()
		if err != nil {
			r.logger.Warn("Failed to open gamepad", "id", id, "error", err)
			continue
		}
		r.pads[id] = g
		r.logger.Info("Gamepad found", "backend", Name, "id", id)
	}
	for id, g := range r.pads {
		if present[id] {
			continue
		}
		g.Close()
		delete(r.pads, id)
		r.tracker.Forget(input.SourceID(id))
		r.logger.Info("Gamepad removed", "backend", Name, "id", id)
	}

	clear(r.connected)
	var events []input.Event
	for _, id := range slices.Sorted(maps.Keys(r.pads)) {
		sid := input.SourceID(id)
		r.connected[sid] = true
		events = r.tracker.Update(events, sid, readState(r.pads[id]))
	}
	return events, nil
}

// IsConnected reports presence as of the last Read.
func (r *Reader) IsConnected(id input.SourceID) bool {
	return r.connected[id]
}

func (r *Reader) Close() error {
	for id, g := range r.pads {
		g.Close()
		delete(r.pads, id)
	}
	sdl.Quit()
	r.unload()
	return nil
}
