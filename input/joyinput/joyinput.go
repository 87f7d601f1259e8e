// Package joyinput is a fallback backend over the operating system's plain
// joystick interface (Linux js devices, Windows winmm). Axis order differs
// between the two, so the reader picks a Layout per platform.
package joyinput

import (
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"time"

	"github.com/0xcafed00d/joystick"

	"github.com/Alia5/hidplus/input"
)

const (
	Name = "joystick"

	// MaxDevices is how many device indices a scan probes.
	MaxDevices     = 8
	rescanInterval = time.Second
)

// Layout is the axis order a joystick driver reports for an XInput-style pad.
type Layout uint8

const (
	// LayoutXpad is the Linux js order: LX LY LT RX RY RT HatX HatY. The
	// triggers rest at the bottom of the axis range.
	LayoutXpad Layout = iota
	// LayoutWinMM is the winmm X Y Z R U order. Both triggers share Z,
	// R is the right stick's Y, U its X, and the POV hat is appended after
	// the last axis.
	LayoutWinMM
)

func (l Layout) String() string {
	if l == LayoutWinMM {
		return "winmm"
	}
	return "xpad"
}

// DefaultLayout returns the layout of the running platform's driver.
func DefaultLayout() Layout {
	if runtime.GOOS == "windows" {
		return LayoutWinMM
	}
	return LayoutXpad
}

// Button bits, shared by both layouts.
var buttonBits = [...]struct {
	bit   uint
	canon input.Button
}{
	{0, input.South},
	{1, input.East},
	{2, input.West},
	{3, input.North},
	{4, input.LeftBumper},
	{5, input.RightBumper},
	{6, input.Select},
	{7, input.Start},
}

// xpad axis indices.
const (
	axisLeftX = iota
	axisLeftY
	axisLeftTrigger
	axisRightX
	axisRightY
	axisRightTrigger
	axisHatX
	axisHatY
)

// winmm axis indices.
const (
	wmX = iota
	wmY
	wmZ
	wmR
	wmU
	wmAxes
)

// Z centres within rounding of zero after the driver rescales it.
const wmTriggerDeadzone = 1024

// mapState converts one raw reading. axisCount is the device's reported
// axis count, which on winmm includes the two appended hat axes. Y axes are
// inverted so that up is positive, and the hat becomes the DPad.
func mapState(l Layout, js joystick.State, axisCount int) input.State {
	axis := func(i int) int {
		if i >= 0 && i < len(js.AxisData) {
			return js.AxisData[i]
		}
		return 0
	}

	var st input.State
	for _, b := range buttonBits {
		st.Buttons[b.canon] = js.Buttons&(1<<b.bit) != 0
	}

	var hx, hy int
	switch l {
	case LayoutWinMM:
		z := axis(wmZ)
		st.Buttons[input.LeftTrigger] = z > wmTriggerDeadzone
		st.Buttons[input.RightTrigger] = z < -wmTriggerDeadzone
		if axisCount >= wmAxes+2 {
			hx, hy = axis(axisCount-2), axis(axisCount-1)
		}
		st.Axes[input.LeftX] = input.NormalizeAxis(axis(wmX))
		st.Axes[input.LeftY] = -input.NormalizeAxis(axis(wmY))
		st.Axes[input.RightX] = input.NormalizeAxis(axis(wmU))
		st.Axes[input.RightY] = -input.NormalizeAxis(axis(wmR))
	default:
		// A pad without trigger axes never reports them pressed.
		if axisRightTrigger < len(js.AxisData) {
			st.Buttons[input.LeftTrigger] = input.TriggerPressed(triggerTravel(axis(axisLeftTrigger)))
			st.Buttons[input.RightTrigger] = input.TriggerPressed(triggerTravel(axis(axisRightTrigger)))
		}
		hx, hy = axis(axisHatX), axis(axisHatY)
		st.Axes[input.LeftX] = input.NormalizeAxis(axis(axisLeftX))
		st.Axes[input.LeftY] = -input.NormalizeAxis(axis(axisLeftY))
		st.Axes[input.RightX] = input.NormalizeAxis(axis(axisRightX))
		st.Axes[input.RightY] = -input.NormalizeAxis(axis(axisRightY))
	}

	st.Buttons[input.DPadLeft] = hx < 0
	st.Buttons[input.DPadRight] = hx > 0
	st.Buttons[input.DPadUp] = hy < 0
	st.Buttons[input.DPadDown] = hy > 0
	return st
}

// triggerTravel maps a full-range xpad trigger axis onto 0..AxisMax.
func triggerTravel(raw int) int {
	return (raw + input.AxisMax) / 2
}

// Opener opens the joystick at a device index.
type Opener func(index int) (joystick.Joystick, error)

type Option func(*Reader)

// WithOpener replaces joystick.Open.
func WithOpener(open Opener) Option {
	return func(r *Reader) { r.open = open }
}

// WithLayout overrides DefaultLayout.
func WithLayout(l Layout) Option {
	return func(r *Reader) { r.layout = l }
}

// WithClock replaces time.Now for rescan throttling.
func WithClock(now func() time.Time) Option {
	return func(r *Reader) { r.now = now }
}

type Reader struct {
	logger   *slog.Logger
	open     Opener
	now      func() time.Time
	layout   Layout
	devices  map[int]joystick.Joystick
	tracker  *input.Tracker
	lastScan time.Time
}

func New(logger *slog.Logger, opts ...Option) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reader{
		logger:  logger,
		open:    joystick.Open,
		now:     time.Now,
		layout:  DefaultLayout(),
		devices: make(map[int]joystick.Joystick),
		tracker: input.NewTracker(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Reader) Name() string { return Name }

// Read probes for new devices at most once per rescan interval, then reads
// every open device. A device whose read fails is closed and treated as
// disconnected.
func (r *Reader) Read() ([]input.Event, error) {
	if now := r.now(); r.lastScan.IsZero() || now.Sub(r.lastScan) >= rescanInterval {
		r.scan()
		r.lastScan = now
	}

	var events []input.Event
	for _, idx := range slices.Sorted(maps.Keys(r.devices)) {
		js := r.devices[idx]
		raw, err := js.Read()
		if err != nil {
			r.logger.Info("Gamepad removed", "backend", Name, "id", idx, "error", err)
			r.drop(idx)
			continue
		}
		events = r.tracker.Update(events, input.SourceID(idx), mapState(r.layout, raw, js.AxisCount()))
	}
	return events, nil
}

func (r *Reader) scan() {
	for i := 0; i < MaxDevices; i++ {
		if _, ok := r.devices[i]; ok {
			continue
		}
		js, err := r.open(i)
		if err != nil {
			continue
		}
		r.devices[i] = js
		r.logger.Info("Gamepad found",
			"backend", Name,
			"id", i,
			"name", js.Name(),
			"axes", js.AxisCount(),
			"buttons", js.ButtonCount(),
			"layout", r.layout.String())
	}
}

func (r *Reader) drop(idx int) {
	if js, ok := r.devices[idx]; ok {
		js.Close()
		delete(r.devices, idx)
	}
	r.tracker.Forget(input.SourceID(idx))
}

func (r *Reader) IsConnected(id input.SourceID) bool {
	_, ok := r.devices[int(id)]
	return ok
}

func (r *Reader) Close() error {
	for idx := range r.devices {
		r.drop(idx)
	}
	return nil
}
