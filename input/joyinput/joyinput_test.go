package joyinput_test

import (
	"errors"
	"io"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/0xcafed00d/joystick"
	"github.com/Alia5/hidplus/input"
	"github.com/Alia5/hidplus/input/joyinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJoystick struct {
	state  joystick.State
	err    error
	closed bool
}

func (f *fakeJoystick) AxisCount() int   { return len(f.state.AxisData) }
func (f *fakeJoystick) ButtonCount() int { return 11 }
func (f *fakeJoystick) Name() string     { return "fake pad" }
func (f *fakeJoystick) Close()           { f.closed = true }

func (f *fakeJoystick) Read() (joystick.State, error) {
	return f.state, f.err
}

type rig struct {
	devices map[int]*fakeJoystick
	opens   int
	now     time.Time
	reader  *joyinput.Reader
}

func newRig() *rig { return newRigWithLayout(joyinput.LayoutXpad) }

func newRigWithLayout(l joyinput.Layout) *rig {
	r := &rig{devices: map[int]*fakeJoystick{}, now: time.Unix(1000, 0)}
	open := func(i int) (joystick.Joystick, error) {
		r.opens++
		if js, ok := r.devices[i]; ok {
			return js, nil
		}
		return nil, errors.New("no such device")
	}
	r.reader = joyinput.New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		joyinput.WithOpener(open),
		joyinput.WithClock(func() time.Time { return r.now }),
		joyinput.WithLayout(l),
	)
	return r
}

func neutral() joystick.State {
	// xpad triggers rest at the bottom of their range.
	return joystick.State{AxisData: []int{0, 0, -32767, 0, 0, -32767, 0, 0}}
}

func TestFirstReadFindsDevices(t *testing.T) {
	r := newRig()
	r.devices[1] = &fakeJoystick{state: neutral()}

	events, err := r.reader.Read()
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.True(t, r.reader.IsConnected(1))
	assert.False(t, r.reader.IsConnected(0))
	assert.Equal(t, joyinput.MaxDevices, r.opens)
}

func TestButtonsAndAxesProduceEvents(t *testing.T) {
	r := newRig()
	pad := &fakeJoystick{state: neutral()}
	r.devices[0] = pad
	_, err := r.reader.Read()
	require.NoError(t, err)

	st := neutral()
	st.Buttons = 1<<0 | 1<<7 // South, Start
	st.AxisData[1] = -32767  // left stick fully up
	st.AxisData[2] = 32767   // left trigger fully pressed
	st.AxisData[7] = -32767  // hat up
	pad.state = st

	events, err := r.reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []input.Event{
		input.NewButtonEvent(0, input.South, true),
		input.NewButtonEvent(0, input.LeftTrigger, true),
		input.NewButtonEvent(0, input.Start, true),
		input.NewButtonEvent(0, input.DPadUp, true),
		input.NewAxisEvent(0, input.LeftY, 1),
	}, events)
}

func TestRescanIsThrottled(t *testing.T) {
	r := newRig()
	_, err := r.reader.Read()
	require.NoError(t, err)
	opens := r.opens

	r.devices[2] = &fakeJoystick{state: neutral()}
	r.now = r.now.Add(500 * time.Millisecond)
	_, err = r.reader.Read()
	require.NoError(t, err)
	assert.Equal(t, opens, r.opens)
	assert.False(t, r.reader.IsConnected(2))

	r.now = r.now.Add(time.Second)
	_, err = r.reader.Read()
	require.NoError(t, err)
	assert.True(t, r.reader.IsConnected(2))
}

func TestReadErrorDisconnects(t *testing.T) {
	r := newRig()
	pad := &fakeJoystick{state: neutral()}
	r.devices[3] = pad
	_, err := r.reader.Read()
	require.NoError(t, err)

	pad.err = errors.New("device gone")
	events, err := r.reader.Read()
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.False(t, r.reader.IsConnected(3))
	assert.True(t, pad.closed)
}

func TestReconnectStartsFromNeutral(t *testing.T) {
	r := newRig()
	pad := &fakeJoystick{state: neutral()}
	pad.state.Buttons = 1 << 1
	r.devices[0] = pad

	events, err := r.reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []input.Event{input.NewButtonEvent(0, input.East, true)}, events)

	pad.err = errors.New("gone")
	_, err = r.reader.Read()
	require.NoError(t, err)

	pad.err = nil
	r.now = r.now.Add(2 * time.Second)
	events, err = r.reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []input.Event{input.NewButtonEvent(0, input.East, true)}, events)
}

func TestCloseClosesDevices(t *testing.T) {
	r := newRig()
	a, b := &fakeJoystick{state: neutral()}, &fakeJoystick{state: neutral()}
	r.devices[0], r.devices[5] = a, b
	_, err := r.reader.Read()
	require.NoError(t, err)

	require.NoError(t, r.reader.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.False(t, r.reader.IsConnected(0))
}

// press reads once at rest, then once with st and returns the second batch.
func press(t *testing.T, r *rig, rest, st joystick.State) []input.Event {
	t.Helper()
	pad := &fakeJoystick{state: rest}
	r.devices[0] = pad
	events, err := r.reader.Read()
	require.NoError(t, err)
	require.Empty(t, events)

	pad.state = st
	events, err = r.reader.Read()
	require.NoError(t, err)
	return events
}

func TestXpadTriggerCountsFromRest(t *testing.T) {
	cases := []struct {
		name    string
		raw     int
		pressed bool
	}{
		{"rest", -32767, false},
		{"slight", -30000, true},
		{"half", 0, true},
		{"full", 32767, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := neutral()
			st.AxisData[5] = c.raw
			events := press(t, newRig(), neutral(), st)
			if c.pressed {
				assert.Equal(t, []input.Event{input.NewButtonEvent(0, input.RightTrigger, true)}, events)
			} else {
				assert.Empty(t, events)
			}
		})
	}
}

func TestXpadWithoutTriggerAxes(t *testing.T) {
	rest := joystick.State{AxisData: []int{0, 0}}
	st := joystick.State{AxisData: []int{0, -32767}}

	events := press(t, newRig(), rest, st)
	assert.Equal(t, []input.Event{input.NewAxisEvent(0, input.LeftY, 1)}, events)
}

// winmm reports X Y Z R U plus two appended hat axes.
func winmmNeutral() joystick.State {
	return joystick.State{AxisData: []int{0, 0, 0, 0, 0, 0, 0}}
}

func TestWinMMTriggersShareZ(t *testing.T) {
	cases := []struct {
		name string
		z    int
		want input.Button
	}{
		{"left", 32768, input.LeftTrigger},
		{"right", -32767, input.RightTrigger},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := winmmNeutral()
			st.AxisData[2] = c.z
			events := press(t, newRigWithLayout(joyinput.LayoutWinMM), winmmNeutral(), st)
			assert.Equal(t, []input.Event{input.NewButtonEvent(0, c.want, true)}, events)
		})
	}
}

func TestWinMMRightStickAndHat(t *testing.T) {
	st := winmmNeutral()
	st.AxisData[3] = -32767 // R: right stick fully up
	st.AxisData[4] = 32768  // U: right stick fully right
	st.AxisData[5] = 32768  // hat right
	st.AxisData[6] = -32767 // hat up

	events := press(t, newRigWithLayout(joyinput.LayoutWinMM), winmmNeutral(), st)
	assert.Equal(t, []input.Event{
		input.NewButtonEvent(0, input.DPadUp, true),
		input.NewButtonEvent(0, input.DPadRight, true),
		input.NewAxisEvent(0, input.RightX, 1),
		input.NewAxisEvent(0, input.RightY, 1),
	}, events)
}

func TestWinMMWithoutHat(t *testing.T) {
	rest := joystick.State{AxisData: []int{0, 0, 0, 0, 0}}
	st := joystick.State{AxisData: []int{0, 0, 0, -32767, 32768}}

	events := press(t, newRigWithLayout(joyinput.LayoutWinMM), rest, st)
	assert.Equal(t, []input.Event{
		input.NewAxisEvent(0, input.RightX, 1),
		input.NewAxisEvent(0, input.RightY, 1),
	}, events)
}

func TestDefaultLayout(t *testing.T) {
	want := joyinput.LayoutXpad
	if runtime.GOOS == "windows" {
		want = joyinput.LayoutWinMM
	}
	assert.Equal(t, want, joyinput.DefaultLayout())
}
