package input_test

import (
	"testing"

	"github.com/Alia5/hidplus/input"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		want float32
	}{
		{name: "center", raw: 0, want: 0},
		{name: "max", raw: 32767, want: 1},
		{name: "min clamped", raw: -32768, want: -1},
		{name: "negative max", raw: -32767, want: -1},
		{name: "out of range high", raw: 40000, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, input.NormalizeAxis(tt.raw))
		})
	}
}

func TestTriggerPressed(t *testing.T) {
	assert.False(t, input.TriggerPressed(-32767))
	assert.False(t, input.TriggerPressed(0))
	assert.True(t, input.TriggerPressed(1))
}

func TestTrackerEmitsChangesInOrder(t *testing.T) {
	tr := input.NewTracker()

	var st input.State
	st.Buttons[input.Start] = true
	st.Buttons[input.North] = true
	st.Axes[input.RightY] = 0.5

	got := tr.Update(nil, 3, st)
	assert.Equal(t, []input.Event{
		input.NewButtonEvent(3, input.North, true),
		input.NewButtonEvent(3, input.Start, true),
		input.NewAxisEvent(3, input.RightY, 0.5),
	}, got)

	// Unchanged snapshot produces nothing.
	assert.Empty(t, tr.Update(nil, 3, st))

	st.Buttons[input.North] = false
	got = tr.Update(nil, 3, st)
	assert.Equal(t, []input.Event{input.NewButtonEvent(3, input.North, false)}, got)
}

func TestTrackerTracksSourcesIndependently(t *testing.T) {
	tr := input.NewTracker()
	var st input.State
	st.Buttons[input.South] = true

	assert.Len(t, tr.Update(nil, 1, st), 1)
	assert.Len(t, tr.Update(nil, 2, st), 1)
	assert.Empty(t, tr.Update(nil, 1, st))
}

func TestTrackerForget(t *testing.T) {
	tr := input.NewTracker()
	var st input.State
	st.Buttons[input.East] = true

	tr.Update(nil, 7, st)
	tr.Forget(7)
	got := tr.Update(nil, 7, st)
	assert.Equal(t, []input.Event{input.NewButtonEvent(7, input.East, true)}, got)
}

func TestEventPressed(t *testing.T) {
	assert.True(t, input.NewButtonEvent(1, input.Start, true).Pressed())
	assert.False(t, input.NewButtonEvent(1, input.Start, false).Pressed())
	assert.False(t, input.NewAxisEvent(1, input.LeftX, 1).Pressed())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "left-trigger", input.LeftTrigger.String())
	assert.Equal(t, "right-y", input.RightY.String())
	assert.Equal(t, "unknown", input.Button(200).String())
	assert.False(t, input.Axis(9).Valid())
}
