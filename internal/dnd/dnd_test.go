package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Lifecycle(t *testing.T) {
	s := NewSource(true)
	assert.Equal(t, StateIdle, s.State())

	started := s.Start(Payload{Type: "tab", ID: "t1"})
	require.True(t, started)
	assert.Equal(t, StateDragging, s.State())
	assert.Equal(t, "t1", s.Payload().ID)

	// a second start during an active drag is ignored
	assert.False(t, s.Start(Payload{Type: "tab", ID: "t2"}))
	assert.Equal(t, "t1", s.Payload().ID)

	s.End()
	assert.Equal(t, StateIdle, s.State())
}

func TestSource_DisabledNeverDrags(t *testing.T) {
	s := NewSource(false)
	assert.False(t, s.Start(Payload{Type: "tab"}))
	assert.Equal(t, StateIdle, s.State())
}

func TestTarget_HoverOnlyForAcceptedTypes(t *testing.T) {
	tgt := NewTarget(true, []string{"tab"}, Rect{Width: 100, Height: 10}, nil)

	tgt.Enter("note")
	assert.Equal(t, StateIdle, tgt.State())

	tgt.Enter("tab")
	assert.Equal(t, StateHover, tgt.State())
}

func TestTarget_LeaveUsesBoundsTest(t *testing.T) {
	tgt := NewTarget(true, []string{"tab"}, Rect{X: 10, Y: 10, Width: 100, Height: 20}, nil)
	tgt.Enter("tab")

	// leave fired while the pointer is still inside (child boundary)
	tgt.Leave(50, 15)
	assert.Equal(t, StateHover, tgt.State())

	tgt.Leave(5, 5)
	assert.Equal(t, StateIdle, tgt.State())
}

func TestTarget_DropEmitsReorder(t *testing.T) {
	tgt := NewTarget(true, []string{"tab"}, Rect{Width: 100, Height: 10}, nil)
	var got *Drop
	tgt.OnDrop = func(d Drop) { got = &d }

	candidates := []Span{{Start: 0, End: 20}, {Start: 20, End: 40}, {Start: 40, End: 60}}
	emitted := tgt.HandleDrop(`{"type":"tab","id":"t2","index":2}`, 15, candidates)

	require.True(t, emitted)
	require.NotNil(t, got)
	assert.Equal(t, "t2", got.Payload.ID)
	assert.Equal(t, 1, got.Index, "x=15 is right of the first candidate's midpoint")
	assert.Equal(t, StateIdle, tgt.State())
}

func TestTarget_RejectsUnacceptedType(t *testing.T) {
	// a panel accepting only tabs must ignore a note payload entirely
	tgt := NewTarget(true, []string{"tab"}, Rect{Width: 100, Height: 10}, nil)
	emitted := false
	tgt.OnDrop = func(Drop) { emitted = true }

	accepted := tgt.HandleDrop(`{"type":"note","title":"x"}`, 10, nil)

	assert.False(t, accepted)
	assert.False(t, emitted, "no drop event for a rejected payload")
	assert.Equal(t, StateIdle, tgt.State())
}

func TestTarget_MalformedPayloadDoesNotPanic(t *testing.T) {
	tgt := NewTarget(true, []string{"tab"}, Rect{Width: 100, Height: 10}, nil)
	emitted := false
	tgt.OnDrop = func(Drop) { emitted = true }

	assert.NotPanics(t, func() {
		assert.False(t, tgt.HandleDrop(`{"type":`, 10, nil))
		assert.False(t, tgt.HandleDrop(``, 10, nil))
		assert.False(t, tgt.HandleDrop(`{"title":"no type"}`, 10, nil))
	})
	assert.False(t, emitted)
}

func TestTarget_DisabledRejectsEverything(t *testing.T) {
	tgt := NewTarget(false, []string{"tab"}, Rect{Width: 100, Height: 10}, nil)
	assert.False(t, tgt.HandleDrop(`{"type":"tab"}`, 10, nil))

	tgt.Enter("tab")
	assert.Equal(t, StateIdle, tgt.State())
}

func TestInsertionIndex(t *testing.T) {
	candidates := []Span{{Start: 0, End: 20}, {Start: 20, End: 40}, {Start: 40, End: 60}}

	tests := []struct {
		name     string
		x        int
		expected int
	}{
		{name: "left half of first", x: 3, expected: 0},
		{name: "right half of first", x: 15, expected: 1},
		{name: "left half of middle", x: 22, expected: 1},
		{name: "right half of middle", x: 38, expected: 2},
		{name: "right half of last", x: 55, expected: 3},
		{name: "past the end", x: 500, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InsertionIndex(tt.x, candidates))
		})
	}
}

func TestInsertionIndex_NoCandidates(t *testing.T) {
	assert.Equal(t, 0, InsertionIndex(42, nil))
}

func TestMove(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	tests := []struct {
		name     string
		from, to int
		expected []string
	}{
		{name: "forward", from: 0, to: 3, expected: []string{"b", "c", "a", "d"}},
		{name: "backward", from: 3, to: 1, expected: []string{"a", "d", "b", "c"}},
		{name: "to end", from: 0, to: 4, expected: []string{"b", "c", "d", "a"}},
		{name: "no-op", from: 1, to: 1, expected: []string{"a", "b", "c", "d"}},
		{name: "out of range from", from: 9, to: 0, expected: []string{"a", "b", "c", "d"}},
		{name: "out of range to", from: 0, to: 9, expected: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Move(items, tt.from, tt.to))
			assert.Equal(t, []string{"a", "b", "c", "d"}, items, "input must not change")
		})
	}
}
