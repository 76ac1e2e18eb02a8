// Package dnd implements the pointer drag-and-drop reordering logic used
// by the dashboard: a small state machine per draggable region, an
// allow-list check on the serialized payload, and midpoint-based insertion
// index resolution. It is pure; the UI layer feeds it pointer events.
package dnd

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// State of a drag source or drop target
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
	StateHover    State = "hover"
)

// Payload is the serialized content carried by a drag. Type is matched
// against a drop target's allow-list; everything else is opaque to the
// state machine.
type Payload struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Index int    `json:"index,omitempty"`
}

// ParsePayload decodes a text payload. Malformed payloads are an error for
// the caller to log; they must never escape the event handler.
func ParsePayload(text string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Payload{}, fmt.Errorf("parse drag payload: %w", err)
	}
	if p.Type == "" {
		return Payload{}, fmt.Errorf("parse drag payload: missing type")
	}
	return p, nil
}

// Source is one draggable region: idle until a drag starts, idle again
// when it ends.
type Source struct {
	enabled bool
	state   State
	payload Payload
}

// NewSource creates a drag source; a disabled source ignores drag starts
func NewSource(enabled bool) *Source {
	return &Source{enabled: enabled, state: StateIdle}
}

// State returns the current state
func (s *Source) State() State { return s.state }

// Start begins a drag carrying payload. It reports whether the drag
// actually started (disabled sources stay idle).
func (s *Source) Start(payload Payload) bool {
	if !s.enabled || s.state == StateDragging {
		return false
	}
	s.state = StateDragging
	s.payload = payload
	return true
}

// Payload returns the payload of the active drag
func (s *Source) Payload() Payload { return s.payload }

// End finishes the drag, returning the source to idle
func (s *Source) End() {
	s.state = StateIdle
	s.payload = Payload{}
}

// Drop is the reorder instruction emitted when an accepted payload lands
type Drop struct {
	Payload Payload
	Index   int // insertion index resolved from the pointer position
}

// Target is one drop region with an accepted-type allow-list
type Target struct {
	enabled bool
	accepts []string
	state   State
	bounds  Rect
	log     *zap.Logger

	// OnDrop receives the reorder instruction for accepted drops
	OnDrop func(Drop)
}

// NewTarget creates a drop target accepting only the listed payload types.
// A nil logger is replaced with a no-op one.
func NewTarget(enabled bool, accepts []string, bounds Rect, log *zap.Logger) *Target {
	if log == nil {
		log = zap.NewNop()
	}
	return &Target{enabled: enabled, accepts: accepts, state: StateIdle, bounds: bounds, log: log}
}

// State returns the current state
func (t *Target) State() State { return t.state }

// SetBounds updates the target's bounding box, e.g. after a layout pass
func (t *Target) SetBounds(bounds Rect) {
	t.bounds = bounds
}

// accepted reports whether a payload type is on the allow-list
func (t *Target) accepted(payloadType string) bool {
	for _, a := range t.accepts {
		if a == payloadType {
			return true
		}
	}
	return false
}

// Enter handles the drag entering the target's bounds. The target only
// moves to hover when drops are enabled and the payload type is accepted.
func (t *Target) Enter(payloadType string) {
	if !t.enabled || !t.accepted(payloadType) {
		return
	}
	t.state = StateHover
}

// Over is a continued hover; it re-applies the same acceptance rule so a
// target never hovers for a payload it would reject.
func (t *Target) Over(payloadType string) {
	t.Enter(payloadType)
}

// Leave handles the pointer moving while hovering: the target returns to
// idle only when the pointer is actually outside its bounds, since child
// elements fire leave events while the pointer is still inside.
func (t *Target) Leave(x, y int) {
	if t.state != StateHover {
		return
	}
	if !t.bounds.Contains(x, y) {
		t.state = StateIdle
	}
}

// HandleDrop processes a dropped text payload at pointer position x over
// the candidate spans. Malformed payloads and payloads whose type is not
// on the allow-list are rejected silently: logged, no OnDrop emission, no
// state beyond returning to idle. It reports whether a drop was emitted.
func (t *Target) HandleDrop(text string, x int, candidates []Span) bool {
	defer func() { t.state = StateIdle }()

	if !t.enabled {
		return false
	}

	payload, err := ParsePayload(text)
	if err != nil {
		t.log.Warn("rejecting malformed drag payload", zap.Error(err))
		return false
	}
	if !t.accepted(payload.Type) {
		t.log.Warn("rejecting drag payload of unaccepted type",
			zap.String("type", payload.Type),
			zap.Strings("accepts", t.accepts))
		return false
	}

	drop := Drop{Payload: payload, Index: InsertionIndex(x, candidates)}
	if t.OnDrop != nil {
		t.OnDrop(drop)
	}
	return true
}
