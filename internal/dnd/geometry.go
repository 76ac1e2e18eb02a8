package dnd

// Rect is a screen-space bounding box
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Span is the horizontal extent of one reorderable candidate element
type Span struct {
	Start, End int
}

func (s Span) mid() int {
	return (s.Start + s.End) / 2
}

// InsertionIndex resolves where a drop at pointer position x lands among
// the candidate spans: relative to the midpoint of the nearest candidate,
// a pointer in the left half inserts before it and one in the right half
// inserts after it. No candidates yields index 0.
func InsertionIndex(x int, candidates []Span) int {
	if len(candidates) == 0 {
		return 0
	}

	nearest := 0
	best := -1
	for i, c := range candidates {
		d := x - c.mid()
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
			nearest = i
		}
	}

	if x < candidates[nearest].mid() {
		return nearest
	}
	return nearest + 1
}

// Move returns a copy of items with the element at from re-inserted at the
// insertion index to (an index into the original slice, 0..len). Out of
// range positions and no-op moves return the input order.
func Move[T any](items []T, from, to int) []T {
	out := make([]T, len(items))
	copy(out, items)

	if from < 0 || from >= len(items) || to < 0 || to > len(items) {
		return out
	}

	item := out[from]
	out = append(out[:from], out[from+1:]...)

	// dropping after the removed slot shifts the insertion point left
	if to > from {
		to--
	}
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}
