package layer

import "fmt"

// Rect is an axis-aligned rectangle with exclusive Right and Bottom edges.
type Rect struct {
	Left, Top, Right, Bottom int
}

// R is shorthand for Rect{left, top, right, bottom}.
func R(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns Right - Left.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Intersect returns the largest rectangle contained in both r and s.
// The result may be empty.
func (r Rect) Intersect(s Rect) Rect {
	return Rect{
		Left:   max(r.Left, s.Left),
		Top:    max(r.Top, s.Top),
		Right:  min(r.Right, s.Right),
		Bottom: min(r.Bottom, s.Bottom),
	}
}

// Contains reports whether s lies entirely inside r.
func (r Rect) Contains(s Rect) bool {
	return s.Left >= r.Left && s.Top >= r.Top && s.Right <= r.Right && s.Bottom <= r.Bottom
}

// ClampTo clips r to the surface rectangle [0, width) x [0, height).
func (r Rect) ClampTo(width, height int) Rect {
	return Rect{
		Left:   max(0, r.Left),
		Top:    max(0, r.Top),
		Right:  min(r.Right, width),
		Bottom: min(r.Bottom, height),
	}
}

// AlignedOut expands r outward so that the horizontal edges are multiples
// of ax and the vertical edges multiples of ay.
func (r Rect) AlignedOut(ax, ay int) Rect {
	return Rect{
		Left:   floorAlign(r.Left, ax),
		Top:    floorAlign(r.Top, ay),
		Right:  ceilAlign(r.Right, ax),
		Bottom: ceilAlign(r.Bottom, ay),
	}
}

// IsAligned reports whether every edge of r is a multiple of a.
func (r Rect) IsAligned(a int) bool {
	return r.Left%a == 0 && r.Top%a == 0 && r.Right%a == 0 && r.Bottom%a == 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

func floorAlign(v, a int) int {
	if a <= 1 {
		return v
	}
	if v < 0 {
		return -ceilAlign(-v, a)
	}
	return v / a * a
}

func ceilAlign(v, a int) int {
	if a <= 1 {
		return v
	}
	if v < 0 {
		return -floorAlign(-v, a)
	}
	return (v + a - 1) / a * a
}
