package arbor

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, sizes, and deltas
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Min returns the component-wise minimum of v and o.
func (v Vec2) Min(o Vec2) Vec2 { return Vec2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)} }

// Max returns the component-wise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 { return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)} }

// Round rounds both components to the nearest integer.
func (v Vec2) Round() Vec2 { return Vec2{math.Round(v.X), math.Round(v.Y)} }

// Clamp clamps each component of v into [lo, hi].
func (v Vec2) Clamp(lo, hi Vec2) Vec2 { return v.Max(lo).Min(hi) }

// Get returns the component along axis a.
func (v Vec2) Get(a Axis) float64 {
	if a == AxisY {
		return v.Y
	}
	return v.X
}

// With returns a copy of v with the component along a replaced by f.
func (v Vec2) With(a Axis, f float64) Vec2 {
	if a == AxisY {
		v.Y = f
	} else {
		v.X = f
	}
	return v
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFromMinMax builds a rectangle spanning the two corner points.
func RectFromMinMax(min, max Vec2) Rect {
	return Rect{X: min.X, Y: min.Y, Width: max.X - min.X, Height: max.Y - min.Y}
}

// RectFromPosSize builds a rectangle from its top-left corner and size.
func RectFromPosSize(pos, size Vec2) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 { return Vec2{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 { return Vec2{r.X + r.Width, r.Y + r.Height} }

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsPoint is Contains for a Vec2.
func (r Rect) ContainsPoint(p Vec2) bool { return r.Contains(p.X, p.Y) }

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Clip returns the intersection of r and other. The second result is false
// when the rectangles do not overlap, in which case the returned rect is empty.
func (r Rect) Clip(other Rect) (Rect, bool) {
	min := r.Min().Max(other.Min())
	max := r.Max().Min(other.Max())
	if max.X < min.X || max.Y < min.Y {
		return Rect{X: min.X, Y: min.Y}, false
	}
	return RectFromMinMax(min, max), true
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Expand grows r by n on every side. Negative n shrinks it.
func (r Rect) Expand(n float64) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// Start returns the minimum coordinate along axis a.
func (r Rect) Start(a Axis) float64 { return r.Min().Get(a) }

// End returns the maximum coordinate along axis a.
func (r Rect) End(a Axis) float64 { return r.Max().Get(a) }

// Extent returns the size along axis a.
func (r Rect) Extent(a Axis) float64 { return r.Size().Get(a) }

// Axis selects the horizontal or vertical direction.
type Axis uint8

const (
	AxisX Axis = iota // horizontal
	AxisY             // vertical
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Dir is one of the eight compass directions. The cardinal directions are
// used for docking and neighbor queries; all eight are used for resizing.
type Dir uint8

const (
	DirN Dir = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

var dirNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Dir) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return "Dir(?)"
}

// IsCorner reports whether d is a diagonal.
func (d Dir) IsCorner() bool { return d%2 == 1 }

// HasN reports whether d points north.
func (d Dir) HasN() bool { return d == DirN || d == DirNE || d == DirNW }

// HasS reports whether d points south.
func (d Dir) HasS() bool { return d == DirS || d == DirSE || d == DirSW }

// HasE reports whether d points east.
func (d Dir) HasE() bool { return d == DirE || d == DirNE || d == DirSE }

// HasW reports whether d points west.
func (d Dir) HasW() bool { return d == DirW || d == DirNW || d == DirSW }

// Axis returns the axis a cardinal direction moves along: Y for N and S,
// X for E and W. Corners report X.
func (d Dir) Axis() Axis {
	if d == DirN || d == DirS {
		return AxisY
	}
	return AxisX
}

// Opposite returns the direction pointing the other way.
func (d Dir) Opposite() Dir { return (d + 4) % 8 }

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount = 3
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies the few keys the layout engine reacts to. Text editing keys
// are routed by widgets, not by the engine.
type Key uint8

const (
	KeyTab    Key = iota // moves keyboard focus; Shift+Tab moves backwards
	KeyEscape            // cancels a pending dock
	KeyEnter
)

// CursorIcon is the pointer shape the host should display for the current
// interaction.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorResizeNS
	CursorResizeEW
	CursorResizeNWSE
	CursorResizeNESW
	CursorMove
)

// cursorForDir maps a resize direction to its cursor icon.
func cursorForDir(d Dir) CursorIcon {
	switch d {
	case DirN, DirS:
		return CursorResizeNS
	case DirE, DirW:
		return CursorResizeEW
	case DirNW, DirSE:
		return CursorResizeNWSE
	default:
		return CursorResizeNESW
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
