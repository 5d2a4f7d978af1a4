package arbor

// unboundedRect is the clip rect used when nothing has been pushed.
var unboundedRect = Rect{X: -1e9, Y: -1e9, Width: 2e9, Height: 2e9}

// CornerRadii holds per-corner rounding for a rect.
type CornerRadii struct {
	TL, TR, BR, BL float64
}

// UniformCorners returns radii with every corner set to r.
func UniformCorners(r float64) CornerRadii { return CornerRadii{r, r, r, r} }

// DrawCmd is a single rect primitive. A zero Fill alpha draws no fill and a
// zero OutlineWidth draws no outline. Clip is the clip rect in effect when
// the command was recorded.
type DrawCmd struct {
	Rect         Rect
	Fill         Color
	Outline      Color
	OutlineWidth float64
	Corners      CornerRadii
	Clip         Rect
}

// DrawList records the primitives a panel draws during a frame together
// with a clip rect stack. Rasterizing the list is up to the backend.
type DrawList struct {
	cmds      []DrawCmd
	clipStack []Rect
}

func newDrawList() *DrawList {
	return &DrawList{}
}

// Commands returns the recorded primitives in submission order.
func (l *DrawList) Commands() []DrawCmd { return l.cmds }

// Clear drops all commands. The clip stack is kept so an unbalanced push is
// still visible to the caller.
func (l *DrawList) Clear() {
	l.cmds = l.cmds[:0]
}

// ClipDepth returns the number of pushed clip rects.
func (l *DrawList) ClipDepth() int { return len(l.clipStack) }

// CurrentClip returns the innermost clip rect.
func (l *DrawList) CurrentClip() Rect {
	if len(l.clipStack) == 0 {
		return unboundedRect
	}
	return l.clipStack[len(l.clipStack)-1]
}

// PushClip pushes r as the clip rect, replacing the current one.
func (l *DrawList) PushClip(r Rect) {
	l.clipStack = append(l.clipStack, r)
}

// PushMergedClip pushes the intersection of r and the current clip rect.
func (l *DrawList) PushMergedClip(r Rect) {
	c, _ := l.CurrentClip().Clip(r)
	l.clipStack = append(l.clipStack, c)
}

// PopClip pops the innermost clip rect. Popping an empty stack is a no-op.
func (l *DrawList) PopClip() {
	if len(l.clipStack) > 0 {
		l.clipStack = l.clipStack[:len(l.clipStack)-1]
	}
}

// PopClipN pops n clip rects.
func (l *DrawList) PopClipN(n int) {
	for i := 0; i < n; i++ {
		l.PopClip()
	}
}

// Add records cmd under the current clip rect.
func (l *DrawList) Add(cmd DrawCmd) {
	cmd.Clip = l.CurrentClip()
	l.cmds = append(l.cmds, cmd)
}

// FillRect records a filled rect.
func (l *DrawList) FillRect(r Rect, fill Color, corners CornerRadii) {
	l.Add(DrawCmd{Rect: r, Fill: fill, Corners: corners})
}

// StrokeRect records an outlined rect.
func (l *DrawList) StrokeRect(r Rect, outline Color, width float64, corners CornerRadii) {
	l.Add(DrawCmd{Rect: r, Outline: outline, OutlineWidth: width, Corners: corners})
}
