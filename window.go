package arbor

// Window is the host window the engine lays panels out in. The engine asks
// it for its size and, for undecorated windows, forwards chrome gestures
// (titlebar drag, border resize, minimize, maximize) to it.
type Window interface {
	Size() Vec2
	Decorated() bool
	Maximized() bool
	Minimize()
	ToggleMaximize()
	StartDrag()
	StartDragResize(dir Dir)
}

// HeadlessWindow is a Window with a fixed size and no native chrome. It
// records chrome requests so they can be inspected.
type HeadlessWindow struct {
	W, H float64

	IsDecorated bool
	IsMaximized bool

	Minimized    int
	Drags        int
	ResizeDrags  []Dir
	MaximizeFlip int
}

// NewHeadlessWindow returns a decorated headless window of the given size.
func NewHeadlessWindow(w, h float64) *HeadlessWindow {
	return &HeadlessWindow{W: w, H: h, IsDecorated: true}
}

func (w *HeadlessWindow) Size() Vec2      { return Vec2{w.W, w.H} }
func (w *HeadlessWindow) Decorated() bool { return w.IsDecorated }
func (w *HeadlessWindow) Maximized() bool { return w.IsMaximized }
func (w *HeadlessWindow) Minimize()       { w.Minimized++ }
func (w *HeadlessWindow) StartDrag()      { w.Drags++ }

func (w *HeadlessWindow) ToggleMaximize() {
	w.IsMaximized = !w.IsMaximized
	w.MaximizeFlip++
}

func (w *HeadlessWindow) StartDragResize(dir Dir) {
	w.ResizeDrags = append(w.ResizeDrags, dir)
}
