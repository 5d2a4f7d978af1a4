package arbor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

var ebitenButtons = [mouseButtonCount]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonRight:  ebiten.MouseButtonRight,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

var ebitenKeys = map[ebiten.Key]Key{
	ebiten.KeyTab:    KeyTab,
	ebiten.KeyEscape: KeyEscape,
	ebiten.KeyEnter:  KeyEnter,
}

// ProcessEbitenInput samples Ebitengine's mouse, wheel and keyboard state
// and feeds it to c. Call it once per tick before BeginFrame. Real input is
// skipped while injected events are pending.
func (c *Context) ProcessEbitenInput() {
	if c.PendingInput() > 0 {
		return
	}
	c.SetModifiers(readModifiers())

	mx, my := ebiten.CursorPosition()
	c.SetPointerPos(float64(mx), float64(my))
	for btn, eb := range ebitenButtons {
		c.SetButton(MouseButton(btn), ebiten.IsMouseButtonPressed(eb))
	}

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		c.Scroll(dx, dy)
	}
	for ek, k := range ebitenKeys {
		if inpututil.IsKeyJustPressed(ek) {
			c.KeyPress(k)
		}
	}
}

// ebitenCursor maps a cursor icon to Ebitengine's cursor shape.
func ebitenCursor(icon CursorIcon) ebiten.CursorShapeType {
	switch icon {
	case CursorResizeNS:
		return ebiten.CursorShapeNSResize
	case CursorResizeEW:
		return ebiten.CursorShapeEWResize
	case CursorResizeNWSE:
		return ebiten.CursorShapeNWSEResize
	case CursorResizeNESW:
		return ebiten.CursorShapeNESWResize
	case CursorMove:
		return ebiten.CursorShapeMove
	}
	return ebiten.CursorShapeDefault
}

// windowGrab is a native window drag in progress.
type windowGrab int

const (
	grabNone windowGrab = iota
	grabMove
	grabResize
)

// minWindowSize bounds chrome resizes of an undecorated window.
const minWindowSize = 200

// EbitenWindow is the Window backed by the Ebitengine window. Undecorated
// windows are moved and resized by following the pointer while the left
// button is held.
type EbitenWindow struct {
	w, h int

	grab         windowGrab
	grabDir      Dir
	grabX, grabY int
}

// NewEbitenWindow returns a Window for the Ebitengine window.
func NewEbitenWindow(width, height int) *EbitenWindow {
	return &EbitenWindow{w: width, h: height}
}

func (w *EbitenWindow) Size() Vec2      { return Vec2{float64(w.w), float64(w.h)} }
func (w *EbitenWindow) Decorated() bool { return ebiten.IsWindowDecorated() }
func (w *EbitenWindow) Maximized() bool { return ebiten.IsWindowMaximized() }
func (w *EbitenWindow) Minimize()       { ebiten.MinimizeWindow() }

func (w *EbitenWindow) ToggleMaximize() {
	if ebiten.IsWindowMaximized() {
		ebiten.RestoreWindow()
		return
	}
	ebiten.MaximizeWindow()
}

func (w *EbitenWindow) StartDrag() {
	w.grab = grabMove
	w.grabX, w.grabY = ebiten.CursorPosition()
}

func (w *EbitenWindow) StartDragResize(dir Dir) {
	w.grab = grabResize
	w.grabDir = dir
	w.grabX, w.grabY = ebiten.CursorPosition()
}

// layout records the logical screen size reported by Ebitengine.
func (w *EbitenWindow) layout(width, height int) {
	w.w, w.h = width, height
}

// update follows the pointer with the window while a grab is held.
func (w *EbitenWindow) update() {
	if w.grab == grabNone {
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		w.grab = grabNone
		return
	}
	cx, cy := ebiten.CursorPosition()
	dx, dy := cx-w.grabX, cy-w.grabY
	if dx == 0 && dy == 0 {
		return
	}
	x, y := ebiten.WindowPosition()
	if w.grab == grabMove {
		ebiten.SetWindowPosition(x+dx, y+dy)
		return
	}

	ww, wh := ebiten.WindowSize()
	d := w.grabDir
	if d.HasE() {
		ww += dx
		w.grabX = cx
	}
	if d.HasS() {
		wh += dy
		w.grabY = cy
	}
	if d.HasW() {
		x += dx
		ww -= dx
	}
	if d.HasN() {
		y += dy
		wh -= dy
	}
	ebiten.SetWindowPosition(x, y)
	ebiten.SetWindowSize(max(ww, minWindowSize), max(wh, minWindowSize))
}
