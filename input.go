package arbor

import (
	"math"
	"time"
)

// --- Constants ---

const (
	defaultDragThreshold     = 5.0 // pixels
	defaultClickThreshold    = 200 * time.Millisecond
	defaultMultiClickTimeout = 400 * time.Millisecond
)

// --- Per-button state ---

type buttonState struct {
	pressed     bool
	justPressed bool
	released    bool
	dragging    bool

	hasStart bool
	startPos Vec2

	lastPress   time.Time
	lastRelease time.Time

	// click sequence: count and the time of its first click
	clickCount int
	firstClick time.Time

	// press sequence, for double presses
	pressCount int
	firstPress time.Time
}

// Pointer tracks the mouse position and per-button press, release, drag and
// click state. A button starts dragging once it moves further than the drag
// threshold from where it was pressed; a release counts as a click when it
// comes quickly and without dragging.
type Pointer struct {
	Pos     Vec2
	PrevPos Vec2

	buttons [mouseButtonCount]buttonState

	dragThreshold     float64
	clickThreshold    time.Duration
	multiClickTimeout time.Duration
}

func newPointer(dragThreshold float64, click, multiClick time.Duration) Pointer {
	nan := Vec2{math.NaN(), math.NaN()}
	return Pointer{
		Pos:               nan,
		PrevPos:           nan,
		dragThreshold:     dragThreshold,
		clickThreshold:    click,
		multiClickTimeout: multiClick,
	}
}

// setPos moves the pointer and promotes held buttons to dragging once they
// leave the dead zone.
func (m *Pointer) setPos(pos Vec2) {
	m.PrevPos = m.Pos
	m.Pos = pos
	for i := range m.buttons {
		b := &m.buttons[i]
		if b.pressed && b.hasStart && pos.Sub(b.startPos).Len() > m.dragThreshold {
			b.dragging = true
		}
	}
}

// setButton records a press or release edge at the current position.
// Repeated states (press while pressed) are ignored.
func (m *Pointer) setButton(btn MouseButton, pressed bool, now time.Time) {
	b := &m.buttons[btn]
	switch {
	case pressed && !b.pressed:
		b.pressed = true
		b.justPressed = true
		b.lastPress = now
		b.hasStart = true
		b.startPos = m.Pos
		if b.pressCount > 0 && now.Sub(b.firstPress) < m.multiClickTimeout {
			b.pressCount++
		} else {
			b.pressCount = 1
			b.firstPress = now
		}
	case !pressed && b.pressed:
		wasDragging := b.dragging
		b.pressed = false
		b.dragging = false
		b.released = true
		b.lastRelease = now

		quick := now.Sub(b.lastPress) < m.clickThreshold
		still := !b.hasStart || m.Pos.Sub(b.startPos).Len() < m.dragThreshold
		if quick && still && !wasDragging {
			b.addClick(now, m.multiClickTimeout)
		} else {
			b.clickCount = 0
		}
	}
}

func (b *buttonState) addClick(now time.Time, timeout time.Duration) {
	if b.clickCount > 0 && now.Sub(b.firstClick) < timeout {
		b.clickCount++
		return
	}
	b.clickCount = 1
	b.firstClick = now
}

// endFrame clears edge flags and expires stale click sequences.
func (m *Pointer) endFrame(now time.Time) {
	for i := range m.buttons {
		b := &m.buttons[i]
		b.released = false
		b.justPressed = false
		if b.clickCount > 0 && now.Sub(b.firstClick) > m.multiClickTimeout {
			b.clickCount = 0
		}
		if b.pressCount > 0 && !b.pressed && now.Sub(b.firstPress) > m.multiClickTimeout {
			b.pressCount = 0
		}
	}
}

// reset forgets every held button. Used when the host loses focus.
func (m *Pointer) reset() {
	for i := range m.buttons {
		m.buttons[i] = buttonState{}
	}
}

// Pressed reports whether btn is held.
func (m *Pointer) Pressed(btn MouseButton) bool { return m.buttons[btn].pressed }

// JustPressed reports whether btn went down this frame.
func (m *Pointer) JustPressed(btn MouseButton) bool { return m.buttons[btn].justPressed }

// DoublePressed reports whether btn went down this frame as the second (or
// later) press of a quick sequence.
func (m *Pointer) DoublePressed(btn MouseButton) bool {
	b := &m.buttons[btn]
	return b.justPressed && b.pressCount >= 2
}

// Released reports whether btn went up this frame.
func (m *Pointer) Released(btn MouseButton) bool { return m.buttons[btn].released }

// Dragging reports whether btn is held and has left the drag dead zone.
func (m *Pointer) Dragging(btn MouseButton) bool { return m.buttons[btn].dragging }

// ClickCount returns the length of the current click sequence.
func (m *Pointer) ClickCount(btn MouseButton) int { return m.buttons[btn].clickCount }

// Clicked reports whether btn completed a click this frame.
func (m *Pointer) Clicked(btn MouseButton) bool {
	b := &m.buttons[btn]
	return b.released && b.clickCount > 0
}

// DoubleClicked reports whether btn completed the second click of a sequence
// this frame.
func (m *Pointer) DoubleClicked(btn MouseButton) bool {
	b := &m.buttons[btn]
	return b.released && b.clickCount == 2
}

// TripleClicked reports whether btn completed the third click of a sequence
// this frame.
func (m *Pointer) TripleClicked(btn MouseButton) bool {
	b := &m.buttons[btn]
	return b.released && b.clickCount == 3
}

// DragStart returns where btn was pressed. It is only valid while dragging
// or on the frame of the release.
func (m *Pointer) DragStart(btn MouseButton) (Vec2, bool) {
	b := &m.buttons[btn]
	if (b.dragging || b.released) && b.hasStart {
		return b.startPos, true
	}
	return Vec2{}, false
}

// PressStart returns where btn was last pressed, if it is held.
func (m *Pointer) PressStart(btn MouseButton) (Vec2, bool) {
	b := &m.buttons[btn]
	if b.pressed && b.hasStart {
		return b.startPos, true
	}
	return Vec2{}, false
}

// DragDelta returns the offset from the press position while dragging.
func (m *Pointer) DragDelta(btn MouseButton) (Vec2, bool) {
	b := &m.buttons[btn]
	if !b.dragging {
		return Vec2{}, false
	}
	return m.Pos.Sub(b.startPos), true
}
