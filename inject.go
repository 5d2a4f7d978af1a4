package arbor

// syntheticEvent is a single injected input event. Pointer events carry a
// position and a button state; key events carry a key and modifiers.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton

	isKey bool
	key   Key
	mods  KeyModifiers
}

// InjectPress queues a left button press at (x, y). The event is consumed
// by the next BeginFrame.
func (c *Context) InjectPress(x, y float64) {
	c.InjectButton(x, y, MouseButtonLeft, true)
}

// InjectMove queues a pointer move to (x, y) with the left button held.
// Use it between InjectPress and InjectRelease to simulate a drag.
func (c *Context) InjectMove(x, y float64) {
	c.InjectButton(x, y, MouseButtonLeft, true)
}

// InjectHover queues a pointer move to (x, y) with no button held.
func (c *Context) InjectHover(x, y float64) {
	c.InjectButton(x, y, MouseButtonLeft, false)
}

// InjectRelease queues a left button release at (x, y).
func (c *Context) InjectRelease(x, y float64) {
	c.InjectButton(x, y, MouseButtonLeft, false)
}

// InjectButton queues a pointer event for any button.
func (c *Context) InjectButton(x, y float64, btn MouseButton, pressed bool) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		x: x, y: y,
		pressed: pressed,
		button:  btn,
	})
}

// InjectKey queues a key press with the given modifiers held.
func (c *Context) InjectKey(key Key, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{isKey: true, key: key, mods: mods})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same position. Consumes two frames.
func (c *Context) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), moves
// over frames-2 frames ending exactly at (toX, toY), and a release there.
// The total sequence consumes `frames` frames. Minimum frames is 3 (press,
// move, release).
func (c *Context) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic events.
func (c *Context) PendingInput() int { return len(c.injectQueue) }

// processInjectedInput pops one event from the inject queue and feeds it
// through the regular input setters. Returns true if an event was consumed.
func (c *Context) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if evt.isKey {
		prev := c.mods
		c.SetModifiers(evt.mods)
		c.KeyPress(evt.key)
		c.SetModifiers(prev)
		return true
	}
	c.SetPointerPos(evt.x, evt.y)
	c.SetButton(evt.button, evt.pressed)
	return true
}
