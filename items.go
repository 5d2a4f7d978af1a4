package arbor

// ItemFlags selects the edge on which a registered item becomes active.
type ItemFlags uint8

const (
	ActivateOnPress   ItemFlags = 1 << iota // becomes active when pressed (default)
	ActivateOnRelease                       // becomes active when released over the item
	ActivateOnClick                         // becomes active on a completed click

	ItemNone ItemFlags = 0
)

// Signal is the interaction state of an item for the current frame.
type Signal uint64

// Per-button signal bits. Left is shifted by 0, right by 1, middle by 2.
const (
	SignalJustPressed   Signal = 1 << (iota * mouseButtonCount)
	SignalPressed
	SignalDoublePressed
	SignalClicked
	SignalDoubleClicked
	SignalTripleClicked
	SignalReleased
	SignalDragging
	signalButtonBits
)

const (
	SignalMouseOver   = signalButtonBits << iota // the pointer is over the item
	SignalHovering                               // the item is hot
	SignalGainedFocus                            // keyboard focus moved to the item this frame

	SignalNone Signal = 0
)

// forButton shifts a left-button signal bit to btn.
func (s Signal) forButton(btn MouseButton) Signal { return s << Signal(btn) }

// Has reports whether every bit of s2 is set.
func (s Signal) Has(s2 Signal) bool { return s&s2 == s2 }

func (s Signal) Hovering() bool    { return s.Has(SignalHovering) }
func (s Signal) MouseOver() bool   { return s.Has(SignalMouseOver) }
func (s Signal) GainedFocus() bool { return s.Has(SignalGainedFocus) }

// JustPressed reports a press edge of the left button.
func (s Signal) JustPressed() bool { return s.Has(SignalJustPressed) }

// Pressed reports the left button held on an active item.
func (s Signal) Pressed() bool { return s.Has(SignalPressed) }

// Released reports a left release over the item.
func (s Signal) Released() bool { return s.Has(SignalReleased) }

// Clicked reports a completed left click.
func (s Signal) Clicked() bool { return s.Has(SignalClicked) }

// DoubleClicked reports a completed left double click.
func (s Signal) DoubleClicked() bool { return s.Has(SignalDoubleClicked) }

// TripleClicked reports a completed left triple click.
func (s Signal) TripleClicked() bool { return s.Has(SignalTripleClicked) }

// Dragging reports a left drag started on the item.
func (s Signal) Dragging() bool { return s.Has(SignalDragging) }

// Button reports whether bit (a left-button signal) is set for btn.
func (s Signal) Button(btn MouseButton, bit Signal) bool { return s.Has(bit.forButton(btn)) }

// itemData describes the last item registered.
type itemData struct {
	id     ID
	rect   Rect
	hidden bool
}

// LastItem returns the id and rect of the item registered last, and
// whether it was fully clipped.
func (c *Context) LastItem() (ID, Rect, bool) {
	return c.lastItem.id, c.lastItem.rect, c.lastItem.hidden
}

// RegisterItem declares an interactive rect in the current panel and
// returns its signal. Items become hot only when the pointer is over them,
// no panel action is running, nothing else is being dragged and their panel
// was the topmost hot panel last frame.
func (c *Context) RegisterItem(id ID, rect Rect, flags ItemFlags) Signal {
	if flags == ItemNone {
		flags = ActivateOnPress
	}
	p := c.current()

	c.updateFocus(id)
	c.lastItem = itemData{id: id, rect: rect}

	var sig Signal
	if id == c.kbFocusItem && !id.IsNull() {
		c.kbFocusItem = NullID
		if c.activeID != id {
			c.activeID = id
			c.emit(LayoutEvent{Type: EventFocusChanged, Panel: p.ID, Rect: rect})
		}
		sig |= SignalGainedFocus
	}
	c.prevItem = id

	if _, visible := p.DrawList.CurrentClip().Clip(rect); !visible && c.activeID != id {
		c.lastItem.hidden = true
		return sig
	}

	return sig | c.updateHotID(id, rect, flags, p)
}

// RegisterRect is RegisterItem for a label hashed in the current id scope.
func (c *Context) RegisterRect(label string, rect Rect, flags ItemFlags) (ID, Signal) {
	id := c.GenID(label)
	return id, c.RegisterItem(id, rect, flags)
}

// updateFocus advances Tab focus. When the active item was the previous
// registration, Tab moves focus to id. Shift+Tab on the active item moves
// it back to the previous registration, which receives it next frame.
func (c *Context) updateFocus(id ID) {
	if id.IsNull() {
		return
	}
	if c.kbFocusNext && !c.prevItem.IsNull() && c.prevItem == c.activeID {
		c.kbFocusItem = id
		c.kbFocusFrame = c.frame
		c.kbFocusNext = false
	}
	if c.kbFocusPrev && c.activeID == id && !c.prevItem.IsNull() {
		c.kbFocusItem = c.prevItem
		c.kbFocusFrame = c.frame
		c.kbFocusPrev = false
	}
}

func (c *Context) isTopmost(p *Panel) bool {
	return c.prevHotPanelID.IsNull() || c.prevHotPanelID == p.ID
}

func (c *Context) updateHotID(id ID, rect Rect, flags ItemFlags, p *Panel) Signal {
	ptr := &c.pointer
	over := rect.ContainsPoint(ptr.Pos)

	var sig Signal
	if over {
		sig |= SignalMouseOver
	}

	if over && !id.IsNull() && c.isTopmost(p) && isNoAction(c.action) &&
		!ptr.Dragging(MouseButtonLeft) && !c.expectDrag && !p.Flags.Has(PanelNoInput) {
		c.hotID = id
		if c.activeID != id {
			var activate bool
			switch {
			case flags&ActivateOnPress != 0:
				activate = ptr.JustPressed(MouseButtonLeft)
			case flags&ActivateOnRelease != 0:
				activate = ptr.Released(MouseButtonLeft)
			case flags&ActivateOnClick != 0:
				activate = ptr.Clicked(MouseButtonLeft)
			}
			if activate {
				c.activeID = id
			}
		}
	}

	hot := c.hotID == id
	active := c.activeID == id
	if hot {
		sig |= SignalHovering
	}
	for btn := MouseButton(0); btn < mouseButtonCount; btn++ {
		if hot {
			if ptr.JustPressed(btn) {
				sig |= SignalJustPressed.forButton(btn)
			}
			if ptr.DoublePressed(btn) {
				sig |= SignalDoublePressed.forButton(btn)
			}
			if ptr.Released(btn) {
				sig |= SignalReleased.forButton(btn)
			}
			if ptr.Clicked(btn) {
				sig |= SignalClicked.forButton(btn)
			}
			if ptr.DoubleClicked(btn) {
				sig |= SignalDoubleClicked.forButton(btn)
			}
			if ptr.TripleClicked(btn) {
				sig |= SignalTripleClicked.forButton(btn)
			}
		}
		if active {
			if ptr.Pressed(btn) {
				sig |= SignalPressed.forButton(btn)
			}
			if ptr.Dragging(btn) {
				sig |= SignalDragging.forButton(btn)
			}
		}
	}
	return sig
}

// endFocusFrame drops an unconsumed focus request after one full frame.
func (c *Context) endFocusFrame() {
	c.kbFocusNext = false
	c.kbFocusPrev = false
	if !c.kbFocusItem.IsNull() && c.frame > c.kbFocusFrame {
		c.kbFocusItem = NullID
	}
}
