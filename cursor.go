package arbor

import "math"

// PlaceItem reserves a rect of size at the layout cursor of the current
// panel and advances the cursor to the next line. After SameLine the item
// is placed to the right of the previous one and shares its line.
func (c *Context) PlaceItem(size Vec2) Rect {
	p := c.current()
	cur := &p.cursor
	rect := RectFromPosSize(p.CursorPos().Round(), size.Round())

	lineY := cur.pos.Y
	if cur.isSameLine {
		lineY = cur.posPrevLine.Y
	}
	lineHeight := max(cur.lineHeight, cur.pos.Y-lineY+size.Y)

	cur.posPrevLine = Vec2{cur.pos.X + size.X, lineY}
	cur.pos = Vec2{
		X: math.Round(p.Pos.X + p.Padding + cur.indent),
		Y: lineY + lineHeight + c.style.SpacingV,
	}
	cur.maxPos = Vec2{
		X: max(cur.maxPos.X, cur.posPrevLine.X),
		Y: max(cur.maxPos.Y, cur.pos.Y-c.style.SpacingV),
	}
	cur.prevLineHeight = lineHeight
	cur.lineHeight = 0
	cur.isSameLine = false
	return rect
}

// NewLine places an empty line.
func (c *Context) NewLine() {
	c.PlaceItem(Vec2{0, c.style.LineHeight})
}

// SameLine places the next item to the right of the previous one.
func (c *Context) SameLine() {
	cur := &c.current().cursor
	cur.isSameLine = true
	cur.lineHeight = cur.prevLineHeight
	cur.pos = cur.posPrevLine.Add(Vec2{c.style.SpacingH, 0})
}

// Indent shifts the cursor and every following line right by amount.
func (c *Context) Indent(amount float64) {
	cur := &c.current().cursor
	cur.pos.X += amount
	cur.maxPos = cur.maxPos.Max(cur.pos)
	cur.indent += amount
}

// Unindent undoes Indent.
func (c *Context) Unindent(amount float64) {
	cur := &c.current().cursor
	cur.pos.X -= amount
	cur.maxPos = cur.maxPos.Max(cur.pos)
	cur.indent -= amount
}

// MoveCursor offsets the cursor, growing the content extent if needed.
func (c *Context) MoveCursor(offset Vec2) {
	cur := &c.current().cursor
	cur.pos = cur.pos.Add(offset)
	cur.maxPos = cur.maxPos.Max(cur.pos)
}

// CursorPos returns where the next item goes, in screen space.
func (c *Context) CursorPos() Vec2 { return c.current().CursorPos() }

// SetCursorPos moves the cursor to pos, given without scroll.
func (c *Context) SetCursorPos(pos Vec2) { c.current().cursor.pos = pos }

// ContentStartPos returns where the current panel's content starts.
func (c *Context) ContentStartPos() Vec2 { return c.current().ContentStartPos() }

// AvailableContent is the space left between the cursor and the bottom
// right of the visible content area.
func (c *Context) AvailableContent() Vec2 {
	p := c.current()
	return p.VisibleContentRect().Max().Sub(p.CursorPos()).Max(Vec2{})
}

// FullAvailableContent is AvailableContent measured against the full
// content area.
func (c *Context) FullAvailableContent() Vec2 {
	p := c.current()
	return p.FullContentRect().Max().Sub(p.CursorPos()).Max(Vec2{})
}
