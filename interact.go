package arbor

import "math"

// splitDragPad keeps a dragged split boundary this far beyond the
// titlebar height from any other boundary.
const splitDragPad = 5.0

// --- Activation ---

// updateActivePanel hands activation to whatever is under a held press that
// has not turned into a drag, and raises the pressed panel.
func (c *Context) updateActivePanel() {
	ptr := &c.pointer
	if !ptr.Pressed(MouseButtonLeft) || ptr.Dragging(MouseButtonLeft) || c.expectDrag || !isNoAction(c.action) {
		return
	}
	if c.hotID.IsNull() {
		c.activeID = NullID
	} else if p, ok := c.panels[c.hotID]; ok {
		c.activeID = p.Root
	}
	if hp, ok := c.panels[c.hotPanelID]; ok {
		c.activePanelID = hp.Root
		c.BringPanelToFront(hp.Root)
	}
}

// --- Panel chrome ---

// drawPanel records the background, titlebar, outline and scrollbars of p
// and leaves the background and content clip rects pushed for End to pop.
func (c *Context) drawPanel(p *Panel, isWindow bool) {
	s := &c.style
	dl := p.DrawList
	if p.Flags.Has(PanelUseParentClip) {
		dl.PushMergedClip(p.FullRect)
	} else {
		dl.PushClip(p.FullRect)
	}

	corners := c.panelCorners(p, isWindow)
	bg := s.PanelBg
	if isWindow {
		bg = s.WindowBg
	}
	dl.FillRect(p.Rect(), bg, corners)

	if !p.Flags.Has(PanelNoTitlebar) {
		c.drawTitlebar(p, isWindow, corners)
	}
	if p.Outline > 0 {
		dl.StrokeRect(p.Rect(), s.PanelOutline, p.Outline, corners)
	}

	h, v := p.needsScrollbars()
	if v && p.Flags.Has(PanelDrawVScrollbar) {
		c.drawScrollbar(p, AxisY)
	}
	if h && p.Flags.Has(PanelDrawHScrollbar) {
		c.drawScrollbar(p, AxisX)
	}

	switch {
	case p.Flags.Has(PanelDontClipContent):
		dl.PushClip(dl.CurrentClip())
	case p.Flags.Has(PanelUseParentClip):
		dl.PushMergedClip(p.VisibleContentRect())
	default:
		dl.PushClip(p.VisibleContentRect())
	}
}

// panelCorners rounds free panels uniformly. Docked panels keep a corner
// round only where neither adjacent side touches a neighbor.
func (c *Context) panelCorners(p *Panel, isWindow bool) CornerRadii {
	if isWindow {
		return CornerRadii{}
	}
	r := c.style.PanelCornerRadius
	if !p.IsDocked() {
		return UniformCorners(r)
	}
	nb := c.tree.Neighbors(p.Dock)
	n, e, s, w := !nb[0].IsNull(), !nb[1].IsNull(), !nb[2].IsNull(), !nb[3].IsNull()
	pick := func(a, b bool) float64 {
		if a || b {
			return 0
		}
		return r
	}
	return CornerRadii{TL: pick(n, w), TR: pick(n, e), BR: pick(s, e), BL: pick(s, w)}
}

func (c *Context) drawTitlebar(p *Panel, isWindow bool, corners CornerRadii) {
	s := &c.style
	dl := p.DrawList
	tb := p.TitlebarRect()
	dl.FillRect(tb, s.Titlebar, CornerRadii{TL: corners.TL, TR: corners.TR})

	p.TitleHandleRect = Rect{X: p.Pos.X, Y: p.Pos.Y, Width: s.TitleHandleWidth, Height: p.TitlebarHeight}
	if p.IsDocked() {
		dl.FillRect(p.TitleHandleRect, s.TitleHandle, CornerRadii{TL: corners.TL})
	}

	if isWindow {
		c.drawWindowChrome(p, tb)
		return
	}

	size := p.TitlebarHeight
	btn := Rect{X: tb.X + tb.Width - size, Y: tb.Y, Width: size, Height: size}.Expand(-size / 5)
	_, sig := c.RegisterRect("##_CLOSE", btn, ActivateOnRelease)
	c.drawButton(dl, btn, sig)
	if sig.Released() {
		p.ClosePressed = true
	}
}

// drawWindowChrome draws the titlebar controls of an undecorated host
// window. Double clicking the bar toggles maximize.
func (c *Context) drawWindowChrome(p *Panel, tb Rect) {
	if _, sig := c.RegisterRect("##_TITLEBAR", tb, ActivateOnClick); sig.DoubleClicked() {
		c.window.ToggleMaximize()
	}

	buttons := []struct {
		label string
		fn    func()
	}{
		{"##_CLOSE", func() { c.closeRequested = true }},
		{"##_MAXIMIZE", c.window.ToggleMaximize},
		{"##_MINIMIZE", c.window.Minimize},
	}
	size := p.TitlebarHeight
	x := tb.X + tb.Width
	for _, b := range buttons {
		x -= size * 1.25
		r := Rect{X: x, Y: tb.Y, Width: size * 1.25, Height: size}
		_, sig := c.RegisterRect(b.label, r, ActivateOnRelease)
		c.drawButton(p.DrawList, r, sig)
		if sig.Released() {
			b.fn()
		}
	}
}

func (c *Context) drawButton(dl *DrawList, r Rect, sig Signal) {
	switch {
	case sig.Pressed():
		dl.FillRect(r, c.style.ButtonPress, UniformCorners(2))
	case sig.Hovering():
		dl.FillRect(r, c.style.ButtonHover, UniformCorners(2))
	}
}

// --- Scrolling ---

// scrollbarGeometry returns the thumb length, how far the thumb can travel
// and how far the content can scroll along a.
func scrollbarGeometry(p *Panel, a Axis) (handle, trackMove, scrollable float64) {
	view := p.VisibleContentRect().Extent(a)
	full := math.Max(p.FullContentRect().Extent(a), 1)
	handle = math.Max(view/full*view, p.ScrollbarWidth)
	scrollable = math.Max(full-view, 0)
	trackMove = math.Max(view-handle, 1)
	return handle, trackMove, scrollable
}

// drawScrollbar draws the thumb of axis a in the scrollbar gutter and
// starts a ScrollAction when it is pressed.
func (c *Context) drawScrollbar(p *Panel, a Axis) {
	handle, trackMove, scrollable := scrollbarGeometry(p, a)
	if scrollable <= 0 {
		return
	}
	content := p.VisibleContentRect()
	other := a.Other()
	along := content.Start(a) + clamp(-p.Scroll.Get(a), 0, scrollable)/scrollable*trackMove
	across := content.End(other) + p.Padding/2 + p.ScrollbarPadding/2

	thumb := RectFromPosSize(
		Vec2{}.With(a, along).With(other, across),
		Vec2{}.With(a, handle).With(other, p.ScrollbarWidth),
	)
	id := c.GenID("##_SCROLLBAR_" + a.String())
	sig := c.RegisterItem(id, thumb, ActivateOnPress)

	fill := c.style.PanelOutline
	if sig.Hovering() {
		fill = c.style.ButtonHover
	}
	if sig.Pressed() {
		fill = c.style.ButtonPress
	}
	p.DrawList.FillRect(thumb, fill, UniformCorners(p.ScrollbarWidth/2))

	if sig.Pressed() && isNoAction(c.action) {
		if !c.pointer.Dragging(MouseButtonLeft) {
			c.expectDrag = true
		}
		c.action = &ScrollAction{
			Axis:        a,
			Panel:       p.ID,
			StartScroll: p.Scroll,
			PressOffset: c.pointer.Pos.Sub(thumb.Min()),
			ScrollRect:  RectFromMinMax(p.ScrollMin(), p.ScrollMax()),
		}
		c.emit(LayoutEvent{Type: EventScrollDragStart, Panel: p.ID, Rect: thumb})
	}
}

// updatePanelScroll maps the dragged thumb position back to a scroll
// offset, written to the panel's next scroll.
func (c *Context) updatePanelScroll() {
	a, ok := c.action.(*ScrollAction)
	if !ok {
		return
	}
	p, live := c.panels[a.Panel]
	if !live || !c.pointer.Pressed(MouseButtonLeft) {
		c.action = NoAction{}
		c.emit(LayoutEvent{Type: EventScrollDragEnd, Panel: a.Panel})
		return
	}

	_, trackMove, scrollable := scrollbarGeometry(p, a.Axis)
	start := p.VisibleContentRect().Start(a.Axis)
	thumb := clamp(c.pointer.Pos.Get(a.Axis)-a.PressOffset.Get(a.Axis), start, start+trackMove)

	var offset float64
	if scrollable > 0 {
		offset = -(thumb - start) / trackMove * scrollable
	}
	p.NextScroll = a.StartScroll.With(a.Axis, math.Round(offset))
}

// --- Resizing ---

// resizeRegion reports which border or corner of r the point is within thr
// of. Corners win over edges.
func resizeRegion(r Rect, pt Vec2, thr float64) (Dir, bool) {
	near := func(x, y float64) bool { return Vec2{x, y}.Sub(pt).Len() <= thr }
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	switch {
	case near(right, top):
		return DirNE, true
	case near(right, bottom):
		return DirSE, true
	case near(left, bottom):
		return DirSW, true
	case near(left, top):
		return DirNW, true
	}
	inX := pt.X >= left+thr && pt.X <= right-thr
	inY := pt.Y >= top+thr && pt.Y <= bottom-thr
	switch {
	case math.Abs(pt.Y-top) <= thr && inX:
		return DirN, true
	case math.Abs(pt.Y-bottom) <= thr && inX:
		return DirS, true
	case math.Abs(pt.X-right) <= thr && inY:
		return DirE, true
	case math.Abs(pt.X-left) <= thr && inY:
		return DirW, true
	}
	return 0, false
}

// inDockspace reports whether dock node id belongs to the dockspace tree,
// whose outer rect follows the window instead of the pointer.
func (c *Context) inDockspace(id ID) bool {
	if c.dockspacePanel.IsNull() {
		return false
	}
	ds, ok := c.panels[c.dockspacePanel]
	return ok && ds.IsDocked() && c.tree.Root(ds.Dock) == c.tree.Root(id)
}

func (c *Context) updatePanelResize() {
	c.startResize()
	switch a := c.action.(type) {
	case *DragSplitAction:
		c.dragSplit(a)
	case *ResizeAction:
		c.dragResize(a)
	}
}

// startResize shows the resize cursor over the border of the hot panel and
// starts a resize, or a split drag when the border is shared with a docked
// neighbor.
func (c *Context) startResize() {
	p, ok := c.panels[c.hotPanelID]
	if !ok || !isNoAction(c.action) || p.ID == c.windowPanel || p.IsChild() || p.Flags.Has(PanelNoResize) {
		return
	}
	dir, ok := resizeRegion(p.Rect(), c.pointer.Pos, c.cfg.ResizeThreshold)
	if !ok {
		return
	}

	prev := p.Rect()
	split := NullID
	if p.IsDocked() {
		nb := c.tree.Neighbors(p.Dock)
		has := map[Dir]bool{DirN: !nb[0].IsNull(), DirE: !nb[1].IsNull(), DirS: !nb[2].IsNull(), DirW: !nb[3].IsNull()}
		outer := !c.inDockspace(p.Dock)
		switch {
		case dir.IsCorner():
			if (dir.HasN() && has[DirN]) || (dir.HasS() && has[DirS]) ||
				(dir.HasE() && has[DirE]) || (dir.HasW() && has[DirW]) || !outer {
				return
			}
			prev = c.tree.Node(c.tree.Root(p.Dock)).Rect
		case has[dir]:
			split = c.tree.SplitToward(p.Dock, dir)
		case outer:
			prev = c.tree.Node(c.tree.Root(p.Dock)).Rect
		default:
			return
		}
	}

	c.cursorIcon = cursorForDir(dir)
	if !c.pointer.Pressed(MouseButtonLeft) || c.pointer.Dragging(MouseButtonLeft) {
		return
	}
	c.expectDrag = true
	if !split.IsNull() {
		ratio := c.tree.Node(split).Split.Ratio
		c.action = &DragSplitAction{Dir: dir, Split: split, PrevRatio: ratio}
		c.emit(LayoutEvent{Type: EventSplitDragStart, Panel: p.ID, Dock: split, Dir: dir, Ratio: ratio})
		return
	}
	c.action = &ResizeAction{Dir: dir, Panel: p.ID, PrevRect: prev}
	c.emit(LayoutEvent{Type: EventResizeStart, Panel: p.ID, Dir: dir, Rect: prev})
}

// dragOffset is how far the pointer moved since the press, or zero before
// the drag threshold is crossed.
func (c *Context) dragOffset() Vec2 {
	d, _ := c.pointer.DragDelta(MouseButtonLeft)
	return d
}

// dragSplit moves a split boundary with the pointer, keeping a titlebar's
// height of room on both sides and not crossing nested boundaries.
func (c *Context) dragSplit(a *DragSplitAction) {
	n, ok := c.tree.Lookup(a.Split)
	if !ok || !c.pointer.Pressed(MouseButtonLeft) {
		c.action = NoAction{}
		c.emit(LayoutEvent{Type: EventSplitDragEnd, Dock: a.Split, Dir: a.Dir})
		return
	}
	axis := n.Split.Axis
	size := n.Rect.Extent(axis)
	if size <= 0 {
		return
	}
	lo, hi := c.tree.SplitRange(a.Split)
	pad := c.style.TitlebarHeight + splitDragPad
	pos := n.Rect.Start(axis) + a.PrevRatio*size + c.dragOffset().Get(axis)
	if lo+pad <= hi-pad {
		pos = clamp(pos, lo+pad, hi-pad)
	} else {
		pos = (lo + hi) / 2
	}
	c.tree.SetSplitRatio(a.Split, (pos-n.Rect.Start(axis))/size)
	c.syncDockedPanels(c.tree.Root(a.Split))
}

// dragResize moves the dragged edges of the panel, or of its dock tree,
// keeping the size within the panel's limits.
func (c *Context) dragResize(a *ResizeAction) {
	p, ok := c.panels[a.Panel]
	if !ok || !c.pointer.Pressed(MouseButtonLeft) {
		c.action = NoAction{}
		if ok {
			c.emit(LayoutEvent{Type: EventResizeEnd, Panel: a.Panel, Dir: a.Dir, Rect: p.Rect()})
		}
		return
	}
	minS := p.MinSize.Max(p.minDecoratedSize())
	if p.IsDocked() {
		minS = minS.Max(c.dockMinSize(c.tree.Root(p.Dock)))
	}
	maxS := p.MaxSize
	d := c.dragOffset()
	pr := a.PrevRect
	lo, hi := pr.Min(), pr.Max()

	if a.Dir.HasN() {
		lo.Y = clamp(pr.Y+d.Y, hi.Y-maxS.Y, hi.Y-minS.Y)
	}
	if a.Dir.HasS() {
		hi.Y = clamp(pr.Max().Y+d.Y, lo.Y+minS.Y, lo.Y+maxS.Y)
	}
	if a.Dir.HasW() {
		lo.X = clamp(pr.X+d.X, hi.X-maxS.X, hi.X-minS.X)
	}
	if a.Dir.HasE() {
		hi.X = clamp(pr.Max().X+d.X, lo.X+minS.X, lo.X+maxS.X)
	}
	nr := RectFromMinMax(lo, hi)

	if p.IsDocked() {
		root := c.tree.Root(p.Dock)
		c.tree.RecomputeRects(root, nr)
		c.syncDockedPanels(root)
		return
	}
	p.moveTo(nr.Min())
	p.Size = nr.Size()
}

// dockMinSize is the smallest rect tree root can shrink to while every leaf
// keeps its panel's minimum size. Leaves scale with the root, so each one
// needs its minimum divided by its share of the root.
func (c *Context) dockMinSize(root ID) Vec2 {
	rr := c.tree.Node(root).Rect
	var m Vec2
	for _, leaf := range c.tree.Leaves(root) {
		n := c.tree.Node(leaf)
		p, ok := c.panels[n.Panel]
		if !ok {
			continue
		}
		pm := p.MinSize.Max(p.minDecoratedSize())
		for _, a := range [2]Axis{AxisX, AxisY} {
			if ext := n.Rect.Extent(a); ext > 0 {
				m = m.With(a, math.Max(m.Get(a), pm.Get(a)*rr.Extent(a)/ext))
			}
		}
	}
	return m
}

// --- Moving and docking ---

func (c *Context) updatePanelMove() {
	c.startMove()
	mv, ok := c.action.(*MoveAction)
	if !ok {
		return
	}
	p, live := c.panels[mv.Panel]
	if !live || (!c.pointer.Pressed(MouseButtonLeft) && mv.DockTarget.IsNull()) {
		c.action = NoAction{}
		c.emit(LayoutEvent{Type: EventMoveEnd, Panel: mv.Panel})
		return
	}
	if !c.pointer.Dragging(MouseButtonLeft) {
		return
	}

	newPos := mv.StartPos.Add(c.dragOffset())
	switch {
	case !p.IsDocked():
		p.moveTo(newPos)
	case mv.DragByTitleHandle:
		if mv.StartPos.Sub(newPos).Len() > c.cfg.UndockThreshold {
			root := c.tree.Node(c.tree.Root(p.Dock))
			leaf := c.tree.Node(p.Dock)
			mv.StartPos = mv.StartPos.Add(leaf.Rect.Min().Sub(root.Rect.Min()))
			c.UndockPanel(p.ID)
			c.BringPanelToFront(p.ID)
		}
	default:
		root := c.tree.Root(p.Dock)
		size := c.tree.Node(root).Rect.Size()
		c.tree.RecomputeRects(root, RectFromPosSize(newPos, size))
		c.syncDockedPanels(root)
	}
}

// startMove begins moving the active panel once a press on its body or
// titlebar turns into a drag. Docked panels move their whole tree, or
// leave it when grabbed by the title handle.
func (c *Context) startMove() {
	if !isNoAction(c.action) || !c.pointer.Dragging(MouseButtonLeft) {
		return
	}
	p, ok := c.panels[c.activePanelID]
	if !ok || c.activeID != p.ID || p.Flags.Has(PanelNoMove) {
		return
	}
	start, _ := c.pointer.DragStart(MouseButtonLeft)
	byTitlebar := p.TitlebarRect().ContainsPoint(start)
	if p.Flags.Has(PanelOnlyMoveFromTitlebar) && !byTitlebar {
		return
	}
	byHandle := p.IsDocked() && p.TitleHandleRect.ContainsPoint(start)

	startPos := p.Pos
	if p.IsDocked() {
		if !byHandle && c.inDockspace(p.Dock) {
			return
		}
		startPos = c.tree.Node(c.tree.Root(p.Dock)).Rect.Min()
	}
	c.action = &MoveAction{
		Panel:             p.ID,
		StartPos:          startPos,
		DragByTitlebar:    byTitlebar,
		DragByTitleHandle: byHandle,
	}
	c.emit(LayoutEvent{Type: EventMoveStart, Panel: p.ID, Rect: p.Rect()})
}

// updatePanelDock docks the moving panel into its target on release and
// draws the drop preview while hovering one. A right press or Escape
// cancels docking for the rest of the move; Shift suspends it.
func (c *Context) updatePanelDock() {
	mv, ok := c.action.(*MoveAction)
	if !ok {
		return
	}
	p := c.panels.Get(mv.Panel)
	canDock := !mv.DockTarget.IsNull() && !mv.Cancelled && mv.DragByTitlebar &&
		(!p.IsDocked() || !mv.DragByTitleHandle)

	if !c.pointer.Pressed(MouseButtonLeft) {
		if canDock {
			t := c.panels.Get(mv.DockTarget)
			_, dir, ratio := DropRegion(c.pointer.Pos, t.Rect(), t.Flags, c.cfg.Drop)
			c.DockPanel(p.ID, t.ID, ratio, dir)
			c.BringPanelToFront(p.ID)
		}
		c.action = NoAction{}
		c.emit(LayoutEvent{Type: EventMoveEnd, Panel: p.ID, Rect: p.Rect()})
		return
	}

	if c.pointer.Pressed(MouseButtonRight) {
		mv.Cancelled = true
	}
	if !mv.DockTarget.IsNull() {
		t, live := c.panels[mv.DockTarget]
		if !live || !t.ClipRect.ContainsPoint(c.pointer.Pos) || c.mods&ModShift != 0 || mv.Cancelled {
			mv.DockTarget = NullID
		}
	}
	if mv.DockTarget.IsNull() || !canDock {
		return
	}
	t := c.panels.Get(mv.DockTarget)
	preview, _, _ := DropRegion(c.pointer.Pos, t.Rect(), t.Flags, c.cfg.Drop)
	t.OverlayList.FillRect(preview.Expand(-c.style.PanelOutlineWidth), c.style.DockPreviewFill, CornerRadii{})
}
