package arbor

import (
	"fmt"
	"io"
	"math"
	"time"
)

const (
	windowPanelName    = "##_WINDOW_PANEL"
	dockspacePanelName = "##_DOCK_SPACE"

	// autoFitFrames is how many frames after creation a panel's size snaps
	// to its content.
	autoFitFrames = 1
)

// nextPanelData holds SetNextPanel* requests for the next Begin.
type nextPanelData struct {
	pos            Vec2
	hasPos         bool
	initialPos     Vec2
	hasInitialPos  bool
	size           Vec2
	hasSize        bool
	initialSize    Vec2
	hasInitialSize bool
	minSize        Vec2
	maxSize        Vec2
}

func (n *nextPanelData) reset() {
	*n = nextPanelData{maxSize: Vec2{math.Inf(1), math.Inf(1)}}
}

// Context owns all retained layout state: panels, dock trees, the draw
// order, hot/active ownership and the interaction in progress. It is driven
// once per frame by BeginFrame, any number of Begin/End pairs, and EndFrame.
// A Context is not safe for concurrent use.
type Context struct {
	cfg        Config
	style      Style
	styleStack []Style
	window     Window

	panels Panels
	tree   *DockTree
	order  DrawOrder

	action PanelAction

	hotID             ID
	prevHotID         ID
	activeID          ID
	prevActiveID      ID
	hotPanelID        ID
	prevHotPanelID    ID
	activePanelID     ID
	prevActivePanelID ID

	currentPanel   ID
	panelStack     []ID
	windowPanel    ID
	dockspacePanel ID

	next    nextPanelData
	frame   uint64
	cascade int

	pointer    Pointer
	mods       KeyModifiers
	expectDrag bool

	kbFocusNext  bool
	kbFocusPrev  bool
	kbFocusItem  ID
	kbFocusFrame uint64
	prevItem     ID
	lastItem     itemData

	cursorIcon     CursorIcon
	closeRequested bool

	scrollAnims   map[ID]*scrollAnim
	lastFrameTime time.Time

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string

	sink     EventSink
	handlers handlerRegistry
	debug    bool
	log      io.Writer
}

// NewContext creates a Context. A nil window is replaced by a 1280x720
// HeadlessWindow. Zero Clock and LogOutput fall back to the defaults.
func NewContext(cfg Config, window Window) *Context {
	def := DefaultConfig()
	if cfg.Clock == nil {
		cfg.Clock = def.Clock
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = def.LogOutput
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = def.ScreenshotDir
	}
	if window == nil {
		window = NewHeadlessWindow(1280, 720)
	}
	c := &Context{
		cfg:         cfg,
		style:       cfg.Style,
		window:      window,
		panels:      make(Panels),
		tree:        NewDockTree(),
		action:      NoAction{},
		windowPanel: HashString(windowPanelName),
		pointer:     newPointer(cfg.DragThreshold, cfg.ClickThreshold, cfg.MultiClickTimeout),
		scrollAnims: make(map[ID]*scrollAnim),
		log:         cfg.LogOutput,
	}
	c.next.reset()
	return c
}

// --- Queries ---

// Frame returns the number of completed frames.
func (c *Context) Frame() uint64 { return c.frame }

// Window returns the host window.
func (c *Context) Window() Window { return c.window }

// Tree returns the dock tree table.
func (c *Context) Tree() *DockTree { return c.tree }

// DrawOrder returns the top-level draw order.
func (c *Context) DrawOrder() *DrawOrder { return &c.order }

// Panels returns the panel registry. Callers must not add or remove entries.
func (c *Context) Panels() Panels { return c.panels }

// Panel returns the top-level panel begun with name.
func (c *Context) Panel(name string) (*Panel, bool) {
	return c.panels.Lookup(HashString(name))
}

// PanelByID returns the panel for id.
func (c *Context) PanelByID(id ID) (*Panel, bool) { return c.panels.Lookup(id) }

// Action returns the interaction in progress.
func (c *Context) Action() PanelAction { return c.action }

// HotID returns the id under the pointer this frame.
func (c *Context) HotID() ID { return c.hotID }

// ActiveID returns the id that owns the pointer or keyboard.
func (c *Context) ActiveID() ID { return c.activeID }

// HotPanelID returns the topmost panel under the pointer this frame.
func (c *Context) HotPanelID() ID { return c.hotPanelID }

// ActivePanelID returns the root of the panel last pressed.
func (c *Context) ActivePanelID() ID { return c.activePanelID }

// WindowPanelID returns the panel covering the host window.
func (c *Context) WindowPanelID() ID { return c.windowPanel }

// DockspacePanelID returns the background dockspace panel, if any.
func (c *Context) DockspacePanelID() ID { return c.dockspacePanel }

// CursorIcon returns the pointer shape the host should show.
func (c *Context) CursorIcon() CursorIcon { return c.cursorIcon }

// CloseRequested reports whether the window panel's close button was
// clicked.
func (c *Context) CloseRequested() bool { return c.closeRequested }

// Pointer returns the pointer state.
func (c *Context) Pointer() *Pointer { return &c.pointer }

// current returns the panel between Begin and End. It panics outside a
// panel.
func (c *Context) current() *Panel {
	if c.currentPanel.IsNull() {
		panic("arbor: no current panel; call Begin first")
	}
	return c.panels.Get(c.currentPanel)
}

// CurrentPanel returns the panel between Begin and End.
func (c *Context) CurrentPanel() *Panel { return c.current() }

// --- Input ---

// SetPointerPos moves the pointer.
func (c *Context) SetPointerPos(x, y float64) {
	c.pointer.setPos(Vec2{x, y})
}

// SetButton records a button press or release at the current pointer
// position. Presses on the chrome of an undecorated window start a native
// window drag or resize.
func (c *Context) SetButton(btn MouseButton, pressed bool) {
	c.pointer.setButton(btn, pressed, c.cfg.Clock())
	if c.window.Decorated() || !pressed || btn != MouseButtonLeft {
		return
	}
	if dir, ok := c.windowBorder(); ok {
		c.window.StartDragResize(dir)
		return
	}
	if c.prevHotID == hashSeeded(c.windowPanel, "##_TITLEBAR") {
		c.window.StartDrag()
	}
}

// windowBorder reports the border of an undecorated, restored window the
// pointer is on.
func (c *Context) windowBorder() (Dir, bool) {
	if c.window.Decorated() || c.window.Maximized() {
		return 0, false
	}
	return resizeRegion(c.windowRect(), c.pointer.Pos, c.cfg.ResizeThreshold*1.5)
}

// SetModifiers records the held modifier keys.
func (c *Context) SetModifiers(mods KeyModifiers) { c.mods = mods }

// KeyPress handles a key going down. Tab moves keyboard focus to the next
// registered item, Shift+Tab to the previous one; Escape cancels a pending
// dock.
func (c *Context) KeyPress(key Key) {
	switch key {
	case KeyTab:
		if c.activeID.IsNull() {
			return
		}
		if c.mods&ModShift != 0 {
			c.kbFocusPrev = true
		} else {
			c.kbFocusNext = true
		}
	case KeyEscape:
		if mv, ok := c.action.(*MoveAction); ok {
			mv.Cancelled = true
			mv.DockTarget = NullID
		}
	}
}

// FocusLost forgets held buttons, for when the host window loses focus.
func (c *Context) FocusLost() {
	c.pointer.reset()
	c.expectDrag = false
}

func (c *Context) windowRect() Rect {
	return RectFromPosSize(Vec2{}, c.window.Size())
}

// --- Next panel ---

// SetNextPanelPos fixes the position of the next panel begun.
func (c *Context) SetNextPanelPos(x, y float64) {
	c.next.pos = Vec2{x, y}
	c.next.hasPos = true
}

// SetNextPanelInitialPos positions the next panel only if it is created by
// the next Begin.
func (c *Context) SetNextPanelInitialPos(x, y float64) {
	c.next.initialPos = Vec2{x, y}
	c.next.hasInitialPos = true
}

// SetNextPanelSize fixes the size of the next panel begun.
func (c *Context) SetNextPanelSize(w, h float64) {
	c.next.size = Vec2{w, h}
	c.next.hasSize = true
}

// SetNextPanelInitialSize sizes the next panel only if it is created by the
// next Begin. Such a panel keeps this size instead of fitting its content.
func (c *Context) SetNextPanelInitialSize(w, h float64) {
	c.next.initialSize = Vec2{w, h}
	c.next.hasInitialSize = true
}

// SetNextPanelMinSize bounds the size of the next panel from below.
func (c *Context) SetNextPanelMinSize(w, h float64) { c.next.minSize = Vec2{w, h} }

// SetNextPanelMaxSize bounds the size of the next panel from above.
func (c *Context) SetNextPanelMaxSize(w, h float64) { c.next.maxSize = Vec2{w, h} }

// --- Frame lifecycle ---

// BeginFrame starts a frame: it applies injected input, clears per-frame
// hot state and opens the window panel (and the dockspace, if enabled).
func (c *Context) BeginFrame() {
	now := c.cfg.Clock()
	var dt float32
	if !c.lastFrameTime.IsZero() {
		dt = float32(now.Sub(c.lastFrameTime).Seconds())
	}
	c.lastFrameTime = now

	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	c.processInjectedInput()
	c.updateScrollAnims(dt)

	c.hotPanelID = NullID
	c.hotID = NullID
	c.prevItem = NullID
	if !c.pointer.Pressed(MouseButtonLeft) {
		c.expectDrag = false
	}
	if isNoAction(c.action) {
		c.cursorIcon = CursorDefault
		if dir, ok := c.windowBorder(); ok {
			c.cursorIcon = cursorForDir(dir)
		}
	}

	size := c.window.Size()
	flags := PanelNoFocus | PanelNoMove | PanelNoResize | PanelNoDocking
	if c.window.Decorated() {
		flags |= PanelNoTitlebar
	}
	c.SetNextPanelPos(0, 0)
	c.SetNextPanelSize(size.X, size.Y)
	c.BeginEx(windowPanelName, flags)

	if c.cfg.Dockspace {
		c.BeginDockspace()
	}
}

// EndFrame resolves the interaction in progress, closes the window panel,
// prunes panels that were not begun for more than one frame and advances
// the frame counter.
func (c *Context) EndFrame() {
	if len(c.styleStack) > 0 {
		c.warnf("style stack not empty at end of frame (%d entries)", len(c.styleStack))
		c.PopStyle(len(c.styleStack))
	}

	c.updateActivePanel()
	c.updatePanelScroll()
	c.updatePanelResize()
	c.updatePanelMove()
	c.updatePanelDock()

	c.prevHotPanelID = c.hotPanelID
	c.prevActivePanelID = c.activePanelID
	c.prevHotID = c.hotID
	c.prevActiveID = c.activeID
	c.endFocusFrame()

	if c.currentPanel != c.windowPanel {
		name := "<none>"
		if p, ok := c.panels[c.currentPanel]; ok {
			name = p.Name
		}
		panic(fmt.Sprintf("arbor: EndFrame with panel %q still open; missing End", name))
	}
	c.End()

	if r, ok := c.action.(*ResizeAction); ok {
		c.cursorIcon = cursorForDir(r.Dir)
	}

	c.prune()
	c.updateDrawOrder()

	if c.debug {
		if err := c.CheckInvariants(); err != nil {
			panic(fmt.Sprintf("arbor debug: frame %d: %v", c.frame, err))
		}
		c.debugLog()
	}

	c.frame++
	c.pointer.endFrame(c.cfg.Clock())
}

// Begin starts a top-level panel with vertical scrolling. It must be
// matched by End.
func (c *Context) Begin(name string) {
	c.BeginEx(name, PanelDrawVScrollbar)
}

// BeginEx starts a panel with explicit flags. The panel is created on first
// use and persists as long as it is begun every frame.
func (c *Context) BeginEx(name string, flags PanelFlag) {
	isChild := flags.Has(PanelIsChild)
	var id ID
	if isChild {
		id = c.GenID(name)
	} else {
		id = HashString(name)
	}

	p, ok := c.panels[id]
	created := !ok
	if created {
		p = newPanel(id, name, c.frame)
		p.autoFit = !c.next.hasInitialSize
		if c.next.hasInitialSize {
			p.Size = c.next.initialSize
		}
		switch {
		case c.next.hasInitialPos:
			p.Pos = c.next.initialPos
		case !c.next.hasPos:
			p.Pos = c.cascadePos(p.Size)
		}
		c.panels[id] = p
	}
	p.Name = name
	p.Children = p.Children[:0]
	p.ClosePressed = false

	parentID, rootID := NullID, id
	if isChild {
		parentID = c.currentPanel
		parent := c.panels.Get(parentID)
		parent.Children = append(parent.Children, id)
		rootID = parent.Root
		if flags.Has(PanelUseParentDrawList) {
			p.DrawList = parent.DrawList
			p.OverlayList = parent.OverlayList
		}
	} else if !p.IsDocked() && !c.order.Contains(PanelRoot(id)) {
		c.order.Push(PanelRoot(id))
		c.updateDrawOrder()
	}

	c.panelStack = append(c.panelStack, id)
	c.currentPanel = id

	if c.next.hasPos {
		p.moveTo(c.next.pos)
	}
	if !flags.Has(PanelUseParentDrawList) {
		if d := p.DrawList.ClipDepth(); d != 0 {
			c.warnf("panel %q: %d clip rects left on the stack", name, d)
			p.DrawList.PopClipN(d)
		}
		p.DrawList.Clear()
		p.OverlayList.Clear()
	}

	p.Root = rootID
	p.Parent = parentID
	isWindow := id == c.windowPanel

	p.idStack = append(p.idStack[:0], id)
	p.Flags = flags
	p.ExplicitSize, p.HasExplicitSize = c.next.size, c.next.hasSize
	switch {
	case flags.Has(PanelNoTitlebar):
		p.TitlebarHeight = 0
	case isWindow:
		p.TitlebarHeight = c.style.WindowTitlebarHeight
	default:
		p.TitlebarHeight = c.style.TitlebarHeight
	}
	p.Padding = c.style.PanelPadding
	p.TitleHandleRect = Rect{X: p.Pos.X, Y: p.Pos.Y, Height: p.TitlebarHeight}
	if p.TitlebarHeight > 0 {
		p.TitleHandleRect.Width = c.style.TitleHandleWidth
	}
	p.ScrollbarWidth = c.style.ScrollbarWidth
	p.ScrollbarPadding = c.style.ScrollbarPadding
	p.Outline = c.style.PanelOutlineWidth
	p.LastFrameUsed = c.frame

	p.MinSize = c.next.minSize
	p.MaxSize = c.next.maxSize
	c.next.reset()

	switch {
	case isChild:
		parent := c.panels.Get(parentID)
		p.PositionBounds = parent.FullContentRect().Translate(parent.Scroll)
	case isWindow:
		p.PositionBounds = p.VisibleContentRect().Expand(p.Padding)
	default:
		p.PositionBounds = c.workArea()
	}
	if !isWindow {
		c.clampToBounds(p)
	}

	p.initCursor(p.VisibleContentStartPos())

	size := p.Size
	if p.HasExplicitSize {
		size = p.ExplicitSize
	}
	p.Size = size.Clamp(p.MinSize.Max(p.minDecoratedSize()), p.MaxSize)

	if p.IsDocked() {
		r := c.tree.Node(p.Dock).Rect
		p.moveTo(r.Min())
		p.Size = r.Size()
	}

	// Clamp against last frame's content, measured in this frame's view.
	p.Scroll = p.NextScroll.Clamp(p.ScrollMin(), p.ScrollMax())
	p.NextScroll = p.Scroll

	o := p.Outline
	p.FullRect = Rect{X: p.Pos.X - o, Y: p.Pos.Y - o, Width: p.Size.X + 2*o, Height: p.Size.Y + 2*o}
	p.ClipRect = p.FullRect
	if flags.Has(PanelUseParentClip) {
		p.ClipRect, _ = p.DrawList.CurrentClip().Clip(p.FullRect)
	}

	c.hitTestPanel(p)
	c.markDockTarget(p)
	c.drawPanel(p, isWindow)

	if created {
		c.emit(LayoutEvent{Type: EventPanelCreated, Panel: id, Rect: p.Rect()})
	}
}

// End closes the panel opened by the matching Begin, measures its content
// and, for a new panel, fits its size to the content.
func (c *Context) End() {
	p := c.current()
	if len(p.idStack) != 1 || p.idStack[0] != p.ID {
		c.warnf("panel %q: id stack not empty at End (%d entries)", p.Name, len(p.idStack)-1)
	}
	p.idStack = p.idStack[:0]
	p.DrawList.PopClipN(2)

	maxPos := p.cursor.maxPos.Round()
	start := p.ContentStartPos()
	p.FullContentSize = maxPos.Sub(start).Max(Vec2{})
	p.FullSize = maxPos.Sub(p.Pos).Add(Vec2{p.Padding, p.Padding})

	if p.autoFit && c.frame-p.FrameCreated <= autoFitFrames && !p.IsDocked() &&
		!p.HasExplicitSize && p.ID != c.windowPanel {
		fit := p.FullSize.Add(Vec2{p.Padding + p.ScrollbarPadding, p.Padding + p.ScrollbarPadding})
		p.Size = fit.Clamp(p.MinSize.Max(p.minDecoratedSize()), p.MaxSize)
	}

	c.panelStack = c.panelStack[:len(c.panelStack)-1]
	c.currentPanel = NullID
	if n := len(c.panelStack); n > 0 {
		c.currentPanel = c.panelStack[n-1]
	}
}

// BeginChild starts a child panel placed at the parent's cursor. It shares
// the parent's draw list and clip rect and scrolls vertically.
func (c *Context) BeginChild(name string) {
	parent := c.current()
	o := c.style.PanelOutlineWidth
	pos := parent.CursorPos().Add(Vec2{o, o})
	c.SetNextPanelPos(pos.X, pos.Y)
	c.BeginEx(name, PanelNoTitlebar|PanelNoDocking|PanelUseParentDrawList|
		PanelDrawVScrollbar|PanelUseParentClip|PanelIsChild)
}

// EndChild closes a child panel and advances the parent's cursor past it.
func (c *Context) EndChild() {
	child := c.current()
	if !child.IsChild() {
		panic(fmt.Sprintf("arbor: EndChild on panel %q, which is not a child", child.Name))
	}
	size := child.Size
	c.End()
	c.PlaceItem(size)
}

// BeginDockspace opens and closes the background panel covering the work
// area. Panels dropped on it fill it entirely.
func (c *Context) BeginDockspace() {
	area := c.workArea()
	id := HashString(dockspacePanelName)
	if p, ok := c.panels[id]; ok && p.IsDocked() {
		c.tree.RecomputeRects(c.tree.Root(p.Dock), area)
	}

	c.SetNextPanelPos(area.X, area.Y)
	c.SetNextPanelSize(area.Width, area.Height)
	c.PushStyle(func(s *Style) {
		s.PanelBg = Color{}
		s.PanelOutlineWidth = 0
	})
	c.BeginEx(dockspacePanelName, PanelNoTitlebar|PanelNoFocus|PanelNoMove|
		PanelNoResize|PanelOnlyDockOver)
	c.PopStyle(1)
	c.dockspacePanel = id

	p := c.current()
	if !p.IsDocked() {
		root := c.tree.AddRoot(area, p.ID, DockAllowSingleLeaf|DockNoBringToFront)
		c.tree.Node(root).Label = dockspacePanelName
		p.Dock = root
		c.order.Replace(PanelRoot(p.ID), DockRoot(root))
		c.updateDrawOrder()
	}
	c.End()
}

// workArea is the region top-level panels are kept inside: the window
// panel's content area grown by its padding, or the whole window before
// the window panel exists.
func (c *Context) workArea() Rect {
	if wp, ok := c.panels[c.windowPanel]; ok {
		return wp.VisibleContentRect().Expand(wp.Padding)
	}
	return c.windowRect()
}

// clampToBounds keeps a titlebar's worth of a panel, or of its dock tree,
// inside its position bounds.
func (c *Context) clampToBounds(p *Panel) {
	b := p.PositionBounds
	tb := p.TitlebarHeight
	clampPos := func(pos, size Vec2) Vec2 {
		pos.X = math.Min(math.Max(pos.X, b.X-size.X+tb), b.X+b.Width-tb)
		pos.Y = math.Min(math.Max(pos.Y, b.Y), b.Y+b.Height-tb)
		return pos
	}
	if !p.IsDocked() {
		p.moveTo(clampPos(p.Pos, p.Size))
		return
	}
	root := c.tree.Root(p.Dock)
	rr := c.tree.Node(root).Rect
	if pos := clampPos(rr.Min(), rr.Size()); pos != rr.Min() {
		c.tree.RecomputeRects(root, RectFromPosSize(pos, rr.Size()))
	}
}

// cascadePos staggers new panels diagonally across the window.
func (c *Context) cascadePos(size Vec2) Vec2 {
	c.cascade++
	screen := c.window.Size()
	off := cascadeOffset * float64(c.cascade)
	wrap := func(v, room float64) float64 {
		if room <= 0 {
			return 0
		}
		return math.Mod(v, room)
	}
	return Vec2{
		X: wrap(off, screen.X-size.X),
		Y: wrap(off, screen.Y-size.Y),
	}
}

// hitTestPanel claims the hot panel for p if it is the topmost focusable
// panel under the pointer and nothing is being dragged.
func (c *Context) hitTestPanel(p *Panel) {
	if !p.ClipRect.ContainsPoint(c.pointer.Pos) || !isNoAction(c.action) || p.Flags.Has(PanelNoFocus) {
		return
	}
	if !c.hotPanelID.IsNull() && c.panels.Get(c.hotPanelID).DrawOrder >= p.DrawOrder {
		return
	}
	c.hotPanelID = p.ID
	c.hotID = p.ID
}

// markDockTarget records p as the dock target of the panel being moved if
// the pointer is over it and it is the topmost eligible panel below the
// moving one.
func (c *Context) markDockTarget(p *Panel) {
	mv, ok := c.action.(*MoveAction)
	if !ok || mv.Cancelled || mv.Panel == p.ID || !mv.DragByTitlebar {
		return
	}
	if !p.ClipRect.ContainsPoint(c.pointer.Pos) || c.mods&ModShift != 0 || p.Flags.Has(PanelNoDocking) {
		return
	}
	moving := c.panels.Get(mv.Panel)
	if moving.IsDocked() && mv.DragByTitleHandle {
		return
	}
	if moving.IsDocked() && p.IsDocked() && c.tree.Root(moving.Dock) == c.tree.Root(p.Dock) {
		return
	}
	if p.DrawOrder >= moving.DrawOrder {
		return
	}
	if !mv.DockTarget.IsNull() && c.panels.Get(mv.DockTarget).DrawOrder >= p.DrawOrder {
		return
	}
	mv.DockTarget = p.ID
}

// prune drops panels that have not been begun for more than one frame.
func (c *Context) prune() {
	for _, id := range c.panels.sortedIDs() {
		p := c.panels[id]
		if c.frame-p.LastFrameUsed <= 1 {
			continue
		}
		if p.IsDocked() {
			c.tree.Undock(p.Dock, c.panels, &c.order)
		}
		for _, ref := range []*ID{&c.hotID, &c.activeID, &c.hotPanelID, &c.activePanelID,
			&c.prevHotID, &c.prevActiveID, &c.prevHotPanelID, &c.prevActivePanelID} {
			if *ref == id {
				*ref = NullID
			}
		}
		switch a := c.action.(type) {
		case *MoveAction:
			if a.Panel == id {
				c.action = NoAction{}
			} else if a.DockTarget == id {
				a.DockTarget = NullID
			}
		case *ResizeAction:
			if a.Panel == id {
				c.action = NoAction{}
			}
		case *ScrollAction:
			if a.Panel == id {
				c.action = NoAction{}
			}
		case *DragSplitAction:
			if _, ok := c.tree.Lookup(a.Split); !ok {
				c.action = NoAction{}
			}
		}
		delete(c.panels, id)
		delete(c.scrollAnims, id)
		if id == c.dockspacePanel {
			c.dockspacePanel = NullID
		}
		c.emit(LayoutEvent{Type: EventPanelPruned, Panel: id, Name: p.Name})
	}

	c.order.Retain(func(r RootID) bool {
		if r.Kind == RootDock {
			_, ok := c.tree.Lookup(r.ID)
			return ok
		}
		_, ok := c.panels[r.ID]
		return ok
	})
}

// updateDrawOrder numbers every panel from back to front: each root in
// draw order, then for dock roots their leaves, each followed by its
// children.
func (c *Context) updateDrawOrder() {
	n := 0
	var visit func(id ID)
	visit = func(id ID) {
		p, ok := c.panels[id]
		if !ok {
			return
		}
		n++
		p.DrawOrder = n
		for _, child := range p.Children {
			visit(child)
		}
	}
	for _, r := range c.order.Roots() {
		if r.Kind == RootPanel {
			visit(r.ID)
			continue
		}
		if _, ok := c.tree.Lookup(r.ID); !ok {
			continue
		}
		for _, leaf := range c.tree.Leaves(r.ID) {
			visit(c.tree.Node(leaf).Panel)
		}
	}
}

// PanelsInOrder returns every top-level or docked panel back to front,
// each followed by its children.
func (c *Context) PanelsInOrder() []*Panel {
	out := make([]*Panel, 0, len(c.panels))
	var visit func(id ID)
	visit = func(id ID) {
		p, ok := c.panels[id]
		if !ok {
			return
		}
		out = append(out, p)
		for _, child := range p.Children {
			visit(child)
		}
	}
	for _, r := range c.order.Roots() {
		if r.Kind == RootPanel {
			visit(r.ID)
			continue
		}
		if _, ok := c.tree.Lookup(r.ID); !ok {
			continue
		}
		for _, leaf := range c.tree.Leaves(r.ID) {
			visit(c.tree.Node(leaf).Panel)
		}
	}
	return out
}

// BringPanelToFront raises the root containing panel id to the top of the
// draw order. A docked panel raises its whole tree unless the tree opted
// out; child panels raise their parent.
func (c *Context) BringPanelToFront(id ID) {
	p := c.panels.Get(id)
	if !p.Parent.IsNull() {
		c.BringPanelToFront(p.Parent)
		return
	}
	if id == c.windowPanel {
		return
	}
	var r RootID
	if p.IsDocked() {
		root := c.tree.Root(p.Dock)
		if c.tree.Node(root).Flags&DockNoBringToFront != 0 {
			return
		}
		r = DockRoot(root)
	} else {
		r = PanelRoot(id)
	}
	if i := c.order.Index(r); i >= 0 && i < c.order.Len()-1 {
		c.order.BringToFront(r)
		c.updateDrawOrder()
		c.emit(LayoutEvent{Type: EventBroughtToFront, Panel: id})
	}
}

// --- Docking ---

// DockPanel docks panel id into target on side dir, taking ratio of the
// target's area. A free panel splits the target's leaf; a docked panel
// brings its whole tree along.
func (c *Context) DockPanel(id, target ID, ratio float64, dir Dir) {
	if id == target {
		panic(fmt.Sprintf("arbor: DockPanel: panel %v docked into itself", id))
	}
	p := c.panels.Get(id)
	t := c.panels.Get(target)
	if p.IsChild() || t.IsChild() {
		panic("arbor: DockPanel: child panels cannot be docked")
	}

	if !p.IsDocked() {
		p.SizePreDock, p.HasPreDock = p.Size, true
	}
	if !t.IsDocked() {
		t.SizePreDock, t.HasPreDock = t.Size, true
		root := c.tree.AddRoot(t.Rect(), t.ID, DockNone)
		t.Dock = root
		c.order.Replace(PanelRoot(t.ID), DockRoot(root))
	}

	var leaf ID
	if p.IsDocked() {
		root := c.tree.Root(p.Dock)
		old := c.tree.MergeNodes(t.Dock, root, ratio, dir)
		c.tree.Node(old).Panel = t.ID
		t.Dock = old
		c.order.Remove(DockRoot(root))
		leaf = p.Dock
	} else {
		existing, incoming := c.tree.SplitNode(t.Dock, ratio, dir)
		c.tree.Node(existing).Panel = t.ID
		c.tree.Node(incoming).Panel = p.ID
		t.Dock = existing
		p.Dock = incoming
		c.order.Remove(PanelRoot(p.ID))
		leaf = incoming
	}
	c.syncDockedPanels(c.tree.Root(t.Dock))
	c.updateDrawOrder()
	c.emit(LayoutEvent{Type: EventPanelDocked, Panel: id, Target: target, Dock: leaf, Dir: dir, Ratio: ratio})
}

// DockToDockspace docks panel id into the window's dockspace. It panics
// when the dockspace has not been begun.
func (c *Context) DockToDockspace(id ID, ratio float64, dir Dir) {
	if c.dockspacePanel.IsNull() {
		panic("arbor: DockToDockspace: no dockspace")
	}
	c.DockPanel(id, c.dockspacePanel, ratio, dir)
}

// UndockPanel removes panel id from its dock tree.
func (c *Context) UndockPanel(id ID) {
	p := c.panels.Get(id)
	if !p.IsDocked() {
		return
	}
	leaf := p.Dock
	root := c.tree.Root(leaf)
	c.tree.Undock(leaf, c.panels, &c.order)
	if _, ok := c.tree.Lookup(root); ok {
		c.syncDockedPanels(root)
	} else {
		for _, r := range c.order.Roots() {
			if r.Kind == RootDock {
				c.syncDockedPanels(r.ID)
			}
		}
	}
	c.updateDrawOrder()
	c.emit(LayoutEvent{Type: EventPanelUndocked, Panel: id, Dock: leaf, Rect: p.Rect()})
}

// syncDockedPanels copies leaf rects onto the panels of tree root so queries
// between frames see the new layout.
func (c *Context) syncDockedPanels(root ID) {
	if _, ok := c.tree.Lookup(root); !ok {
		return
	}
	for _, leaf := range c.tree.Leaves(root) {
		n := c.tree.Node(leaf)
		if p, ok := c.panels[n.Panel]; ok {
			p.moveTo(n.Rect.Min())
			p.Size = n.Rect.Size()
		}
	}
}

// ResetDocking dissolves every dock tree except the dockspace's. Each
// docked panel becomes free at its docked position with its pre-dock size.
func (c *Context) ResetDocking() {
	type loose struct {
		id  ID
		pos Vec2
	}
	var free []loose
	for _, root := range c.tree.Roots() {
		for _, leaf := range c.tree.Leaves(root) {
			n := c.tree.Node(leaf)
			if n.Panel != c.dockspacePanel {
				free = append(free, loose{n.Panel, n.Rect.Min()})
			}
		}
	}
	for _, f := range free {
		p := c.panels.Get(f.id)
		if p.IsDocked() {
			c.UndockPanel(f.id)
		}
		p.moveTo(f.pos)
		if p.HasPreDock {
			p.Size = p.SizePreDock
		}
	}
}

// CheckInvariants verifies the retained state: dock trees are well formed
// and agree with their panels, and the draw order lists every top-level
// root exactly once.
func (c *Context) CheckInvariants() error {
	if err := c.tree.check(c.panels); err != nil {
		return err
	}
	if err := c.order.check(); err != nil {
		return err
	}
	for _, id := range c.panels.sortedIDs() {
		p := c.panels[id]
		if p.IsDocked() {
			n, ok := c.tree.Lookup(p.Dock)
			if !ok || !n.IsLeaf() || n.Panel != id {
				return fmt.Errorf("panel %q: dock %v does not host it", p.Name, p.Dock)
			}
			if c.order.Contains(PanelRoot(id)) {
				return fmt.Errorf("panel %q: docked but listed in draw order", p.Name)
			}
			continue
		}
		if p.IsChild() {
			continue
		}
		if !c.order.Contains(PanelRoot(id)) {
			return fmt.Errorf("panel %q: free top-level panel missing from draw order", p.Name)
		}
	}
	for _, r := range c.order.Roots() {
		if r.Kind != RootDock {
			continue
		}
		n, ok := c.tree.Lookup(r.ID)
		if !ok {
			return fmt.Errorf("draw order lists missing dock root %v", r.ID)
		}
		if !n.IsRoot() {
			return fmt.Errorf("draw order lists non-root dock node %v", r.ID)
		}
	}
	for _, root := range c.tree.Roots() {
		if !c.order.Contains(DockRoot(root)) {
			return fmt.Errorf("dock root %v missing from draw order", root)
		}
	}
	return nil
}
