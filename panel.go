package arbor

import (
	"fmt"
	"math"
	"sort"
)

// PanelFlag configures a panel's behavior. Values can be combined with
// bitwise OR.
type PanelFlag uint32

const (
	PanelNoTitlebar           PanelFlag = 1 << iota // no titlebar; the panel cannot be moved by one
	PanelNoFocus                                    // never becomes the hot panel
	PanelNoMove                                     // dragging the panel does nothing
	PanelNoResize                                   // borders are not resize handles
	PanelNoInput                                    // items inside never become hot
	PanelOnlyMoveFromTitlebar                       // body drags do not move the panel
	PanelDrawHScrollbar                             // always draw the horizontal scrollbar
	PanelDrawVScrollbar                             // always draw the vertical scrollbar
	PanelNoDocking                                  // never a dock target
	PanelDockOver                                   // dropping near the center fills the whole target
	PanelOnlyDockOver                               // every drop fills the whole target
	PanelDontKeepScrollbarPad                       // content reclaims the scrollbar gutter when hidden
	PanelDontClipContent                            // content is not clipped to the visible area
	PanelUseParentDrawList                          // child draws into the parent's draw list
	PanelUseParentClip                              // child clip is intersected with the parent's
	PanelIsChild                                    // created by BeginChild

	PanelNone PanelFlag = 0
)

// Has reports whether all bits of f2 are set in f.
func (f PanelFlag) Has(f2 PanelFlag) bool { return f&f2 == f2 }

// cursor tracks where the next item is placed inside a panel and how far
// content has extended.
type cursor struct {
	pos             Vec2
	maxPos          Vec2
	contentStartPos Vec2
	posPrevLine     Vec2
	lineHeight      float64
	prevLineHeight  float64
	isSameLine      bool
	indent          float64
}

// Panel is a rectangular region that owns a draw list, a layout cursor and
// scroll state. Panels are created by Begin and live as long as they are
// begun every frame. Other structures refer to panels only by ID.
type Panel struct {
	ID       ID
	Name     string
	Parent   ID
	Children []ID
	Root     ID
	Dock     ID
	Flags    PanelFlag

	Pos  Vec2
	Size Vec2
	// SizePreDock is the free size to restore when the panel leaves a dock
	// tree. Valid when HasPreDock is set.
	SizePreDock Vec2
	HasPreDock  bool

	FullSize        Vec2
	FullContentSize Vec2
	ExplicitSize    Vec2
	HasExplicitSize bool
	MinSize         Vec2
	MaxSize         Vec2

	Scroll     Vec2
	NextScroll Vec2

	Padding          float64
	TitlebarHeight   float64
	TitleHandleRect  Rect
	ScrollbarWidth   float64
	ScrollbarPadding float64
	Outline          float64

	PositionBounds Rect
	FullRect       Rect
	ClipRect       Rect

	DrawOrder     int
	FrameCreated  uint64
	LastFrameUsed uint64

	// ClosePressed is set for the frame in which the titlebar close button
	// was clicked.
	ClosePressed bool

	DrawList    *DrawList
	OverlayList *DrawList

	cursor  cursor
	idStack []ID
	// autoFit sizes the panel to its content right after creation.
	autoFit bool
}

func newPanel(id ID, name string, frame uint64) *Panel {
	return &Panel{
		ID:           id,
		Name:         name,
		Root:         id,
		Pos:          Vec2{defaultPanelPos, defaultPanelPos},
		Size:         Vec2{defaultPanelWidth, defaultPanelHeight},
		MaxSize:      Vec2{math.Inf(1), math.Inf(1)},
		FrameCreated: frame,
		DrawList:     newDrawList(),
		OverlayList:  newDrawList(),
	}
}

// IsDocked reports whether the panel is a leaf of a dock tree.
func (p *Panel) IsDocked() bool { return !p.Dock.IsNull() }

// IsChild reports whether the panel was created by BeginChild.
func (p *Panel) IsChild() bool { return p.Flags.Has(PanelIsChild) }

// Rect returns the panel's outer rectangle.
func (p *Panel) Rect() Rect { return RectFromPosSize(p.Pos, p.Size) }

// TitlebarRect returns the titlebar strip at the top of the panel.
func (p *Panel) TitlebarRect() Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, Width: p.Size.X, Height: p.TitlebarHeight}
}

// ContentStartPos returns where content began this frame, before scrolling.
func (p *Panel) ContentStartPos() Vec2 { return p.cursor.contentStartPos.Round() }

// VisibleContentStartPos is the top-left of the area content is visible in:
// below the titlebar, inside the padding.
func (p *Panel) VisibleContentStartPos() Vec2 {
	return Vec2{p.Pos.X + p.Padding, p.Pos.Y + p.TitlebarHeight + p.Padding}.Round()
}

// VisibleContentEndPos is the bottom-right of the area content is visible
// in, excluding padding and any scrollbar gutter.
func (p *Panel) VisibleContentEndPos() Vec2 {
	end := p.Pos.Add(p.Size).Sub(Vec2{p.Padding, p.Padding})
	h, v := p.needsScrollbars()
	space := p.ScrollbarWidth + p.ScrollbarPadding
	if v {
		end.X -= space
	}
	if h {
		end.Y -= space
	}
	return end.Round()
}

// needsScrollbars reports which scrollbars reserve a gutter. An axis
// overflows when its content does not fit the view, where the view shrinks
// by the other bar's gutter if that bar is shown. Panels that keep the
// scrollbar pad reserve the gutter of every bar they draw.
func (p *Panel) needsScrollbars() (h, v bool) {
	start := p.VisibleContentStartPos()
	view := p.Pos.Add(p.Size).Sub(Vec2{p.Padding, p.Padding}).Sub(start)
	full := p.FullContentSize
	space := p.ScrollbarWidth + p.ScrollbarPadding
	drawH := p.Flags.Has(PanelDrawHScrollbar)
	drawV := p.Flags.Has(PanelDrawVScrollbar)

	v = drawV && full.Y > view.Y
	h = drawH && full.X > view.X-boolSpace(v, space)
	if h && !v {
		v = drawV && full.Y > view.Y-space
	}
	keep := !p.Flags.Has(PanelDontKeepScrollbarPad)
	return h || (keep && drawH), v || (keep && drawV)
}

func boolSpace(b bool, space float64) float64 {
	if b {
		return space
	}
	return 0
}

// VisibleContentRect is the area content is visible in.
func (p *Panel) VisibleContentRect() Rect {
	return RectFromMinMax(p.VisibleContentStartPos(), p.VisibleContentEndPos())
}

// FullContentRect is the area the content would cover without scrolling.
func (p *Panel) FullContentRect() Rect {
	return RectFromPosSize(p.ContentStartPos(), p.FullContentSize)
}

// ScrollMin is the most negative scroll offset along each axis. It depends
// only on the view and content sizes, so moving the panel leaves it intact.
func (p *Panel) ScrollMin() Vec2 {
	view := p.VisibleContentEndPos().Sub(p.VisibleContentStartPos())
	return Vec2{
		X: math.Min(view.X-p.FullContentSize.X, 0),
		Y: math.Min(view.Y-p.FullContentSize.Y, 0),
	}
}

// ScrollMax is the largest scroll offset. Content never scrolls past its
// origin.
func (p *Panel) ScrollMax() Vec2 { return Vec2{} }

// CanScroll reports whether content overflows the visible area on a.
func (p *Panel) CanScroll(a Axis) bool { return p.ScrollMin().Get(a) < 0 }

// scrollingPastBounds reports whether scrolling by delta would be fully
// absorbed by the bounds.
func (p *Panel) scrollingPastBounds(delta Vec2) bool {
	return p.Scroll.Add(delta).Clamp(p.ScrollMin(), p.ScrollMax()) == p.Scroll
}

// initCursor resets layout to start at pos. The cursor is kept unscrolled;
// CursorPos applies the scroll offset.
func (p *Panel) initCursor(pos Vec2) {
	p.cursor = cursor{
		pos:             pos,
		maxPos:          pos,
		contentStartPos: pos,
		posPrevLine:     pos,
	}
}

// CursorPos is where the next item will be placed, in screen space.
func (p *Panel) CursorPos() Vec2 { return p.cursor.pos.Add(p.Scroll) }

// minDecoratedSize is the smallest size that still shows the titlebar
// handle and padding.
func (p *Panel) minDecoratedSize() Vec2 {
	return Vec2{
		X: p.TitleHandleRect.Width + 2*p.Padding,
		Y: p.TitlebarHeight + 2*p.Padding,
	}
}

// moveTo moves the panel so its top-left corner is at pos. Content laid out
// relative to the panel moves with it.
func (p *Panel) moveTo(pos Vec2) {
	d := pos.Sub(p.Pos)
	p.Pos = pos
	p.TitleHandleRect = p.TitleHandleRect.Translate(d)
	p.FullRect = p.FullRect.Translate(d)
	p.ClipRect = p.ClipRect.Translate(d)
	p.cursor.pos = p.cursor.pos.Add(d)
	p.cursor.contentStartPos = p.cursor.contentStartPos.Add(d)
	p.cursor.posPrevLine = p.cursor.posPrevLine.Add(d)
	p.cursor.maxPos = p.cursor.maxPos.Add(d)
}

// Panels maps handles to panels.
type Panels map[ID]*Panel

// Get returns the panel for id. It panics if id does not name a live panel;
// a dangling handle is a programming error.
func (ps Panels) Get(id ID) *Panel {
	p, ok := ps[id]
	if !ok {
		panic(fmt.Sprintf("arbor: dangling panel handle %v", id))
	}
	return p
}

// Lookup returns the panel for id and whether it exists.
func (ps Panels) Lookup(id ID) (*Panel, bool) {
	p, ok := ps[id]
	return p, ok
}

// sortedIDs returns the panel handles in ascending order so iteration over
// the registry is deterministic.
func (ps Panels) sortedIDs() []ID {
	ids := make([]ID, 0, len(ps))
	for id := range ps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
