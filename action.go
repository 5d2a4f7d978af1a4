package arbor

// ActionKind names the variant of a PanelAction.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionResize
	ActionMove
	ActionScroll
	ActionDragSplit
)

var actionNames = [...]string{"none", "resize", "move", "scroll", "drag-split"}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "action(?)"
}

// PanelAction is the single mouse-driven interaction in progress. It is one
// of NoAction, *ResizeAction, *MoveAction, *ScrollAction or *DragSplitAction.
// Only one action runs at a time; while it runs no other panel or item can
// become hot.
type PanelAction interface {
	Kind() ActionKind
}

// NoAction is the idle state.
type NoAction struct{}

// ResizeAction drags a border or corner of a free panel, or of a dock tree
// when the border is on the tree's outer edge.
type ResizeAction struct {
	Dir      Dir
	Panel    ID
	PrevRect Rect
}

// MoveAction drags a panel or a whole dock tree by its titlebar, and tracks
// the panel it would dock into on release.
type MoveAction struct {
	Panel             ID
	StartPos          Vec2
	DockTarget        ID
	Cancelled         bool
	DragByTitlebar    bool
	DragByTitleHandle bool
}

// ScrollAction drags a scrollbar thumb.
type ScrollAction struct {
	Axis        Axis
	Panel       ID
	StartScroll Vec2
	PressOffset Vec2
	// ScrollRect spans from the panel's minimum to maximum scroll offset.
	ScrollRect Rect
}

// DragSplitAction drags the boundary of a dock split.
type DragSplitAction struct {
	Dir       Dir
	Split     ID
	PrevRatio float64
}

func (NoAction) Kind() ActionKind         { return ActionNone }
func (*ResizeAction) Kind() ActionKind    { return ActionResize }
func (*MoveAction) Kind() ActionKind      { return ActionMove }
func (*ScrollAction) Kind() ActionKind    { return ActionScroll }
func (*DragSplitAction) Kind() ActionKind { return ActionDragSplit }

func isNoAction(a PanelAction) bool { return a == nil || a.Kind() == ActionNone }
