package arbor

// EventType identifies a kind of layout event.
type EventType uint8

const (
	EventPanelCreated   EventType = iota // a panel was begun for the first time
	EventPanelPruned                     // a panel was not begun for two frames and was dropped
	EventPanelDocked                     // a panel or tree was docked into a target
	EventPanelUndocked                   // a panel left its dock tree
	EventBroughtToFront                  // a root moved to the top of the draw order
	EventMoveStart                       // a titlebar drag began
	EventMoveEnd                         // a titlebar drag ended
	EventResizeStart                     // a border drag began
	EventResizeEnd                       // a border drag ended
	EventSplitDragStart                  // a dock boundary drag began
	EventSplitDragEnd                    // a dock boundary drag ended
	EventScrollDragStart                 // a scrollbar thumb drag began
	EventScrollDragEnd                   // a scrollbar thumb drag ended
	EventFocusChanged                    // keyboard focus moved to another item
)

var eventNames = [...]string{
	"panel-created", "panel-pruned", "panel-docked", "panel-undocked",
	"brought-to-front", "move-start", "move-end", "resize-start", "resize-end",
	"split-drag-start", "split-drag-end", "scroll-drag-start", "scroll-drag-end",
	"focus-changed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "event(?)"
}

// LayoutEvent describes a change to the panel layout. Fields that do not
// apply to the event type are zero.
type LayoutEvent struct {
	Type  EventType
	Frame uint64
	Panel ID
	Name  string
	// Target is the panel docked into, for EventPanelDocked.
	Target ID
	// Dock is the dock node involved: the leaf for dock and undock events,
	// the split for split drags.
	Dock  ID
	Dir   Dir
	Ratio float64
	Rect  Rect
}

// EventSink is the interface for optional ECS integration.
// When set on a Context, layout events are forwarded to it.
type EventSink interface {
	EmitEvent(event LayoutEvent)
}

// SetEventSink attaches sink. Pass nil to detach.
func (c *Context) SetEventSink(sink EventSink) {
	c.sink = sink
}

// --- Handler registry ---

type layoutHandler struct {
	id uint32
	fn func(LayoutEvent)
}

type handlerRegistry struct {
	handlers []layoutHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = layoutHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

// OnLayoutEvent registers a callback for every layout event.
func (c *Context) OnLayoutEvent(fn func(LayoutEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.handlers = append(c.handlers.handlers, layoutHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers}
}

func (c *Context) emit(e LayoutEvent) {
	e.Frame = c.frame
	if e.Name == "" && !e.Panel.IsNull() {
		if p, ok := c.panels[e.Panel]; ok {
			e.Name = p.Name
		}
	}
	for _, h := range c.handlers.handlers {
		h.fn(e)
	}
	if c.sink != nil {
		c.sink.EmitEvent(e)
	}
}
