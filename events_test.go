package arbor

import "testing"

type recordingSink struct{ events []LayoutEvent }

func (s *recordingSink) EmitEvent(e LayoutEvent) { s.events = append(s.events, e) }

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventPanelCreated, "panel-created"},
		{EventPanelDocked, "panel-docked"},
		{EventSplitDragEnd, "split-drag-end"},
		{EventFocusChanged, "focus-changed"},
		{EventType(200), "event(?)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestOnLayoutEvent(t *testing.T) {
	ctx, _ := newTestContext(t)
	var names []string
	ctx.OnLayoutEvent(func(e LayoutEvent) {
		if e.Type == EventPanelCreated {
			names = append(names, e.Name)
		}
	})
	runFrame(ctx, twoPanels(ctx))

	if len(names) != 3 {
		t.Fatalf("created events = %v, want the window, a and b", names)
	}
	if names[1] != "a" || names[2] != "b" {
		t.Errorf("created events = %v", names)
	}
}

func TestCallbackHandle_Remove(t *testing.T) {
	ctx, _ := newTestContext(t)
	var first, second int
	h := ctx.OnLayoutEvent(func(LayoutEvent) { first++ })
	ctx.OnLayoutEvent(func(LayoutEvent) { second++ })

	ctx.emit(LayoutEvent{Type: EventBroughtToFront})
	h.Remove()
	h.Remove() // removing twice is a no-op
	ctx.emit(LayoutEvent{Type: EventBroughtToFront})

	if first != 1 || second != 2 {
		t.Errorf("calls = %d/%d, want 1/2", first, second)
	}
	CallbackHandle{}.Remove()
}

func TestEventSink(t *testing.T) {
	ctx, _ := newTestContext(t)
	sink := &recordingSink{}
	ctx.SetEventSink(sink)
	ui := twoPanels(ctx)
	runFrame(ctx, ui)
	a, b := mustPanel(t, ctx, "a"), mustPanel(t, ctx, "b")

	sink.events = nil
	ctx.DockPanel(b.ID, a.ID, 0.3, DirS)
	if len(sink.events) != 1 {
		t.Fatalf("sink got %d events, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Type != EventPanelDocked || e.Panel != b.ID || e.Target != a.ID || e.Dir != DirS || e.Ratio != 0.3 {
		t.Errorf("event = %+v", e)
	}
	if e.Name != "b" {
		t.Errorf("event name = %q, want b", e.Name)
	}
	if e.Frame != ctx.Frame() {
		t.Errorf("event frame = %d, want %d", e.Frame, ctx.Frame())
	}

	ctx.SetEventSink(nil)
	ctx.UndockPanel(b.ID)
	if len(sink.events) != 1 {
		t.Error("detached sink still receives events")
	}
}
