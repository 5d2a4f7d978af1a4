package arbor

import "testing"

// itemPanel begins an untitled 200x150 panel "a" at (100,100) whose content
// starts at (110,110), runs body inside it and ends it.
func itemPanel(ctx *Context, body func()) func() {
	return func() {
		ctx.SetNextPanelInitialPos(100, 100)
		ctx.SetNextPanelInitialSize(200, 150)
		ctx.BeginEx("a", PanelNoTitlebar)
		body()
		ctx.End()
	}
}

// threeItems registers x, y and z as stacked 80x20 rows and stores their
// signals in sigs.
func threeItems(ctx *Context, flags ItemFlags, sigs map[string]Signal) func() {
	return itemPanel(ctx, func() {
		for _, label := range []string{"x", "y", "z"} {
			r := ctx.PlaceItem(Vec2{80, 20})
			sigs[label] = ctx.RegisterItem(ctx.GenID(label), r, flags)
		}
	})
}

func TestItemHovered(t *testing.T) {
	ctx, _ := newTestContext(t)
	sigs := map[string]Signal{}
	ui := threeItems(ctx, ActivateOnPress, sigs)
	runFrame(ctx, ui)

	ctx.SetPointerPos(120, 115)
	runFrame(ctx, ui)
	if !sigs["x"].Hovering() || !sigs["x"].MouseOver() {
		t.Errorf("x signal = %b, want hovering and mouse over", sigs["x"])
	}
	if sigs["y"] != SignalNone {
		t.Errorf("y signal = %b, want none", sigs["y"])
	}
	a := mustPanel(t, ctx, "a")
	if ctx.HotID() != hashSeeded(a.ID, "x") {
		t.Errorf("HotID = %v, want x", ctx.HotID())
	}
	if ctx.HotPanelID() != a.ID {
		t.Errorf("HotPanelID = %v, want a", ctx.HotPanelID())
	}
}

func TestItemCoveredByOtherPanel(t *testing.T) {
	ctx, _ := newTestContext(t)
	sigs := map[string]Signal{}
	items := threeItems(ctx, ActivateOnPress, sigs)
	ui := func() {
		items()
		panelAt(ctx, "b", 150, 100, 200, 150)
	}
	runFrame(ctx, ui)

	// b covers x. The first frame nothing was hot, so x may still claim
	// hover; from then on b is the topmost panel under the pointer.
	ctx.SetPointerPos(170, 115)
	runFrames(ctx, 2, ui)

	if !sigs["x"].MouseOver() {
		t.Error("x should report the pointer over it")
	}
	if sigs["x"].Hovering() {
		t.Error("x should not be hot under another panel")
	}
	b := mustPanel(t, ctx, "b")
	if ctx.HotPanelID() != b.ID {
		t.Errorf("HotPanelID = %v, want b", ctx.HotPanelID())
	}
}

func TestItemActivation(t *testing.T) {
	tests := []struct {
		name             string
		flags            ItemFlags
		activeAfterPress bool
	}{
		{"press", ActivateOnPress, true},
		{"release", ActivateOnRelease, false},
		{"click", ActivateOnClick, false},
		{"default", ItemNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			sigs := map[string]Signal{}
			ui := threeItems(ctx, tt.flags, sigs)
			ctx.SetPointerPos(120, 115)
			runFrame(ctx, ui)
			x := hashSeeded(mustPanel(t, ctx, "a").ID, "x")

			ctx.InjectClick(120, 115)
			runFrame(ctx, ui)
			if !sigs["x"].JustPressed() {
				t.Errorf("press frame signal = %b, want JustPressed", sigs["x"])
			}
			if got := ctx.ActiveID() == x; got != tt.activeAfterPress {
				t.Errorf("active after press = %v, want %v", got, tt.activeAfterPress)
			}
			if tt.activeAfterPress && !sigs["x"].Pressed() {
				t.Errorf("press frame signal = %b, want Pressed", sigs["x"])
			}

			runFrame(ctx, ui)
			if !sigs["x"].Released() || !sigs["x"].Clicked() {
				t.Errorf("release frame signal = %b, want Released and Clicked", sigs["x"])
			}
			if sigs["x"].Pressed() {
				t.Error("Pressed should clear on release")
			}
			if ctx.ActiveID() != x {
				t.Errorf("ActiveID = %v, want x", ctx.ActiveID())
			}
		})
	}
}

func TestItemDragging(t *testing.T) {
	ctx, _ := newTestContext(t)
	sigs := map[string]Signal{}
	ui := threeItems(ctx, ActivateOnPress, sigs)
	ctx.SetPointerPos(120, 115)
	runFrame(ctx, ui)

	ctx.InjectDrag(120, 115, 250, 230, 3)
	runFrames(ctx, 2, ui)
	x := sigs["x"]
	if !x.Pressed() || !x.Dragging() {
		t.Errorf("x signal = %b, want Pressed and Dragging", x)
	}
	if x.MouseOver() || x.Hovering() {
		t.Errorf("x signal = %b, pointer left the item", x)
	}
	if !x.Button(MouseButtonLeft, SignalDragging) || x.Button(MouseButtonRight, SignalDragging) {
		t.Errorf("x signal = %b, want a left drag only", x)
	}

	// Dragging an item does not move its panel.
	runFrame(ctx, ui)
	if a := mustPanel(t, ctx, "a"); a.Pos != (Vec2{100, 100}) {
		t.Errorf("panel pos = %v, want (100,100)", a.Pos)
	}
	if sigs["x"].Dragging() {
		t.Error("Dragging should clear on release")
	}
}

func TestItemRightButtonSignal(t *testing.T) {
	ctx, _ := newTestContext(t)
	sigs := map[string]Signal{}
	ui := threeItems(ctx, ActivateOnPress, sigs)
	ctx.SetPointerPos(120, 115)
	runFrame(ctx, ui)

	ctx.InjectButton(120, 115, MouseButtonRight, true)
	runFrame(ctx, ui)
	if !sigs["x"].Button(MouseButtonRight, SignalJustPressed) {
		t.Errorf("x signal = %b, want a right press", sigs["x"])
	}
	if sigs["x"].JustPressed() {
		t.Error("left JustPressed should not be set for a right press")
	}
}

func TestLastItemAndClipping(t *testing.T) {
	ctx, _ := newTestContext(t)
	var (
		hiddenID, shownID     ID
		hidden, rowHidden     bool
		shownRect, hiddenRect Rect
		hiddenSig             Signal
	)
	ui := itemPanel(ctx, func() {
		hiddenSig = ctx.RegisterItem(ctx.GenID("below"), Rect{110, 400, 80, 20}, ActivateOnPress)
		hiddenID, hiddenRect, hidden = ctx.LastItem()
		ctx.RegisterRect("row", Rect{110, 110, 80, 20}, ActivateOnPress)
		shownID, shownRect, rowHidden = ctx.LastItem()
	})
	ctx.SetPointerPos(120, 410)
	runFrames(ctx, 2, ui)

	a := mustPanel(t, ctx, "a")
	if hiddenID != hashSeeded(a.ID, "below") || !hidden {
		t.Errorf("LastItem = %v hidden=%v, want below hidden", hiddenID, hidden)
	}
	if hiddenRect != (Rect{110, 400, 80, 20}) {
		t.Errorf("hidden rect = %+v", hiddenRect)
	}
	if hiddenSig != SignalNone {
		t.Errorf("clipped item signal = %b, want none", hiddenSig)
	}
	if shownID != hashSeeded(a.ID, "row") || rowHidden {
		t.Errorf("LastItem = %v hidden=%v, want row visible", shownID, rowHidden)
	}
	if shownRect != (Rect{110, 110, 80, 20}) {
		t.Errorf("shown rect = %+v", shownRect)
	}
}

// --- Keyboard focus ---

func TestTabMovesFocus(t *testing.T) {
	ctx, _ := newTestContext(t)
	sigs := map[string]Signal{}
	ui := threeItems(ctx, ActivateOnPress, sigs)
	evs := recordEvents(ctx)
	runFrame(ctx, ui)
	a := mustPanel(t, ctx, "a")
	id := func(label string) ID { return hashSeeded(a.ID, label) }

	ctx.InjectClick(120, 115)
	runFrames(ctx, 2, ui)
	if ctx.ActiveID() != id("x") {
		t.Fatalf("ActiveID = %v, want x", ctx.ActiveID())
	}

	ctx.InjectKey(KeyTab, 0)
	runFrame(ctx, ui)
	if ctx.ActiveID() != id("y") {
		t.Errorf("after Tab ActiveID = %v, want y", ctx.ActiveID())
	}
	if !sigs["y"].GainedFocus() {
		t.Error("y should report GainedFocus")
	}
	if !hasEvent(*evs, EventFocusChanged, a.ID) {
		t.Error("no focus-changed event")
	}

	// Shift+Tab lands on the previous item one frame later.
	ctx.InjectKey(KeyTab, ModShift)
	runFrame(ctx, ui)
	if ctx.ActiveID() != id("y") {
		t.Errorf("ActiveID = %v, want y until the next frame", ctx.ActiveID())
	}
	runFrame(ctx, ui)
	if ctx.ActiveID() != id("x") {
		t.Errorf("after Shift+Tab ActiveID = %v, want x", ctx.ActiveID())
	}
	if !sigs["x"].GainedFocus() {
		t.Error("x should report GainedFocus")
	}
	runFrame(ctx, ui)
	if sigs["x"].GainedFocus() {
		t.Error("GainedFocus should last one frame")
	}
}

func TestTabOnLastItemKeepsFocus(t *testing.T) {
	ctx, _ := newTestContext(t)
	sigs := map[string]Signal{}
	ui := threeItems(ctx, ActivateOnPress, sigs)
	runFrame(ctx, ui)
	z := hashSeeded(mustPanel(t, ctx, "a").ID, "z")

	ctx.InjectClick(120, 160)
	runFrames(ctx, 2, ui)
	if ctx.ActiveID() != z {
		t.Fatalf("ActiveID = %v, want z", ctx.ActiveID())
	}
	ctx.InjectKey(KeyTab, 0)
	runFrames(ctx, 2, ui)
	if ctx.ActiveID() != z {
		t.Errorf("ActiveID = %v, want z", ctx.ActiveID())
	}
	for label, s := range sigs {
		if s.GainedFocus() {
			t.Errorf("%s gained focus", label)
		}
	}
}

func TestTabWithoutActiveItem(t *testing.T) {
	ctx, _ := newTestContext(t)
	sigs := map[string]Signal{}
	ui := threeItems(ctx, ActivateOnPress, sigs)
	runFrame(ctx, ui)
	ctx.KeyPress(KeyTab)
	runFrame(ctx, ui)
	if !ctx.ActiveID().IsNull() {
		t.Errorf("ActiveID = %v, want null", ctx.ActiveID())
	}
}

// --- Layout cursor ---

func TestPlaceItem(t *testing.T) {
	ctx, _ := newTestContext(t)
	var rects []Rect
	var afterIndent, afterNewLine Vec2
	var avail Vec2
	ui := func() {
		rects = rects[:0]
		ctx.SetNextPanelInitialPos(100, 100)
		ctx.SetNextPanelInitialSize(300, 200)
		ctx.Begin("layout")
		rects = append(rects, ctx.PlaceItem(Vec2{50, 20}))
		avail = ctx.AvailableContent()
		ctx.SameLine()
		rects = append(rects, ctx.PlaceItem(Vec2{30, 10}))
		ctx.Indent(15)
		rects = append(rects, ctx.PlaceItem(Vec2{40, 10}))
		afterIndent = ctx.CursorPos()
		ctx.Unindent(15)
		ctx.NewLine()
		afterNewLine = ctx.CursorPos()
		ctx.End()
	}
	runFrames(ctx, 2, ui)

	// Content starts below the titlebar and padding at (110,136).
	want := []Rect{
		{110, 136, 50, 20},
		{172, 136, 30, 10},
		{125, 157, 40, 10},
	}
	for i, r := range want {
		if rects[i] != r {
			t.Errorf("item %d = %+v, want %+v", i, rects[i], r)
		}
	}
	if afterIndent != (Vec2{125, 168}) {
		t.Errorf("cursor after indented item = %v, want (125,168)", afterIndent)
	}
	if afterNewLine != (Vec2{110, 193}) {
		t.Errorf("cursor after NewLine = %v, want (110,193)", afterNewLine)
	}
	// The visible area ends at (379,290): padding plus the kept scrollbar
	// gutter.
	if avail != (Vec2{269, 133}) {
		t.Errorf("AvailableContent = %v, want (269,133)", avail)
	}
	p := mustPanel(t, ctx, "layout")
	if p.FullContentSize != (Vec2{92, 56}) {
		t.Errorf("FullContentSize = %v, want (92,56)", p.FullContentSize)
	}
}

func TestSameLineTallerItemGrowsLine(t *testing.T) {
	ctx, _ := newTestContext(t)
	var next Vec2
	ui := func() {
		ctx.SetNextPanelInitialPos(100, 100)
		ctx.SetNextPanelInitialSize(300, 200)
		ctx.Begin("layout")
		ctx.PlaceItem(Vec2{50, 20})
		ctx.SameLine()
		ctx.PlaceItem(Vec2{30, 40})
		next = ctx.CursorPos()
		ctx.End()
	}
	runFrame(ctx, ui)
	if next != (Vec2{110, 177}) {
		t.Errorf("cursor = %v, want (110,177)", next)
	}
}

func TestCursorPosIsScrolled(t *testing.T) {
	ctx, _ := newTestContext(t)
	var first Rect
	ui := scrollPanel(ctx, &first)
	runFrames(ctx, 2, ui)

	p := mustPanel(t, ctx, "list")
	p.NextScroll = Vec2{0, -50}
	runFrame(ctx, ui)
	if first.Y != 136-50 {
		t.Errorf("first item y = %v, want %v", first.Y, 136-50)
	}
	if p.ContentStartPos() != (Vec2{110, 136}) {
		t.Errorf("ContentStartPos = %v, want the unscrolled (110,136)", p.ContentStartPos())
	}
}
