package arbor

import "testing"

func TestPushPopStyle(t *testing.T) {
	ctx, _ := newTestContext(t)
	base := *ctx.Style()

	ctx.PushStyle(func(s *Style) { s.PanelPadding = 4 })
	ctx.PushStyle(func(s *Style) { s.LineHeight = 30 })
	if ctx.Style().PanelPadding != 4 || ctx.Style().LineHeight != 30 {
		t.Fatalf("pushed style not applied: %+v", *ctx.Style())
	}

	ctx.PopStyle(1)
	if ctx.Style().LineHeight != base.LineHeight || ctx.Style().PanelPadding != 4 {
		t.Errorf("PopStyle(1) restored the wrong entry: %+v", *ctx.Style())
	}
	ctx.PopStyle(5) // extra pops are ignored
	if *ctx.Style() != base {
		t.Errorf("style = %+v, want the base style", *ctx.Style())
	}
}

func TestPanelPicksUpPushedPadding(t *testing.T) {
	ctx, _ := newTestContext(t)
	var start Vec2
	runFrame(ctx, func() {
		ctx.PushStyle(func(s *Style) { s.PanelPadding = 4 })
		ctx.SetNextPanelInitialPos(100, 100)
		ctx.SetNextPanelInitialSize(200, 150)
		ctx.Begin("a")
		start = ctx.CursorPos()
		ctx.End()
		ctx.PopStyle(1)
	})
	if start != (Vec2{104, 130}) {
		t.Errorf("content start = %v, want (104,130)", start)
	}
}
