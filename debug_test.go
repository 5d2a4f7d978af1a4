package arbor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func newLoggedContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ctx, _ := newTestContext(t)
	ctx.log = &buf
	return ctx, &buf
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_LogsStats(t *testing.T) {
	ctx, buf := newLoggedContext(t)
	ctx.SetDebugMode(true)
	if !ctx.DebugMode() {
		t.Fatal("DebugMode() = false after SetDebugMode(true)")
	}
	runFrame(ctx, func() { panelAt(ctx, "a", 100, 100, 200, 150) })

	out := buf.String()
	if !strings.Contains(out, "[arbor] frame 0 | panels: 2 (free 2, docked 0, child 0)") {
		t.Errorf("stats line missing, got:\n%s", out)
	}
	if !strings.Contains(out, "action: none") {
		t.Errorf("action line missing, got:\n%s", out)
	}
}

func TestReleaseMode_Silent(t *testing.T) {
	ctx, buf := newLoggedContext(t)
	runFrame(ctx, func() { panelAt(ctx, "a", 100, 100, 200, 150) })
	if buf.Len() != 0 {
		t.Errorf("release mode wrote %q", buf.String())
	}
}

func TestDebugMode_InvariantPanicMessage(t *testing.T) {
	ctx, _ := newLoggedContext(t)
	ctx.SetDebugMode(true)
	ui := func() { panelAt(ctx, "a", 100, 100, 200, 150) }
	runFrame(ctx, ui)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on a dangling dock handle, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.HasPrefix(msg, "arbor debug: frame 1") {
			t.Errorf("panic message = %q", msg)
		}
	}()
	ctx.BeginFrame()
	ui()
	mustPanel(t, ctx, "a").Dock = 777
	ctx.EndFrame()
}

func TestDebugStats_AllFieldsPopulated(t *testing.T) {
	ctx, _ := newTestContext(t)
	ui := func() {
		panelAt(ctx, "a", 100, 100, 200, 150)
		panelAt(ctx, "b", 400, 100, 200, 150)
		ctx.SetNextPanelInitialPos(100, 300)
		ctx.SetNextPanelInitialSize(200, 200)
		ctx.Begin("c")
		ctx.BeginChild("inner")
		ctx.EndChild()
		ctx.End()
	}
	runFrame(ctx, ui)
	a, b := mustPanel(t, ctx, "a"), mustPanel(t, ctx, "b")
	ctx.DockPanel(b.ID, a.ID, 0.5, DirE)
	runFrame(ctx, ui)

	st := ctx.gatherStats()
	if st.panels != 5 {
		t.Errorf("panels = %d, want 5", st.panels)
	}
	if st.docked != 2 || st.children != 1 || st.free != 2 {
		t.Errorf("free/docked/child = %d/%d/%d, want 2/2/1", st.free, st.docked, st.children)
	}
	if st.dockNodes != 3 {
		t.Errorf("dock nodes = %d, want 3", st.dockNodes)
	}
	if st.roots != 3 {
		t.Errorf("roots = %d, want 3", st.roots)
	}
	if st.drawCmds == 0 {
		t.Error("drawCmds = 0")
	}
}

// ---- Warnings ------------------------------------------------------------

func TestUnbalancedStyleStackWarns(t *testing.T) {
	ctx, buf := newLoggedContext(t)
	before := ctx.Style().LineHeight
	runFrame(ctx, func() {
		ctx.PushStyle(func(s *Style) { s.LineHeight = 40 })
	})
	if !strings.Contains(buf.String(), "[arbor] warning: style stack not empty at end of frame (1 entries)") {
		t.Errorf("warning missing, got %q", buf.String())
	}
	if ctx.Style().LineHeight != before {
		t.Errorf("LineHeight = %v, want the style restored to %v", ctx.Style().LineHeight, before)
	}
}

func TestUnbalancedIDStackWarns(t *testing.T) {
	ctx, buf := newLoggedContext(t)
	runFrame(ctx, func() {
		ctx.Begin("a")
		ctx.PushID("row")
		ctx.End()
	})
	if !strings.Contains(buf.String(), `panel "a": id stack not empty at End (1 entries)`) {
		t.Errorf("warning missing, got %q", buf.String())
	}
	// The stack is reset, so the next frame starts clean.
	buf.Reset()
	runFrame(ctx, func() {
		ctx.Begin("a")
		ctx.End()
	})
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}
