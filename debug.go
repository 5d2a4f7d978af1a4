package arbor

import (
	"fmt"
)

// debugStats holds per-frame layout counts.
// Only gathered when debug mode is on.
type debugStats struct {
	panels    int
	free      int
	docked    int
	children  int
	dockNodes int
	roots     int
	drawCmds  int
}

// SetDebugMode enables per-frame stats on the log output and an invariant
// check at the end of every frame. A violated invariant panics.
func (c *Context) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// DebugMode reports whether debug mode is on.
func (c *Context) DebugMode() bool { return c.debug }

func (c *Context) gatherStats() debugStats {
	st := debugStats{
		panels:    len(c.panels),
		dockNodes: c.tree.Len(),
		roots:     c.order.Len(),
	}
	seen := make(map[*DrawList]bool)
	for _, p := range c.panels {
		switch {
		case p.IsChild():
			st.children++
		case p.IsDocked():
			st.docked++
		default:
			st.free++
		}
		if !seen[p.DrawList] {
			seen[p.DrawList] = true
			st.drawCmds += len(p.DrawList.Commands())
		}
	}
	return st
}

// debugLog prints layout stats for the frame being ended.
func (c *Context) debugLog() {
	if !c.debug {
		return
	}
	st := c.gatherStats()
	_, _ = fmt.Fprintf(c.log,
		"[arbor] frame %d | panels: %d (free %d, docked %d, child %d) | dock nodes: %d | roots: %d\n",
		c.frame, st.panels, st.free, st.docked, st.children, st.dockNodes, st.roots)
	_, _ = fmt.Fprintf(c.log,
		"[arbor] action: %v | hot: %v | active: %v | hot panel: %v | draw cmds: %d\n",
		c.action.Kind(), c.hotID, c.activeID, c.hotPanelID, st.drawCmds)
}

// warnf prints a warning. Warnings are printed in every mode; they report
// unbalanced push/pop pairs that are repaired automatically.
func (c *Context) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.log, "[arbor] warning: "+format+"\n", args...)
}
