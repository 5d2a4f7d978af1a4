package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim tweens a panel's next scroll offset toward a target. One
// exists per panel while a smooth wheel scroll is in flight; the Context
// advances them in BeginFrame.
type scrollAnim struct {
	tweens [2]*gween.Tween
	target Vec2
	done   bool
}

func newScrollAnim(from, to Vec2, duration float32, fn ease.TweenFunc) *scrollAnim {
	a := &scrollAnim{target: to}
	a.tweens[AxisX] = gween.New(float32(from.X), float32(to.X), duration, fn)
	a.tweens[AxisY] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	return a
}

// update advances both tweens by dt seconds and returns the current offset.
func (a *scrollAnim) update(dt float32) Vec2 {
	x, doneX := a.tweens[AxisX].Update(dt)
	y, doneY := a.tweens[AxisY].Update(dt)
	a.done = doneX && doneY
	if a.done {
		return a.target
	}
	return Vec2{float64(x), float64(y)}
}

// Scroll applies a wheel delta, in lines, to the panel under the pointer,
// or the active panel if none is. When that panel is already at its limit
// in the direction scrolled, the delta goes to its parent. With
// Config.SmoothScroll set the offset is tweened instead of jumping. Wheel
// input is ignored while a panel action is in progress.
func (c *Context) Scroll(dx, dy float64) {
	if !isNoAction(c.action) {
		return
	}
	delta := Vec2{dx, dy}.Scale(c.cfg.ScrollSpeed * c.style.LineHeight)
	id := c.hotPanelID
	if id.IsNull() {
		id = c.activePanelID
	}
	p, ok := c.panels[id]
	if !ok {
		return
	}
	for p.scrollingPastBounds(delta) && !p.Parent.IsNull() {
		parent, ok := c.panels[p.Parent]
		if !ok {
			break
		}
		p = parent
	}

	from := p.NextScroll
	if a, ok := c.scrollAnims[p.ID]; ok && !a.done {
		from = a.target
	}
	to := from.Add(delta).Clamp(p.ScrollMin(), p.ScrollMax())
	if c.cfg.SmoothScroll <= 0 {
		p.NextScroll = to
		return
	}
	c.scrollAnims[p.ID] = newScrollAnim(p.NextScroll, to, c.cfg.SmoothScroll, ease.OutQuad)
}

// updateScrollAnims writes in-flight scroll tweens into their panels.
func (c *Context) updateScrollAnims(dt float32) {
	for id, a := range c.scrollAnims {
		p, ok := c.panels[id]
		if !ok {
			delete(c.scrollAnims, id)
			continue
		}
		p.NextScroll = a.update(dt)
		if a.done {
			delete(c.scrollAnims, id)
		}
	}
}
