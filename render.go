package arbor

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// WhitePixel is a 1x1 white image scaled and tinted to draw solid rects.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

func (c Color) toRGBA() color.RGBA {
	ch := func(v float64) uint8 { return uint8(math.Round(clamp(v, 0, 1) * 255)) }
	return color.RGBA{R: ch(c.R * c.A), G: ch(c.G * c.A), B: ch(c.B * c.A), A: ch(c.A)}
}

// Draw renders every panel's draw list, back to front, onto screen. Each
// panel's overlay list is drawn right after its content. Corner radii are
// not rasterized; rects are drawn square.
func (c *Context) Draw(screen *ebiten.Image) {
	for _, p := range c.PanelsInOrder() {
		if p.Flags.Has(PanelUseParentDrawList) {
			continue
		}
		drawList(screen, p.DrawList)
		drawList(screen, p.OverlayList)
	}
}

func drawList(screen *ebiten.Image, l *DrawList) {
	for i := range l.cmds {
		drawCmd(screen, &l.cmds[i])
	}
}

func drawCmd(screen *ebiten.Image, cmd *DrawCmd) {
	clip, ok := cmd.Clip.Clip(cmd.Rect.Expand(cmd.OutlineWidth))
	if !ok {
		return
	}
	bounds := image.Rect(
		int(math.Floor(clip.X)), int(math.Floor(clip.Y)),
		int(math.Ceil(clip.X+clip.Width)), int(math.Ceil(clip.Y+clip.Height)),
	).Intersect(screen.Bounds())
	if bounds.Empty() {
		return
	}
	dst := screen.SubImage(bounds).(*ebiten.Image)

	if cmd.Fill.A > 0 {
		fillRect(dst, cmd.Rect, cmd.Fill)
	}
	if w := cmd.OutlineWidth; w > 0 && cmd.Outline.A > 0 {
		r := cmd.Rect
		fillRect(dst, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: w}, cmd.Outline)
		fillRect(dst, Rect{X: r.X, Y: r.Y + r.Height - w, Width: r.Width, Height: w}, cmd.Outline)
		fillRect(dst, Rect{X: r.X, Y: r.Y + w, Width: w, Height: r.Height - 2*w}, cmd.Outline)
		fillRect(dst, Rect{X: r.X + r.Width - w, Y: r.Y + w, Width: w, Height: r.Height - 2*w}, cmd.Outline)
	}
}

func fillRect(dst *ebiten.Image, r Rect, col Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(col.R*col.A), float32(col.G*col.A), float32(col.B*col.A), float32(col.A))
	dst.DrawImage(WhitePixel, &op)
}
