package arbor

import "math"

const (
	defaultDropSnapThreshold = 0.06
	defaultDropMinPixels     = 8.0
)

// DropConfig tunes DropRegion.
type DropConfig struct {
	// SnapThreshold snaps ratios this close to 0.5 onto 0.5, and caps the
	// ratio at 1 - SnapThreshold.
	SnapThreshold float64
	// MinPixels is the smallest extent a preview region can have.
	MinPixels float64
}

// DropRegion decides where a panel dropped at pointer would dock into target.
// It returns the preview rect, the side of target the panel docks on, and the
// share of target the panel takes.
//
// The side is picked from the pointer's offset from the center, normalized
// to the target size: the dominant axis wins, ties go horizontal, and a zero
// horizontal offset goes East. The share shrinks as the pointer nears the
// target's edge. Targets flagged PanelOnlyDockOver are always
// covered entirely; PanelDockOver targets are covered when the share would
// exceed the cap.
func DropRegion(pointer Vec2, target Rect, flags PanelFlag, cfg DropConfig) (Rect, Dir, float64) {
	if flags.Has(PanelOnlyDockOver) {
		return target, DirN, 1
	}

	c := target.Center()
	d := Vec2{
		X: clamp(safeDiv(pointer.X-c.X, target.Width)*2, -1, 1),
		Y: clamp(safeDiv(pointer.Y-c.Y, target.Height)*2, -1, 1),
	}

	var dir Dir
	var axis Axis
	var off float64
	if math.Abs(d.X) >= math.Abs(d.Y) {
		axis, off = AxisX, d.X
		dir = DirE
		if d.X < 0 {
			dir = DirW
		}
	} else {
		axis, off = AxisY, d.Y
		dir = DirS
		if d.Y < 0 {
			dir = DirN
		}
	}

	extent := target.Extent(axis)
	ratio := 1.0
	if extent > 0 {
		px := (1 - math.Abs(off)) * extent
		px = math.Min(math.Max(px, cfg.MinPixels), extent)
		ratio = px / extent
	}

	maxRatio := 1 - cfg.SnapThreshold
	if flags.Has(PanelDockOver) && ratio > maxRatio {
		return target, DirN, 1
	}
	if math.Abs(ratio-0.5) < cfg.SnapThreshold {
		ratio = 0.5
	}
	ratio = math.Min(ratio, maxRatio)

	return dropPreview(target, dir, ratio), dir, ratio
}

// dropPreview is the part of target a panel docked on side dir with the
// given share would occupy.
func dropPreview(target Rect, dir Dir, ratio float64) Rect {
	r := target
	switch dir {
	case DirE:
		r.Width = target.Width * ratio
		r.X = target.X + target.Width - r.Width
	case DirW:
		r.Width = target.Width * ratio
	case DirS:
		r.Height = target.Height * ratio
		r.Y = target.Y + target.Height - r.Height
	case DirN:
		r.Height = target.Height * ratio
	}
	return r
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
