package arbor

// Style holds the metrics and colors the layout engine reads. The engine
// only needs a handful of values; widget libraries extend it with their own.
type Style struct {
	TitlebarHeight       float64
	WindowTitlebarHeight float64
	TitleHandleWidth     float64
	LineHeight           float64
	PanelCornerRadius    float64
	PanelPadding         float64
	PanelOutlineWidth    float64
	ScrollbarWidth       float64
	ScrollbarPadding     float64
	SpacingV             float64
	SpacingH             float64

	WindowBg        Color
	PanelBg         Color
	PanelDarkBg     Color
	Titlebar        Color
	TitleHandle     Color
	PanelOutline    Color
	ButtonHover     Color
	ButtonPress     Color
	DockPreviewFill Color
}

// DarkStyle returns the default dark theme.
func DarkStyle() Style {
	return Style{
		TitlebarHeight:       26,
		WindowTitlebarHeight: 40,
		TitleHandleWidth:     80,
		LineHeight:           24,
		PanelCornerRadius:    7,
		PanelPadding:         10,
		PanelOutlineWidth:    1,
		ScrollbarWidth:       6,
		ScrollbarPadding:     5,
		SpacingV:             1,
		SpacingH:             12,

		WindowBg:        Color{0.07, 0.07, 0.08, 1},
		PanelBg:         Color{0.12, 0.12, 0.14, 1},
		PanelDarkBg:     Color{0.09, 0.09, 0.10, 1},
		Titlebar:        Color{0.16, 0.16, 0.19, 1},
		TitleHandle:     Color{0.22, 0.22, 0.27, 1},
		PanelOutline:    Color{0.25, 0.25, 0.29, 1},
		ButtonHover:     Color{0.30, 0.30, 0.36, 1},
		ButtonPress:     Color{0.38, 0.45, 0.65, 1},
		DockPreviewFill: Color{0.30, 0.50, 0.90, 0.35},
	}
}

// Style returns the style in effect.
func (c *Context) Style() *Style { return &c.style }

// PushStyle saves the current style and applies fn to it. Restore it with
// PopStyle.
func (c *Context) PushStyle(fn func(*Style)) {
	c.styleStack = append(c.styleStack, c.style)
	fn(&c.style)
}

// PopStyle restores the style saved by the last n PushStyle calls.
func (c *Context) PopStyle(n int) {
	for ; n > 0 && len(c.styleStack) > 0; n-- {
		c.style = c.styleStack[len(c.styleStack)-1]
		c.styleStack = c.styleStack[:len(c.styleStack)-1]
	}
}
