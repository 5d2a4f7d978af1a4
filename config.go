package arbor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	defaultResizeThreshold = 5.0
	defaultUndockThreshold = 50.0

	defaultPanelPos    = 30.0
	defaultPanelWidth  = 500.0
	defaultPanelHeight = 300.0
	cascadeOffset      = 60.0
)

// Config holds the tunables of a Context. Start from DefaultConfig and
// override fields, or overlay JSON with ParseConfig.
type Config struct {
	// ResizeThreshold is how close to a border, in pixels, a press starts a
	// resize.
	ResizeThreshold float64
	// UndockThreshold is how far a docked panel must be dragged by its title
	// handle before it leaves its tree.
	UndockThreshold float64
	// DragThreshold is the dead zone before a held button counts as dragging.
	DragThreshold float64
	// ClickThreshold is the longest press that still counts as a click.
	ClickThreshold time.Duration
	// MultiClickTimeout bounds a double or triple click sequence.
	MultiClickTimeout time.Duration

	Drop DropConfig

	// ScrollSpeed scales wheel deltas, in lines.
	ScrollSpeed float64
	// SmoothScroll, in seconds, tweens wheel scrolling. Zero scrolls
	// immediately.
	SmoothScroll float32

	// Dockspace creates a background panel covering the window that panels
	// can be docked into.
	Dockspace bool

	Style Style

	// ScreenshotDir receives the PNGs queued with Context.Screenshot.
	ScreenshotDir string

	// Clock returns the current time. Input timing (clicks, smooth scroll)
	// reads it once per event.
	Clock func() time.Time
	// LogOutput receives warnings and, in debug mode, per-frame stats.
	LogOutput io.Writer
}

// DefaultConfig returns the default tunables and the dark style.
func DefaultConfig() Config {
	return Config{
		ResizeThreshold:   defaultResizeThreshold,
		UndockThreshold:   defaultUndockThreshold,
		DragThreshold:     defaultDragThreshold,
		ClickThreshold:    defaultClickThreshold,
		MultiClickTimeout: defaultMultiClickTimeout,
		Drop: DropConfig{
			SnapThreshold: defaultDropSnapThreshold,
			MinPixels:     defaultDropMinPixels,
		},
		ScrollSpeed:   1,
		Dockspace:     true,
		Style:         DarkStyle(),
		ScreenshotDir: defaultScreenshotDir,
		Clock:         time.Now,
		LogOutput:     os.Stderr,
	}
}

// configFile is the JSON form of Config. Durations are milliseconds.
type configFile struct {
	ResizeThreshold     *float64 `json:"resizeThreshold,omitempty"`
	UndockThreshold     *float64 `json:"undockThreshold,omitempty"`
	DragThreshold       *float64 `json:"dragThreshold,omitempty"`
	ClickThresholdMs    *int     `json:"clickThresholdMs,omitempty"`
	MultiClickTimeoutMs *int     `json:"multiClickTimeoutMs,omitempty"`
	DropSnapThreshold   *float64 `json:"dropSnapThreshold,omitempty"`
	DropMinPixels       *float64 `json:"dropMinPixels,omitempty"`
	ScrollSpeed         *float64 `json:"scrollSpeed,omitempty"`
	SmoothScroll        *float32 `json:"smoothScroll,omitempty"`
	Dockspace           *bool    `json:"dockspace,omitempty"`
	ScreenshotDir       *string  `json:"screenshotDir,omitempty"`
}

// ParseConfig overlays the JSON document on DefaultConfig. Fields missing
// from the document keep their defaults.
func ParseConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	var f configFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&cfg.ResizeThreshold, f.ResizeThreshold)
	setF(&cfg.UndockThreshold, f.UndockThreshold)
	setF(&cfg.DragThreshold, f.DragThreshold)
	setF(&cfg.Drop.SnapThreshold, f.DropSnapThreshold)
	setF(&cfg.Drop.MinPixels, f.DropMinPixels)
	setF(&cfg.ScrollSpeed, f.ScrollSpeed)
	if f.ClickThresholdMs != nil {
		cfg.ClickThreshold = time.Duration(*f.ClickThresholdMs) * time.Millisecond
	}
	if f.MultiClickTimeoutMs != nil {
		cfg.MultiClickTimeout = time.Duration(*f.MultiClickTimeoutMs) * time.Millisecond
	}
	if f.SmoothScroll != nil {
		cfg.SmoothScroll = *f.SmoothScroll
	}
	if f.Dockspace != nil {
		cfg.Dockspace = *f.Dockspace
	}
	if f.ScreenshotDir != nil {
		cfg.ScreenshotDir = *f.ScreenshotDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (cfg Config) Validate() error {
	switch {
	case cfg.ResizeThreshold < 0:
		return fmt.Errorf("resizeThreshold %v is negative", cfg.ResizeThreshold)
	case cfg.UndockThreshold < 0:
		return fmt.Errorf("undockThreshold %v is negative", cfg.UndockThreshold)
	case cfg.DragThreshold < 0:
		return fmt.Errorf("dragThreshold %v is negative", cfg.DragThreshold)
	case cfg.Drop.SnapThreshold < 0 || cfg.Drop.SnapThreshold >= 0.5:
		return fmt.Errorf("dropSnapThreshold %v out of [0, 0.5)", cfg.Drop.SnapThreshold)
	case cfg.Drop.MinPixels < 0:
		return fmt.Errorf("dropMinPixels %v is negative", cfg.Drop.MinPixels)
	case cfg.SmoothScroll < 0:
		return fmt.Errorf("smoothScroll %v is negative", cfg.SmoothScroll)
	}
	return nil
}

// SetDragThreshold sets the minimum movement in pixels before a drag starts.
func (c *Context) SetDragThreshold(pixels float64) {
	c.cfg.DragThreshold = pixels
	c.pointer.dragThreshold = pixels
}

// SetUndockThreshold sets how far a title handle must be dragged to undock.
func (c *Context) SetUndockThreshold(pixels float64) {
	c.cfg.UndockThreshold = pixels
}

// SetResizeThreshold sets the width of the border resize zone.
func (c *Context) SetResizeThreshold(pixels float64) {
	c.cfg.ResizeThreshold = pixels
}
