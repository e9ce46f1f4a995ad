package header

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultItemsOnScreen is the number of items the vertical list shows at once.
	DefaultItemsOnScreen = 5
	// OffScreenCount is the number of extra items kept on each side of the window.
	OffScreenCount = 1
	// VerticalItemWidthRatio is the default vertical item width as a share of the container.
	VerticalItemWidthRatio = 4.0 / 5.0

	// ScrollStopCheckDelay is how long the header offset must hold still to count as stopped.
	ScrollStopCheckDelay = 100 * time.Millisecond
	// DefaultCollapsingDuration animates the header after a vertical item click.
	DefaultCollapsingDuration = 500 * time.Millisecond
	// SnapAnimationDuration animates the header into the half-screen rest state.
	SnapAnimationDuration = 300 * time.Millisecond
	// MaxScrollDuration caps programmatic smooth scrolls.
	MaxScrollDuration = 600 * time.Millisecond
)

// Gravity places the vertical list inside the container.
type Gravity int

const (
	GravityLeft Gravity = iota
	GravityCenter
	GravityRight
)

// ParseGravity maps "left", "center" or "right" onto a Gravity, falling back
// to GravityRight for anything else.
func ParseGravity(s string) Gravity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return GravityLeft
	case "center", "centre":
		return GravityCenter
	default:
		return GravityRight
	}
}

func (g Gravity) String() string {
	switch g {
	case GravityLeft:
		return "left"
	case GravityCenter:
		return "center"
	default:
		return "right"
	}
}

// DimensionKind tells how a configured width is interpreted.
type DimensionKind int

const (
	// DimensionUnset uses VerticalItemWidthRatio.
	DimensionUnset DimensionKind = iota
	// DimensionPixels uses the configured pixel value.
	DimensionPixels
	// DimensionOther is any non-dimension value; it resolves to the full container width.
	DimensionOther
)

// Dimension is a configured size that may or may not be a pixel value.
type Dimension struct {
	Kind   DimensionKind
	Pixels int
}

// Pixels returns a pixel Dimension.
func Pixels(px int) Dimension {
	return Dimension{Kind: DimensionPixels, Pixels: px}
}

// ParseDimension reads "", "320", "320px" or any other token.
func ParseDimension(s string) Dimension {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimension{}
	}

	num := strings.TrimSuffix(strings.ToLower(s), "px")
	if f, err := strconv.ParseFloat(num, 64); err == nil && f >= 0 {
		return Pixels(int(f))
	}
	return Dimension{Kind: DimensionOther}
}

// resolve turns the dimension into a width for a container of the given width.
func (d Dimension) resolve(containerWidth int) int {
	switch d.Kind {
	case DimensionPixels:
		return d.Pixels
	case DimensionOther:
		return containerWidth
	default:
		return int(float64(containerWidth) * VerticalItemWidthRatio)
	}
}

// Config is applied once when the manager is created.
type Config struct {
	// ItemsOnScreen is how many vertical items fill the container height.
	// Non-positive values fall back to DefaultItemsOnScreen.
	ItemsOnScreen int

	VerticalGravity   Gravity
	VerticalItemWidth Dimension

	// CollapsingDuration animates the header to half screen after a vertical click.
	CollapsingDuration time.Duration

	// TopBorder is the status bar plus action bar height; the collapsed header rests on it.
	TopBorder int

	// FramesPerSecond paces flings and offset animations.
	FramesPerSecond int
	// FlingDeceleration is in pixels per second squared.
	FlingDeceleration float64
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ItemsOnScreen:      DefaultItemsOnScreen,
		VerticalGravity:    GravityRight,
		CollapsingDuration: DefaultCollapsingDuration,
		FramesPerSecond:    60,
		FlingDeceleration:  2000,
	}
}

func (c Config) normalized() Config {
	if c.ItemsOnScreen <= 0 {
		c.ItemsOnScreen = DefaultItemsOnScreen
	}
	if c.CollapsingDuration <= 0 {
		c.CollapsingDuration = DefaultCollapsingDuration
	}
	if c.TopBorder < 0 {
		c.TopBorder = 0
	}
	return c
}
