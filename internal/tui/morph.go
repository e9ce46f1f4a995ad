package tui

import (
	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/tui/layout"
)

// morph slides the frozen cards between the strip and list layouts while
// the header is between its half and full extents. The manager leaves the
// cards in place during that window, so only their display rects move.
type morph struct {
	m     *header.Manager
	strip *Strip

	// settled is the orientation of the last completed fill.
	settled header.Orientation
}

func (mo *morph) onHeaderUpdate(int) {
	mo.settled = mo.m.Orientation()
	for _, c := range mo.strip.Cards() {
		c.morphing = false
	}
}

func (mo *morph) onHeaderChange(bottom int) {
	if mo.m.Orientation() != header.Transitional {
		return
	}
	g, err := mo.m.Geometry()
	if err != nil {
		return
	}

	cards := mo.strip.Cards()
	anchor := mo.anchor(cards, g)
	if anchor == nil {
		return
	}

	// Keep the partial scroll of the anchor so the first frame does not jump.
	var shiftX, shiftY int
	if mo.settled == header.Vertical {
		shiftY = anchor.bounds.Top - g.VerticalPoint.Y
	} else {
		shiftX = anchor.bounds.Left - g.HorizontalPoint.X
	}

	t := morphProgress(bottom, g.ScreenHeight)
	for _, c := range cards {
		rel := c.pos - anchor.pos
		strip := header.Rect{
			Left:   g.HorizontalPoint.X + rel*g.HorizontalTabWidth + shiftX,
			Top:    g.HorizontalPoint.Y,
			Width:  g.HorizontalTabWidth,
			Height: g.HorizontalTabHeight,
		}
		list := header.Rect{
			Left:   g.VerticalPoint.X,
			Top:    g.VerticalPoint.Y + rel*g.VerticalTabHeight + shiftY,
			Width:  g.VerticalTabWidth,
			Height: g.VerticalTabHeight,
		}
		c.display = lerpRect(strip, list, t)
		c.morphing = true
	}
}

// anchor is the card nearest the settled orientation's anchor point.
func (mo *morph) anchor(cards []*Card, g header.Geometry) *Card {
	var best *Card
	bestDist := 0
	for _, c := range cards {
		d := c.bounds.Left - g.HorizontalPoint.X
		if mo.settled == header.Vertical {
			d = c.bounds.Top - g.VerticalPoint.Y
		}
		d = max(d, -d)
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// morphProgress maps the header bottom onto [0, 1]: 0 at half height where
// the strip rests, 1 at full height where the list rests.
func morphProgress(bottom, height int) float64 {
	if height <= 0 {
		return 0
	}
	t := (float64(bottom)/float64(height) - 0.5) / 0.5
	return max(0, min(t, 1))
}

func lerpRect(a, b header.Rect, t float64) header.Rect {
	return header.Rect{
		Left:   layout.Lerp(a.Left, b.Left, t),
		Top:    layout.Lerp(a.Top, b.Top, t),
		Width:  layout.Lerp(a.Width, b.Width, t),
		Height: layout.Lerp(a.Height, b.Height, t),
	}
}
