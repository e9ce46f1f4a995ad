package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/tui/layout"
)

// ink picks the style a cell is rendered with.
type ink int

const (
	inkBlank ink = iota
	inkHeader
	inkTitle
	inkCard
	inkAnchor
	inkMorphing
	inkText
	inkURL
	inkPinned
)

func (s Styles) forInk(k ink) lipgloss.Style {
	switch k {
	case inkHeader:
		return s.Header
	case inkTitle:
		return s.Title
	case inkCard:
		return s.Card
	case inkAnchor:
		return s.Anchor
	case inkMorphing:
		return s.Morphing
	case inkText:
		return s.Text
	case inkURL:
		return s.URL
	case inkPinned:
		return s.Pinned
	default:
		return s.Canvas
	}
}

// cell is one terminal cell. A zero rune is the trailing half of a wide rune.
type cell struct {
	r   rune
	ink ink
}

// canvas is a fixed grid of cells that cards are painted onto back to front.
type canvas struct {
	width, height int
	cells         []cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	return &c.cells[y*c.width+x]
}

// set paints one cell, clearing any wide rune it cuts in half.
func (c *canvas) set(x, y int, r rune, k ink) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	cur := c.at(x, y)
	if cur.r == 0 && x > 0 {
		*c.at(x-1, y) = cell{r: ' ', ink: c.at(x-1, y).ink}
	}
	if runewidth.RuneWidth(cur.r) > 1 && x+1 < c.width {
		*c.at(x+1, y) = cell{r: ' ', ink: c.at(x+1, y).ink}
	}
	*cur = cell{r: r, ink: k}
}

func (c *canvas) fill(s layout.Span, r rune, k ink) {
	for y := s.Y0; y < s.Y1; y++ {
		for x := s.X0; x < s.X1; x++ {
			c.set(x, y, r, k)
		}
	}
}

// write paints s from x up to, not including, limit. Wide runes that do not
// fit whole are dropped.
func (c *canvas) write(x, y, limit int, s string, k ink) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		c.set(x, y, r, k)
		if w == 2 {
			c.set(x+1, y, 0, k)
		}
		x += w
	}
}

// box paints r as a bordered box with a cleared interior.
func (c *canvas) box(r header.Rect, b lipgloss.Border, k ink) {
	left, right := r.Left, r.Right()-1
	top, bottom := r.Top, r.Bottom()-1

	c.fill(layout.Clip(left+1, top+1, r.Width-2, r.Height-2, c.width, c.height), ' ', inkText)

	for x := left + 1; x < right; x++ {
		c.set(x, top, firstRune(b.Top), k)
		c.set(x, bottom, firstRune(b.Bottom), k)
	}
	for y := top + 1; y < bottom; y++ {
		c.set(left, y, firstRune(b.Left), k)
		c.set(right, y, firstRune(b.Right), k)
	}
	c.set(left, top, firstRune(b.TopLeft), k)
	c.set(right, top, firstRune(b.TopRight), k)
	c.set(left, bottom, firstRune(b.BottomLeft), k)
	c.set(right, bottom, firstRune(b.BottomRight), k)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

// render joins the rows, styling each run of same-ink cells once.
func (c *canvas) render(st Styles) string {
	rows := make([]string, c.height)
	var row, run strings.Builder
	for y := 0; y < c.height; y++ {
		row.Reset()
		run.Reset()
		cur := c.at(0, y).ink
		for x := 0; x < c.width; x++ {
			cl := c.at(x, y)
			if cl.ink != cur {
				row.WriteString(st.forInk(cur).Render(run.String()))
				run.Reset()
				cur = cl.ink
			}
			if cl.r != 0 {
				run.WriteRune(cl.r)
			}
		}
		row.WriteString(st.forInk(cur).Render(run.String()))
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
