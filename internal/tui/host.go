package tui

import (
	"slices"
	"time"

	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/model"
	"github.com/nikbrunner/navtoolbar/internal/physics"
)

// unbound is the position of a recycled card.
const unbound = -1

// Card is one materialized tab box on the canvas.
type Card struct {
	pos    int
	bounds header.Rect

	// display overrides bounds while the header moves between rest states.
	display  header.Rect
	morphing bool
}

func (c *Card) Position() (int, bool) { return c.pos, c.pos != unbound }
func (c *Card) Bounds() header.Rect   { return c.bounds }
func (c *Card) Layout(r header.Rect)  { c.bounds = r }

func (c *Card) OffsetBy(dx, dy int) {
	c.bounds.Left += dx
	c.bounds.Top += dy
}

// Display is where the card is drawn.
func (c *Card) Display() header.Rect {
	if c.morphing {
		return c.display
	}
	return c.bounds
}

// Pool hands out cards, reusing recycled ones before allocating.
type Pool struct {
	free    []*Card
	created int
}

func (p *Pool) ViewForPosition(pos int) header.View {
	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free = p.free[:n-1]
		c.pos = pos
		c.morphing = false
		return c
	}
	p.created++
	return &Card{pos: pos}
}

func (p *Pool) Recycle(v header.View) {
	c, ok := v.(*Card)
	if !ok {
		return
	}
	c.pos = unbound
	c.morphing = false
	p.free = append(p.free, c)
}

// Strip holds the attached cards in attachment order.
type Strip struct {
	width, height int
	children      []header.View
}

func (s *Strip) Width() int                { return s.width }
func (s *Strip) Height() int               { return s.height }
func (s *Strip) ChildCount() int           { return len(s.children) }
func (s *Strip) ChildAt(i int) header.View { return s.children[i] }
func (s *Strip) AttachView(v header.View)  { s.children = append(s.children, v) }
func (s *Strip) AddView(v header.View)     { s.children = append(s.children, v) }

func (s *Strip) DetachView(v header.View) {
	if i := slices.Index(s.children, v); i >= 0 {
		s.children = slices.Delete(s.children, i, i+1)
	}
}

// Cards returns the attached cards in attachment order.
func (s *Strip) Cards() []*Card {
	out := make([]*Card, 0, len(s.children))
	for _, v := range s.children {
		if c, ok := v.(*Card); ok {
			out = append(out, c)
		}
	}
	return out
}

// catalogue is the adapter over the ordered tabs.
type catalogue struct {
	tabs []model.Tab
}

func newCatalogue(store *model.Store) *catalogue {
	c := &catalogue{}
	c.refresh(store)
	return c
}

func (c *catalogue) refresh(store *model.Store) {
	if store == nil {
		c.tabs = nil
		return
	}
	c.tabs = store.Ordered()
}

func (c *catalogue) ItemCount() int { return len(c.tabs) }

func (c *catalogue) indexOf(id string) int {
	for i := range c.tabs {
		if c.tabs[i].ID == id {
			return i
		}
	}
	return unbound
}

func (c *catalogue) at(pos int) (model.Tab, bool) {
	if pos < 0 || pos >= len(c.tabs) {
		return model.Tab{}, false
	}
	return c.tabs[pos], true
}

// offsetObserver is told about every header offset change.
type offsetObserver interface {
	OnDependentGeometryChanged(headerBottom int)
	OnExternalOffsetChanged(offset int)
}

// BarParams holds parameters for creating a new Bar.
type BarParams struct {
	Height    int
	TopBorder int
	Offset    int

	// Duration animates SetExpanded; Frame is one animation step.
	Duration time.Duration
	Frame    time.Duration
}

// Bar is the collapsing header above the toolbar. Its offset runs from
// -(Height-TopBorder), collapsed onto the top border, up to 0, fully expanded.
type Bar struct {
	height    int
	topBorder int
	offset    int
	duration  time.Duration
	frame     time.Duration

	anim     *physics.Tween
	observer offsetObserver
}

// NewBar creates a Bar with Offset clamped into range.
func NewBar(params BarParams) *Bar {
	b := &Bar{
		height:    params.Height,
		topBorder: params.TopBorder,
		duration:  params.Duration,
		frame:     params.Frame,
	}
	b.offset = b.clamp(params.Offset)
	return b
}

func (b *Bar) observe(o offsetObserver) {
	b.observer = o
}

func (b *Bar) Bottom() int { return b.height + b.offset }
func (b *Bar) Offset() int { return b.offset }

// MinOffset is the fully collapsed offset.
func (b *Bar) MinOffset() int { return -(b.height - b.topBorder) }

func (b *Bar) clamp(offset int) int {
	return max(b.MinOffset(), min(offset, 0))
}

// SetOffset moves the header and reports the new geometry.
func (b *Bar) SetOffset(offset int) {
	offset = b.clamp(offset)
	if offset == b.offset {
		return
	}
	b.offset = offset
	if b.observer != nil {
		b.observer.OnDependentGeometryChanged(b.Bottom())
		b.observer.OnExternalOffsetChanged(b.offset)
	}
}

// SetExpanded moves the header to either end of its range.
func (b *Bar) SetExpanded(expanded, animated bool) {
	target := b.MinOffset()
	if expanded {
		target = 0
	}

	b.stop()
	if !animated || b.duration <= 0 {
		b.SetOffset(target)
		return
	}

	b.anim = physics.NewTween(b.offset, target, b.duration, b.frame)
	b.anim.OnUpdate = b.SetOffset
	b.anim.Start()
}

// Drag moves the header by delta rows, cancelling any animation.
func (b *Bar) Drag(delta int) {
	b.stop()
	b.SetOffset(b.offset + delta)
}

// Step advances a running expand or collapse by one frame.
func (b *Bar) Step() {
	if b.anim != nil && b.anim.Running() {
		b.anim.Step()
	}
}

// Animating reports whether an expand or collapse is in flight.
func (b *Bar) Animating() bool {
	return b.anim != nil && b.anim.Running()
}

func (b *Bar) stop() {
	if b.anim != nil {
		b.anim.Cancel()
	}
}
