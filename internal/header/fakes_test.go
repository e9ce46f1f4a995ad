package header

import (
	"bytes"
	"log"
	"slices"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

type fakeView struct {
	pos int
	bad bool
	r   Rect
}

func (v *fakeView) Position() (int, bool) { return v.pos, !v.bad }
func (v *fakeView) Bounds() Rect          { return v.r }
func (v *fakeView) Layout(r Rect)         { v.r = r }
func (v *fakeView) OffsetBy(dx, dy int) {
	v.r.Left += dx
	v.r.Top += dy
}

type fakeContainer struct {
	width, height int
	children      []View
}

func (c *fakeContainer) Width() int         { return c.width }
func (c *fakeContainer) Height() int        { return c.height }
func (c *fakeContainer) ChildCount() int    { return len(c.children) }
func (c *fakeContainer) ChildAt(i int) View { return c.children[i] }
func (c *fakeContainer) AttachView(v View)  { c.children = append(c.children, v) }
func (c *fakeContainer) AddView(v View)     { c.children = append(c.children, v) }
func (c *fakeContainer) DetachView(v View) {
	if i := slices.Index(c.children, v); i >= 0 {
		c.children = slices.Delete(c.children, i, i+1)
	}
}

type fakePool struct {
	created  int
	recycled []View
}

func (p *fakePool) ViewForPosition(pos int) View {
	p.created++
	return &fakeView{pos: pos}
}

func (p *fakePool) Recycle(v View) { p.recycled = append(p.recycled, v) }

type fakeAdapter struct{ count int }

func (a fakeAdapter) ItemCount() int { return a.count }

type fakeHeader struct {
	height   int
	offset   int
	expanded []bool
}

func (h *fakeHeader) Bottom() int          { return h.height + h.offset }
func (h *fakeHeader) Offset() int          { return h.offset }
func (h *fakeHeader) SetOffset(offset int) { h.offset = offset }
func (h *fakeHeader) SetExpanded(expanded, animated bool) {
	h.expanded = append(h.expanded, expanded)
}

type fixture struct {
	m         *Manager
	container *fakeContainer
	pool      *fakePool
	header    *fakeHeader
	logs      *bytes.Buffer
	now       time.Time
}

type fixtureParams struct {
	Width, Height int
	TopBorder     int
	Items         int
	Offset        int
}

// tall is a 500x1000 container with an 80px top border.
func tall(items, offset int) fixtureParams {
	return fixtureParams{Width: 500, Height: 1000, TopBorder: 80, Items: items, Offset: offset}
}

func newFixture(t *testing.T, p fixtureParams) *fixture {
	t.Helper()

	cfg := DefaultConfig()
	cfg.TopBorder = p.TopBorder

	f := &fixture{
		container: &fakeContainer{width: p.Width, height: p.Height},
		pool:      &fakePool{},
		header:    &fakeHeader{height: p.Height, offset: p.Offset},
		logs:      &bytes.Buffer{},
		now:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.m = New(cfg, WithLogger(log.New(f.logs, "", 0)))

	err := f.m.OnAttachedLayout(Host{
		Container: f.container,
		Pool:      f.pool,
		Adapter:   fakeAdapter{count: p.Items},
		Header:    f.header,
	})
	assert.NilError(t, err)
	return f
}

// settle lets the attach-time settle check run to completion.
func (f *fixture) settle() {
	f.m.OnIdle(f.now)
	f.advance(ScrollStopCheckDelay)
	f.m.OnIdle(f.now)
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// frames steps until nothing is moving, or fails after limit frames.
func (f *fixture) frames(t *testing.T, limit int) int {
	t.Helper()
	n := 0
	for f.m.ScrollState() == Fling || f.m.IsOffsetAnimating() {
		f.advance(f.m.flinger.scroller.FrameDuration())
		f.m.OnFrame(f.now)
		n++
		assert.Assert(t, n < limit, "still moving after %d frames", n)
	}
	return n
}

type placed struct {
	Pos  int
	Rect Rect
}

func (f *fixture) window() []placed {
	out := make([]placed, 0, len(f.container.children))
	for _, v := range f.container.children {
		pos, _ := v.Position()
		out = append(out, placed{Pos: pos, Rect: v.Bounds()})
	}
	return out
}

func (f *fixture) positions() []int {
	var out []int
	for _, p := range f.window() {
		out = append(out, p.Pos)
	}
	return out
}
