package tui

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/navtoolbar/internal/config"
	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/model"
	"github.com/nikbrunner/navtoolbar/internal/tui/layout"
)

const testFrame = time.Second / 60

type offsetRecorder struct {
	bottoms []int
	offsets []int
}

func (r *offsetRecorder) OnDependentGeometryChanged(bottom int) {
	r.bottoms = append(r.bottoms, bottom)
}

func (r *offsetRecorder) OnExternalOffsetChanged(offset int) {
	r.offsets = append(r.offsets, offset)
}

func newTestBar(offset int) (*Bar, *offsetRecorder) {
	b := NewBar(BarParams{
		Height:    22,
		TopBorder: 2,
		Offset:    offset,
		Duration:  500 * time.Millisecond,
		Frame:     testFrame,
	})
	rec := &offsetRecorder{}
	b.observe(rec)
	return b, rec
}

func TestBar_ClampsOffset(t *testing.T) {
	b, rec := newTestBar(-50)

	if b.Offset() != -20 {
		t.Errorf("expected offset clamped to -20, got %d", b.Offset())
	}
	if b.Bottom() != 2 {
		t.Errorf("expected collapsed bottom 2, got %d", b.Bottom())
	}

	b.SetOffset(5)
	if b.Offset() != 0 || b.Bottom() != 22 {
		t.Errorf("expected fully expanded, got offset %d bottom %d", b.Offset(), b.Bottom())
	}

	b.SetOffset(0)
	if len(rec.bottoms) != 1 || rec.bottoms[0] != 22 {
		t.Errorf("expected one notification with bottom 22, got %v", rec.bottoms)
	}
	if len(rec.offsets) != 1 || rec.offsets[0] != 0 {
		t.Errorf("expected one offset notification, got %v", rec.offsets)
	}
}

func TestBar_SetExpandedAnimates(t *testing.T) {
	b, rec := newTestBar(-11)

	b.SetExpanded(true, true)
	if !b.Animating() {
		t.Fatal("expected animation to start")
	}
	if b.Offset() != -11 {
		t.Errorf("offset should not move before the first frame, got %d", b.Offset())
	}

	steps := 0
	for b.Animating() {
		b.Step()
		steps++
		if steps > 100 {
			t.Fatal("animation never finished")
		}
	}

	// 30 frames fall just short of 500ms.
	if steps != 31 {
		t.Errorf("expected 31 steps, got %d", steps)
	}
	if b.Offset() != 0 {
		t.Errorf("expected expanded offset 0, got %d", b.Offset())
	}
	for i := 1; i < len(rec.offsets); i++ {
		if rec.offsets[i] < rec.offsets[i-1] {
			t.Fatalf("expansion went backwards: %v", rec.offsets)
		}
	}
}

func TestBar_SetExpandedImmediate(t *testing.T) {
	b, rec := newTestBar(0)

	b.SetExpanded(false, false)
	if b.Animating() {
		t.Error("unanimated collapse should not animate")
	}
	if b.Offset() != b.MinOffset() {
		t.Errorf("expected offset %d, got %d", b.MinOffset(), b.Offset())
	}
	if len(rec.bottoms) != 1 || rec.bottoms[0] != 2 {
		t.Errorf("expected a single move to the top border, got %v", rec.bottoms)
	}
}

func TestBar_DragCancelsAnimation(t *testing.T) {
	b, _ := newTestBar(-20)

	b.SetExpanded(true, true)
	b.Step()
	b.Drag(3)

	if b.Animating() {
		t.Error("drag should cancel the animation")
	}
	offset := b.Offset()
	b.Step()
	if b.Offset() != offset {
		t.Errorf("cancelled animation moved the header: %d -> %d", offset, b.Offset())
	}
}

func TestPool_ReusesRecycledCards(t *testing.T) {
	p := &Pool{}

	first := p.ViewForPosition(3).(*Card)
	if pos, ok := first.Position(); !ok || pos != 3 {
		t.Fatalf("expected card bound to 3, got %d %v", pos, ok)
	}

	first.morphing = true
	p.Recycle(first)
	if _, ok := first.Position(); ok {
		t.Error("recycled card should be unbound")
	}

	again := p.ViewForPosition(7).(*Card)
	if again != first {
		t.Error("expected the recycled card to be reused")
	}
	if pos, _ := again.Position(); pos != 7 {
		t.Errorf("expected rebinding to 7, got %d", pos)
	}
	if again.morphing {
		t.Error("reused card should not keep its morph state")
	}
	if p.created != 1 {
		t.Errorf("expected 1 allocation, got %d", p.created)
	}
}

func TestStrip_DetachKeepsOrder(t *testing.T) {
	s := &Strip{width: 80, height: 22}
	a, b, c := &Card{pos: 0}, &Card{pos: 1}, &Card{pos: 2}
	s.AddView(a)
	s.AttachView(b)
	s.AddView(c)

	s.DetachView(b)
	s.DetachView(&Card{pos: 9})

	cards := s.Cards()
	if len(cards) != 2 || cards[0] != a || cards[1] != c {
		t.Errorf("unexpected children after detach: %v", cards)
	}
}

func TestCard_OffsetAndDisplay(t *testing.T) {
	c := &Card{pos: 0}
	c.Layout(header.Rect{Left: 0, Top: 11, Width: 80, Height: 11})
	c.OffsetBy(-5, 2)

	want := header.Rect{Left: -5, Top: 13, Width: 80, Height: 11}
	if c.Bounds() != want || c.Display() != want {
		t.Errorf("expected %+v, got bounds %+v display %+v", want, c.Bounds(), c.Display())
	}

	c.display = header.Rect{Left: 1, Top: 2, Width: 3, Height: 4}
	c.morphing = true
	if c.Display() != c.display {
		t.Errorf("morphing card should draw at %+v, got %+v", c.display, c.Display())
	}
}

func TestMorphProgress(t *testing.T) {
	tests := []struct {
		bottom, height int
		want           float64
	}{
		{2, 22, 0},
		{11, 22, 0},
		{22, 22, 1},
		{30, 22, 1},
		{33, 44, 0.5},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := morphProgress(tt.bottom, tt.height); got != tt.want {
			t.Errorf("morphProgress(%d, %d) = %v, want %v", tt.bottom, tt.height, got, tt.want)
		}
	}
}

func testTabs(titles ...string) *catalogue {
	store := model.NewStore()
	for i, title := range titles {
		store.Tabs = append(store.Tabs, model.Tab{
			ID:    string(rune('a' + i)),
			Title: title,
			URL:   "https://example.com/" + strings.ToLower(title),
		})
	}
	return newCatalogue(store)
}

func newTestToolbar(t *testing.T) *toolbar {
	t.Helper()
	tb, err := newToolbar(config.DefaultConfig().HeaderConfig(), 80, 22,
		testTabs("Alpha", "Beta", "Gamma", "Delta", "Epsilon"), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newToolbar: %v", err)
	}
	return tb
}

func TestToolbar_StartsAtHalfHeight(t *testing.T) {
	tb := newTestToolbar(t)

	if tb.bar.Bottom() != 11 {
		t.Errorf("expected header bottom 11, got %d", tb.bar.Bottom())
	}
	if tb.m.Orientation() != header.Horizontal {
		t.Errorf("expected horizontal, got %s", tb.m.Orientation())
	}
	card, pos, ok := tb.anchor()
	if !ok || pos != 0 {
		t.Fatalf("expected anchor 0, got %d %v", pos, ok)
	}
	want := header.Rect{Left: 0, Top: 11, Width: 80, Height: 11}
	if card.Bounds() != want {
		t.Errorf("expected anchor at %+v, got %+v", want, card.Bounds())
	}
}

func TestMorph_InterpolatesFrozenCards(t *testing.T) {
	tb := newTestToolbar(t)
	first := tb.strip.Cards()[0]
	frozen := first.Bounds()

	// Bottom 16 of 22 is 45% of the way from strip to list.
	tb.bar.SetOffset(-6)
	if tb.m.Orientation() != header.Transitional {
		t.Fatalf("expected transitional, got %s", tb.m.Orientation())
	}

	if first.Bounds() != frozen {
		t.Errorf("transitional header moved the layout: %+v", first.Bounds())
	}
	want := header.Rect{Left: 7, Top: 10, Width: 73, Height: 8}
	if first.Display() != want {
		t.Errorf("expected display %+v, got %+v", want, first.Display())
	}

	tb.bar.SetOffset(0)
	if tb.m.Orientation() != header.Vertical {
		t.Fatalf("expected vertical, got %s", tb.m.Orientation())
	}
	for _, c := range tb.strip.Cards() {
		if c.morphing {
			t.Errorf("card %d still morphing after the list settled", c.pos)
		}
	}
}

func TestToolbar_ScrollToReachesFarTabs(t *testing.T) {
	tb, err := newToolbar(config.DefaultConfig().HeaderConfig(), 80, 22,
		testTabs("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newToolbar: %v", err)
	}

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		now = now.Add(testFrame)
		tb.step(now)
	}
	if !tb.m.HorizontalScrollEnabled() {
		t.Fatal("expected the strip to settle")
	}

	for _, target := range []int{10, 2, 11, 0} {
		if err := tb.scrollTo(target); err != nil {
			t.Fatalf("scrollTo(%d): %v", target, err)
		}
		card, pos, ok := tb.anchor()
		if !ok || pos != target {
			t.Fatalf("scrollTo(%d) landed on %d", target, pos)
		}
		if card.Bounds().Left != 0 {
			t.Errorf("scrollTo(%d) left the anchor at %d", target, card.Bounds().Left)
		}
		if tb.m.ScrollState() != header.Idle {
			t.Errorf("scrollTo(%d) left state %s", target, tb.m.ScrollState())
		}
	}
}

func TestCanvas_WriteClipsWideRunes(t *testing.T) {
	cv := newCanvas(6, 1)
	cv.write(0, 0, 4, "aこんb", inkText)

	// "ん" would end past the limit at cell 4.
	if got := canvasText(cv); got != "aこ   " {
		t.Errorf("expected %q, got %q", "aこ   ", got)
	}

	// Overwriting the trailing half clears the whole wide rune.
	cv.set(2, 0, 'x', inkText)
	if got := canvasText(cv); got != "a x   " {
		t.Errorf("expected %q, got %q", "a x   ", got)
	}
}

func TestCanvas_BoxIsClipped(t *testing.T) {
	cv := newCanvas(6, 4)
	cv.box(header.Rect{Left: 2, Top: 1, Width: 6, Height: 3}, lipgloss.RoundedBorder(), inkCard)

	want := strings.Join([]string{
		"      ",
		"  ╭───",
		"  │   ",
		"  ╰───",
	}, "\n")
	if got := canvasText(cv); got != want {
		t.Errorf("unexpected box:\n%s\nwant:\n%s", got, want)
	}
}

func TestCanvas_RenderKeepsWidth(t *testing.T) {
	cv := newCanvas(10, 2)
	cv.fill(layout.Span{X0: 0, Y0: 0, X1: 10, Y1: 1}, ' ', inkHeader)
	cv.write(1, 0, 9, "こんにちは", inkTitle)

	for i, line := range strings.Split(cv.render(DefaultStyles()), "\n") {
		if w := layout.VisibleWidth(line); w != 10 {
			t.Errorf("row %d is %d cells wide, want 10", i, w)
		}
	}
}

// canvasText returns the canvas text without styling.
func canvasText(c *canvas) string {
	rows := make([]string, c.height)
	var row strings.Builder
	for y := 0; y < c.height; y++ {
		row.Reset()
		for x := 0; x < c.width; x++ {
			if r := c.at(x, y).r; r != 0 {
				row.WriteRune(r)
			}
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
