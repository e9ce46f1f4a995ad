package tui

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/physics"
)

// flingItems is how many items a keyboard fling travels before it stops.
const flingItems = 2.5

// toolbar wires one layout manager to its canvas host.
type toolbar struct {
	m     *header.Manager
	strip *Strip
	pool  *Pool
	bar   *Bar
	morph *morph
	tabs  *catalogue

	frame        time.Duration
	deceleration float64

	// target is the last position the manager announced.
	target int
}

func frameDuration(fps int) time.Duration {
	if fps <= 0 {
		fps = physics.DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// newToolbar attaches a fresh manager to a width x height canvas, with the
// header resting at half height.
func newToolbar(cfg header.Config, width, height int, tabs *catalogue, logger *log.Logger) (*toolbar, error) {
	frame := frameDuration(cfg.FramesPerSecond)
	duration := cfg.CollapsingDuration
	if duration <= 0 {
		duration = header.DefaultCollapsingDuration
	}

	tb := &toolbar{
		m:            header.New(cfg, header.WithLogger(logger)),
		strip:        &Strip{width: width, height: height},
		pool:         &Pool{},
		tabs:         tabs,
		frame:        frame,
		deceleration: cfg.FlingDeceleration,
	}
	if tb.deceleration <= 0 {
		tb.deceleration = physics.DefaultDeceleration
	}

	tb.bar = NewBar(BarParams{
		Height:    height,
		TopBorder: cfg.TopBorder,
		Offset:    height/2 - height,
		Duration:  duration,
		Frame:     frame,
	})
	tb.morph = &morph{m: tb.m, strip: tb.strip}

	tb.m.AddHeaderChangeListener(tb.morph.onHeaderChange)
	tb.m.AddHeaderUpdateListener(tb.morph.onHeaderUpdate)
	tb.m.AddItemChangeListener(func(pos int) { tb.target = pos })

	err := tb.m.OnAttachedLayout(header.Host{
		Container: tb.strip,
		Pool:      tb.pool,
		Adapter:   tabs,
		Header:    tb.bar,
	})
	if err != nil {
		return nil, fmt.Errorf("attach toolbar: %w", err)
	}
	tb.bar.observe(tb.m)
	return tb, nil
}

// step runs one frame: header animation, manager physics, then the idle check.
func (tb *toolbar) step(now time.Time) {
	tb.bar.Step()
	tb.m.OnFrame(now)
	if tb.m.ScrollState() != header.Fling {
		tb.m.OnIdle(now)
	}
}

func (tb *toolbar) geometry() header.Geometry {
	g, _ := tb.m.Geometry()
	return g
}

func (tb *toolbar) scrollable() bool {
	return tb.m.HorizontalScrollEnabled() || tb.m.VerticalScrollEnabled()
}

// drag is one discrete drag gesture along the list axis when vertical is
// set and along the strip otherwise. A step is half a list item or a
// quarter of a strip item.
func (tb *toolbar) drag(vertical bool, steps int) bool {
	g := tb.geometry()
	tb.m.OnDown()
	defer tb.m.OnUp()

	if vertical {
		if !tb.m.VerticalScrollEnabled() {
			return false
		}
		return tb.m.OnVerticalDrag(float64(steps * max(1, g.VerticalTabHeight/2)))
	}
	if !tb.m.HorizontalScrollEnabled() {
		return false
	}
	return tb.m.OnHorizontalDrag(float64(steps * max(1, g.HorizontalTabWidth/4)))
}

// fling throws the items toward the end when forward is set. The velocity
// is picked so the fling covers about flingItems items.
func (tb *toolbar) fling(vertical, forward bool) bool {
	g := tb.geometry()
	size := g.HorizontalTabWidth
	if vertical {
		size = g.VerticalTabHeight
	}
	v := math.Sqrt(2 * tb.deceleration * flingItems * float64(size))
	if forward {
		v = -v
	}

	if !tb.m.OnDown() {
		return false
	}
	if vertical {
		if !tb.m.VerticalScrollEnabled() {
			return false
		}
		return tb.m.OnVerticalFling(v)
	}
	if !tb.m.HorizontalScrollEnabled() {
		return false
	}
	return tb.m.OnHorizontalFling(v)
}

// dragHeader moves the collapsed header; it only moves when the manager
// allows header drags.
func (tb *toolbar) dragHeader(rows int) bool {
	if !tb.m.CanDrag() {
		return false
	}
	tb.bar.Drag(rows)
	return true
}

// scrollTo jumps to pos without animation. One jump reaches no further than
// the attached window, so it repeats until the anchor lands or stops moving.
func (tb *toolbar) scrollTo(pos int) error {
	defer tb.m.OnUp()
	for range tb.tabs.ItemCount() + 1 {
		before, _ := tb.m.AnchorPosition()
		if err := tb.m.ScrollToPosition(pos); err != nil {
			return err
		}
		after, ok := tb.m.AnchorPosition()
		if !ok || after == pos || after == before {
			return nil
		}
	}
	return nil
}

// anchor returns the anchor card and its position.
func (tb *toolbar) anchor() (*Card, int, bool) {
	v := tb.m.AnchorView()
	if v == nil {
		return nil, 0, false
	}
	c, ok := v.(*Card)
	if !ok {
		return nil, 0, false
	}
	return c, c.pos, true
}
