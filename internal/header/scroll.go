package header

import (
	"time"

	"github.com/nikbrunner/navtoolbar/internal/physics"
)

// flinger drives a physics.Scroller one frame at a time and moves the
// attached items by the per-frame delta.
type flinger struct {
	m        *Manager
	scroller *physics.Scroller
	active   bool
}

func (f *flinger) fling(startX, startY int, vx, vy float64, minX, maxX, minY, maxY int) {
	f.m.setScrollState(Fling)
	f.scroller.ForceFinished(true)
	f.scroller.Fling(startX, startY, vx, vy, minX, maxX, minY, maxY)
	f.active = true
}

func (f *flinger) startScroll(startX, startY, dx, dy int, d time.Duration) {
	f.m.setScrollState(Fling)
	f.scroller.ForceFinished(true)
	f.scroller.StartScroll(startX, startY, dx, dy, d)
	f.active = true
}

// run is one frame of the simulation.
func (f *flinger) run() {
	if !f.active {
		return
	}

	x, y := f.scroller.CurrX(), f.scroller.CurrY()
	if !f.scroller.ComputeScrollOffset() {
		f.active = false
		f.m.setScrollState(Idle)
		return
	}

	dx, dy := f.scroller.CurrX()-x, f.scroller.CurrY()-y
	if dx == 0 && dy == 0 {
		return
	}

	f.m.offsetChildren(dx, dy)
	f.m.fill()
}

func (f *flinger) stop() {
	if !f.scroller.IsFinished() {
		f.m.setScrollState(Idle)
		f.scroller.AbortAnimation()
	}
	f.active = false
}

func (f *flinger) running() bool {
	return f.active && !f.scroller.IsFinished()
}

func (m *Manager) offsetChildren(dx, dy int) {
	c := m.host.Container
	for i := 0; i < c.ChildCount(); i++ {
		c.ChildAt(i).OffsetBy(dx, dy)
	}
}

// OnDown stops any fling. It reports false when nothing is attached.
func (m *Manager) OnDown() bool {
	if !m.ready() || m.host.Container.ChildCount() == 0 {
		return false
	}
	m.flinger.stop()
	return true
}

// OnUp ends a drag. A running fling keeps its state.
func (m *Manager) OnUp() {
	if m.scrollState != Fling {
		m.setScrollState(Idle)
	}
}

// OnHorizontalDrag moves the strip by distance pixels; positive scrolls
// toward the end of the list.
func (m *Manager) OnHorizontalDrag(distance float64) bool {
	if !m.ready() {
		return false
	}
	c := m.host.Container
	n := c.ChildCount()
	if n == 0 {
		return false
	}

	m.setScrollState(Dragging)

	var offset int
	if distance >= 0 {
		lastRight := c.ChildAt(n - 1).Bounds().Right()
		newRight := float64(lastRight) - distance
		if newRight > float64(c.Width()) {
			offset = int(distance)
		} else {
			offset = lastRight - c.Width()
		}
	} else {
		firstLeft := c.ChildAt(0).Bounds().Left
		switch {
		case firstLeft > 0:
			offset = 0
		case float64(firstLeft)-distance < 0:
			offset = int(distance)
		default:
			offset = firstLeft
		}
	}

	m.offsetChildren(-offset, 0)
	m.fill()
	return true
}

// OnVerticalDrag moves the list by distance pixels; positive scrolls toward
// the end of the list.
func (m *Manager) OnVerticalDrag(distance float64) bool {
	if !m.ready() {
		return false
	}
	c := m.host.Container
	n := c.ChildCount()
	if n == 0 {
		return false
	}

	m.setScrollState(Dragging)

	var offset int
	if distance >= 0 {
		lastBottom := c.ChildAt(n - 1).Bounds().Bottom()
		newBottom := float64(lastBottom) - distance
		if newBottom > float64(c.Height()) {
			offset = int(distance)
		} else {
			offset = lastBottom - c.Height()
		}
	} else {
		firstTop := c.ChildAt(0).Bounds().Top
		switch {
		case firstTop > 0:
			offset = 0
		case float64(firstTop)-distance < 0:
			offset = int(distance)
		default:
			offset = firstTop
		}
	}

	m.offsetChildren(0, -offset)
	m.fill()
	return true
}

// OnHorizontalFling launches a horizontal fling at velocity pixels per second.
func (m *Manager) OnHorizontalFling(velocity float64) bool {
	if !m.ready() {
		return false
	}
	c := m.host.Container
	if c.ChildCount() == 0 {
		return false
	}

	startX := m.startX(c.ChildAt(0))
	minX := -m.host.Adapter.ItemCount()*m.geo.HorizontalTabWidth + c.Width()
	m.flinger.fling(startX, 0, velocity, 0, minX, 0, 0, 0)
	return true
}

// OnVerticalFling launches a vertical fling at velocity pixels per second.
func (m *Manager) OnVerticalFling(velocity float64) bool {
	if !m.ready() {
		return false
	}
	c := m.host.Container
	if c.ChildCount() == 0 {
		return false
	}

	startY := m.startY(c.ChildAt(0))
	minY := -m.host.Adapter.ItemCount()*m.geo.VerticalTabHeight + c.Height()
	m.flinger.fling(0, startY, 0, velocity, 0, 0, minY, 0)
	return true
}

// startX is where item 0 would sit given v's placement.
func (m *Manager) startX(v View) int {
	return v.Bounds().Left - m.positionOf(v)*m.geo.HorizontalTabWidth
}

func (m *Manager) startY(v View) int {
	return v.Bounds().Top - m.positionOf(v)*m.geo.VerticalTabHeight
}
