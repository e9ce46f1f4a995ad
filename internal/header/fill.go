package header

import (
	"maps"
	"math"
	"slices"
)

// Fill re-derives the attached window for the current orientation.
func (m *Manager) Fill() error {
	if !m.ready() {
		return ErrNotReady
	}
	m.fill()
	return nil
}

func (m *Manager) fill() {
	o := m.orientation(false)

	var anchorPos int
	switch o {
	case Horizontal:
		anchorPos = m.horizontalAnchorPos()
	case Vertical:
		anchorPos = m.verticalAnchorPos()
	default:
		return
	}

	c := m.host.Container
	clear(m.viewCache)
	for i := 0; i < c.ChildCount(); i++ {
		v := c.ChildAt(i)
		m.viewCache[m.positionOf(v)] = v
	}
	for _, pos := range m.cachedPositions() {
		c.DetachView(m.viewCache[pos])
	}

	if o == Horizontal {
		m.fillLeft(anchorPos)
		m.fillRight(anchorPos)
	} else {
		m.fillTop(anchorPos)
		m.fillBottom(anchorPos)
	}

	for _, pos := range m.cachedPositions() {
		m.host.Pool.Recycle(m.viewCache[pos])
	}
	clear(m.viewCache)

	m.notifyHeaderUpdated(m.host.Header.Bottom())
}

func (m *Manager) cachedPositions() []int {
	return slices.Sorted(maps.Keys(m.viewCache))
}

// AnchorView is the attached view closest to the current orientation's
// anchor point, or nil while transitional or empty.
func (m *Manager) AnchorView() View {
	if !m.ready() {
		return nil
	}
	switch m.orientation(false) {
	case Horizontal:
		return m.horizontalAnchorView()
	case Vertical:
		return m.verticalAnchorView()
	default:
		return nil
	}
}

// AnchorPosition is the adapter position of AnchorView.
func (m *Manager) AnchorPosition() (int, bool) {
	v := m.AnchorView()
	if v == nil {
		return 0, false
	}
	return v.Position()
}

func (m *Manager) horizontalAnchorView() View {
	x := m.geo.HorizontalPoint.X
	return m.closestChild(func(r Rect) int { return r.Left - x })
}

func (m *Manager) verticalAnchorView() View {
	y := m.geo.VerticalPoint.Y
	return m.closestChild(func(r Rect) int { return r.Top - y })
}

// closestChild returns the first attached child with the smallest |edge|.
func (m *Manager) closestChild(edge func(Rect) int) View {
	c := m.host.Container
	var result View
	lastDiff := math.MaxInt
	for i := 0; i < c.ChildCount(); i++ {
		child := c.ChildAt(i)
		diff := abs(edge(child.Bounds()))
		if diff < lastDiff {
			lastDiff = diff
			result = child
		}
	}
	return result
}

func (m *Manager) horizontalAnchorPos() int {
	return viewPosition(m.horizontalAnchorView())
}

func (m *Manager) verticalAnchorPos() int {
	return viewPosition(m.verticalAnchorView())
}

func viewPosition(v View) int {
	if v == nil {
		return noPosition
	}
	pos, ok := v.Position()
	if !ok {
		return noPosition
	}
	return pos
}

// fillLeft places the items before the anchor so that the chain ends where
// the anchor currently sits.
func (m *Manager) fillLeft(anchorPos int) {
	if anchorPos == noPosition {
		return
	}

	hp := m.geo.HorizontalPoint
	w := m.geo.HorizontalTabWidth
	bottom := m.host.Header.Bottom()
	top := m.host.Container.Height() - bottom

	leftDiff := hp.X
	if v, ok := m.viewCache[anchorPos]; ok {
		leftDiff = hp.X - v.Bounds().Left
	}

	pos := max(0, anchorPos-m.geo.CenterIndex-OffScreenCount)
	left := hp.X - (anchorPos-pos)*w - leftDiff
	for ; pos < anchorPos; pos++ {
		v := m.placedChild(pos, Rect{Left: left, Top: top, Width: w, Height: bottom})
		left = v.Bounds().Right()
	}
}

// fillRight places the anchor and the items after it.
func (m *Manager) fillRight(anchorPos int) {
	count := m.host.Adapter.ItemCount()
	if count == 0 {
		return
	}

	start := max(anchorPos, 0)
	hp := m.geo.HorizontalPoint
	w := m.geo.HorizontalTabWidth
	bottom := m.host.Header.Bottom()
	top := m.host.Container.Height() - bottom
	maxPos := min(count, start+m.geo.CenterIndex+1+OffScreenCount)

	left := hp.X
	if last := m.lastChild(); last != nil {
		left = last.Bounds().Right()
	}

	for pos := start; pos < maxPos; pos++ {
		v := m.placedChild(pos, Rect{Left: left, Top: top, Width: w, Height: bottom})
		left = v.Bounds().Right()
	}
}

func (m *Manager) fillTop(anchorPos int) {
	if anchorPos == noPosition {
		return
	}

	vp := m.geo.VerticalPoint
	w, h := m.geo.VerticalTabWidth, m.geo.VerticalTabHeight

	topDiff := vp.Y
	if v, ok := m.viewCache[anchorPos]; ok {
		topDiff = vp.Y - v.Bounds().Top
	}

	pos := max(0, anchorPos-m.geo.CenterIndex-OffScreenCount)
	top := vp.Y - (anchorPos-pos)*h - topDiff
	for ; pos < anchorPos; pos++ {
		v := m.placedChild(pos, Rect{Left: vp.X, Top: top, Width: w, Height: h})
		top = v.Bounds().Bottom()
	}
}

func (m *Manager) fillBottom(anchorPos int) {
	count := m.host.Adapter.ItemCount()
	if count == 0 {
		return
	}

	start := max(anchorPos, 0)
	vp := m.geo.VerticalPoint
	w, h := m.geo.VerticalTabWidth, m.geo.VerticalTabHeight
	maxPos := min(count, start+m.geo.CenterIndex+1+OffScreenCount)

	top := vp.Y
	if last := m.lastChild(); last != nil {
		top = last.Bounds().Bottom()
	}

	for pos := start; pos < maxPos; pos++ {
		v := m.placedChild(pos, Rect{Left: vp.X, Top: top, Width: w, Height: h})
		top = v.Bounds().Bottom()
	}
}

func (m *Manager) lastChild() View {
	c := m.host.Container
	if n := c.ChildCount(); n > 0 {
		return c.ChildAt(n - 1)
	}
	return nil
}

// placedChild reattaches the cached view for pos or materializes a new one at r.
func (m *Manager) placedChild(pos int, r Rect) View {
	if v, ok := m.viewCache[pos]; ok {
		m.host.Container.AttachView(v)
		delete(m.viewCache, pos)
		return v
	}

	v := m.host.Pool.ViewForPosition(pos)
	m.host.Container.AddView(v)
	v.Layout(r)
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
