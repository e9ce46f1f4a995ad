package header

import (
	"time"

	"github.com/nikbrunner/navtoolbar/internal/physics"
)

// SnapAction is what the snap decision asks for once the header is at rest.
type SnapAction int

const (
	// RestVertical: fully expanded, the list scrolls vertically.
	RestVertical SnapAction = iota
	// RestHorizontal: half expanded, the tab strip scrolls horizontally.
	RestHorizontal
	// RestCollapsed: collapsed to the top border, header dragging allowed.
	RestCollapsed
	// Collapse the header fully.
	Collapse
	// SnapToHalf animates the header to the half-screen rest state.
	SnapToHalf
	// Expand the header fully.
	Expand
)

func (a SnapAction) String() string {
	switch a {
	case RestVertical:
		return "rest-vertical"
	case RestHorizontal:
		return "rest-horizontal"
	case RestCollapsed:
		return "rest-collapsed"
	case Collapse:
		return "collapse"
	case SnapToHalf:
		return "snap-to-half"
	default:
		return "expand"
	}
}

// SnapAction picks the action for invertedOffset (container height plus the
// header offset). Ranges are half-open and checked in order.
func (g Geometry) SnapAction(invertedOffset int) SnapAction {
	switch {
	case invertedOffset == g.ScreenHeight:
		return RestVertical
	case invertedOffset == g.ScreenHalf:
		return RestHorizontal
	case invertedOffset == g.TopBorder:
		return RestCollapsed
	case invertedOffset >= g.TopBorder && invertedOffset < g.TopSnapDistance:
		return Collapse
	case invertedOffset >= g.TopSnapDistance && invertedOffset < g.BottomSnapDistance:
		return SnapToHalf
	default:
		return Expand
	}
}

// onOffsetChangingStopped applies the snap decision for a header at rest.
func (m *Manager) onOffsetChangingStopped(offset int) {
	hScroll, vScroll := false, false

	switch m.geo.SnapAction(m.geo.ScreenHeight + offset) {
	case RestVertical:
		vScroll = true
		m.canDrag = false
	case RestHorizontal:
		hScroll = true
		m.canDrag = false
	case RestCollapsed:
		hScroll = true
		m.canDrag = true
	case Collapse:
		m.host.Header.SetExpanded(false, true)
	case SnapToHalf:
		m.smoothOffset(m.geo.HalfOffset(), SnapAnimationDuration)
	case Expand:
		m.host.Header.SetExpanded(true, true)
	}

	m.hScrollEnabled = hScroll
	m.vScrollEnabled = vScroll
}

// smoothOffset animates the header offset to offset over d. A running offset
// animation is cancelled first, which applies its own end state.
func (m *Manager) smoothOffset(offset int, d time.Duration) {
	if old := m.offsetAnim; old != nil {
		m.offsetAnim = nil
		old.Cancel()
	}

	hdr := m.host.Header
	tw := physics.NewTween(hdr.Offset(), offset, d, m.flinger.scroller.FrameDuration())
	tw.OnStart = func() {
		m.hScrollEnabled = false
		m.vScrollEnabled = false
	}
	tw.OnUpdate = hdr.SetOffset
	tw.OnEnd = func() {
		m.onOffsetChangingStopped(offset)
	}
	m.offsetAnim = tw
	tw.Start()
}
