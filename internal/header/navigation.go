package header

import (
	"time"
)

// ScrollToPosition jumps so that pos becomes the anchor item. Out of range
// positions, an empty container, an unchanged anchor and a header with no
// scrollable axis are silent no-ops.
func (m *Manager) ScrollToPosition(pos int) error {
	if !m.ready() {
		return ErrNotReady
	}
	c := m.host.Container
	if c.ChildCount() == 0 {
		return nil
	}
	if pos < 0 || pos > m.host.Adapter.ItemCount() {
		return nil
	}

	switch {
	case m.hScrollEnabled:
		anchorPos := m.horizontalAnchorPos()
		if anchorPos == noPosition || anchorPos == pos {
			return nil
		}
		m.OnHorizontalDrag(float64((pos - anchorPos) * c.ChildAt(0).Bounds().Width))
	case m.vScrollEnabled:
		anchorPos := m.verticalAnchorPos()
		if anchorPos == noPosition || anchorPos == pos {
			return nil
		}
		m.OnVerticalDrag(float64((pos - anchorPos) * c.ChildAt(0).Bounds().Height))
	default:
		return nil
	}

	m.notifyItemChanged(pos)
	return nil
}

// SmoothScrollToPosition animates pos onto the active anchor point. It is
// rejected while a header offset animation runs.
func (m *Manager) SmoothScrollToPosition(pos int) error {
	if !m.ready() {
		return ErrNotReady
	}
	if m.IsOffsetAnimating() {
		return nil
	}
	if m.host.Container.ChildCount() == 0 {
		return nil
	}
	if pos < 0 || pos > m.host.Adapter.ItemCount() {
		return nil
	}
	if !m.hScrollEnabled && !m.vScrollEnabled {
		return nil
	}

	m.notifyItemChanged(pos)

	if m.hScrollEnabled {
		anchor := m.horizontalAnchorView()
		anchorPos := viewPosition(anchor)
		if anchorPos == noPosition {
			return nil
		}
		w := anchor.Bounds().Width
		offset := (pos-anchorPos)*w + (anchor.Bounds().Left - m.geo.HorizontalPoint.X)
		if offset == 0 {
			return nil
		}
		m.flinger.startScroll(m.startX(anchor), 0, -offset, 0, scrollDuration(offset, w))
		return nil
	}

	anchor := m.verticalAnchorView()
	anchorPos := viewPosition(anchor)
	if anchorPos == noPosition {
		return nil
	}
	h := anchor.Bounds().Height
	offset := (pos-anchorPos)*h + (anchor.Bounds().Top - m.geo.VerticalPoint.Y)
	if offset == 0 {
		return nil
	}
	m.flinger.startScroll(0, m.startY(anchor), 0, -offset, scrollDuration(offset, h))
	return nil
}

// scrollDuration grows 100ms per item travelled, capped at MaxScrollDuration.
func scrollDuration(offset, itemSize int) time.Duration {
	if itemSize <= 0 {
		return MaxScrollDuration
	}
	delta := float64(abs(offset)) / float64(itemSize)
	d := time.Duration((delta+1)*100) * time.Millisecond
	return min(d, MaxScrollDuration)
}

// OnItemClick handles a tap on v: in the tab strip it scrolls v into the
// anchor slot, in the list it collapses the header to half screen.
func (m *Manager) OnItemClick(v View) bool {
	if !m.ready() || v == nil {
		return false
	}

	switch {
	case m.hScrollEnabled:
		pos := m.positionOf(v)
		m.SmoothScrollToPosition(pos)
		m.notifyItemClicked(v)
		return true
	case m.vScrollEnabled:
		m.smoothOffset(m.geo.HalfOffset(), m.cfg.CollapsingDuration)
		m.notifyItemClicked(v)
		return true
	default:
		return false
	}
}
