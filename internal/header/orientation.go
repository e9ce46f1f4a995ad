package header

// Orientation is the active scrolling axis, derived from the header extent.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	Transitional
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "transitional"
	}
}

// OrientationForRatio maps a header-bottom to container-height ratio onto an
// orientation: up to one half is horizontal, one and above is vertical.
func OrientationForRatio(ratio float64) Orientation {
	switch {
	case ratio <= 0.5:
		return Horizontal
	case ratio < 1:
		return Transitional
	default:
		return Vertical
	}
}

// ScrollState is reported to scroll-state listeners.
type ScrollState int

const (
	Idle ScrollState = iota
	Dragging
	Fling
)

func (s ScrollState) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Fling:
		return "fling"
	default:
		return "idle"
	}
}

func (m *Manager) positionRatio() float64 {
	ratio := float64(m.host.Header.Bottom()) / float64(m.geo.ScreenHeight)
	if ratio < 0 {
		return 0
	}
	return ratio
}

// orientation returns the cached orientation, recomputing it when it was
// invalidated or when force is set.
func (m *Manager) orientation(force bool) Orientation {
	if !force && m.orientationValid {
		return m.curOrientation
	}
	m.curOrientation = OrientationForRatio(m.positionRatio())
	m.orientationValid = true
	return m.curOrientation
}

// Orientation is the current orientation. Before initialization it is Horizontal.
func (m *Manager) Orientation() Orientation {
	if !m.ready() {
		return Horizontal
	}
	return m.orientation(false)
}

// InvalidateOrientation drops the cached orientation so the next query recomputes it.
func (m *Manager) InvalidateOrientation() {
	m.orientationValid = false
}
