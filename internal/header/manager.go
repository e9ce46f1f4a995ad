// Package header lays out the item strip of a navigation toolbar whose
// visible extent is driven by an external collapsing header.
//
// The Manager virtualizes items around an anchor, scrolls them horizontally
// (tab strip) or vertically (list) depending on how far the header is
// expanded, runs flings and programmatic scrolls, and once the header stops
// moving snaps it to one of its rest states. It is single-threaded: the host
// calls the lifecycle hooks, the commands and the OnFrame/OnIdle ticks from
// one goroutine.
package header

import (
	"fmt"
	"log"
	"time"

	"github.com/nikbrunner/navtoolbar/internal/physics"
)

// noPosition marks a missing anchor.
const noPosition = -1

type lifecycle int

const (
	uninitialized lifecycle = iota
	ready
)

// Manager owns layout, scrolling and snapping state for one container.
type Manager struct {
	cfg    Config
	logger *log.Logger

	state lifecycle
	host  Host
	geo   Geometry

	curOrientation   Orientation
	orientationValid bool
	scrollState      ScrollState

	hScrollEnabled bool
	vScrollEnabled bool
	canDrag        bool

	viewCache  map[int]View
	flinger    flinger
	offsetAnim *physics.Tween
	watcher    watcher
	listeners  listeners
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger routes listener failures to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates an uninitialized Manager.
func New(cfg Config, opts ...Option) *Manager {
	cfg = cfg.normalized()
	m := &Manager{
		cfg:       cfg,
		logger:    log.Default(),
		canDrag:   true,
		viewCache: make(map[int]View),
	}
	m.flinger = flinger{m: m, scroller: physics.NewScroller(cfg.FramesPerSecond, cfg.FlingDeceleration)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) ready() bool {
	return m.state == ready
}

// OnAttachedLayout runs the first layout pass: it derives geometry from the
// container size, fills the initial window and arms the settle watcher.
// Later calls are no-ops.
func (m *Manager) OnAttachedLayout(host Host) error {
	if m.ready() {
		return nil
	}
	if !host.valid() {
		return ErrInvalidHost
	}

	geo, err := NewGeometry(m.cfg, host.Container.Width(), host.Container.Height())
	if err != nil {
		return fmt.Errorf("attach layout: %w", err)
	}

	m.host = host
	m.geo = geo
	m.state = ready

	m.fill()
	m.watcher.offsetChanged = true
	return nil
}

// OnDependentGeometryChanged reacts to a new header bottom edge.
func (m *Manager) OnDependentGeometryChanged(headerBottom int) {
	if !m.ready() {
		return
	}
	m.InvalidateOrientation()
	m.flinger.stop()
	m.notifyHeaderChanged(headerBottom)
	m.fill()
}

// OnExternalOffsetChanged records that the header offset moved.
func (m *Manager) OnExternalOffsetChanged(offset int) {
	m.watcher.offsetChanged = true
}

// OnFrame advances flings, programmatic scrolls and header offset animations
// by one frame.
func (m *Manager) OnFrame(now time.Time) {
	if !m.ready() {
		return
	}
	m.flinger.run()
	if m.offsetAnim != nil && m.offsetAnim.Running() {
		m.offsetAnim.Step()
	}
	m.resolveStopCheck(now)
}

// OnIdle is called when the host has nothing else to do.
func (m *Manager) OnIdle(now time.Time) {
	if !m.ready() {
		return
	}
	m.resolveStopCheck(now)
	if m.watcher.offsetChanged && !m.watcher.checking {
		m.checkIfOffsetChangingStopped(now)
	}
}

// Geometry returns the geometry computed at the first layout pass.
func (m *Manager) Geometry() (Geometry, error) {
	if !m.ready() {
		return Geometry{}, ErrNotReady
	}
	return m.geo, nil
}

// HorizontalPoint is the tab strip anchor.
func (m *Manager) HorizontalPoint() (Point, error) {
	if !m.ready() {
		return Point{}, ErrNotReady
	}
	return m.geo.HorizontalPoint, nil
}

// VerticalPoint is the list anchor.
func (m *Manager) VerticalPoint() (Point, error) {
	if !m.ready() {
		return Point{}, ErrNotReady
	}
	return m.geo.VerticalPoint, nil
}

func (m *Manager) ScrollState() ScrollState { return m.scrollState }

func (m *Manager) HorizontalScrollEnabled() bool { return m.hScrollEnabled }

func (m *Manager) VerticalScrollEnabled() bool { return m.vScrollEnabled }

// CanDrag reports whether the user may drag the header itself.
func (m *Manager) CanDrag() bool { return m.canDrag }

// IsOffsetAnimating reports whether a header offset animation is running.
func (m *Manager) IsOffsetAnimating() bool {
	return m.offsetAnim != nil && m.offsetAnim.Running()
}

// positionOf resolves a materialized view's adapter position. A view the
// pool cannot account for means the layout would place arbitrary items, so
// it panics.
func (m *Manager) positionOf(v View) int {
	pos, ok := v.Position()
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrUnresolvedHolder, v.Bounds()))
	}
	return pos
}
