// Package physics holds the frame-stepped motion primitives behind flings,
// programmatic scrolls and header offset animations.
//
// Nothing here reads a wall clock: every call to ComputeScrollOffset or Step
// advances the simulation by exactly one frame, so the host decides the pace.
package physics

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// DefaultFPS is the frame rate used when a caller passes a non-positive one.
const DefaultFPS = 60

// DefaultDeceleration is the fling friction in pixels per second squared.
const DefaultDeceleration = 2000.0

type scrollMode int

const (
	modeNone scrollMode = iota
	modeFling
	modeScroll
)

// Scroller tracks a two-axis fling or timed scroll.
//
// Flings decay under constant deceleration opposing the launch velocity and
// stop when the velocity reverses or a bound is hit. Timed scrolls cover a
// fixed distance over a fixed duration with a viscous-fluid curve.
type Scroller struct {
	frame        time.Duration
	dt           float64
	deceleration float64

	mode     scrollMode
	finished bool

	startX, startY int
	currX, currY   int
	finalX, finalY int

	// fling
	projectile             *harmonica.Projectile
	launch                 harmonica.Vector
	minX, maxX, minY, maxY int

	// timed scroll
	dx, dy   int
	duration time.Duration
	elapsed  time.Duration
}

// NewScroller creates a finished Scroller stepping at fps frames per second.
func NewScroller(fps int, deceleration float64) *Scroller {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if deceleration <= 0 {
		deceleration = DefaultDeceleration
	}
	return &Scroller{
		frame:        time.Second / time.Duration(fps),
		dt:           harmonica.FPS(fps),
		deceleration: deceleration,
		finished:     true,
	}
}

// FrameDuration is the simulated time covered by one step.
func (s *Scroller) FrameDuration() time.Duration {
	return s.frame
}

// Fling starts a decelerating motion from (startX, startY). Velocities are in
// pixels per second; positions stay within [minX, maxX] x [minY, maxY].
func (s *Scroller) Fling(startX, startY int, velocityX, velocityY float64, minX, maxX, minY, maxY int) {
	s.mode = modeFling
	// Content shorter than the viewport has no room to travel.
	if minX > maxX {
		minX = maxX
	}
	if minY > maxY {
		minY = maxY
	}
	s.minX, s.maxX, s.minY, s.maxY = minX, maxX, minY, maxY
	s.startX, s.startY = startX, startY
	s.currX, s.currY = startX, startY
	s.finalX, s.finalY = startX, startY

	s.launch = harmonica.Vector{X: velocityX, Y: velocityY}
	speed := math.Hypot(velocityX, velocityY)
	if speed == 0 {
		s.projectile = nil
		s.finished = true
		return
	}

	acc := harmonica.Vector{
		X: -velocityX / speed * s.deceleration,
		Y: -velocityY / speed * s.deceleration,
	}
	start := harmonica.Point{X: float64(startX), Y: float64(startY)}
	s.projectile = harmonica.NewProjectile(s.dt, start, s.launch, acc)
	s.finished = false
}

// StartScroll moves by (dx, dy) from (startX, startY) over duration.
func (s *Scroller) StartScroll(startX, startY, dx, dy int, duration time.Duration) {
	s.mode = modeScroll
	s.projectile = nil
	s.startX, s.startY = startX, startY
	s.currX, s.currY = startX, startY
	s.dx, s.dy = dx, dy
	s.finalX, s.finalY = startX+dx, startY+dy
	s.duration = duration
	s.elapsed = 0
	s.finished = false
}

// ComputeScrollOffset advances one frame. It returns false once the motion
// has already finished; the step that reaches the end still returns true.
func (s *Scroller) ComputeScrollOffset() bool {
	if s.finished {
		return false
	}

	switch s.mode {
	case modeFling:
		s.stepFling()
	case modeScroll:
		s.stepScroll()
	default:
		s.finished = true
		return false
	}
	return true
}

func (s *Scroller) stepFling() {
	p := s.projectile.Update()
	v := s.projectile.Velocity()

	x := clamp(int(math.Round(p.X)), s.minX, s.maxX)
	y := clamp(int(math.Round(p.Y)), s.minY, s.maxY)
	s.currX, s.currY = x, y

	reversed := v.X*s.launch.X+v.Y*s.launch.Y <= 0
	hitX := s.launch.X != 0 && (x == s.minX || x == s.maxX)
	hitY := s.launch.Y != 0 && (y == s.minY || y == s.maxY)
	if reversed || hitX || hitY {
		s.finalX, s.finalY = x, y
		s.finished = true
	}
}

func (s *Scroller) stepScroll() {
	s.elapsed += s.frame
	if s.elapsed >= s.duration {
		s.currX, s.currY = s.finalX, s.finalY
		s.finished = true
		return
	}

	t := viscousFluid(float64(s.elapsed) / float64(s.duration))
	s.currX = s.startX + int(math.Round(t*float64(s.dx)))
	s.currY = s.startY + int(math.Round(t*float64(s.dy)))
}

// CurrX is the current horizontal position.
func (s *Scroller) CurrX() int { return s.currX }

// CurrY is the current vertical position.
func (s *Scroller) CurrY() int { return s.currY }

// IsFinished reports whether the motion is over.
func (s *Scroller) IsFinished() bool { return s.finished }

// ForceFinished ends or resumes the current motion without moving.
func (s *Scroller) ForceFinished(finished bool) {
	s.finished = finished
}

// AbortAnimation stops the motion where it currently is.
func (s *Scroller) AbortAnimation() {
	s.finalX, s.finalY = s.currX, s.currY
	s.finished = true
}

const viscousFluidScale = 8.0

var (
	viscousFluidNormalize = 1.0 / rawViscousFluid(1.0)
	viscousFluidOffset    = 1.0 - viscousFluidNormalize*rawViscousFluid(1.0)
)

func rawViscousFluid(x float64) float64 {
	x *= viscousFluidScale
	if x < 1.0 {
		return x - (1.0 - math.Exp(-x))
	}
	start := 0.36787944117 // 1/e
	x = 1.0 - math.Exp(1.0-x)
	return start + x*(1.0-start)
}

// viscousFluid maps linear progress in [0, 1] onto a fast-start, slow-end curve.
func viscousFluid(t float64) float64 {
	v := viscousFluidNormalize * rawViscousFluid(t)
	if v > 0 {
		return v + viscousFluidOffset
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
