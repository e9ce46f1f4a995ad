package physics

import (
	"math"
	"time"
)

// Tween animates an integer from one value to another over a fixed duration,
// advancing one frame per Step. Values follow an accelerate-decelerate curve.
type Tween struct {
	from, to int
	duration time.Duration
	frame    time.Duration
	elapsed  time.Duration
	value    int
	running  bool

	// OnStart runs once when Start is called.
	OnStart func()
	// OnUpdate receives every new value, including the final one.
	OnUpdate func(value int)
	// OnEnd runs once when the tween stops, either after the final value
	// has been delivered or when a running tween is cancelled.
	OnEnd func()
}

// NewTween creates a stopped tween. A non-positive frame falls back to one
// frame at DefaultFPS.
func NewTween(from, to int, duration, frame time.Duration) *Tween {
	if frame <= 0 {
		frame = time.Second / DefaultFPS
	}
	return &Tween{
		from:     from,
		to:       to,
		duration: duration,
		frame:    frame,
		value:    from,
	}
}

// Start begins the animation at its first value.
func (t *Tween) Start() {
	t.elapsed = 0
	t.value = t.from
	t.running = true
	if t.OnStart != nil {
		t.OnStart()
	}
}

// Step advances one frame and reports whether the tween is still running.
func (t *Tween) Step() bool {
	if !t.running {
		return false
	}

	t.elapsed += t.frame
	done := t.elapsed >= t.duration
	if done {
		t.value = t.to
	} else {
		p := float64(t.elapsed) / float64(t.duration)
		eased := math.Cos((p+1)*math.Pi)/2 + 0.5
		t.value = t.from + int(math.Round(eased*float64(t.to-t.from)))
	}

	if t.OnUpdate != nil {
		t.OnUpdate(t.value)
	}

	if done {
		t.running = false
		if t.OnEnd != nil {
			t.OnEnd()
		}
	}
	return t.running
}

// Cancel stops the tween where it is. A running tween still gets OnEnd.
func (t *Tween) Cancel() {
	if !t.running {
		return
	}
	t.running = false
	if t.OnEnd != nil {
		t.OnEnd()
	}
}

// Running reports whether the tween has started and not yet ended.
func (t *Tween) Running() bool {
	return t.running
}

// Value is the most recently produced value.
func (t *Tween) Value() int {
	return t.value
}

// Target is the value the tween ends on.
func (t *Tween) Target() int {
	return t.to
}
