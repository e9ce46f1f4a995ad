package layout

// Span is a half-open cell range [X0, X1) x [Y0, Y1).
type Span struct {
	X0, Y0, X1, Y1 int
}

// Empty reports whether the span covers no cells.
func (s Span) Empty() bool {
	return s.X0 >= s.X1 || s.Y0 >= s.Y1
}

// CalculateCanvasSize computes the drawable area for the toolbar.
// Returns at least MinWidth x MinHeight.
func CalculateCanvasSize(terminalWidth, terminalHeight int, cfg CanvasConfig) (width, height int) {
	width = terminalWidth
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}

	height = terminalHeight - cfg.StatusLines
	if height < cfg.MinHeight {
		height = cfg.MinHeight
	}
	return width, height
}

// Clip intersects the rectangle at (left, top) of size width x height with a
// canvasWidth x canvasHeight canvas.
func Clip(left, top, width, height, canvasWidth, canvasHeight int) Span {
	s := Span{X0: left, Y0: top, X1: left + width, Y1: top + height}
	if s.X0 < 0 {
		s.X0 = 0
	}
	if s.Y0 < 0 {
		s.Y0 = 0
	}
	if s.X1 > canvasWidth {
		s.X1 = canvasWidth
	}
	if s.Y1 > canvasHeight {
		s.Y1 = canvasHeight
	}
	return s
}

// Lerp moves from a toward b by t, rounding to the nearest cell.
func Lerp(a, b int, t float64) int {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	d := float64(b-a) * t
	if d < 0 {
		return a + int(d-0.5)
	}
	return a + int(d+0.5)
}
