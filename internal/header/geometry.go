package header

import "fmt"

// Geometry is derived once from the container size at the first layout pass.
type Geometry struct {
	ScreenWidth  int
	ScreenHeight int
	ScreenHalf   int

	HorizontalTabWidth  int
	HorizontalTabHeight int
	VerticalTabWidth    int
	VerticalTabHeight   int

	ItemsOnScreen int
	CenterIndex   int

	TopBorder          int
	WorkHeight         int
	TopSnapDistance    int
	BottomSnapDistance int

	HorizontalPoint Point
	VerticalPoint   Point
}

// NewGeometry computes item sizes, anchor points and snap zones for a
// container of width x height.
func NewGeometry(cfg Config, width, height int) (Geometry, error) {
	cfg = cfg.normalized()
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("%w: container is %dx%d", ErrInvalidGeometry, width, height)
	}

	half := float64(height) / 2
	g := Geometry{
		ScreenWidth:         width,
		ScreenHeight:        height,
		ScreenHalf:          int(half),
		HorizontalTabWidth:  width,
		HorizontalTabHeight: int(half),
		VerticalTabWidth:    cfg.VerticalItemWidth.resolve(width),
		VerticalTabHeight:   int(float64(height) * (1 / float64(cfg.ItemsOnScreen))),
		ItemsOnScreen:       cfg.ItemsOnScreen,
		CenterIndex:         cfg.ItemsOnScreen / 2,
		TopBorder:           cfg.TopBorder,
		WorkHeight:          height - cfg.TopBorder,
		TopSnapDistance:     int(float64(cfg.TopBorder) + (half-float64(cfg.TopBorder))/2),
		BottomSnapDistance:  int(half + half/2),
	}

	if !(g.TopBorder < g.TopSnapDistance && g.TopSnapDistance < g.BottomSnapDistance && g.BottomSnapDistance < g.ScreenHeight) {
		return Geometry{}, fmt.Errorf("%w: top border %d, top snap %d, bottom snap %d, height %d",
			ErrInvalidGeometry, g.TopBorder, g.TopSnapDistance, g.BottomSnapDistance, g.ScreenHeight)
	}

	g.HorizontalPoint = Point{X: 0, Y: g.ScreenHalf}

	vx := 0
	switch cfg.VerticalGravity {
	case GravityCenter:
		vx = width - g.VerticalTabWidth/2
	case GravityRight:
		vx = width - g.VerticalTabWidth
	}
	g.VerticalPoint = Point{X: vx, Y: (height / cfg.ItemsOnScreen) * g.CenterIndex}

	return g, nil
}

// HalfOffset is the header offset that leaves its bottom edge at ScreenHalf.
// It is not -ScreenHalf when the height is odd.
func (g Geometry) HalfOffset() int {
	return g.ScreenHalf - g.ScreenHeight
}
