package header

// Rect is an item rectangle in container coordinates.
type Rect struct {
	Left, Top, Width, Height int
}

// Right is the trailing horizontal edge.
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom is the trailing vertical edge.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Point is a fixed reference coordinate in container space.
type Point struct {
	X, Y int
}

// View is a materialized item owned by the host.
type View interface {
	// Position returns the adapter position the view is bound to. ok is false
	// when the host cannot resolve the view's holder.
	Position() (pos int, ok bool)
	Bounds() Rect
	// Layout places the view at exactly r; views never measure themselves.
	Layout(r Rect)
	OffsetBy(dx, dy int)
}

// Container holds the attached views in attachment order.
type Container interface {
	Width() int
	Height() int
	ChildCount() int
	ChildAt(i int) View
	AttachView(v View)
	DetachView(v View)
	AddView(v View)
}

// ViewPool hands out and takes back views.
type ViewPool interface {
	ViewForPosition(pos int) View
	Recycle(v View)
}

// Adapter reports how many items exist.
type Adapter interface {
	ItemCount() int
}

// Header is the collapsing header whose extent drives the orientation.
type Header interface {
	// Bottom is the current lower edge in pixels.
	Bottom() int
	// Offset is the top-and-bottom displacement; 0 is fully expanded.
	Offset() int
	SetOffset(offset int)
	SetExpanded(expanded, animated bool)
}

// Host bundles everything the manager talks to.
type Host struct {
	Container Container
	Pool      ViewPool
	Adapter   Adapter
	Header    Header
}

func (h Host) valid() bool {
	return h.Container != nil && h.Pool != nil && h.Adapter != nil && h.Header != nil
}
