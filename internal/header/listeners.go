package header

type (
	// HeaderChangeFunc observes a new header bottom edge.
	HeaderChangeFunc func(headerBottom int)
	// HeaderUpdateFunc observes a completed fill pass.
	HeaderUpdateFunc func(headerBottom int)
	// ItemClickFunc observes a handled item click.
	ItemClickFunc func(v View)
	// ItemChangeFunc observes a new target item position.
	ItemChangeFunc func(pos int)
	// ScrollStateFunc observes scroll state transitions.
	ScrollStateFunc func(state ScrollState)
)

type listeners struct {
	headerChange []HeaderChangeFunc
	headerUpdate []HeaderUpdateFunc
	itemClick    []ItemClickFunc
	itemChange   []ItemChangeFunc
	scrollState  []ScrollStateFunc
}

func (m *Manager) AddHeaderChangeListener(fn HeaderChangeFunc) {
	m.listeners.headerChange = append(m.listeners.headerChange, fn)
}

func (m *Manager) AddHeaderUpdateListener(fn HeaderUpdateFunc) {
	m.listeners.headerUpdate = append(m.listeners.headerUpdate, fn)
}

func (m *Manager) AddItemClickListener(fn ItemClickFunc) {
	m.listeners.itemClick = append(m.listeners.itemClick, fn)
}

func (m *Manager) AddItemChangeListener(fn ItemChangeFunc) {
	m.listeners.itemChange = append(m.listeners.itemChange, fn)
}

func (m *Manager) AddScrollStateListener(fn ScrollStateFunc) {
	m.listeners.scrollState = append(m.listeners.scrollState, fn)
}

// safely runs one listener, logging a panic instead of letting it unwind
// through a fill or an animation step.
func (m *Manager) safely(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Printf("header: %s listener panic: %v", event, r)
		}
	}()
	fn()
}

func (m *Manager) notifyHeaderChanged(bottom int) {
	for _, fn := range m.listeners.headerChange {
		m.safely("header change", func() { fn(bottom) })
	}
}

func (m *Manager) notifyHeaderUpdated(bottom int) {
	for _, fn := range m.listeners.headerUpdate {
		m.safely("header update", func() { fn(bottom) })
	}
}

func (m *Manager) notifyItemClicked(v View) {
	for _, fn := range m.listeners.itemClick {
		m.safely("item click", func() { fn(v) })
	}
}

func (m *Manager) notifyItemChanged(pos int) {
	for _, fn := range m.listeners.itemChange {
		m.safely("item change", func() { fn(pos) })
	}
}

func (m *Manager) setScrollState(state ScrollState) {
	if m.scrollState == state {
		return
	}
	for _, fn := range m.listeners.scrollState {
		m.safely("scroll state", func() { fn(state) })
	}
	m.scrollState = state
}
