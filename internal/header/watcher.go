package header

import "time"

// watcher debounces header offset changes: an idle tick snapshots the offset
// and a check ScrollStopCheckDelay later compares against it.
type watcher struct {
	offsetChanged bool
	checking      bool
	startOffset   int
	deadline      time.Time
}

func (m *Manager) checkIfOffsetChangingStopped(now time.Time) {
	m.watcher.offsetChanged = false
	m.watcher.checking = true
	m.watcher.startOffset = m.host.Header.Offset()
	m.watcher.deadline = now.Add(ScrollStopCheckDelay)
}

// resolveStopCheck runs a due settle check. A moved header is left for a
// later idle tick to retry.
func (m *Manager) resolveStopCheck(now time.Time) {
	if !m.watcher.checking || now.Before(m.watcher.deadline) {
		return
	}
	m.watcher.checking = false

	current := m.host.Header.Offset()
	if current == m.watcher.startOffset {
		m.onOffsetChangingStopped(current)
	}
}
