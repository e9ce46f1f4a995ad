package model

import (
	"slices"
	"time"
)

// Store holds the tab catalogue.
type Store struct {
	Tabs []Tab `json:"tabs"`
}

// NewStore creates an empty Store with an initialized slice.
func NewStore() *Store {
	return &Store{Tabs: []Tab{}}
}

// GetTabByID finds a tab by ID, returns nil if not found.
func (s *Store) GetTabByID(id string) *Tab {
	for i := range s.Tabs {
		if s.Tabs[i].ID == id {
			return &s.Tabs[i]
		}
	}
	return nil
}

// HasTabURL reports whether a tab with url already exists.
func (s *Store) HasTabURL(url string) bool {
	return slices.ContainsFunc(s.Tabs, func(t Tab) bool { return t.URL == url })
}

// ImportMerge appends tabs whose URL is not in the store yet, also
// deduplicating within tabs. It returns how many were added and skipped.
func (s *Store) ImportMerge(tabs []Tab) (added, skipped int) {
	for _, t := range tabs {
		if t.URL == "" || s.HasTabURL(t.URL) {
			skipped++
			continue
		}
		s.Tabs = append(s.Tabs, t)
		added++
	}
	return added, skipped
}

// Ordered returns the tabs in strip order: pinned tabs by pin order, then
// the rest in insertion order.
func (s *Store) Ordered() []Tab {
	var pinned, rest []Tab
	for _, t := range s.Tabs {
		if t.Pinned {
			pinned = append(pinned, t)
		} else {
			rest = append(rest, t)
		}
	}
	slices.SortStableFunc(pinned, func(a, b Tab) int { return a.PinOrder - b.PinOrder })
	return append(pinned, rest...)
}

// TogglePin pins or unpins the tab with id. A newly pinned tab goes after
// the existing pinned ones. It returns false if the tab does not exist.
func (s *Store) TogglePin(id string) bool {
	t := s.GetTabByID(id)
	if t == nil {
		return false
	}

	if t.Pinned {
		t.Pinned = false
		t.PinOrder = 0
		return true
	}

	next := 0
	for _, other := range s.Tabs {
		if other.Pinned && other.PinOrder >= next {
			next = other.PinOrder + 1
		}
	}
	t.Pinned = true
	t.PinOrder = next
	return true
}

// MarkVisited records that the tab with id was opened at at.
func (s *Store) MarkVisited(id string, at time.Time) bool {
	t := s.GetTabByID(id)
	if t == nil {
		return false
	}
	t.VisitedAt = &at
	return true
}

// RemoveTabs deletes the tabs with the given ids and returns how many went.
func (s *Store) RemoveTabs(ids ...string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	before := len(s.Tabs)
	s.Tabs = slices.DeleteFunc(s.Tabs, func(t Tab) bool { return drop[t.ID] })
	return before - len(s.Tabs)
}

// DefaultTabs seeds an empty catalogue.
func DefaultTabs() []Tab {
	seed := []NewTabParams{
		{Title: "Home", URL: "https://example.com/"},
		{Title: "Inbox", URL: "https://example.com/inbox"},
		{Title: "Calendar", URL: "https://example.com/calendar"},
		{Title: "Docs", URL: "https://example.com/docs"},
		{Title: "Photos", URL: "https://example.com/photos"},
		{Title: "Music", URL: "https://example.com/music"},
		{Title: "News", URL: "https://example.com/news"},
		{Title: "Settings", URL: "https://example.com/settings"},
	}

	tabs := make([]Tab, 0, len(seed))
	for _, p := range seed {
		tabs = append(tabs, NewTab(p))
	}
	return tabs
}
