package tui

import (
	"strings"

	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/tui/layout"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "h/l", "enter")
	Desc string // Short description (e.g., "scroll", "open")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Scrolling hints (h/l, j/k, etc.)
	Action []Hint // Tab actions (enter, y, p)
	System []Hint // System hints (q, esc)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "h/l:scroll enter:open".
// Hints that would run past width are left off.
func (a App) renderHints(hints HintSet, width int) string {
	parts := make([]string, 0, len(hints.All()))
	used := 0
	for _, h := range hints.All() {
		w := layout.VisibleWidth(h.Key) + 1 + layout.VisibleWidth(h.Desc)
		if len(parts) > 0 {
			w++
		}
		if used+w > width {
			break
		}
		used += w
		parts = append(parts, a.renderHint(h))
	}
	return strings.Join(parts, " ")
}

// hintsFor lists the keys that do something in the current toolbar state.
func hintsFor(tb *toolbar, searching bool) HintSet {
	if searching {
		return HintSet{
			Action: []Hint{{"enter", "jump"}},
			System: []Hint{{"esc", "cancel"}},
		}
	}

	var hs HintSet
	if tb != nil {
		if tb.m.HorizontalScrollEnabled() {
			hs.Nav = append(hs.Nav, Hint{"h/l", "scroll"}, Hint{"H/L", "fling"})
		}
		if tb.m.VerticalScrollEnabled() {
			hs.Nav = append(hs.Nav, Hint{"j/k", "scroll"}, Hint{"J/K", "fling"})
		}
		if tb.m.CanDrag() && tb.m.Orientation() != header.Transitional {
			hs.Nav = append(hs.Nav, Hint{"u/d", "header"})
		}
		hs.Nav = append(hs.Nav, Hint{"e/c", "expand/collapse"})
	}

	hs.Action = []Hint{
		{"enter", "open"},
		{"/", "jump"},
		{"y", "yank"},
		{"p", "pin"},
	}
	hs.System = []Hint{{"q", "quit"}}
	return hs
}
