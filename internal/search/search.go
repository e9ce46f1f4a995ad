package search

import (
	"github.com/nikbrunner/navtoolbar/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Tab *model.Tab
	// Position is the tab's index in the searched slice, which is its
	// adapter position in the strip.
	Position       int
	MatchedIndexes []int
	Score          int
}

// tabLabels implements fuzzy.Source over tab labels.
type tabLabels []model.Tab

func (tl tabLabels) String(i int) string {
	return tl[i].Label()
}

func (tl tabLabels) Len() int {
	return len(tl)
}

// FuzzySearchTabs searches tabs by label using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchTabs(tabs []model.Tab, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, tabLabels(tabs))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Tab:            &tabs[m.Index],
			Position:       m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
