package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Canvas CanvasConfig
	Card   CardConfig
	Search SearchConfig
	Text   TextConfig
}

// CanvasConfig holds the drawable area configuration.
type CanvasConfig struct {
	// StatusLines is subtracted from terminal height for the canvas.
	// Accounts for: status line (1) + hint line (1) = 2
	StatusLines int

	// MinWidth is the minimum canvas width in cells.
	MinWidth int

	// MinHeight is the minimum canvas height in cells. Anything smaller
	// leaves no room between the top border and the snap zones.
	MinHeight int
}

// CardConfig holds tab card rendering configuration.
type CardConfig struct {
	// PinnedPrefix marks pinned tabs in the card title.
	PinnedPrefix string

	// URLMinHeight is the card height needed to show the URL line.
	// Accounts for: borders (2) + title (1) + URL (1) = 4
	URLMinHeight int

	// IndexMinHeight is the card height needed to show the position line.
	IndexMinHeight int
}

// SearchConfig holds the jump input configuration.
type SearchConfig struct {
	CharLimit int
	Width     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Canvas: CanvasConfig{
			StatusLines: 2, // status line (1) + hint line (1)
			MinWidth:    20,
			MinHeight:   8,
		},
		Card: CardConfig{
			PinnedPrefix:   "* ",
			URLMinHeight:   4,
			IndexMinHeight: 6,
		},
		Search: SearchConfig{
			CharLimit: 100,
			Width:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
