package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	Canvas   lipgloss.Style
	Header   lipgloss.Style
	Title    lipgloss.Style
	Card     lipgloss.Style
	Anchor   lipgloss.Style
	Morphing lipgloss.Style
	Text     lipgloss.Style
	URL      lipgloss.Style
	Pinned   lipgloss.Style
	Status   lipgloss.Style
	Message  lipgloss.Style
	Empty    lipgloss.Style
	HintKey  lipgloss.Style // Key portion of hints (e.g., "h/l", "enter")
	HintDesc lipgloss.Style // Description portion of hints (e.g., "scroll", "open")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	band := lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#262626"}    // header background

	return Styles{
		Canvas: lipgloss.NewStyle(),

		Header: lipgloss.NewStyle().
			Background(band),

		Title: lipgloss.NewStyle().
			Bold(true).
			Background(band).
			Foreground(accent),

		Card: lipgloss.NewStyle().
			Foreground(border),

		Anchor: lipgloss.NewStyle().
			Foreground(accent),

		Morphing: lipgloss.NewStyle().
			Foreground(subtle),

		Text: lipgloss.NewStyle().
			Foreground(primary),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Pinned: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Status: lipgloss.NewStyle().
			Foreground(primary),

		Message: lipgloss.NewStyle().
			Foreground(accent),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
