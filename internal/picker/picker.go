package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/navtoolbar/internal/search"
)

var (
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)
)

// linesPerResult is the label line plus the URL line.
const linesPerResult = 2

// chrome is the title, its blank line, the blank line and the footer.
const chrome = 4

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Pick   key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Prev:   key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Pick:   key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// Picker chooses the tab to open the toolbar at when a query matches several.
type Picker struct {
	results []search.SearchResult
	query   string
	cursor  int
	// top is the first result in the visible window.
	top       int
	selected  bool
	cancelled bool
	height    int
}

// New creates a Picker over results, best match first.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
		p.scrollIntoView()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, keys.Pick):
			p.selected = true
			return p, tea.Quit
		case key.Matches(msg, keys.Next):
			p.move(1)
		case key.Matches(msg, keys.Prev):
			p.move(-1)
		}
	}
	return p, nil
}

func (p *Picker) move(delta int) {
	p.cursor = max(0, min(p.cursor+delta, len(p.results)-1))
	p.scrollIntoView()
}

// visible is how many results fit the terminal, at least one.
func (p Picker) visible() int {
	return max(1, (p.height-chrome)/linesPerResult)
}

func (p *Picker) scrollIntoView() {
	n := p.visible()
	if p.cursor < p.top {
		p.top = p.cursor
	}
	if p.cursor >= p.top+n {
		p.top = p.cursor - n + 1
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Open toolbar at: %s (%d matches)", p.query, len(p.results))))
	b.WriteString("\n\n")

	end := min(len(p.results), p.top+p.visible())
	for i := p.top; i < end; i++ {
		r := p.results[i]
		marker, style := "  ", labelStyle
		if i == p.cursor {
			marker, style = cursorStyle.Render("> "), cursorStyle
		}

		fmt.Fprintf(&b, "%s%s %s\n", marker, highlight(r.Tab.Label(), r.MatchedIndexes, style), dimStyle.Render(fmt.Sprintf("#%d", r.Position+1)))
		fmt.Fprintf(&b, "   %s\n", dimStyle.Italic(true).Render(r.Tab.URL))
	}

	b.WriteString("\n")
	footer := "j/k: move  enter: open  q/esc: cancel"
	if hidden := len(p.results) - (end - p.top); hidden > 0 {
		footer = fmt.Sprintf("%d more  %s", hidden, footer)
	}
	b.WriteString(dimStyle.Render(footer))
	return b.String()
}

// highlight renders the matched runes of s with matchStyle. matched holds
// byte offsets into s.
func highlight(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Selected returns the chosen result, or nil if cancelled.
func (p Picker) Selected() *search.SearchResult {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return nil
	}
	return &p.results[p.cursor]
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
