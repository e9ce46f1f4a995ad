package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/tui/layout"
)

const appName = "navtoolbar"

// renderView draws the canvas, the status line and the hint line.
func (a App) renderView() string {
	if a.tb == nil {
		msg := "toolbar unavailable"
		if a.message != "" {
			msg = a.message
		}
		return a.styles.Empty.Render(msg)
	}

	cv := a.paint()
	lines := []string{
		cv.render(a.styles),
		a.renderStatusLine(),
		a.renderHints(hintsFor(a.tb, a.searching), a.tb.strip.width),
	}
	return a.styles.Canvas.Render(strings.Join(lines, "\n"))
}

// paint lays the header band and every attached card onto a fresh canvas.
func (a App) paint() *canvas {
	cv := newCanvas(a.tb.strip.width, a.tb.strip.height)
	a.paintHeader(cv)

	anchorPos, hasAnchor := a.tb.m.AnchorPosition()
	for _, card := range a.tb.strip.Cards() {
		a.paintCard(cv, card, hasAnchor && card.pos == anchorPos)
	}

	if a.tabs.ItemCount() == 0 {
		msg := "no tabs yet, try: " + appName + " import <bookmarks.html>"
		msg, _ = layout.TruncateText(msg, cv.width-2, a.layout.Text)
		cv.write(1, cv.height/2, cv.width, msg, inkText)
	}
	return cv
}

func (a App) paintHeader(cv *canvas) {
	bottom := min(a.tb.bar.Bottom(), cv.height)
	cv.fill(layout.Span{X0: 0, Y0: 0, X1: cv.width, Y1: bottom}, ' ', inkHeader)

	title := appName
	if _, pos, ok := a.tb.anchor(); ok {
		if tab, ok := a.tabs.at(pos); ok {
			title += "  " + tab.Label()
		}
	}
	title, _ = layout.TruncateText(title, cv.width-2, a.layout.Text)
	cv.write(1, 0, cv.width-1, title, inkTitle)
}

func (a App) paintCard(cv *canvas, card *Card, anchor bool) {
	tab, ok := a.tabs.at(card.pos)
	if !ok {
		return
	}
	r := card.Display()

	k, border := inkCard, lipgloss.RoundedBorder()
	switch {
	case card.morphing:
		k = inkMorphing
	case anchor:
		k, border = inkAnchor, lipgloss.ThickBorder()
	}

	if r.Width < 3 || r.Height < 3 {
		cv.fill(layout.Clip(r.Left, r.Top, r.Width, r.Height, cv.width, cv.height), '▒', k)
		return
	}
	cv.box(r, border, k)

	x, y, limit := r.Left+1, r.Top+1, r.Right()-1
	inner := r.Width - 2
	cfg := a.layout.Card

	prefix, titleInk := "", inkText
	if tab.Pinned {
		prefix, titleInk = cfg.PinnedPrefix, inkPinned
	}
	title, _ := layout.TruncateWithPrefixSuffix(tab.Label(), inner, prefix, "", a.layout.Text)
	cv.write(x, y, limit, title, titleInk)

	if r.Height >= cfg.URLMinHeight && tab.Title != "" {
		url, _ := layout.TruncateText(tab.URL, inner, a.layout.Text)
		cv.write(x, y+1, limit, url, inkURL)
	}

	if r.Height >= cfg.IndexMinHeight {
		info := fmt.Sprintf("#%d", card.pos+1)
		if tab.VisitedAt != nil {
			info += " · visited " + formatTimeAgo(*tab.VisitedAt)
		}
		info, _ = layout.TruncateText(info, inner, a.layout.Text)
		cv.write(x, y+2, limit, info, inkURL)
	}
}

// renderStatusLine shows the jump input while searching, otherwise the
// toolbar state and the last message.
func (a App) renderStatusLine() string {
	if a.searching {
		return a.search.View()
	}

	width := a.tb.strip.width
	status := fmt.Sprintf("%s  %s", a.tb.m.Orientation(), a.tb.m.ScrollState())
	if pos, ok := a.tb.m.AnchorPosition(); ok {
		status += fmt.Sprintf("  tab %d/%d", pos+1, a.tabs.ItemCount())
	} else if a.tb.m.Orientation() == header.Transitional {
		status += fmt.Sprintf("  %d%%", int(morphProgress(a.tb.bar.Bottom(), a.tb.bar.height)*100))
	}
	status += fmt.Sprintf("  header %d/%d", a.tb.bar.Bottom(), a.tb.bar.height)

	status, _ = layout.TruncateText(status, width, a.layout.Text)
	if a.message == "" {
		return a.styles.Status.Render(layout.PadRight(status, width))
	}

	line := a.styles.Status.Render(status)
	room := width - layout.VisibleWidth(status) - 2
	if msg, _ := layout.TruncateText(a.message, room, a.layout.Text); msg != "" {
		line += "  " + a.styles.Message.Render(msg)
	}
	return line
}

// formatTimeAgo formats a past time as a short relative duration.
func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	if d < time.Minute {
		return "just now"
	} else if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}
