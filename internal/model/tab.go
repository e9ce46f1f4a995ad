package model

import (
	"time"

	"github.com/google/uuid"
)

// Tab is one item of the navigation strip: a titled link.
type Tab struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Pinned    bool       `json:"pinned"`
	PinOrder  int        `json:"pinOrder"`
	CreatedAt time.Time  `json:"createdAt"`
	VisitedAt *time.Time `json:"visitedAt"` // nil = never opened
}

// NewTabParams holds parameters for creating a new Tab.
type NewTabParams struct {
	Title string
	URL   string
}

// NewTab creates a Tab with a generated ID and creation time.
func NewTab(params NewTabParams) Tab {
	return Tab{
		ID:        uuid.New().String(),
		Title:     params.Title,
		URL:       params.URL,
		CreatedAt: time.Now(),
	}
}

// Label is the text shown on the tab card, falling back to the URL.
func (t Tab) Label() string {
	if t.Title != "" {
		return t.Title
	}
	return t.URL
}
