package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/navtoolbar/internal/model"
	"golang.org/x/net/html"
)

// Options narrows what ParseHTMLTabs picks up.
type Options struct {
	// Folder keeps only links inside the folder with this name
	// (case-insensitive, any depth). Empty keeps every link.
	Folder string
	// ToolbarOnly keeps only links inside the browser's bookmarks toolbar
	// folder (the H3 flagged PERSONAL_TOOLBAR_FOLDER).
	ToolbarOnly bool
}

type folder struct {
	name    string
	toolbar bool
}

// ParseHTMLTabs parses Netscape bookmark HTML into tabs, in document order.
// Links inside the toolbar folder come back pinned, in toolbar order.
func ParseHTMLTabs(r io.Reader, opts Options) ([]model.Tab, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var tabs []model.Tab
	var stack []folder
	var pending *folder
	pinOrder := 0

	inToolbar := func() bool {
		for _, f := range stack {
			if f.toolbar {
				return true
			}
		}
		return false
	}
	inFolder := func(name string) bool {
		for _, f := range stack {
			if strings.EqualFold(f.name, name) {
				return true
			}
		}
		return false
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// The folder opens at the next DL.
				pending = &folder{
					name:    getTextContent(n),
					toolbar: strings.EqualFold(getAttr(n, "personal_toolbar_folder"), "true"),
				}
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}
				if opts.Folder != "" && !inFolder(opts.Folder) {
					return
				}
				toolbar := inToolbar()
				if opts.ToolbarOnly && !toolbar {
					return
				}

				tab := model.NewTab(model.NewTabParams{Title: getTextContent(n), URL: href})
				if tab.Title == "" {
					tab.Title = href
				}
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						tab.CreatedAt = time.Unix(ts, 0)
					}
				}
				if toolbar {
					tab.Pinned = true
					tab.PinOrder = pinOrder
					pinOrder++
				}
				tabs = append(tabs, tab)
				return

			case "dl":
				pushed := false
				if pending != nil {
					stack = append(stack, *pending)
					pending = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					stack = stack[:len(stack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return tabs, nil
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
