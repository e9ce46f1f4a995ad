package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/navtoolbar/internal/model"
)

// ToolbarFolderName names the folder pinned tabs are exported into.
const ToolbarFolderName = "Navigation Toolbar"

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/tabs-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tabs-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the tabs to Netscape bookmark HTML format. Pinned tabs
// go into a bookmarks toolbar folder so browsers put them back on the bar.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	var pinned, rest []model.Tab
	for _, t := range store.Ordered() {
		if t.Pinned {
			pinned = append(pinned, t)
		} else {
			rest = append(rest, t)
		}
	}

	if len(pinned) > 0 {
		fmt.Fprintf(&b, "    <DT><H3 PERSONAL_TOOLBAR_FOLDER=\"true\">%s</H3>\n", ToolbarFolderName)
		b.WriteString("    <DL><p>\n")
		writeTabs(&b, pinned, 2)
		b.WriteString("    </DL><p>\n")
	}
	writeTabs(&b, rest, 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeTabs(b *strings.Builder, tabs []model.Tab, indent int) {
	prefix := strings.Repeat("    ", indent)
	for _, t := range tabs {
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			prefix,
			html.EscapeString(t.URL),
			t.CreatedAt.Unix(),
			html.EscapeString(t.Title),
		)
	}
}

// WriteFile writes the export to path, creating the directory.
func WriteFile(path string, store *model.Store) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(ExportHTML(store)), 0644)
}
