package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/navtoolbar/internal/config"
	"github.com/nikbrunner/navtoolbar/internal/culler"
	"github.com/nikbrunner/navtoolbar/internal/exporter"
	"github.com/nikbrunner/navtoolbar/internal/importer"
	"github.com/nikbrunner/navtoolbar/internal/model"
	"github.com/nikbrunner/navtoolbar/internal/picker"
	"github.com/nikbrunner/navtoolbar/internal/search"
	"github.com/nikbrunner/navtoolbar/internal/storage"
	"github.com/nikbrunner/navtoolbar/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "cull":
			runCull(os.Args[2:])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI(tui.AppParams{})
}

func printHelp() {
	help := `navtoolbar - tab strip with a collapsing header

Usage:
  navtoolbar                    Open interactive TUI
  navtoolbar <query>            Fuzzy search → select → open TUI at the tab
  navtoolbar import <file>      Import tabs from bookmark HTML
      --folder <name>           Only links inside this folder
      --toolbar-only            Only links on the bookmarks toolbar
  navtoolbar export [path]      Export tabs to bookmark HTML
  navtoolbar cull               Check tab URLs and report dead links
      --remove                  Delete dead tabs
      --exclude <a.com,b.com>   Treat 404s on these domains as private
  navtoolbar help               Show this help

TUI Keybindings:
  Strip (header at half height):
    h/l         Drag left/right
    H/L         Fling left/right
    gg/G        Scroll to first/last tab

  List (header expanded):
    j/k         Drag up/down
    J/K         Fling up/down

  Header:
    e/c         Expand/collapse
    u/d         Drag the collapsed header

  Actions:
    Enter       Open the anchor tab
    /           Fuzzy jump to a tab
    y           Copy URL to clipboard
    p           Pin/unpin
    q           Quit

Files:
  ~/.config/navtoolbar/config.toml
  ~/.config/navtoolbar/tabs.json (or tabs.db with the sqlite backend)
`
	fmt.Print(help)
}

// openStore loads the configuration and the tab catalogue it points at.
func openStore() (*config.Config, storage.Storage, *model.Store) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	store, err := st.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tabs: %v\n", err)
		os.Exit(1)
	}
	return cfg, st, store
}

func closeStorage(st storage.Storage) {
	if c, ok := st.(io.Closer); ok {
		_ = c.Close()
	}
}

// runTUI runs the full interactive TUI. params carries the start tab.
func runTUI(params tui.AppParams) {
	cfg, st, store := openStore()
	defer closeStorage(st)

	if len(store.Tabs) == 0 {
		store.Tabs = model.DefaultTabs()
	}

	// The alt screen owns stderr; keep manager logs out of it.
	logger := log.New(io.Discard, "", 0)
	if path := os.Getenv("NAVTOOLBAR_LOG"); path != "" {
		f, err := tea.LogToFile(path, "navtoolbar")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.Default()
	}

	params.Store = store
	params.Storage = st
	params.Config = cfg
	params.Logger = logger

	app := tui.NewApp(params)
	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		closeStorage(st)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	finalApp := finalModel.(tui.App)
	if err := st.Save(finalApp.Store()); err != nil {
		closeStorage(st)
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch picks a tab by fuzzy query and opens the TUI scrolled to it.
func runQuickSearch(query string) {
	_, st, store := openStore()
	results := search.FuzzySearchTabs(store.Ordered(), query)
	closeStorage(st)

	if len(results) == 0 {
		fmt.Printf("No tabs found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *search.SearchResult
	if len(results) == 1 {
		selected = &results[0]
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.Selected()
	}

	if selected == nil {
		os.Exit(0)
	}
	runTUI(tui.AppParams{Start: selected.Position})
}

// runImport handles the import subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	folder := fs.String("folder", "", "only import links inside this folder")
	toolbarOnly := fs.Bool("toolbar-only", false, "only import links on the bookmarks toolbar")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: navtoolbar import [--folder name] [--toolbar-only] <file.html>\n")
		os.Exit(1)
	}
	filePath := fs.Arg(0)

	_, st, store := openStore()
	defer closeStorage(st)

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	tabs, err := importer.ParseHTMLTabs(file, importer.Options{
		Folder:      *folder,
		ToolbarOnly: *toolbarOnly,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, skipped := store.ImportMerge(tabs)

	if err := st.Save(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d tabs", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	_, st, store := openStore()
	defer closeStorage(st)

	if err := exporter.WriteFile(outputPath, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d tabs to %s\n", len(store.Tabs), outputPath)
}

// runCull checks every tab URL and optionally removes the dead ones.
func runCull(args []string) {
	fs := flag.NewFlagSet("cull", flag.ExitOnError)
	remove := fs.Bool("remove", false, "delete tabs whose links are dead")
	exclude := fs.String("exclude", "", "comma-separated domains where 404 means private")
	concurrency := fs.Int("concurrency", 8, "parallel checks")
	timeout := fs.Duration("timeout", 10*time.Second, "per request timeout")
	_ = fs.Parse(args)

	_, st, store := openStore()
	defer closeStorage(st)

	var domains []string
	for _, d := range strings.Split(*exclude, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := culler.CheckTabs(ctx, store.Tabs, culler.Options{
		Concurrency:    *concurrency,
		Timeout:        *timeout,
		ExcludeDomains: domains,
		OnProgress: func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rChecked %d/%d", completed, total)
		},
	})
	fmt.Fprintln(os.Stderr)

	var unreachable int
	for _, r := range results {
		switch r.Status {
		case culler.Dead:
			fmt.Printf("dead         %d  %s  %s\n", r.StatusCode, r.Tab.Label(), r.Tab.URL)
		case culler.Unreachable:
			unreachable++
			fmt.Printf("unreachable  %s  %s  %s\n", r.Error, r.Tab.Label(), r.Tab.URL)
		}
	}

	dead := culler.DeadTabs(results)
	fmt.Printf("%d tabs checked, %d dead, %d unreachable\n", len(results), len(dead), unreachable)
	if !*remove || len(dead) == 0 {
		return
	}

	ids := make([]string, len(dead))
	for i, t := range dead {
		ids[i] = t.ID
	}
	n := store.RemoveTabs(ids...)
	if err := st.Save(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving tabs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Removed %d dead tabs\n", n)
}
