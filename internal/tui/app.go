package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/navtoolbar/internal/config"
	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/model"
	"github.com/nikbrunner/navtoolbar/internal/search"
	"github.com/nikbrunner/navtoolbar/internal/storage"
	"github.com/nikbrunner/navtoolbar/internal/tui/layout"
)

// noJump marks an empty pending jump.
const noJump = -1

// FrameMsg is one animation tick.
type FrameMsg time.Time

// App is the main bubbletea model for the navigation toolbar.
type App struct {
	store   *model.Store
	storage storage.Storage
	config  *config.Config
	keys    KeyMap
	styles  Styles
	layout  layout.LayoutConfig
	logger  *log.Logger

	tabs *catalogue
	tb   *toolbar

	// pending is a jump waiting for the header to settle on a scrollable axis.
	pending int

	search    textinput.Model
	searching bool

	// For gg command
	lastKeyWasG bool

	message string

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        *model.Store
	Storage      storage.Storage      // optional, changes are not persisted if nil
	Config       *config.Config       // optional, uses default if nil
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Logger       *log.Logger          // optional, uses log.Default if nil
	Start        int                  // tab to scroll to once the toolbar settles
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	cfg := params.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := params.Logger
	if logger == nil {
		logger = log.Default()
	}

	store := params.Store
	if store == nil {
		store = model.NewStore()
	}

	input := textinput.New()
	input.Placeholder = "tab title or URL"
	input.Prompt = "/"
	input.CharLimit = layoutCfg.Search.CharLimit
	input.Width = layoutCfg.Search.Width

	pending := noJump
	if params.Start > 0 {
		pending = params.Start
	}

	return App{
		store:   store,
		storage: params.Storage,
		config:  cfg,
		keys:    keys,
		styles:  styles,
		layout:  layoutCfg,
		logger:  logger,
		tabs:    newCatalogue(store),
		pending: pending,
		search:  input,
		width:   80,
		height:  24,
	}
}

// WithDimensions sets the terminal size and lays the toolbar out for it.
func (a App) WithDimensions(width, height int) App {
	if err := a.resize(width, height); err != nil {
		a.logger.Printf("tui: %v", err)
		a.message = err.Error()
	}
	return a
}

// resize rebuilds the toolbar for a new terminal size, keeping the anchor tab.
func (a *App) resize(width, height int) error {
	a.width = width
	a.height = height

	if a.tb != nil {
		if _, pos, ok := a.tb.anchor(); ok {
			a.pending = pos
		}
	}

	cw, ch := layout.CalculateCanvasSize(width, height, a.layout.Canvas)
	tb, err := newToolbar(a.config.HeaderConfig(), cw, ch, a.tabs, a.logger)
	if err != nil {
		a.tb = nil
		return err
	}
	a.tb = tb
	return nil
}

func (a App) tick() tea.Cmd {
	return tea.Tick(frameDuration(a.config.Physics.FPS), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.tick()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := a.resize(msg.Width, msg.Height); err != nil {
			a.logger.Printf("tui: %v", err)
			a.message = err.Error()
		}
		return a, nil

	case FrameMsg:
		a.step(time.Time(msg))
		return a, a.tick()

	case tea.KeyMsg:
		if a.searching {
			return a.updateSearch(msg)
		}
		return a.updateNormal(msg)
	}

	return a, nil
}

// step advances the toolbar one frame and releases a pending jump once an
// axis can scroll.
func (a *App) step(now time.Time) {
	if a.tb == nil {
		return
	}
	a.tb.step(now)

	if a.pending != noJump && a.tb.scrollable() && !a.tb.m.IsOffsetAnimating() {
		pos := a.pending
		a.pending = noJump
		if err := a.tb.scrollTo(pos); err != nil {
			a.logger.Printf("tui: scroll to %d: %v", pos, err)
		}
	}
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.jump(0)
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}
	if a.tb == nil {
		return a, nil
	}
	a.message = ""

	switch {
	case key.Matches(msg, a.keys.Left):
		a.tb.drag(false, -1)

	case key.Matches(msg, a.keys.Right):
		a.tb.drag(false, 1)

	case key.Matches(msg, a.keys.Up):
		a.tb.drag(true, -1)

	case key.Matches(msg, a.keys.Down):
		a.tb.drag(true, 1)

	case key.Matches(msg, a.keys.FlingLeft):
		a.tb.fling(false, false)

	case key.Matches(msg, a.keys.FlingRight):
		a.tb.fling(false, true)

	case key.Matches(msg, a.keys.FlingUp):
		a.tb.fling(true, false)

	case key.Matches(msg, a.keys.FlingDown):
		a.tb.fling(true, true)

	case key.Matches(msg, a.keys.HeaderUp):
		a.tb.dragHeader(-a.headerStep())

	case key.Matches(msg, a.keys.HeaderDown):
		a.tb.dragHeader(a.headerStep())

	case key.Matches(msg, a.keys.Expand):
		a.tb.bar.SetExpanded(true, true)

	case key.Matches(msg, a.keys.Collapse):
		a.tb.bar.SetExpanded(false, true)

	case key.Matches(msg, a.keys.Bottom):
		a.jump(a.tabs.ItemCount() - 1)

	case key.Matches(msg, a.keys.Open):
		a.open()

	case key.Matches(msg, a.keys.Jump):
		a.searching = true
		a.search.SetValue("")
		cmd := a.search.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.YankURL):
		a.yank()

	case key.Matches(msg, a.keys.Pin):
		a.pin()
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.searching = false
		a.search.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		a.searching = false
		a.search.Blur()
		query := a.search.Value()
		results := search.FuzzySearchTabs(a.tabs.tabs, query)
		if len(results) == 0 {
			a.message = fmt.Sprintf("no tab matches %q", query)
			return a, nil
		}
		a.jump(results[0].Position)
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a App) headerStep() int {
	return max(1, a.tb.bar.height/10)
}

// jump smooth scrolls to pos, or queues it until the header settles.
func (a *App) jump(pos int) {
	if a.tb == nil || pos < 0 || pos >= a.tabs.ItemCount() {
		return
	}
	if !a.tb.scrollable() || a.tb.m.IsOffsetAnimating() {
		a.pending = pos
		return
	}
	if err := a.tb.m.SmoothScrollToPosition(pos); err != nil {
		a.logger.Printf("tui: smooth scroll to %d: %v", pos, err)
	}
}

// open clicks the anchor card and records the visit.
func (a *App) open() {
	card, pos, ok := a.tb.anchor()
	if !ok || !a.tb.m.OnItemClick(card) {
		return
	}
	tab, ok := a.tabs.at(pos)
	if !ok {
		return
	}
	a.store.MarkVisited(tab.ID, time.Now())
	a.message = "opened " + tab.Label()
	a.save()
}

func (a *App) yank() {
	_, pos, ok := a.tb.anchor()
	if !ok {
		return
	}
	tab, ok := a.tabs.at(pos)
	if !ok {
		return
	}
	if err := clipboard.WriteAll(tab.URL); err != nil {
		a.message = fmt.Sprintf("yank failed: %v", err)
		return
	}
	a.message = "yanked " + tab.URL
}

// pin toggles the anchor tab and follows it to its new position.
func (a *App) pin() {
	_, pos, ok := a.tb.anchor()
	if !ok {
		return
	}
	tab, ok := a.tabs.at(pos)
	if !ok || !a.store.TogglePin(tab.ID) {
		return
	}
	a.tabs.refresh(a.store)
	if a.store.GetTabByID(tab.ID).Pinned {
		a.message = "pinned " + tab.Label()
	} else {
		a.message = "unpinned " + tab.Label()
	}
	if err := a.tb.scrollTo(a.tabs.indexOf(tab.ID)); err != nil {
		a.logger.Printf("tui: follow pinned tab: %v", err)
	}
	a.save()
}

func (a *App) save() {
	if a.storage == nil {
		return
	}
	if err := a.storage.Save(a.store); err != nil {
		a.logger.Printf("tui: save: %v", err)
		a.message = fmt.Sprintf("save failed: %v", err)
	}
}

// Store returns the tab catalogue the app edits.
func (a App) Store() *model.Store {
	return a.store
}

// Message returns the last status message.
func (a App) Message() string {
	return a.message
}

// Searching reports whether the jump input is open.
func (a App) Searching() bool {
	return a.searching
}

// Orientation returns the toolbar orientation, Horizontal before the first layout.
func (a App) Orientation() header.Orientation {
	if a.tb == nil {
		return header.Horizontal
	}
	return a.tb.m.Orientation()
}

// AnchorPosition returns the tab the toolbar is anchored on.
func (a App) AnchorPosition() (int, bool) {
	if a.tb == nil {
		return 0, false
	}
	return a.tb.m.AnchorPosition()
}

// HeaderBottom returns the lower edge of the collapsing header in rows.
func (a App) HeaderBottom() int {
	if a.tb == nil {
		return 0
	}
	return a.tb.bar.Bottom()
}

// ScrollEnabled reports which axes currently scroll.
func (a App) ScrollEnabled() (horizontal, vertical bool) {
	if a.tb == nil {
		return false, false
	}
	return a.tb.m.HorizontalScrollEnabled(), a.tb.m.VerticalScrollEnabled()
}

// Moving reports whether a fling, a smooth scroll or a header animation is running.
func (a App) Moving() bool {
	if a.tb == nil {
		return false
	}
	return a.tb.m.ScrollState() == header.Fling || a.tb.m.IsOffsetAnimating() || a.tb.bar.Animating()
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
