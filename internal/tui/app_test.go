package tui_test

import (
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/navtoolbar/internal/header"
	"github.com/nikbrunner/navtoolbar/internal/model"
	"github.com/nikbrunner/navtoolbar/internal/tui"
	"github.com/nikbrunner/navtoolbar/internal/tui/layout"
)

const frame = time.Second / 60

type memStorage struct {
	saves int
	err   error
}

func (s *memStorage) Load() (*model.Store, error) { return model.NewStore(), nil }

func (s *memStorage) Save(*model.Store) error {
	s.saves++
	return s.err
}

func testStore() *model.Store {
	store := model.NewStore()
	for i, title := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"} {
		store.Tabs = append(store.Tabs, model.Tab{
			ID:    "tab-" + string(rune('a'+i)),
			Title: title,
			URL:   "https://example.com/" + strings.ToLower(title),
		})
	}
	return store
}

type harness struct {
	t       *testing.T
	app     tui.App
	storage *memStorage
	now     time.Time
}

func newHarness(t *testing.T, store *model.Store) *harness {
	t.Helper()
	return newSizedHarness(t, store, 80, 24)
}

func newSizedHarness(t *testing.T, store *model.Store, width, height int) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		storage: &memStorage{},
		now:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	h.app = tui.NewApp(tui.AppParams{
		Store:   store,
		Storage: h.storage,
		Logger:  log.New(io.Discard, "", 0),
	})
	h.send(tea.WindowSizeMsg{Width: width, Height: height})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	updated, cmd := h.app.Update(msg)
	h.app = updated.(tui.App)
	return cmd
}

func (h *harness) keys(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// advance runs frames until d has passed.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	for end := h.now.Add(d); h.now.Before(end); {
		h.now = h.now.Add(frame)
		h.send(tui.FrameMsg(h.now))
	}
}

func (h *harness) anchor() int {
	h.t.Helper()
	pos, ok := h.app.AnchorPosition()
	if !ok {
		h.t.Fatalf("no anchor (orientation %s)", h.app.Orientation())
	}
	return pos
}

func TestApp_SettlesIntoStrip(t *testing.T) {
	h := newHarness(t, testStore())

	if h.app.Orientation() != header.Horizontal {
		t.Errorf("expected horizontal, got %s", h.app.Orientation())
	}
	if h.app.HeaderBottom() != 11 {
		t.Errorf("expected header at half height 11, got %d", h.app.HeaderBottom())
	}
	if hs, _ := h.app.ScrollEnabled(); hs {
		t.Error("strip should not scroll before the header settles")
	}

	h.advance(200 * time.Millisecond)

	hs, vs := h.app.ScrollEnabled()
	if !hs || vs {
		t.Errorf("expected only horizontal scrolling, got h=%v v=%v", hs, vs)
	}
	if h.anchor() != 0 {
		t.Errorf("expected anchor 0, got %d", h.anchor())
	}
}

func TestApp_DragScrollsStrip(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)

	h.keys("h")
	if h.anchor() != 0 {
		t.Errorf("drag before the first tab should be clamped, anchor %d", h.anchor())
	}

	h.keys("lll")
	if h.anchor() != 1 {
		t.Errorf("after three quarter-tab drags expected anchor 1, got %d", h.anchor())
	}
}

func TestApp_JumpFirstAndLast(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)

	h.keys("G")
	if !h.app.Moving() {
		t.Error("expected a smooth scroll to start")
	}
	h.advance(time.Second)
	if h.app.Moving() {
		t.Error("smooth scroll should have finished")
	}
	if h.anchor() != 4 {
		t.Errorf("expected last tab 4, got %d", h.anchor())
	}

	h.keys("gx")
	h.advance(time.Second)
	if h.anchor() != 4 {
		t.Errorf("a broken gg sequence should not jump, got %d", h.anchor())
	}

	h.keys("gg")
	h.advance(time.Second)
	if h.anchor() != 0 {
		t.Errorf("expected first tab after gg, got %d", h.anchor())
	}
}

func TestApp_ExpandSwitchesToList(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)

	h.keys("e")
	h.advance(100 * time.Millisecond)
	if h.app.Orientation() != header.Transitional {
		t.Errorf("expected transitional while expanding, got %s", h.app.Orientation())
	}
	if _, ok := h.app.AnchorPosition(); ok {
		t.Error("no anchor expected while transitional")
	}

	h.advance(2 * time.Second)
	if h.app.Orientation() != header.Vertical {
		t.Fatalf("expected vertical, got %s", h.app.Orientation())
	}
	if h.app.HeaderBottom() != 22 {
		t.Errorf("expected expanded header 22, got %d", h.app.HeaderBottom())
	}
	hs, vs := h.app.ScrollEnabled()
	if hs || !vs {
		t.Errorf("expected only vertical scrolling, got h=%v v=%v", hs, vs)
	}
}

func TestApp_OpenInListCollapsesToStrip(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)
	h.keys("e")
	h.advance(2 * time.Second)

	pos := h.anchor()
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	tab := h.app.Store().Ordered()[pos]
	if tab.VisitedAt == nil {
		t.Error("opening a tab should record the visit")
	}
	if h.storage.saves != 1 {
		t.Errorf("expected 1 save, got %d", h.storage.saves)
	}
	if !strings.Contains(h.app.Message(), tab.Title) {
		t.Errorf("expected message about %s, got %q", tab.Title, h.app.Message())
	}

	h.advance(2 * time.Second)
	if h.app.Orientation() != header.Horizontal {
		t.Errorf("expected the header back at half height, got %s", h.app.Orientation())
	}
	if h.app.HeaderBottom() != 11 {
		t.Errorf("expected header bottom 11, got %d", h.app.HeaderBottom())
	}
	if hs, _ := h.app.ScrollEnabled(); !hs {
		t.Error("expected the strip to scroll again")
	}
}

func TestApp_OpenInListSettlesAtOddHeight(t *testing.T) {
	// 25 rows leave a 23 row canvas whose half is 11.
	h := newSizedHarness(t, testStore(), 80, 25)
	h.advance(200 * time.Millisecond)
	if h.app.HeaderBottom() != 11 {
		t.Fatalf("expected header bottom 11 at start, got %d", h.app.HeaderBottom())
	}

	h.keys("e")
	h.advance(2 * time.Second)
	if _, vs := h.app.ScrollEnabled(); !vs {
		t.Fatal("expected the list to scroll after expanding")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.advance(2 * time.Second)

	if h.app.Orientation() != header.Horizontal {
		t.Errorf("expected horizontal, got %s", h.app.Orientation())
	}
	if h.app.HeaderBottom() != 11 {
		t.Errorf("expected header bottom 11, got %d", h.app.HeaderBottom())
	}
	hs, vs := h.app.ScrollEnabled()
	if !hs || vs {
		t.Errorf("expected only horizontal scrolling, got h=%v v=%v", hs, vs)
	}
	if h.app.Moving() {
		t.Error("expected the toolbar to be at rest")
	}
}

func TestApp_HeaderDragNeedsCollapsedHeader(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)

	h.keys("d")
	if h.app.HeaderBottom() != 11 {
		t.Errorf("header should not drag at half height, got %d", h.app.HeaderBottom())
	}

	h.keys("c")
	h.advance(2 * time.Second)
	if h.app.HeaderBottom() != 2 {
		t.Fatalf("expected collapsed header 2, got %d", h.app.HeaderBottom())
	}

	h.keys("d")
	if h.app.HeaderBottom() != 4 {
		t.Errorf("expected drag down to 4, got %d", h.app.HeaderBottom())
	}

	// Let go near the top: the header snaps back to collapsed.
	h.advance(2 * time.Second)
	if h.app.HeaderBottom() != 2 {
		t.Errorf("expected snap back to 2, got %d", h.app.HeaderBottom())
	}
}

func TestApp_SearchJumpsToMatch(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)

	h.keys("/")
	if !h.app.Searching() {
		t.Fatal("expected search mode")
	}
	h.keys("gamma")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.app.Searching() {
		t.Error("enter should close the search")
	}

	h.advance(time.Second)
	if h.anchor() != 2 {
		t.Errorf("expected Gamma at 2, got %d", h.anchor())
	}
}

func TestApp_SearchWithoutMatch(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)

	h.keys("/zzz")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.advance(time.Second)

	if h.anchor() != 0 {
		t.Errorf("anchor should not move, got %d", h.anchor())
	}
	if !strings.Contains(h.app.Message(), "zzz") {
		t.Errorf("expected no-match message, got %q", h.app.Message())
	}
}

func TestApp_SearchCancel(t *testing.T) {
	h := newHarness(t, testStore())

	h.keys("/q")
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	if h.app.Searching() {
		t.Error("esc should close the search")
	}
	if cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("q outside search should quit")
	}
}

func TestApp_PinMovesTabToFront(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)
	h.keys("G")
	h.advance(time.Second)

	h.keys("p")

	tab := h.app.Store().GetTabByID("tab-e")
	if !tab.Pinned {
		t.Fatal("expected Epsilon to be pinned")
	}
	if h.storage.saves != 1 {
		t.Errorf("expected 1 save, got %d", h.storage.saves)
	}
	if first := h.app.Store().Ordered()[0]; first.ID != "tab-e" {
		t.Errorf("expected pinned tab first, got %s", first.ID)
	}
	if h.anchor() != 0 {
		t.Errorf("expected the toolbar to follow the tab to 0, got %d", h.anchor())
	}
}

func TestApp_SaveFailureIsReported(t *testing.T) {
	h := newHarness(t, testStore())
	h.storage.err = errors.New("disk full")
	h.advance(200 * time.Millisecond)

	h.keys("p")
	if !strings.Contains(h.app.Message(), "disk full") {
		t.Errorf("expected save error in message, got %q", h.app.Message())
	}
}

func TestApp_ResizeKeepsAnchor(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)
	h.keys("lllllllllllll")
	pos := h.anchor()
	if pos == 0 {
		t.Fatal("expected to have scrolled")
	}

	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if h.app.HeaderBottom() != 14 {
		t.Errorf("expected header at half of 28, got %d", h.app.HeaderBottom())
	}

	h.advance(300 * time.Millisecond)
	if h.anchor() != pos {
		t.Errorf("expected anchor %d after resize, got %d", pos, h.anchor())
	}
}

func TestApp_StartPosition(t *testing.T) {
	app := tui.NewApp(tui.AppParams{
		Store:  testStore(),
		Start:  3,
		Logger: log.New(io.Discard, "", 0),
	})
	h := &harness{t: t, app: app, now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	h.app = h.app.WithDimensions(80, 24)

	h.advance(300 * time.Millisecond)
	if h.anchor() != 3 {
		t.Errorf("expected start tab 3, got %d", h.anchor())
	}
}

func TestApp_Quit(t *testing.T) {
	h := newHarness(t, testStore())

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestApp_View(t *testing.T) {
	h := newHarness(t, testStore())
	h.advance(200 * time.Millisecond)

	out := layout.StripANSI(h.app.View())
	lines := strings.Split(out, "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	for _, want := range []string{"navtoolbar  Alpha", "https://example.com/alpha", "horizontal", "tab 1/5", "h/l:scroll"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	for i, line := range lines[:22] {
		if w := layout.VisibleWidth(line); w != 80 {
			t.Errorf("canvas row %d is %d cells wide", i, w)
		}
	}
}

func TestApp_ViewEmptyStore(t *testing.T) {
	h := newHarness(t, model.NewStore())

	out := layout.StripANSI(h.app.View())
	if !strings.Contains(out, "no tabs yet") {
		t.Errorf("expected empty hint, got:\n%s", out)
	}
}
