package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// past makes every timer deadline already elapsed, so tea.Tick commands
// deliver immediately when a test runs them
var past = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeEngine struct {
	mu       sync.Mutex
	calls    []string
	statuses chan domain.EngineStatus
	closed   bool
}

func newFakeEngine() *fakeEngine {
	ch := make(chan domain.EngineStatus)
	close(ch)
	return &fakeEngine{statuses: ch}
}

func (f *fakeEngine) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return domain.ErrEngineClosed
	}
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeEngine) Load(_ context.Context, uri string) error { return f.record("load " + uri) }
func (f *fakeEngine) Play(context.Context) error               { return f.record("play") }
func (f *fakeEngine) Pause(context.Context) error              { return f.record("pause") }
func (f *fakeEngine) SeekTo(_ context.Context, pos time.Duration) error {
	return f.record("seek " + pos.String())
}
func (f *fakeEngine) Statuses() <-chan domain.EngineStatus { return f.statuses }
func (f *fakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeEngine) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeLauncher struct {
	urls []string
}

func (f *fakeLauncher) Launch(_ context.Context, url string, _ time.Duration) error {
	f.urls = append(f.urls, url)
	return nil
}

type harness struct {
	engines  []*fakeEngine
	launcher *fakeLauncher
	prefs    *service.PreferenceService
}

func newTestModel(t *testing.T, opts Options) (Model, *harness) {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)
	s, err := store.NewPreferenceStore("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	h := &harness{launcher: &fakeLauncher{}}
	h.prefs = service.NewPreferenceService(s, adapter.NullLogger())

	svcs := Services{
		Catalog:     service.NewCatalogService(c, adapter.NullLogger()),
		Playback:    service.NewPlaybackService(h.launcher, playback.DefaultOptions(), adapter.NullLogger()),
		Preferences: h.prefs,
		NewEngine: func() domain.MediaEngine {
			e := newFakeEngine()
			h.engines = append(h.engines, e)
			return e
		},
	}
	if opts.WatchlistSeed == 0 {
		opts.WatchlistSeed = 3
	}
	opts.Now = func() time.Time { return past }

	m := NewModel(svcs, opts)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, h
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, keyMsg(k))
	}
	return m, cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+right":
		return tea.KeyMsg{Type: tea.KeyCtrlRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// collect runs cmd and any batched commands it expands to. Only use it on
// commands that cannot block: engine, timer and message commands.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestTabs_NumberKeysAndCycling(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	assert.Equal(t, ScreenHome, m.Route.Screen)

	m, _ = press(t, m, "3")
	assert.Equal(t, ScreenWatchlist, m.Route.Screen)
	m, _ = press(t, m, "4")
	assert.Equal(t, ScreenProfile, m.Route.Screen)
	m, _ = press(t, m, "tab")
	assert.Equal(t, ScreenHome, m.Route.Screen, "tab wraps around")
	m, _ = press(t, m, "shift+tab")
	assert.Equal(t, ScreenProfile, m.Route.Screen)

	m, _ = press(t, m, "2")
	assert.Equal(t, ScreenSearch, m.Route.Screen)
	assert.True(t, m.Search.Focused())

	// Number keys type into the focused input; tab still switches
	m, _ = press(t, m, "3")
	assert.Equal(t, ScreenSearch, m.Route.Screen)
	m, _ = press(t, m, "tab")
	assert.Equal(t, ScreenWatchlist, m.Route.Screen)
	assert.False(t, m.Search.Focused())
}

func TestInit_NavigatesToInitialRoute(t *testing.T) {
	m, _ := newTestModel(t, Options{InitialRoute: Route{Screen: ScreenDetail, ID: "5"}})

	nav, ok := find[NavigateMsg](collect(NavigateCmd(m.initial)))
	require.True(t, ok)
	m, _ = update(t, m, nav)

	assert.Equal(t, ScreenDetail, m.Route.Screen)
	item, found := m.Detail.Item()
	require.True(t, found)
	assert.Equal(t, "Cosmos Laundromat", item.Title)
	assert.False(t, ShowsTabBar(m.Route))
}

func TestDetail_UnknownIDIsNotFatal(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = update(t, m, NavigateMsg{Route: Route{Screen: ScreenDetail, ID: "999"}})
	assert.Equal(t, ScreenDetail, m.Route.Screen)
	_, found := m.Detail.Item()
	assert.False(t, found)
	assert.Contains(t, m.View(), "Movie not found")

	m, cmd := press(t, m, "p")
	assert.Nil(t, cmd)
	assert.Nil(t, m.Session())

	m, _ = press(t, m, "esc")
	assert.Equal(t, ScreenHome, m.Route.Screen)
}

func TestDetail_BackReturnsToOrigin(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = press(t, m, "3")
	m, _ = press(t, m, "enter")
	require.Equal(t, ScreenDetail, m.Route.Screen)
	assert.Equal(t, "1", m.Route.ID, "first watchlist entry opens")

	m, _ = press(t, m, "esc")
	assert.Equal(t, ScreenWatchlist, m.Route.Screen)
}

func TestWatchlist_AddIsIdempotent(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	require.Equal(t, []string{"1", "2", "3"}, m.Watchlist())

	m, _ = update(t, m, WatchlistAddMsg{ID: "4", Title: "Elephants Dream"})
	m, _ = update(t, m, WatchlistAddMsg{ID: "4", Title: "Elephants Dream"})
	assert.Equal(t, []string{"1", "2", "3", "4"}, m.Watchlist())
	assert.Contains(t, m.StatusMsg, "already")

	m, _ = update(t, m, WatchlistRemoveMsg{ID: "2", Title: "Sintel"})
	if diff := cmp.Diff([]string{"1", "3", "4"}, m.Watchlist()); diff != "" {
		t.Errorf("watchlist mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, m.WatchlistView.Items(), 3)
}

func TestWatchlist_RemoveKey(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = press(t, m, "3", "down")

	m, cmd := press(t, m, "x")
	msg, ok := find[WatchlistRemoveMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "2", msg.ID)

	m, _ = update(t, m, msg)
	assert.Equal(t, []string{"1", "3"}, m.Watchlist())
}

func TestDetail_TogglesWatchlistThroughMessages(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, NavigateMsg{Route: Route{Screen: ScreenDetail, ID: "5"}})
	require.False(t, m.Detail.InWatchlist())

	m, cmd := press(t, m, "a")
	assert.True(t, m.Detail.InWatchlist(), "flag flips locally")
	add, ok := find[WatchlistAddMsg](collect(cmd))
	require.True(t, ok)
	m, _ = update(t, m, add)
	assert.Contains(t, m.Watchlist(), "5")

	m, cmd = press(t, m, "a")
	assert.False(t, m.Detail.InWatchlist())
	remove, ok := find[WatchlistRemoveMsg](collect(cmd))
	require.True(t, ok)
	m, _ = update(t, m, remove)
	assert.NotContains(t, m.Watchlist(), "5")
}

func TestHome_AddFromHeroIsIdempotent(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	require.True(t, m.Home.OnHero())

	_, cmd := press(t, m, "a")
	add, ok := find[WatchlistAddMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "1", add.ID)

	m, _ = update(t, m, add)
	assert.Equal(t, []string{"1", "2", "3"}, m.Watchlist())
}

func TestSearch_RecomputesOnEveryChange(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = press(t, m, "2")
	all := len(m.Search.Result().Items)
	require.Positive(t, all)

	m = typeText(t, m, "steel")
	assert.Equal(t, "steel", m.Search.Query())
	ids := itemIDs(m.Search.Result().Items)
	assert.Contains(t, ids, "3")
	assert.Less(t, len(ids), all)

	m = typeText(t, m, "zzz")
	assert.Empty(t, m.Search.Result().Items)
}

func TestSearch_GenreChipsFilter(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = press(t, m, "2", "ctrl+right")

	genre := m.Search.Genre()
	assert.NotEqual(t, "All", genre)
	require.NotEmpty(t, m.Search.Result().Items)
	for _, item := range m.Search.Result().Items {
		assert.True(t, item.HasGenre(genre), "%s lacks %s", item.Title, genre)
	}

	// Unfocused, the bracket keys cycle too
	m, _ = press(t, m, "esc", "[")
	assert.Equal(t, "All", m.Search.Genre())
}

func TestSearch_SuggestsOnNoMatch(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = press(t, m, "2")
	m = typeText(t, m, "sintl")

	res := m.Search.Result()
	assert.Empty(t, res.Items)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "2", res.Suggestions[0].ID)
}

func itemIDs(items []domain.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// openPlayer starts playback of the hero item and returns the messages the
// open produced
func openPlayer(t *testing.T, m Model) (Model, []tea.Msg) {
	t.Helper()
	m, cmd := press(t, m, "p")
	require.NotNil(t, m.Session())
	return m, collect(cmd)
}

func TestPlayer_OpenMountsAndLoads(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, msgs := openPlayer(t, m)

	require.Len(t, h.engines, 1)
	item, err := m.CatalogSvc.Detail("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"load " + item.VideoURL}, h.engines[0].Calls())

	o := m.Session().Overlay
	assert.Equal(t, playback.PhaseLoading, o.Phase())
	assert.True(t, o.ControlsVisible())

	_, ok := find[HideControlsMsg](msgs)
	assert.True(t, ok)
	_, ok = find[LoadTimeoutMsg](msgs)
	assert.True(t, ok)
	_, ok = find[EngineClosedMsg](msgs)
	assert.True(t, ok, "status wait is armed")

	assert.NotContains(t, m.View(), "My List", "tab bar hidden under the overlay")
}

func TestPlayer_FirstLoadResumesAndAutoplays(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, _ = openPlayer(t, m)
	id := m.Session().ID

	m, cmd := update(t, m, EngineStatusMsg{SessionID: id, Status: domain.EngineStatus{Loaded: true, Duration: 10 * time.Minute}})
	collect(cmd)

	o := m.Session().Overlay
	assert.Equal(t, playback.PhasePaused, o.Phase(), "playing waits for the engine")
	assert.Equal(t, 10*time.Minute, o.State().Duration)

	item, err := m.CatalogSvc.Detail("1")
	require.NoError(t, err)
	calls := h.engines[0].Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "seek "+item.ResumeOffset().String(), calls[1])
	assert.Equal(t, "play", calls[2])

	// Later reports do not repeat the start sequence
	m, cmd = update(t, m, EngineStatusMsg{SessionID: id, Status: domain.EngineStatus{Loaded: true, Playing: true, Position: 210 * time.Second}})
	collect(cmd)
	assert.Len(t, h.engines[0].Calls(), 3)
	assert.Equal(t, playback.PhasePlaying, m.Session().Overlay.Phase())
}

func TestPlayer_AutoplayOff(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, _ = press(t, m, "4", "enter", "1")
	require.False(t, m.Profile.Autoplay())

	m, _ = update(t, m, NavigateMsg{Route: Route{Screen: ScreenDetail, ID: "2"}})
	m, _ = press(t, m, "p")
	id := m.Session().ID
	_, cmd := update(t, m, EngineStatusMsg{SessionID: id, Status: domain.EngineStatus{Loaded: true, Duration: time.Minute}})
	collect(cmd)

	assert.Len(t, h.engines[0].Calls(), 1, "only the load")
}

func TestPlayer_TapAndHideTimer(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, msgs := openPlayer(t, m)
	first, ok := find[HideControlsMsg](msgs)
	require.True(t, ok)
	o := m.Session().Overlay

	m, _ = press(t, m, "c")
	assert.False(t, o.ControlsVisible())

	m, cmd := press(t, m, "c")
	assert.True(t, o.ControlsVisible())
	second, ok := find[HideControlsMsg](collect(cmd))
	require.True(t, ok)

	m, _ = update(t, m, first)
	assert.True(t, o.ControlsVisible(), "superseded timer is dropped")

	m, _ = update(t, m, HideControlsMsg{SessionID: "other", Seq: second.Seq})
	assert.True(t, o.ControlsVisible(), "timer from another session is dropped")

	_, _ = update(t, m, second)
	assert.False(t, o.ControlsVisible())
}

func TestPlayer_MouseClickTaps(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = openPlayer(t, m)

	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	_, _ = update(t, m, click)
	assert.False(t, m.Session().Overlay.ControlsVisible())
}

func TestPlayer_TransportShowsControlsAndSendsCommands(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, _ = press(t, m, "4", "enter", "1")
	m, msgs := openPlayer(t, m)
	id := m.Session().ID
	o := m.Session().Overlay

	m, _ = update(t, m, EngineStatusMsg{SessionID: id, Status: domain.EngineStatus{Loaded: true, Playing: true, Position: 30 * time.Second, Duration: time.Minute}})
	hide, _ := find[HideControlsMsg](msgs)
	m, _ = update(t, m, hide)
	require.False(t, o.ControlsVisible())

	m, cmd := press(t, m, " ")
	collect(cmd)
	assert.True(t, o.ControlsVisible())

	m, cmd = press(t, m, "right")
	collect(cmd)
	_, cmd = press(t, m, "left")
	collect(cmd)

	calls := h.engines[0].Calls()
	assert.Equal(t, []string{"pause", "seek 40s", "seek 20s"}, calls[1:])
	assert.True(t, o.State().Playing, "no optimistic toggle")
}

func TestPlayer_LoadTimeoutAndRetry(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, msgs := openPlayer(t, m)
	o := m.Session().Overlay

	timeout, ok := find[LoadTimeoutMsg](msgs)
	require.True(t, ok)
	m, _ = update(t, m, timeout)
	assert.Equal(t, playback.PhaseFailed, o.Phase())
	assert.ErrorIs(t, o.Err(), domain.ErrLoadTimeout)
	assert.Contains(t, m.View(), "r to retry")

	m, cmd := press(t, m, "r")
	msgs = collect(cmd)
	assert.Equal(t, playback.PhaseLoading, o.Phase())
	require.Len(t, h.engines[0].Calls(), 2)
	assert.True(t, strings.HasPrefix(h.engines[0].Calls()[1], "load "))

	_, _ = update(t, m, timeout)
	assert.Equal(t, playback.PhaseLoading, o.Phase(), "pre-retry timeout is stale")
	_, ok = find[LoadTimeoutMsg](msgs)
	assert.True(t, ok, "timeout re-armed")
}

func TestPlayer_CloseStopsEngine(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, _ = openPlayer(t, m)
	sess := m.Session()

	m, cmd := press(t, m, "esc")
	assert.Nil(t, m.Session())
	assert.True(t, sess.Overlay.Closed())
	collect(cmd)
	assert.True(t, h.engines[0].closed)

	// Late events from the closed session are ignored
	m, _ = update(t, m, EngineStatusMsg{SessionID: sess.ID, Status: domain.EngineStatus{Loaded: true}})
	m, _ = update(t, m, EngineClosedMsg{SessionID: sess.ID})
	assert.Nil(t, m.Session())
	assert.Empty(t, m.StatusMsg)
	assert.Equal(t, ScreenHome, m.Route.Screen)
}

func TestPlayer_EngineClosedUnexpectedly(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, msgs := openPlayer(t, m)

	closed, ok := find[EngineClosedMsg](msgs)
	require.True(t, ok)
	m, _ = update(t, m, closed)
	assert.Nil(t, m.Session())
	assert.True(t, m.StatusIsErr)
}

func TestPlayer_QuitClosesSession(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = openPlayer(t, m)
	sess := m.Session()

	m, cmd := press(t, m, "ctrl+c")
	assert.NotNil(t, cmd)
	assert.Nil(t, m.Session())
	assert.True(t, sess.Overlay.Closed())
}

func TestDetail_Trailer(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, _ = update(t, m, NavigateMsg{Route: Route{Screen: ScreenDetail, ID: "2"}})
	m, _ = press(t, m, "t")
	assert.Nil(t, m.Session(), "no trailer for this title")
	assert.Equal(t, "No trailer available", m.StatusMsg)

	m, _ = update(t, m, NavigateMsg{Route: Route{Screen: ScreenDetail, ID: "3"}})
	m, cmd := press(t, m, "t")
	require.NotNil(t, m.Session())
	assert.True(t, m.Session().Trailer)
	assert.Contains(t, m.Session().Overlay.Title(), "(Trailer)")
	collect(cmd)

	item, _ := m.CatalogSvc.Detail("3")
	assert.Equal(t, []string{"load " + item.Trailer.URL}, h.engines[0].Calls())
}

func TestDetail_OpenExternal(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, _ = update(t, m, NavigateMsg{Route: Route{Screen: ScreenDetail, ID: "4"}})

	m, cmd := press(t, m, "o")
	launched, ok := find[ExternalLaunchedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "4", launched.Item.ID)
	require.Len(t, h.launcher.urls, 1)

	m, _ = update(t, m, launched)
	assert.Contains(t, m.StatusMsg, "Launched")
}

func TestProfile_EmulationIsSaved(t *testing.T) {
	m, h := newTestModel(t, Options{})
	m, _ = press(t, m, "4", "down", "down", "down")
	require.Equal(t, components.SettingEmulation, m.Profile.Current())

	m, cmd := press(t, m, "enter")
	assert.Equal(t, "ios", m.Emulation())
	saved, ok := find[EmulationSavedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "ios", saved.Device)
	assert.Equal(t, "ios", h.prefs.Emulation())

	m, cmd = press(t, m, "backspace")
	collect(cmd)
	assert.Equal(t, "", m.Emulation())
	assert.Equal(t, "", h.prefs.Emulation())
	assert.Equal(t, ScreenProfile, m.Route.Screen)
}

func TestInsets(t *testing.T) {
	tests := []struct {
		device      string
		top, bottom int
	}{
		{"ios", 2, 1},
		{"android", 2, 0},
		{"", 0, 0},
		{"windows-phone", 0, 0},
	}
	for _, tt := range tests {
		top, bottom := Insets(tt.device)
		assert.Equal(t, tt.top, top, tt.device)
		assert.Equal(t, tt.bottom, bottom, tt.device)
	}
}

func TestView_AppliesInsetsAtRoot(t *testing.T) {
	plain, _ := newTestModel(t, Options{})
	ios, _ := newTestModel(t, Options{Emulation: "ios"})

	assert.NotContains(t, plain.View(), "9:41")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(ios.View()), "9:41"))
	assert.Contains(t, ios.View(), "1 Home")
}
