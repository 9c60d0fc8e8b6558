package tui

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
)

const (
	spinnerInterval = 100 * time.Millisecond
	statusTimeout   = 3 * time.Second
	errorTimeout    = 5 * time.Second
)

// Services bundles what the model needs from the rest of the application
type Services struct {
	Catalog     *service.CatalogService
	Playback    *service.PlaybackService
	Preferences *service.PreferenceService

	// NewEngine creates the media engine for one player session
	NewEngine func() domain.MediaEngine
}

// Options configures a new model
type Options struct {
	Emulation     string // device whose safe area is reserved; "" for none
	InitialRoute  Route
	WatchlistSeed int
	Version       string
	Persistent    bool // preference store survives restarts
	Now           func() time.Time
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Navigation
	Route   Route
	history []Route

	Ready  bool
	Width  int
	Height int

	// Services
	CatalogSvc  *service.CatalogService
	PlaybackSvc *service.PlaybackService
	PrefSvc     *service.PreferenceService
	newEngine   func() domain.MediaEngine

	// Screens
	Home          components.Home
	Detail        components.Detail
	Search        components.SearchPanel
	WatchlistView components.WatchlistPanel
	Profile       components.Profile

	// The watchlist screen owns the list; other screens send messages
	watchlist *watchlist.Watchlist

	// Player session, nil when the overlay is closed
	session *service.Session
	engine  domain.MediaEngine
	started bool // first loaded report handled

	emulation string
	initial   Route

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(svcs Services, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := Model{
		Route:         Route{Screen: ScreenHome},
		CatalogSvc:    svcs.Catalog,
		PlaybackSvc:   svcs.Playback,
		PrefSvc:       svcs.Preferences,
		newEngine:     svcs.NewEngine,
		Home:          components.NewHome(),
		Detail:        components.NewDetail(),
		Search:        components.NewSearchPanel(svcs.Catalog.Genres()),
		WatchlistView: components.NewWatchlistPanel(),
		Profile:       components.NewProfile(opts.Emulation, opts.Version),
		watchlist:     watchlist.New(svcs.Catalog.InitialWatchlist(opts.WatchlistSeed)...),
		emulation:     opts.Emulation,
		initial:       opts.InitialRoute,
		now:           opts.Now,
	}

	var featured *domain.ContentItem
	if item, ok := svcs.Catalog.Featured(); ok {
		featured = &item
	}
	m.Home.SetContent(featured, svcs.Catalog.HomeRows())
	m.Search.SetResult(svcs.Catalog.Search("", search.AllGenres))
	m.Profile.SetPersistent(opts.Persistent)
	m.refreshWatchlist()

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		NavigateCmd(m.initial),
		TickCmd(spinnerInterval),
	)
}

// Emulation returns the device whose safe area is applied
func (m Model) Emulation() string { return m.emulation }

// Watchlist returns the IDs on My List in order
func (m Model) Watchlist() []string { return m.watchlist.IDs() }

// Session returns the open player session, nil when the overlay is closed
func (m Model) Session() *service.Session { return m.session }

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if m.session != nil && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.tapControls()
		}
		return nil

	case TickMsg:
		m.SpinnerFrame++
		return TickCmd(spinnerInterval)

	case NavigateMsg:
		return m.navigate(msg.Route)

	case EngineStatusMsg:
		return m.handleEngineStatus(msg)

	case EngineClosedMsg:
		if m.session != nil && msg.SessionID == m.session.ID {
			slog.Warn("media engine stopped reporting", "session", msg.SessionID)
			m.closePlayer()
			m.StatusMsg = "Playback stopped"
			m.StatusIsErr = true
			return ClearStatusCmd(errorTimeout)
		}
		return nil

	case HideControlsMsg:
		if m.session != nil && msg.SessionID == m.session.ID {
			m.session.Overlay.HideControls(msg.Seq)
		}
		return nil

	case LoadTimeoutMsg:
		if m.session != nil && msg.SessionID == m.session.ID {
			if m.session.Overlay.LoadExpired(msg.Seq) {
				slog.Warn("playback load timed out", "session", msg.SessionID, "title", m.session.Item.Title)
			}
		}
		return nil

	case WatchlistAddMsg:
		if m.watchlist.Add(msg.ID) {
			m.refreshWatchlist()
			return m.setStatus("Added to My List: "+msg.Title, false)
		}
		return m.setStatus(msg.Title+" is already on My List", false)

	case WatchlistRemoveMsg:
		if m.watchlist.Remove(msg.ID) {
			m.refreshWatchlist()
			return m.setStatus("Removed from My List: "+msg.Title, false)
		}
		return nil

	case ExternalLaunchedMsg:
		return m.setStatus("Launched: "+msg.Item.Title, false)

	case EmulationSavedMsg:
		label := msg.Device
		if label == "" {
			label = "off"
		}
		return m.setStatus("Device emulation: "+label, false)

	case ErrMsg:
		slog.Error("operation failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return ClearStatusCmd(errorTimeout)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return nil
	}

	// Anything else (cursor blink) goes to the search input
	if m.Route.Screen == ScreenSearch && m.Search.Focused() {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// The player captures every key while open
	if m.session != nil {
		return m.handlePlayerKey(msg)
	}

	if m.Route.Screen == ScreenSearch && m.Search.Focused() {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()
	case key.Matches(msg, Keys.TabHome):
		return m.switchTab(TabHome)
	case key.Matches(msg, Keys.TabFind):
		return m.switchTab(TabSearch)
	case key.Matches(msg, Keys.TabList):
		return m.switchTab(TabWatchlist)
	case key.Matches(msg, Keys.TabUser):
		return m.switchTab(TabProfile)
	case key.Matches(msg, Keys.NextTab):
		return m.cycleTab(1)
	case key.Matches(msg, Keys.PrevTab):
		return m.cycleTab(-1)
	}

	switch m.Route.Screen {
	case ScreenHome:
		return m.handleHomeKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenSearch:
		return m.handleSearchKey(msg)
	case ScreenWatchlist:
		return m.handleWatchlistKey(msg)
	case ScreenProfile:
		return m.handleProfileKey(msg)
	}
	return nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Up):
		m.Home.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.Home.MoveDown()
	case key.Matches(msg, Keys.Left):
		m.Home.MoveLeft()
	case key.Matches(msg, Keys.Right):
		m.Home.MoveRight()
	case key.Matches(msg, Keys.Enter):
		if item, ok := m.Home.Selected(); ok {
			return m.navigate(Route{Screen: ScreenDetail, ID: item.ID})
		}
	case key.Matches(msg, Keys.Play):
		if item, ok := m.Home.Selected(); ok {
			return m.openPlayer(item, false)
		}
	case key.Matches(msg, Keys.AddWatchlist):
		if item, ok := m.Home.Selected(); ok {
			return addToWatchlist(item)
		}
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, Keys.Back) {
		return m.back()
	}

	item, found := m.Detail.Item()
	if !found {
		return nil
	}

	switch {
	case key.Matches(msg, Keys.Play):
		return m.openPlayer(item, false)
	case key.Matches(msg, Keys.Trailer):
		if item.HasTrailer() {
			return m.openPlayer(item, true)
		}
		return m.setStatus("No trailer available", false)
	case key.Matches(msg, Keys.AddWatchlist):
		if m.Detail.ToggleWatchlist() {
			return addToWatchlist(item)
		}
		return removeFromWatchlist(item)
	case key.Matches(msg, Keys.OpenExternal):
		return OpenExternalCmd(m.PlaybackSvc, item)
	}
	return nil
}

func (m *Model) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "down":
		m.Search.Blur()
		return nil
	case "tab":
		m.Search.Blur()
		return m.cycleTab(1)
	case "shift+tab":
		m.Search.Blur()
		return m.cycleTab(-1)
	case "ctrl+right":
		m.Search.CycleGenre(1)
		m.runSearch()
		return nil
	case "ctrl+left":
		m.Search.CycleGenre(-1)
		m.runSearch()
		return nil
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.QueryChanged() {
		m.runSearch()
	}
	return cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.FocusSearch), key.Matches(msg, Keys.Back):
		return m.Search.Focus()
	case key.Matches(msg, Keys.Up):
		m.Search.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.Search.MoveDown()
	case key.Matches(msg, Keys.NextGenre):
		m.Search.CycleGenre(1)
		m.runSearch()
	case key.Matches(msg, Keys.PrevGenre):
		m.Search.CycleGenre(-1)
		m.runSearch()
	case key.Matches(msg, Keys.Enter):
		if item, ok := m.Search.Selected(); ok {
			return m.navigate(Route{Screen: ScreenDetail, ID: item.ID})
		}
	case key.Matches(msg, Keys.Play):
		if item, ok := m.Search.Selected(); ok {
			return m.openPlayer(item, false)
		}
	case key.Matches(msg, Keys.AddWatchlist):
		if item, ok := m.Search.Selected(); ok {
			return addToWatchlist(item)
		}
	}
	return nil
}

func (m *Model) handleWatchlistKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Up):
		m.WatchlistView.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.WatchlistView.MoveDown()
	case key.Matches(msg, Keys.Enter):
		if item, ok := m.WatchlistView.Selected(); ok {
			return m.navigate(Route{Screen: ScreenDetail, ID: item.ID})
		}
	case key.Matches(msg, Keys.Play):
		if item, ok := m.WatchlistView.Selected(); ok {
			return m.openPlayer(item, false)
		}
	case key.Matches(msg, Keys.Remove):
		if item, ok := m.WatchlistView.Selected(); ok {
			return removeFromWatchlist(item)
		}
	}
	return nil
}

func (m *Model) handleProfileKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Up):
		m.Profile.MoveUp()
	case key.Matches(msg, Keys.Down):
		m.Profile.MoveDown()
	case key.Matches(msg, Keys.Toggle):
		if m.Profile.Activate() == components.SettingEmulation {
			return m.setEmulation(m.Profile.Emulation())
		}
	case key.Matches(msg, Keys.ClearEmulator):
		if m.Profile.Current() == components.SettingEmulation && m.emulation != "" {
			m.Profile.SetEmulation("")
			return m.setEmulation("")
		}
	}
	return nil
}

func (m *Model) handlePlayerKey(msg tea.KeyMsg) tea.Cmd {
	o := m.session.Overlay

	switch {
	case key.Matches(msg, Keys.ClosePlayer):
		return m.closePlayer()
	case key.Matches(msg, Keys.TapControls):
		return m.tapControls()
	case key.Matches(msg, Keys.Retry):
		now := m.now()
		cmd, ok := o.Retry(now)
		if !ok {
			return nil
		}
		return tea.Batch(EngineCmd(m.engine, cmd), m.armTimers())
	case key.Matches(msg, Keys.PlayPause):
		cmd, ok := o.TogglePlay()
		return m.transport(cmd, ok)
	case key.Matches(msg, Keys.SkipForward):
		cmd, ok := o.SkipForward()
		return m.transport(cmd, ok)
	case key.Matches(msg, Keys.SkipBack):
		cmd, ok := o.SkipBackward()
		return m.transport(cmd, ok)
	case key.Matches(msg, Keys.Subtitles):
		o.ToggleSubtitles()
		return m.showControls()
	case key.Matches(msg, Keys.Quality):
		o.CycleQuality()
		return m.showControls()
	case key.Matches(msg, Keys.VolumeUp):
		o.AdjustVolume(1)
		return m.showControls()
	case key.Matches(msg, Keys.VolumeDown):
		o.AdjustVolume(-1)
		return m.showControls()
	}
	return nil
}

// transport sends a gesture's engine command and re-arms the controls
func (m *Model) transport(cmd playback.Command, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return tea.Batch(EngineCmd(m.engine, cmd), m.showControls())
}

func (m *Model) showControls() tea.Cmd {
	if m.session == nil {
		return nil
	}
	t := m.session.Overlay.Show(m.now())
	return HideControlsCmd(m.session.ID, t)
}

func (m *Model) tapControls() tea.Cmd {
	if m.session == nil {
		return nil
	}
	t, armed := m.session.Overlay.Tap(m.now())
	if !armed {
		return nil
	}
	return HideControlsCmd(m.session.ID, t)
}

// armTimers schedules the overlay's pending hide timer and load timeout
func (m *Model) armTimers() tea.Cmd {
	var cmds []tea.Cmd
	if t, ok := m.session.Overlay.ControlsTimer(); ok {
		cmds = append(cmds, HideControlsCmd(m.session.ID, t))
	}
	if t, ok := m.session.Overlay.LoadTimer(); ok {
		cmds = append(cmds, LoadTimeoutCmd(m.session.ID, t))
	}
	return tea.Batch(cmds...)
}

func (m *Model) openPlayer(item domain.ContentItem, trailer bool) tea.Cmd {
	if m.session != nil {
		return nil
	}

	var sess *service.Session
	if trailer {
		var err error
		if sess, err = m.PlaybackSvc.NewTrailerSession(item); err != nil {
			return func() tea.Msg { return ErrMsg{Err: err, Context: "trailer"} }
		}
	} else {
		sess = m.PlaybackSvc.NewSession(item)
	}

	m.session = sess
	m.engine = m.newEngine()
	m.started = false
	m.Search.Blur()

	load := sess.Overlay.Mount(m.now())
	return tea.Batch(
		EngineCmd(m.engine, load),
		WaitStatusCmd(m.engine.Statuses(), sess.ID),
		m.armTimers(),
	)
}

// closePlayer tears the overlay down and stops its engine
func (m *Model) closePlayer() tea.Cmd {
	if m.session == nil {
		return nil
	}
	m.session.Overlay.Close()
	slog.Info("playback session closed", "session", m.session.ID)

	engine := m.engine
	m.session = nil
	m.engine = nil
	m.started = false
	if engine == nil {
		return nil
	}
	return CloseEngineCmd(engine)
}

func (m *Model) handleEngineStatus(msg EngineStatusMsg) tea.Cmd {
	if m.session == nil || msg.SessionID != m.session.ID {
		return nil
	}

	cmds := []tea.Cmd{WaitStatusCmd(m.engine.Statuses(), m.session.ID)}
	if m.session.Overlay.ApplyStatus(msg.Status) && !m.started {
		m.started = true
		if cmd := m.startCommands(msg.Status); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// startCommands resumes from the continue-watching marker and autoplays
// once the stream first reports loaded
func (m *Model) startCommands(st domain.EngineStatus) tea.Cmd {
	var seq []playback.Command
	if !m.session.Trailer {
		if offset := m.session.Item.ResumeOffset(); offset > 0 {
			seq = append(seq, playback.Command{Kind: playback.CommandSeek, Position: offset})
		}
	}
	if m.Profile.Autoplay() && !st.Playing {
		seq = append(seq, playback.Command{Kind: playback.CommandPlay})
	}
	if len(seq) == 0 {
		return nil
	}
	return EngineCmd(m.engine, seq...)
}

func (m *Model) quit() tea.Cmd {
	if cmd := m.closePlayer(); cmd != nil {
		return tea.Sequence(cmd, tea.Quit)
	}
	return tea.Quit
}

// Navigation

func (m *Model) navigate(r Route) tea.Cmd {
	if r == m.Route {
		return nil
	}
	if _, isTab := TabFor(r); isTab {
		m.history = nil
	} else {
		m.history = append(m.history, m.Route)
	}
	return m.enter(r)
}

// enter shows r without touching history
func (m *Model) enter(r Route) tea.Cmd {
	m.Search.Blur()
	m.Route = r

	switch r.Screen {
	case ScreenDetail:
		m.loadDetail(r.ID)
	case ScreenSearch:
		return m.Search.Focus()
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		return m.enter(Route{Screen: ScreenHome})
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.enter(prev)
}

func (m *Model) switchTab(t Tab) tea.Cmd {
	return m.navigate(t.Route())
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	current, ok := TabFor(m.Route)
	if !ok {
		current = TabHome
	}
	n := len(Tabs)
	next := Tabs[((int(current)+delta)%n+n)%n]
	return m.switchTab(next)
}

func (m *Model) loadDetail(id string) {
	item, err := m.CatalogSvc.Detail(id)
	if err != nil {
		if !errors.Is(err, domain.ErrItemNotFound) {
			slog.Error("failed to load detail", "id", id, "error", err)
		}
		m.Detail.SetNotFound(id)
		return
	}
	m.Detail.SetItem(item, m.watchlist.Contains(id))
}

func (m *Model) runSearch() {
	m.Search.SetResult(m.CatalogSvc.Search(m.Search.Query(), m.Search.Genre()))
}

func (m *Model) refreshWatchlist() {
	m.WatchlistView.SetItems(m.CatalogSvc.Items(m.watchlist.IDs()))
	if item, ok := m.Detail.Item(); ok {
		m.Detail.SetInWatchlist(m.watchlist.Contains(item.ID))
	}
}

func (m *Model) setEmulation(device string) tea.Cmd {
	m.emulation = device
	m.updateLayout()
	return SaveEmulationCmd(m.PrefSvc, device)
}

func addToWatchlist(item domain.ContentItem) tea.Cmd {
	return func() tea.Msg {
		return WatchlistAddMsg{ID: item.ID, Title: item.Title}
	}
}

func removeFromWatchlist(item domain.ContentItem) tea.Cmd {
	return func() tea.Msg {
		return WatchlistRemoveMsg{ID: item.ID, Title: item.Title}
	}
}

// Layout

// contentSize returns the area available to the active screen
func (m Model) contentSize() (width, height int) {
	top, bottom := Insets(m.emulation)
	height = m.Height - top - bottom - FooterHeight
	if ShowsTabBar(m.Route) {
		height -= TabBarHeight
	}
	return max(m.Width-4, 0), max(height, 0)
}

func (m *Model) updateLayout() {
	top, bottom := Insets(m.emulation)
	height := max(m.Height-top-bottom-FooterHeight-TabBarHeight, 0)
	width := max(m.Width-4, 0)

	m.Home.SetSize(width, height)
	m.Search.SetSize(width, height)
	m.WatchlistView.SetSize(width, height)
	m.Profile.SetSize(width, height)
	m.Detail.SetSize(width, height+TabBarHeight)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	top, bottom := Insets(m.emulation)
	if m.session != nil {
		player := components.RenderPlayer(m.session.Overlay, m.Width, max(m.Height-top-bottom, 1), m.SpinnerFrame)
		return applyInsets(player, m.emulation, m.Width)
	}

	width, height := m.contentSize()
	var content string
	switch m.Route.Screen {
	case ScreenHome:
		content = m.Home.View()
	case ScreenDetail:
		content = m.Detail.View()
	case ScreenSearch:
		content = m.Search.View()
	case ScreenWatchlist:
		content = m.WatchlistView.View()
	case ScreenProfile:
		content = m.Profile.View()
	}
	content = styles.ScreenStyle.Render(
		lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content),
	)

	parts := []string{content}
	if tab, ok := TabFor(m.Route); ok {
		labels := make([]string, len(Tabs))
		for i, t := range Tabs {
			labels[i] = t.String()
		}
		parts = append(parts, components.RenderTabBar(labels, int(tab), m.Width))
	}
	parts = append(parts, m.renderFooter())

	return applyInsets(lipgloss.JoinVertical(lipgloss.Left, parts...), m.emulation, m.Width)
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	right := m.renderHints()

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderHints() string {
	var bindings []key.Binding
	switch m.Route.Screen {
	case ScreenHome:
		bindings = []key.Binding{Keys.Enter, Keys.Play, Keys.AddWatchlist, Keys.Quit}
	case ScreenDetail:
		bindings = []key.Binding{Keys.Play, Keys.AddWatchlist, Keys.Trailer, Keys.OpenExternal, Keys.Back}
	case ScreenSearch:
		bindings = []key.Binding{Keys.FocusSearch, Keys.NextGenre, Keys.Enter}
	case ScreenWatchlist:
		bindings = []key.Binding{Keys.Enter, Keys.Remove, Keys.Play}
	case ScreenProfile:
		bindings = []key.Binding{Keys.Toggle, Keys.ClearEmulator, Keys.Quit}
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(hints, "  ")
}
