package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Back    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	TabHome key.Binding
	TabFind key.Binding
	TabList key.Binding
	TabUser key.Binding

	// Actions
	Quit          key.Binding
	Play          key.Binding
	Trailer       key.Binding
	AddWatchlist  key.Binding
	OpenExternal  key.Binding
	Remove        key.Binding
	FocusSearch   key.Binding
	NextGenre     key.Binding
	PrevGenre     key.Binding
	Toggle        key.Binding
	ClearEmulator key.Binding

	// Player
	TapControls key.Binding
	PlayPause   key.Binding
	SkipForward key.Binding
	SkipBack    key.Binding
	Subtitles   key.Binding
	Quality     key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding
	Retry       key.Binding
	ClosePlayer key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		TabHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		TabFind: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "search"),
		),
		TabList: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "my list"),
		),
		TabUser: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "profile"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trailer"),
		),
		AddWatchlist: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "my list"),
		),
		OpenExternal: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in player"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "type"),
		),
		NextGenre: key.NewBinding(
			key.WithKeys("ctrl+right", "]"),
			key.WithHelp("]", "next genre"),
		),
		PrevGenre: key.NewBinding(
			key.WithKeys("ctrl+left", "["),
			key.WithHelp("[", "prev genre"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "change"),
		),
		ClearEmulator: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("del", "reset"),
		),

		// Player
		TapControls: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c/click", "controls"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		SkipForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+10s"),
		),
		SkipBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-10s"),
		),
		Subtitles: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "subtitles"),
		),
		Quality: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "quality"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "vol up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "vol down"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		ClosePlayer: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
