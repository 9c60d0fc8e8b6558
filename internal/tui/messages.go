package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// NavigateMsg switches to a route
type NavigateMsg struct {
	Route Route
}

// WatchlistAddMsg asks the watchlist owner to add an item
type WatchlistAddMsg struct {
	ID    string
	Title string
}

// WatchlistRemoveMsg asks the watchlist owner to remove an item
type WatchlistRemoveMsg struct {
	ID    string
	Title string
}

// EngineStatusMsg carries one media engine status report
type EngineStatusMsg struct {
	SessionID string
	Status    domain.EngineStatus
}

// EngineClosedMsg signals the status channel of a session closed
type EngineClosedMsg struct {
	SessionID string
}

// HideControlsMsg fires when a controls hide timer elapses
type HideControlsMsg struct {
	SessionID string
	Seq       uint64
}

// LoadTimeoutMsg fires when a load timeout elapses
type LoadTimeoutMsg struct {
	SessionID string
	Seq       uint64
}

// ExternalLaunchedMsg signals an external player was started
type ExternalLaunchedMsg struct {
	Item domain.ContentItem
}

// EmulationSavedMsg signals the device-emulation preference was stored
type EmulationSavedMsg struct {
	Device string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}
