package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/service"
)

// Command factories for async operations

const engineCommandTimeout = 2 * time.Second

// EngineCmd sends commands to the media engine in order. Nothing is
// reported on success; the outcome shows up in a later status report.
func EngineCmd(engine domain.MediaEngine, cmds ...playback.Command) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), engineCommandTimeout)
		defer cancel()

		for _, cmd := range cmds {
			var err error
			switch cmd.Kind {
			case playback.CommandLoad:
				err = engine.Load(ctx, cmd.URI)
			case playback.CommandPlay:
				err = engine.Play(ctx)
			case playback.CommandPause:
				err = engine.Pause(ctx)
			case playback.CommandSeek:
				err = engine.SeekTo(ctx, cmd.Position)
			}
			if errors.Is(err, domain.ErrEngineClosed) {
				return nil
			}
			if err != nil {
				return ErrMsg{Err: err, Context: cmd.String()}
			}
		}
		return nil
	}
}

// WaitStatusCmd waits for the next engine status report. Update re-issues
// it after every report, so reports are consumed one at a time.
func WaitStatusCmd(statuses <-chan domain.EngineStatus, sessionID string) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-statuses
		if !ok {
			return EngineClosedMsg{SessionID: sessionID}
		}
		return EngineStatusMsg{SessionID: sessionID, Status: st}
	}
}

// CloseEngineCmd stops an engine off the update loop
func CloseEngineCmd(engine domain.MediaEngine) tea.Cmd {
	return func() tea.Msg {
		if err := engine.Close(); err != nil {
			return ErrMsg{Err: err, Context: "closing player"}
		}
		return nil
	}
}

// HideControlsCmd delivers HideControlsMsg at the timer deadline
func HideControlsCmd(sessionID string, t playback.Timer) tea.Cmd {
	return tea.Tick(time.Until(t.Deadline), func(time.Time) tea.Msg {
		return HideControlsMsg{SessionID: sessionID, Seq: t.Seq}
	})
}

// LoadTimeoutCmd delivers LoadTimeoutMsg at the timer deadline
func LoadTimeoutCmd(sessionID string, t playback.Timer) tea.Cmd {
	return tea.Tick(time.Until(t.Deadline), func(time.Time) tea.Msg {
		return LoadTimeoutMsg{SessionID: sessionID, Seq: t.Seq}
	})
}

// OpenExternalCmd hands an item to an external player
func OpenExternalCmd(svc *service.PlaybackService, item domain.ContentItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.OpenExternal(ctx, item); err != nil {
			return ErrMsg{Err: err, Context: "starting playback"}
		}
		return ExternalLaunchedMsg{Item: item}
	}
}

// SaveEmulationCmd persists the device-emulation preference
func SaveEmulationCmd(svc *service.PreferenceService, device string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.SetEmulation(device); err != nil {
			return ErrMsg{Err: err, Context: "saving preference"}
		}
		return EmulationSavedMsg{Device: device}
	}
}

// NavigateCmd requests a route change
func NavigateCmd(r Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: r}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// TickCmd drives the loading spinner
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
