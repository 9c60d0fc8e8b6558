package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/playback"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// RenderPlayer renders the full-screen playback overlay. The picture area is
// blank; only the title bar and the transport controls are drawn.
func RenderPlayer(o *playback.Overlay, width, height, spinnerFrame int) string {
	st := o.State()

	var center string
	switch o.Phase() {
	case playback.PhaseLoading:
		frame := styles.SpinnerFrames[spinnerFrame%len(styles.SpinnerFrames)]
		center = styles.SpinnerStyle.Render(frame) + " " + styles.DimStyle.Render("Loading...")
	case playback.PhaseFailed:
		msg := "Playback failed"
		if err := o.Err(); err != nil {
			msg = err.Error()
		}
		center = styles.ErrorStyle.Render(msg) + "\n" + styles.DimStyle.Render("r to retry · esc to close")
	}

	var top, bottom string
	if o.ControlsVisible() {
		top = styles.TitleStyle.Render(styles.Truncate(o.Title(), max(width-4, 10)))
		if center == "" {
			center = renderTransport(st)
		}
		bottom = renderControlBar(o, st, width)
	}

	bodyHeight := max(height-lipgloss.Height(top)-lipgloss.Height(bottom)-2, 1)
	body := lipgloss.Place(max(width-2, 1), bodyHeight, lipgloss.Center, lipgloss.Center, center)

	return styles.PlayerStyle.Width(max(width, 1)).Height(max(height, 1)).Render(
		lipgloss.JoinVertical(lipgloss.Left, top, body, bottom),
	)
}

func renderTransport(st playback.State) string {
	play := "▶"
	if st.Playing {
		play = "⏸"
	}
	buttons := []string{
		styles.ControlStyle.Render("⏪"),
		styles.ControlStyle.Bold(true).Render(play),
		styles.ControlStyle.Render("⏩"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

func renderControlBar(o *playback.Overlay, st playback.State, width int) string {
	clock := fmt.Sprintf("%s / %s", playback.FormatClock(st.Position), playback.FormatClock(st.Duration))
	barWidth := max(width-lipgloss.Width(clock)-6, 10)
	progress := styles.RenderProgressBar(o.ProgressFraction(), barWidth) + "  " + styles.SubtitleStyle.Render(clock)

	subs := "CC off"
	if st.Subtitles {
		subs = "CC on"
	}
	if len(o.SubtitleTracks()) == 0 {
		subs = "CC n/a"
	}
	settings := []string{
		styles.BadgeStyle.Render(st.Quality),
		styles.DimBadgeStyle.Render(subs),
		styles.DimBadgeStyle.Render(fmt.Sprintf("Vol %d%%", int(st.Volume*100+0.5))),
	}

	help := []string{
		styles.HelpKeyStyle.Render("space") + " " + styles.HelpDescStyle.Render("play/pause"),
		styles.HelpKeyStyle.Render("←/→") + " " + styles.HelpDescStyle.Render("skip"),
		styles.HelpKeyStyle.Render("esc") + " " + styles.HelpDescStyle.Render("close"),
	}

	return strings.Join([]string{
		progress,
		strings.Join(settings, " "),
		strings.Join(help, "  "),
	}, "\n")
}
