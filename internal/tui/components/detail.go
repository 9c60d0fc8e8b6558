package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Detail shows one title's metadata. The in-watchlist flag is local to the
// screen; the app forwards changes to the watchlist owner.
type Detail struct {
	item        domain.ContentItem
	found       bool
	missingID   string
	inWatchlist bool
	width       int
	height      int
}

// NewDetail creates an empty detail screen
func NewDetail() Detail {
	return Detail{}
}

// SetItem shows item
func (d *Detail) SetItem(item domain.ContentItem, inWatchlist bool) {
	d.item = item
	d.found = true
	d.missingID = ""
	d.inWatchlist = inWatchlist
}

// SetNotFound shows the not-found message for id
func (d *Detail) SetNotFound(id string) {
	d.item = domain.ContentItem{}
	d.found = false
	d.missingID = id
	d.inWatchlist = false
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Item returns the shown item, false on the not-found screen
func (d Detail) Item() (domain.ContentItem, bool) {
	return d.item, d.found
}

// InWatchlist returns the local watchlist flag
func (d Detail) InWatchlist() bool { return d.inWatchlist }

// SetInWatchlist sets the local watchlist flag
func (d *Detail) SetInWatchlist(in bool) { d.inWatchlist = in }

// ToggleWatchlist flips the local flag and returns the new value
func (d *Detail) ToggleWatchlist() bool {
	d.inWatchlist = !d.inWatchlist
	return d.inWatchlist
}

// View renders the component
func (d Detail) View() string {
	if !d.found {
		return lipgloss.Place(d.width, max(d.height, 3), lipgloss.Center, lipgloss.Center,
			styles.TitleStyle.Render("Movie not found")+"\n"+
				styles.DimStyle.Render("esc to go back"))
	}

	it := d.item
	width := max(d.width-4, 20)

	var b strings.Builder
	b.WriteString(styles.HeroTitleStyle.Render(it.Title))
	b.WriteString("\n")
	b.WriteString(styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", it.Rating)))
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("  %d · %s · %s", it.Year, it.FormattedDuration(), it.Language)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(it.GenreLine()))
	b.WriteString("\n\n")

	if it.ContinueWatching != nil {
		b.WriteString(styles.RenderProgressBar(it.ContinueWatching.Fraction, min(width-10, 40)))
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" %d%% watched", it.ContinueWatching.Percent())))
		b.WriteString("\n\n")
	}

	b.WriteString(d.renderActions())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(width).Render(it.Description))
	b.WriteString("\n")

	b.WriteString(styles.SectionStyle.Render("Details"))
	b.WriteString("\n")
	b.WriteString(field("Director", it.Director))
	b.WriteString(field("Cast", strings.Join(it.Cast, ", ")))
	b.WriteString(field("Language", it.Language))
	b.WriteString(field("Subtitles", strings.Join(it.Subtitles, ", ")))
	b.WriteString(field("Quality", strings.Join(it.Qualities, ", ")))

	return b.String()
}

func (d Detail) renderActions() string {
	list := "+ My List"
	if d.inWatchlist {
		list = "✓ In My List"
	}

	actions := []string{
		styles.BadgeStyle.Render("▶ Play (p)"),
		styles.DimBadgeStyle.Render(list + " (a)"),
	}
	if d.item.HasTrailer() {
		actions = append(actions, styles.DimBadgeStyle.Render("Trailer (t)"))
	}
	actions = append(actions, styles.DimBadgeStyle.Render("External (o)"))
	return strings.Join(actions, " ")
}

func field(label, value string) string {
	if value == "" {
		value = "—"
	}
	return styles.DimStyle.Render(fmt.Sprintf("%-10s ", label+":")) + styles.SubtitleStyle.Render(value) + "\n"
}
