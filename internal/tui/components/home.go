package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	cardWidth      = 26 // rendered width including border
	rowHeight      = 6  // title + card + spacing
	heroHeight     = 7
	heroBlurbLines = 2
)

// Home is the browse screen: a featured hero above titled rows of cards.
// The cursor is either on the hero or on a card.
type Home struct {
	featured  *domain.ContentItem
	rows      []service.Row
	onHero    bool
	row       int
	cols      []int // cursor column per row
	colOffset []int // first visible card per row
	width     int
	height    int
}

// NewHome creates an empty home screen
func NewHome() Home {
	return Home{}
}

// SetContent replaces the hero and rows and resets the cursor to the hero
func (h *Home) SetContent(featured *domain.ContentItem, rows []service.Row) {
	h.featured = featured
	h.rows = rows
	h.row = 0
	h.cols = make([]int, len(rows))
	h.colOffset = make([]int, len(rows))
	h.onHero = featured != nil
}

// SetSize updates the component dimensions
func (h *Home) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// OnHero reports whether the hero is focused
func (h Home) OnHero() bool { return h.onHero }

// Cursor returns the focused row and column
func (h Home) Cursor() (row, col int) {
	if len(h.cols) == 0 {
		return 0, 0
	}
	return h.row, h.cols[h.row]
}

// MoveUp moves to the previous row, or onto the hero from the first row
func (h *Home) MoveUp() {
	switch {
	case h.onHero:
	case h.row > 0:
		h.row--
	case h.featured != nil:
		h.onHero = true
	}
}

// MoveDown moves to the next row, or off the hero onto the first row
func (h *Home) MoveDown() {
	if h.onHero {
		if len(h.rows) > 0 {
			h.onHero = false
		}
		return
	}
	if h.row < len(h.rows)-1 {
		h.row++
	}
}

// MoveLeft moves to the previous card in the row
func (h *Home) MoveLeft() {
	if h.onHero || len(h.rows) == 0 {
		return
	}
	if h.cols[h.row] > 0 {
		h.cols[h.row]--
	}
}

// MoveRight moves to the next card in the row
func (h *Home) MoveRight() {
	if h.onHero || len(h.rows) == 0 {
		return
	}
	if h.cols[h.row] < len(h.rows[h.row].Items)-1 {
		h.cols[h.row]++
	}
}

// Selected returns the focused item
func (h Home) Selected() (domain.ContentItem, bool) {
	if h.onHero {
		if h.featured == nil {
			return domain.ContentItem{}, false
		}
		return *h.featured, true
	}
	if len(h.rows) == 0 {
		return domain.ContentItem{}, false
	}
	items := h.rows[h.row].Items
	col := h.cols[h.row]
	if col >= len(items) {
		return domain.ContentItem{}, false
	}
	return items[col], true
}

// View renders the component
func (h *Home) View() string {
	var b strings.Builder

	b.WriteString(styles.AccentStyle.Bold(true).Render("MARQUEE"))
	b.WriteString("\n")

	budget := h.height - 1
	if h.featured != nil {
		b.WriteString(h.renderHero())
		b.WriteString("\n")
		budget -= heroHeight
	}

	if len(h.rows) == 0 {
		b.WriteString(styles.DimStyle.Render("Nothing to show"))
		return b.String()
	}

	fit := max(budget/rowHeight, 1)
	first := 0
	if !h.onHero && h.row >= fit {
		first = h.row - fit + 1
	}
	for i := first; i < len(h.rows) && i < first+fit; i++ {
		b.WriteString(h.renderRow(i))
		b.WriteString("\n")
	}
	return b.String()
}

func (h *Home) renderHero() string {
	f := h.featured
	width := max(h.width-4, 20)

	var b strings.Builder
	b.WriteString(styles.HeroTitleStyle.Render(f.Title))
	b.WriteString("  ")
	b.WriteString(styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", f.Rating)))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(f.GenreLine()+" · "+f.Subtitle(), width-4)))
	b.WriteString("\n")
	blurb := lipgloss.NewStyle().Width(width - 4).MaxHeight(heroBlurbLines).Render(f.Description)
	b.WriteString(styles.DimStyle.Render(blurb))
	b.WriteString("\n")

	actions := styles.DimBadgeStyle.Render("p Play") + " " + styles.DimBadgeStyle.Render("a My List")
	if h.onHero {
		actions = styles.BadgeStyle.Render("p Play") + " " + styles.BadgeStyle.Render("a My List")
	}
	b.WriteString(actions)

	style := styles.HeroStyle.Width(width)
	if !h.onHero {
		style = style.BorderForeground(styles.DimGray)
	}
	return style.Render(b.String())
}

func (h *Home) renderRow(i int) string {
	row := h.rows[i]
	focused := !h.onHero && i == h.row

	title := styles.TitleStyle.Render(row.Title)
	if focused {
		title = styles.AccentStyle.Bold(true).Render(row.Title)
	}

	visible := max(h.width/cardWidth, 1)
	col := h.cols[i]
	off := h.colOffset[i]
	if col < off {
		off = col
	}
	if col >= off+visible {
		off = col - visible + 1
	}
	h.colOffset[i] = off

	var cards []string
	for j := off; j < len(row.Items) && j < off+visible; j++ {
		cards = append(cards, renderCard(row.Items[j], focused && j == col))
	}

	more := ""
	if off+visible < len(row.Items) {
		more = styles.DimStyle.Render(" ›")
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Center, append(cards, more)...)
}

func renderCard(item domain.ContentItem, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}

	inner := cardWidth - 4
	top := styles.Truncate(item.Title, inner)

	var bottom string
	if item.ContinueWatching != nil {
		bottom = styles.RenderProgressBar(item.ContinueWatching.Fraction, inner-5) +
			fmt.Sprintf(" %3d%%", item.ContinueWatching.Percent())
	} else {
		bottom = styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", item.Rating)) +
			styles.DimStyle.Render(fmt.Sprintf(" · %d", item.Year))
	}
	return style.Render(top + "\n" + bottom)
}
