package components

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// WatchlistPanel renders My List in watchlist order
type WatchlistPanel struct {
	items  []domain.ContentItem
	cursor int
	width  int
	height int
}

// NewWatchlistPanel creates an empty panel
func NewWatchlistPanel() WatchlistPanel {
	return WatchlistPanel{}
}

// SetItems replaces the list; the cursor is kept in range
func (w *WatchlistPanel) SetItems(items []domain.ContentItem) {
	w.items = items
	if w.cursor >= len(items) {
		w.cursor = max(len(items)-1, 0)
	}
}

// Items returns the listed items
func (w WatchlistPanel) Items() []domain.ContentItem {
	return w.items
}

// SetSize updates the component dimensions
func (w *WatchlistPanel) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// MoveUp moves the cursor up
func (w *WatchlistPanel) MoveUp() {
	if w.cursor > 0 {
		w.cursor--
	}
}

// MoveDown moves the cursor down
func (w *WatchlistPanel) MoveDown() {
	if w.cursor < len(w.items)-1 {
		w.cursor++
	}
}

// Selected returns the item under the cursor
func (w WatchlistPanel) Selected() (domain.ContentItem, bool) {
	if w.cursor >= len(w.items) {
		return domain.ContentItem{}, false
	}
	return w.items[w.cursor], true
}

// View renders the component
func (w WatchlistPanel) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("My List"))
	b.WriteString("\n\n")

	if len(w.items) == 0 {
		b.WriteString(styles.DimStyle.Render("Your list is empty. Press a on any title to add it."))
		return b.String()
	}

	maxRows := max(w.height-3, 1)
	first := 0
	if w.cursor >= maxRows {
		first = w.cursor - maxRows + 1
	}
	for i := first; i < len(w.items) && i < first+maxRows; i++ {
		item := w.items[i]
		b.WriteString(RenderItemRow(&item, i == w.cursor, w.width, nil))
		b.WriteString("\n")
	}
	return b.String()
}
