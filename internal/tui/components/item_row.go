package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// RenderItemRow renders one catalog entry as a list row. highlights are rune
// positions in the title to emphasise.
func RenderItemRow(item domain.ListItem, selected bool, width int, highlights []int) string {
	title := styles.Truncate(item.GetTitle(), max(width/2, 10))
	if len([]rune(title)) < len([]rune(item.GetTitle())) {
		highlights = nil // positions no longer line up
	}

	parts := []styles.RowPart{
		{Text: styles.RenderHighlighted(title, highlights, selected), Raw: true},
	}
	if item.GetYear() > 0 {
		parts = append(parts, styles.RowPart{Text: fmt.Sprintf(" (%d)", item.GetYear())})
	}

	used := lipgloss.Width(title) + 8
	if desc := item.GetDescription(); desc != "" && width-used > 12 {
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{
			Text:       "  " + styles.Truncate(desc, width-used-4),
			Foreground: &dim,
		})
	}

	if p := item.GetProgress(); p > 0 {
		accent := styles.MarqueeRed
		parts = append(parts, styles.RowPart{
			Text:       fmt.Sprintf("  %d%%", int(p*100)),
			Foreground: &accent,
		})
	}

	return styles.RenderListRow(parts, selected, width)
}
