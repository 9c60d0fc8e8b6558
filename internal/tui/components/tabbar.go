package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// RenderTabBar renders the bottom navigation centered in width
func RenderTabBar(labels []string, active, width int) string {
	tabs := make([]string, len(labels))
	for i, label := range labels {
		text := fmt.Sprintf("%d %s", i+1, label)
		if i == active {
			tabs[i] = styles.ActiveTabStyle.Render(text)
		} else {
			tabs[i] = styles.TabStyle.Render(text)
		}
	}
	bar := strings.Join(tabs, " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}
