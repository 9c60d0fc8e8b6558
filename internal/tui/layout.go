package tui

import (
	"strings"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Vertical chrome around the active screen
const (
	TabBarHeight = 1
	FooterHeight = 1
)

// Insets returns the lines reserved at the top and bottom of the terminal
// when emulating a device's safe area
func Insets(device string) (top, bottom int) {
	switch device {
	case adapter.EmulateIOS:
		return 2, 1
	case adapter.EmulateAndroid:
		return 2, 0
	default:
		return 0, 0
	}
}

// applyInsets pads rendered content with the device's safe area
func applyInsets(content, device string, width int) string {
	top, bottom := Insets(device)
	if top == 0 && bottom == 0 {
		return content
	}

	var b strings.Builder
	if top > 0 {
		b.WriteString(styles.DimStyle.Render(styles.Pad(statusBarText(device), width)))
		b.WriteString(strings.Repeat("\n", top))
	}
	b.WriteString(content)
	if bottom > 0 {
		b.WriteString(strings.Repeat("\n", bottom))
	}
	return b.String()
}

func statusBarText(device string) string {
	switch device {
	case adapter.EmulateIOS:
		return " 9:41"
	case adapter.EmulateAndroid:
		return " 12:00"
	default:
		return ""
	}
}
