package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	MarqueeRed = lipgloss.Color("#E50914")
	SlateDark  = lipgloss.Color("#141414")
	SlateLight = lipgloss.Color("#2F2F2F")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#B3B3B3")
	White      = lipgloss.Color("#F9FAFB")
	Gold       = lipgloss.Color("#F5C518")
	Green      = lipgloss.Color("#46D369")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	HeroTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			Underline(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(MarqueeRed)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	SectionStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginTop(1)
)

// Panel styles
var (
	ScreenStyle = lipgloss.NewStyle().
			Padding(0, 2)

	HeroStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MarqueeRed).
			Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Card styles for home rows
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1).
			Width(22)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(MarqueeRed).
				Padding(0, 1).
				Width(22)
)

// Tab bar styles
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(MarqueeRed).
			Bold(true).
			Padding(0, 2)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(MarqueeRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Progress bar styles
var (
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(MarqueeRed)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Badge and chip styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(MarqueeRed).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)

	ChipStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	ChipSelectedStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(MarqueeRed).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(MarqueeRed).
				Padding(0, 1)
)

// Player styles
var (
	PlayerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#000000")).
			Foreground(White)

	ControlStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)
)

// Spinner frames and style
var (
	SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(MarqueeRed)
)

// Filter prompt and match highlight styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(MarqueeRed).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(MarqueeRed).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(MarqueeRed).
					Background(SlateLight).
					Bold(true)
)

// Helper functions

// Truncate shortens s to width cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// RenderProgressBar renders a bar filled to fraction (0-1)
func RenderProgressBar(fraction float64, width int) string {
	if width < 3 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}

	filled := int(float64(width) * fraction)
	if filled > width {
		filled = width
	}

	return ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderHighlighted renders text with the runes at positions emphasised
func RenderHighlighted(text string, positions []int, selected bool) string {
	base := NormalItemStyle.Padding(0)
	hi := MatchHighlightStyle
	if selected {
		base = SelectedItemStyle.Padding(0)
		hi = MatchHighlightSelectedStyle
	}
	if len(positions) == 0 {
		return base.Render(text)
	}

	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var b strings.Builder
	for i, r := range []rune(text) {
		if marked[i] {
			b.WriteString(hi.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled separately so ANSI resets do not break the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight

	var result string
	visibleLen := 0

	for _, part := range parts {
		if part.Raw {
			result += part.Text
			visibleLen += lipgloss.Width(part.Text)
			continue
		}
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(bg)
		}
		result += style.Render(part.Text)
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width, minus one cell of margin each side
	padStyle := lipgloss.NewStyle()
	if selected {
		padStyle = padStyle.Background(bg)
	}
	if pad := width - visibleLen - 2; pad > 0 {
		result += padStyle.Render(strings.Repeat(" ", pad))
	}
	margin := padStyle.Render(" ")

	return margin + result + margin
}

// RowPart is one segment of a list row
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Raw        bool // already styled; rendered as-is
}
