package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchPanel is the search screen: a query input, genre chips and results
type SearchPanel struct {
	input     textinput.Model
	genres    []string
	genre     int
	result    service.SearchResult
	cursor    int
	width     int
	height    int
	prevQuery string
}

// NewSearchPanel creates a search panel with the given genre chips
func NewSearchPanel(genres []string) SearchPanel {
	ti := textinput.New()
	ti.Placeholder = "Titles, people, genres"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	if len(genres) == 0 {
		genres = []string{search.AllGenres}
	}
	return SearchPanel{input: ti, genres: genres}
}

// Focus focuses the query input
func (s *SearchPanel) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur releases the query input
func (s *SearchPanel) Blur() {
	s.input.Blur()
}

// Focused reports whether keystrokes go to the query input
func (s SearchPanel) Focused() bool {
	return s.input.Focused()
}

// SetSize updates the component dimensions
func (s *SearchPanel) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = max(width-10, 10)
}

// Query returns the current query
func (s SearchPanel) Query() string {
	return s.input.Value()
}

// SetQuery replaces the query text
func (s *SearchPanel) SetQuery(q string) {
	s.input.SetValue(q)
}

// Genre returns the selected genre chip
func (s SearchPanel) Genre() string {
	return s.genres[s.genre]
}

// Genres returns the chip labels
func (s SearchPanel) Genres() []string {
	return append([]string(nil), s.genres...)
}

// CycleGenre moves the chip selection by delta, wrapping around
func (s *SearchPanel) CycleGenre(delta int) string {
	n := len(s.genres)
	s.genre = ((s.genre+delta)%n + n) % n
	return s.Genre()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (s *SearchPanel) QueryChanged() bool {
	current := s.input.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// SetResult replaces the results; the cursor is kept in range
func (s *SearchPanel) SetResult(r service.SearchResult) {
	s.result = r
	if s.cursor >= s.visibleCount() {
		s.cursor = max(s.visibleCount()-1, 0)
	}
}

// Result returns the current results
func (s SearchPanel) Result() service.SearchResult {
	return s.result
}

// MoveUp moves the result cursor up
func (s *SearchPanel) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves the result cursor down
func (s *SearchPanel) MoveDown() {
	if s.cursor < s.visibleCount()-1 {
		s.cursor++
	}
}

// Selected returns the result (or suggestion) under the cursor
func (s SearchPanel) Selected() (domain.ContentItem, bool) {
	list := s.list()
	if s.cursor >= len(list) {
		return domain.ContentItem{}, false
	}
	return list[s.cursor], true
}

func (s SearchPanel) list() []domain.ContentItem {
	if len(s.result.Items) > 0 {
		return s.result.Items
	}
	return s.result.Suggestions
}

func (s SearchPanel) visibleCount() int {
	return len(s.list())
}

// Update forwards input messages to the query field
func (s SearchPanel) Update(msg tea.Msg) (SearchPanel, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the component
func (s SearchPanel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	b.WriteString(s.renderChips())
	b.WriteString("\n")

	maxRows := max(s.height-8, 3)
	switch {
	case len(s.result.Items) > 0:
		b.WriteString(styles.DimStyle.Render(pluralize(len(s.result.Items), "title")))
		b.WriteString("\n")
		s.renderList(&b, s.result.Items, maxRows)
	case len(s.result.Suggestions) > 0:
		b.WriteString(styles.DimStyle.Render("No matches. Did you mean:"))
		b.WriteString("\n")
		s.renderList(&b, s.result.Suggestions, maxRows)
	default:
		b.WriteString(styles.DimStyle.Render("No results found"))
	}
	return b.String()
}

func (s SearchPanel) renderChips() string {
	chips := make([]string, len(s.genres))
	for i, g := range s.genres {
		if i == s.genre {
			chips[i] = styles.ChipSelectedStyle.Render(g)
		} else {
			chips[i] = styles.ChipStyle.Render(g)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	if lipgloss.Width(row) <= s.width || s.width == 0 {
		return row
	}
	// Too wide: show the selected chip with its neighbours
	lo := max(s.genre-1, 0)
	hi := min(s.genre+2, len(chips))
	return styles.DimStyle.Render("‹ ") + lipgloss.JoinHorizontal(lipgloss.Top, chips[lo:hi]...) + styles.DimStyle.Render(" ›")
}

func (s SearchPanel) renderList(b *strings.Builder, items []domain.ContentItem, maxRows int) {
	first := 0
	if s.cursor >= maxRows {
		first = s.cursor - maxRows + 1
	}
	query := strings.TrimSpace(s.input.Value())
	for i := first; i < len(items) && i < first+maxRows; i++ {
		item := items[i]
		b.WriteString(RenderItemRow(&item, i == s.cursor, s.width, search.Highlight(query, item.Title)))
		b.WriteString("\n")
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
