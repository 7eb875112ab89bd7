package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	slugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

// choice records the route a commit navigates to.
type choice struct {
	path string
}

func (c *choice) Navigate(path string) { c.path = path }

// Picker is a simple TUI for choosing one search result. It drives a
// search.Box, so the cursor follows the box's wrap rules.
type Picker struct {
	box       *search.Box
	chosen    *choice
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over already resolved results for query, with the
// first result highlighted.
func New(results []model.SearchResult, query string) Picker {
	chosen := &choice{}
	box := search.NewBox(search.BoxParams{Navigator: chosen})
	if req, ok := box.SetQuery(query); ok {
		box.Apply(search.Resolution{Seq: req.Seq, Query: req.Query, Results: results})
	}
	box.Activate()
	box.MoveDown()

	return Picker{
		box:    box,
		chosen: chosen,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if p.box.Commit() {
				p.selected = true
				return p, tea.Quit
			}
			return p, nil

		case tea.KeyDown:
			p.box.MoveDown()
			return p, nil

		case tea.KeyUp:
			p.box.MoveUp()
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.box.MoveDown()
				return p, nil
			case "k":
				p.box.MoveUp()
				return p, nil
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	results := p.box.Results()
	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.box.DisplayText(), len(results))))
	b.WriteString("\n\n")

	for i, result := range results {
		cursor := "  "
		style := normalStyle
		if i == p.box.Cursor() {
			cursor = "> "
			style = selectedStyle
		}

		fmt.Fprintf(&b, "%s%s\n", cursor, style.Render(result.CardName))
		fmt.Fprintf(&b, "   %s\n", slugStyle.Render(result.Slug))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// Cursor returns the highlighted index, or search.NoCursor.
func (p Picker) Cursor() int {
	return p.box.Cursor()
}

// SelectedRoute returns the route of the chosen result, or "" if cancelled.
func (p Picker) SelectedRoute() string {
	if p.cancelled || !p.selected {
		return ""
	}
	return p.chosen.path
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
