package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/nav"
	"github.com/nikbrunner/brawlhub/internal/search"
	"github.com/nikbrunner/brawlhub/internal/tui/layout"
)

// MessageType controls how the status line renders a message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// SearchState holds the search line: the text input and the box it drives.
type SearchState struct {
	Input   textinput.Model
	Box     *search.Box
	Focused bool
}

// NewSearchState creates a SearchState with initialized input. The ghost
// completion is drawn by the input's suggestion support.
func NewSearchState(cfg layout.LayoutConfig, styles Styles, box *search.Box) SearchState {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search for Magic cards..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	input.TextStyle = styles.SearchInput
	input.PlaceholderStyle = styles.SearchGhost
	input.CompletionStyle = styles.SearchGhost
	input.ShowSuggestions = true
	input.Cursor.SetMode(cursor.CursorStatic)
	return SearchState{
		Input: input,
		Box:   box,
	}
}

// syncInput shows the box's display text in the input, so that a highlighted
// result's name becomes the text the next keystroke edits, and refreshes the
// ghost completion.
func (s *SearchState) syncInput() {
	if text := s.Box.DisplayText(); s.Input.Value() != text {
		s.Input.SetValue(text)
		s.Input.CursorEnd()
	}
	if ghost := s.Box.Ghost(); ghost != "" {
		s.Input.SetSuggestions([]string{s.Box.Query() + ghost})
	} else {
		s.Input.SetSuggestions(nil)
	}
}

// focus gives the input focus and shows the results.
func (s *SearchState) focus() tea.Cmd {
	s.Focused = true
	s.Box.Activate()
	s.syncInput()
	return s.Input.Focus()
}

// blur hides the results and releases focus.
func (s *SearchState) blur() {
	s.Focused = false
	s.Box.Dismiss()
	s.Input.Blur()
	s.syncInput()
}

// FilterState holds the local fuzzy filter over the current page's rows.
type FilterState struct {
	Input  textinput.Model
	Active bool // input has focus
}

// NewFilterState creates a FilterState with initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Prompt = "f: "
	input.Placeholder = "Filter..."
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.FilterWidth
	input.Cursor.SetMode(cursor.CursorStatic)
	return FilterState{Input: input}
}

// Query returns the current filter text.
func (f FilterState) Query() string {
	return f.Input.Value()
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Input.Blur()
	f.Active = false
}

// page is the data loaded for one route.
type page struct {
	route nav.Route
	title string

	rows   []Row
	cursor int

	card      *model.TopCard
	commander *model.CommanderStats
	top       *model.CommanderTopCards
	deck      *model.Deck
	flipped   bool

	err error
}

// ready reports whether a detail page has the data it renders.
func (p *page) ready() bool {
	switch p.route.Kind {
	case nav.RouteCard:
		return p.card != nil
	case nav.RouteCommander:
		return p.commander != nil
	case nav.RouteDeck:
		return p.deck != nil
	}
	return true
}
