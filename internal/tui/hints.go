package tui

import (
	"strings"

	"github.com/nikbrunner/brawlhub/internal/nav"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move h:back enter:open"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, enter, etc.)
	Filter []Hint // Color filter and local filter hints
	Action []Hint // Page actions (flip, yank, export)
	System []Hint // System hints (esc)
}

// All returns all hints flattened in display order: Nav + Filter + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Filter)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Filter...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the hints for whatever owns the keyboard.
func (a App) getContextualHints() HintSet {
	switch {
	case a.search.Focused:
		return a.getSearchHints()
	case a.filter.Active:
		return a.getFilterHints()
	}

	switch a.page.route.Kind {
	case nav.RouteCommanders, nav.RouteCards:
		return a.getListPageHints()
	case nav.RouteCard:
		return a.getCardPageHints()
	case nav.RouteCommander:
		return a.getCommanderPageHints()
	case nav.RouteDeck:
		return a.getDeckPageHints()
	case nav.RouteHome:
		return HintSet{Nav: listNavHints()}
	default:
		return HintSet{}
	}
}

func listNavHints() []Hint {
	return []Hint{
		{Key: "j/k", Desc: "move"},
		{Key: "enter", Desc: "open"},
	}
}

// getSearchHints returns hints while the search line has focus.
func (a App) getSearchHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "↓/↑", Desc: "select"},
			{Key: "tab", Desc: "complete"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "open"},
		},
		System: []Hint{
			{Key: "esc", Desc: "close"},
		},
	}
}

// getFilterHints returns hints while the local filter has focus.
func (a App) getFilterHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "filter"},
			{Key: "↓/↑", Desc: "move"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "apply"},
		},
		System: []Hint{
			{Key: "esc", Desc: "clear"},
		},
	}
}

// getListPageHints returns hints for the commanders and cards pages.
func (a App) getListPageHints() HintSet {
	hints := HintSet{
		Nav: listNavHints(),
		Filter: []Hint{
			{Key: "w/u/b/r/g", Desc: "colors"},
			{Key: "c", Desc: "colorless"},
			{Key: "x", Desc: "clear"},
			{Key: "f", Desc: "filter"},
		},
		Action: []Hint{
			{Key: "o", Desc: "browser"},
		},
	}
	if a.filter.Query() != "" {
		hints.System = []Hint{{Key: "esc", Desc: "clear filter"}}
	}
	return hints
}

// getCardPageHints returns hints for a card page.
func (a App) getCardPageHints() HintSet {
	hints := HintSet{
		Action: []Hint{
			{Key: "Y", Desc: "yank scryfall"},
			{Key: "o", Desc: "browser"},
		},
	}
	if a.page.card != nil && a.page.card.IsDoubleFaced() {
		hints.Action = append([]Hint{{Key: "t", Desc: "flip"}}, hints.Action...)
	}
	return hints
}

// getCommanderPageHints returns hints for a commander page.
func (a App) getCommanderPageHints() HintSet {
	hints := HintSet{
		Nav: listNavHints(),
		Filter: []Hint{
			{Key: "f", Desc: "filter"},
		},
		Action: []Hint{
			{Key: "Y", Desc: "yank scryfall"},
			{Key: "o", Desc: "browser"},
		},
	}
	if a.page.commander != nil && a.page.commander.IsDoubleFaced() {
		hints.Action = append([]Hint{{Key: "t", Desc: "flip"}}, hints.Action...)
	}
	return hints
}

// getDeckPageHints returns hints for a deck page.
func (a App) getDeckPageHints() HintSet {
	return HintSet{
		Nav: listNavHints(),
		Filter: []Hint{
			{Key: "f", Desc: "filter"},
		},
		Action: []Hint{
			{Key: "Y", Desc: "yank list"},
			{Key: "e", Desc: "export"},
			{Key: "o", Desc: "browser"},
		},
	}
}

// getGlobalHints returns hints available on every page.
func (a App) getGlobalHints() []Hint {
	if a.search.Focused || a.filter.Active {
		return nil
	}
	return []Hint{
		{Key: "/", Desc: "search"},
		{Key: "h", Desc: "back"},
		{Key: "H", Desc: "home"},
		{Key: "C", Desc: "commanders"},
		{Key: "A", Desc: "cards"},
		{Key: "q", Desc: "quit"},
	}
}
