package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Section      lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Stat         lipgloss.Style
	Subtle       lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "open", "move")
	HintLabel    lipgloss.Style // "Local" / "Global" row labels
	Breadcrumb   lipgloss.Style // Route path above the page body

	SearchPrompt   lipgloss.Style
	SearchInput    lipgloss.Style
	SearchGhost    lipgloss.Style // Completion of the top result past the typed query
	DropdownItem   lipgloss.Style
	DropdownCursor lipgloss.Style

	ColorOn  lipgloss.Style // Selected pip in the color filter bar
	ColorOff lipgloss.Style
	Match    lipgloss.Style // Fuzzy filter matched runes
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	inverse := lipgloss.Color("#1A1A1A")

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(inverse),

		Stat: lipgloss.NewStyle().
			Foreground(accent),

		Subtle: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(border),

		Breadcrumb: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		SearchPrompt: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		SearchInput: lipgloss.NewStyle().
			Foreground(primary),

		SearchGhost: lipgloss.NewStyle().
			Foreground(subtle),

		DropdownItem: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		DropdownCursor: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(inverse),

		ColorOn: lipgloss.NewStyle().
			Bold(true).
			Background(accent).
			Foreground(inverse).
			Padding(0, 1),

		ColorOff: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		Match: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
	}
}
