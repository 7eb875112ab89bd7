package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Page   PageConfig
	Search SearchConfig
	Input  InputConfig
	Text   TextConfig
}

// PageConfig holds page body dimension configuration.
type PageConfig struct {
	// HeightReduction is subtracted from terminal height for page content.
	// Accounts for: app padding (1) + search line (1) + title (1) + pane borders (2) + help bar (3) = 8
	HeightReduction int

	// MinHeight is the minimum page height.
	MinHeight int

	// SplitWidthOffset is subtracted before splitting into two panes.
	// Accounts for borders and the gap between panes.
	SplitWidthOffset int

	// MinSplitWidth is the narrowest terminal that still renders two panes.
	MinSplitWidth int

	// SideWidthPercent is the left pane share of a split page.
	SideWidthPercent int

	// ContentPadding is subtracted from pane width for row rendering.
	ContentPadding int
}

// SearchConfig holds search box and dropdown configuration.
type SearchConfig struct {
	// Top is the screen row of the search line.
	Top int

	// Left is the screen column where the search line starts.
	Left int

	// MaxVisible is the most result rows shown in the dropdown.
	MaxVisible int

	WidthPercent int
	MinWidth     int
	MaxWidth     int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	FilterCharLimit int

	SearchWidth int
	FilterWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Page: PageConfig{
			HeightReduction:  8,
			MinHeight:        5,
			SplitWidthOffset: 6,
			MinSplitWidth:    80,
			SideWidthPercent: 40,
			ContentPadding:   4,
		},
		Search: SearchConfig{
			Top:          1,
			Left:         2,
			MaxVisible:   8,
			WidthPercent: 50,
			MinWidth:     50,
			MaxWidth:     72,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			FilterCharLimit: 50,
			SearchWidth:     40,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
