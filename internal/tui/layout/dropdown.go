package layout

// Region is a rectangle of screen cells, inclusive on both ends.
type Region struct {
	Top, Bottom int
	Left, Right int
}

// Contains reports whether the cell at (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return y >= r.Top && y <= r.Bottom && x >= r.Left && x <= r.Right
}

// CalculateDropdownWidth computes the search box width as a percentage of
// the terminal width, clamped between MinWidth and MaxWidth.
func CalculateDropdownWidth(terminalWidth int, cfg SearchConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100

	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-cfg.Left*2 {
		width = terminalWidth - cfg.Left*2
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateSearchRegion returns the screen area owned by the search box:
// the input line plus however many dropdown rows are on screen.
func CalculateSearchRegion(terminalWidth, dropdownRows int, cfg SearchConfig) Region {
	if dropdownRows < 0 {
		dropdownRows = 0
	}
	width := CalculateDropdownWidth(terminalWidth, cfg)
	return Region{
		Top:    cfg.Top,
		Bottom: cfg.Top + dropdownRows,
		Left:   cfg.Left,
		Right:  cfg.Left + width - 1,
	}
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
// A negative selectedIdx shows the head of the list.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
