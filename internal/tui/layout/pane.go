package layout

// SplitLayout holds calculated widths for a two-pane detail page.
type SplitLayout struct {
	Left    int
	Right   int
	Stacked bool // true when the terminal is too narrow and panes render one above the other
}

// CalculatePaneHeight computes the content height for the page body.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PageConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateSplit computes pane widths for detail pages (card face | stats,
// commander | top cards, deck header | deck list).
func CalculateSplit(terminalWidth int, cfg PageConfig) SplitLayout {
	if terminalWidth < cfg.MinSplitWidth {
		width := terminalWidth - cfg.SplitWidthOffset/2
		if width < 1 {
			width = 1
		}
		return SplitLayout{Left: width, Right: width, Stacked: true}
	}

	usable := terminalWidth - cfg.SplitWidthOffset
	left := usable * cfg.SideWidthPercent / 100
	return SplitLayout{Left: left, Right: usable - left}
}

// CalculateItemWidth computes the width available for row content.
func CalculateItemWidth(paneWidth int, cfg PageConfig) int {
	width := paneWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateVisibleHeight computes the visible row count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected row visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
