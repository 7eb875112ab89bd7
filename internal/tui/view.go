package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/brawlhub/internal/colorid"
	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/nav"
	"github.com/nikbrunner/brawlhub/internal/tui/layout"
)

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a App) renderView() string {
	start, end := a.dropdownWindow()

	// The dropdown pushes the page down instead of overlaying it.
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Page) - (end - start)
	if paneHeight < 1 {
		paneHeight = 1
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderSearch(start, end),
			a.renderTitle(),
			a.renderBody(paneHeight),
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// contentWidth is the terminal width minus app padding (left=2, right=2).
func (a App) contentWidth() int {
	return a.width - 4
}

// renderSearch renders the search line and the visible slice of results.
func (a App) renderSearch(start, end int) string {
	lines := []string{a.styles.SearchPrompt.Render("Search ") + a.search.Input.View()}

	box := a.search.Box
	results := box.Results()
	width := layout.CalculateDropdownWidth(a.width, a.layoutConfig.Search)
	for i := start; i < end; i++ {
		name, _ := layout.TruncateText(results[i].CardName, width-1, a.layoutConfig.Text)
		if i == box.Cursor() {
			lines = append(lines, a.styles.DropdownCursor.Width(width).Render(name))
		} else {
			lines = append(lines, a.styles.DropdownItem.Render(name))
		}
	}
	return strings.Join(lines, "\n")
}

// renderTitle renders the page title followed by the route path.
func (a App) renderTitle() string {
	title := a.page.title
	if a.loading {
		title = a.spinner.View() + " Loading"
	} else if title == "" {
		title = a.page.route.Kind.String()
	}
	title = a.styles.Title.Render(title)

	// Breadcrumb has 1 cell of left padding
	available := a.contentWidth() - layout.VisibleLength(title) - 1
	path := layout.TruncatePathFromLeft(a.page.route.Path, available, a.layoutConfig.Text)
	if path == "" {
		return title
	}
	return title + a.styles.Breadcrumb.Render(path)
}

// renderBody renders the page below the title.
func (a App) renderBody(height int) string {
	width := a.contentWidth() - 2 // pane borders

	if a.loading {
		return a.styles.Pane.Width(width).Height(height).Render(
			a.styles.Empty.Render("Loading " + a.page.route.Path + "..."),
		)
	}
	if a.page.err != nil {
		return a.styles.Pane.Width(width).Height(height).Render(
			a.styles.Empty.Render("Could not load this page. h goes back."),
		)
	}
	if !a.page.ready() {
		return a.styles.Pane.Width(width).Height(height).Render(
			a.styles.Empty.Render("Nothing here"),
		)
	}

	switch a.page.route.Kind {
	case nav.RouteCommanders, nav.RouteCards:
		header := []string{a.renderColorBar()}
		if line := a.renderFilterLine(); line != "" {
			header = append(header, line)
		}
		return a.renderListPane(width, height, header)

	case nav.RouteCard:
		return a.renderSplit(height,
			func(w, h int) string { return a.renderCardFace(&a.page.card.Card, w) },
			func(w, h int) string { return a.renderCardStats(w) },
		)

	case nav.RouteCommander:
		return a.renderSplit(height,
			func(w, h int) string {
				return a.renderCardFace(&a.page.commander.Card, w) + "\n\n" + a.renderCommanderStats()
			},
			func(w, h int) string { return a.renderRowsWithFilter(w, h, "Top Cards") },
		)

	case nav.RouteDeck:
		return a.renderSplit(height,
			func(w, h int) string { return a.renderDeckHeader(w) },
			func(w, h int) string { return a.renderRowsWithFilter(w, h, "Decklist") },
		)

	default:
		var header []string
		if line := a.renderFilterLine(); line != "" {
			header = append(header, line)
		}
		return a.renderListPane(width, height, header)
	}
}

// renderListPane renders a full-width pane of rows below optional header lines.
func (a App) renderListPane(width, height int, header []string) string {
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Page)
	visible := layout.CalculateVisibleHeight(height, len(header))

	lines := append([]string{}, header...)
	lines = append(lines, a.renderRows(a.visibleRows(), a.page.cursor, itemWidth, visible))
	return a.styles.PaneActive.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderRowsWithFilter renders a pane's row list under a section title.
func (a App) renderRowsWithFilter(width, height int, title string) string {
	header := []string{a.styles.Title.Render(title)}
	if line := a.renderFilterLine(); line != "" {
		header = append(header, line)
	}
	visible := layout.CalculateVisibleHeight(height, len(header))
	return strings.Join(append(header, a.renderRows(a.visibleRows(), a.page.cursor, width, visible)), "\n")
}

// renderSplit renders two panes side by side, or stacked on narrow terminals.
// The right pane is the active one. Both callbacks receive the row width.
func (a App) renderSplit(height int, left, right func(width, height int) string) string {
	split := layout.CalculateSplit(a.contentWidth(), a.layoutConfig.Page)

	if split.Stacked {
		topHeight := height/2 - 1
		if topHeight < 1 {
			topHeight = 1
		}
		bottomHeight := height - topHeight - 2
		if bottomHeight < 1 {
			bottomHeight = 1
		}
		top := a.styles.Pane.Width(split.Left).Height(topHeight).MaxHeight(topHeight + 2).
			Render(left(layout.CalculateItemWidth(split.Left, a.layoutConfig.Page), topHeight))
		bottom := a.styles.PaneActive.Width(split.Right).Height(bottomHeight).
			Render(right(layout.CalculateItemWidth(split.Right, a.layoutConfig.Page), bottomHeight))
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	leftPane := a.styles.Pane.Width(split.Left).Height(height).MaxHeight(height + 2).
		Render(left(layout.CalculateItemWidth(split.Left, a.layoutConfig.Page), height))
	rightPane := a.styles.PaneActive.Width(split.Right).Height(height).
		Render(right(layout.CalculateItemWidth(split.Right, a.layoutConfig.Page), height))
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, "  ", rightPane)
}

// renderRows renders the rows that fit in height, scrolled to keep the
// cursor visible.
func (a App) renderRows(rows []Row, cursor, width, height int) string {
	if len(rows) == 0 {
		if a.filter.Query() != "" {
			return a.styles.Empty.Render("No matches")
		}
		return a.styles.Empty.Render("Nothing here")
	}

	offset := layout.CalculateViewportOffset(cursor, len(rows), height)
	end := offset + height
	if end > len(rows) {
		end = len(rows)
	}

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderRow(rows[i], i == cursor, width))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders a row as a label with its detail right-aligned.
func (a App) renderRow(row Row, selected bool, width int) string {
	if row.Header {
		title, _ := layout.TruncateText(row.Label, width, a.layoutConfig.Text)
		return a.styles.Section.Render(title)
	}

	// Item styles pad 1 cell on the left
	avail := width - 1
	detail := row.Detail
	labelWidth := avail - layout.VisibleLength(detail) - 1
	if labelWidth < 1 || detail == "" {
		detail = ""
		labelWidth = avail
	}

	label := row.Label
	if !selected && len(row.Matched) > 0 {
		label = a.highlight(label, row.Matched)
	}
	label, _ = layout.TruncateText(label, labelWidth, a.layoutConfig.Text)

	gap := avail - layout.VisibleLength(label) - layout.VisibleLength(detail)
	if gap < 0 {
		gap = 0
	}
	if selected {
		return a.styles.ItemSelected.Render(label + strings.Repeat(" ", gap) + detail)
	}
	return a.styles.Item.Render(label + strings.Repeat(" ", gap) + a.styles.Subtle.Render(detail))
}

// highlight styles the runes of s that start at the matched byte offsets.
func (a App) highlight(s string, matched []int) string {
	marks := make(map[int]bool, len(matched))
	for _, i := range matched {
		marks[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if marks[i] {
			b.WriteString(a.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderColorBar renders the color filter pips and the selection's name.
func (a App) renderColorBar() string {
	if a.selector == nil {
		return ""
	}
	sel := a.selector.Selection()

	pips := make([]string, 0, len(colorid.CanonicalOrder)+1)
	for _, c := range colorid.CanonicalOrder {
		pips = append(pips, a.renderPip(strings.ToUpper(string(c)), sel.Has(c)))
	}
	pips = append(pips, a.renderPip("C", sel.IsColorless()))

	name := a.selector.Title()
	if name == "" {
		name = "All colors"
	}
	return strings.Join(pips, "") + "  " + a.styles.Subtle.Render(name)
}

func (a App) renderPip(label string, on bool) string {
	if on {
		return a.styles.ColorOn.Render(label)
	}
	return a.styles.ColorOff.Render(label)
}

// renderFilterLine renders the filter input while typing, or a summary of
// an applied filter.
func (a App) renderFilterLine() string {
	if a.filter.Active {
		return a.filter.Input.View()
	}
	if q := a.filter.Query(); q != "" {
		return a.styles.Subtle.Render(fmt.Sprintf("filter: %s (%d matches)", q, len(a.visibleRows())))
	}
	return ""
}

// renderCardFace renders the visible face of a card: name, mana cost, type
// line and rules text wrapped to width.
func (a App) renderCardFace(card *model.Card, width int) string {
	face := card.FrontFace()
	if a.page.flipped {
		face = card.BackFace()
	}

	name := a.styles.Title.Render(face.Name)
	if face.ManaCost != "" {
		name += " " + a.styles.Stat.Render(face.ManaCost)
	}

	lines := []string{name}
	if face.TypeLine != "" {
		lines = append(lines, a.styles.Subtle.Render(face.TypeLine))
	}
	if face.OracleText != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(face.OracleText))
	}
	if card.IsDoubleFaced() {
		side := "front"
		if a.page.flipped {
			side = "back"
		}
		lines = append(lines, "", a.styles.Subtle.Render("showing "+side+" face"))
	}
	return strings.Join(lines, "\n")
}

// renderCardStats renders rank and inclusion for the card page.
func (a App) renderCardStats(width int) string {
	card := a.page.card
	lines := []string{a.styles.Title.Render("Stats")}
	lines = appendStat(lines, a.styles, "Rank", formatRank(card.Rank))
	if card.TotalDecksCouldPlay != nil {
		lines = appendStat(lines, a.styles, "Inclusion", fmt.Sprintf("%.2f%%", card.InclusionRate()))
	}
	lines = appendStat(lines, a.styles, "Decks", formatRatio(card.TotalDecksWithCard, card.TotalDecksCouldPlay))
	lines = append(lines, "")
	lines = append(lines, a.cardFacts(&card.Card)...)
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

// renderCommanderStats renders how often the commander is played.
func (a App) renderCommanderStats() string {
	c := a.page.commander
	var lines []string
	lines = appendStat(lines, a.styles, "Rank", formatRank(c.Rank))
	lines = appendStat(lines, a.styles, "Decks", formatCount(c.TotalDecks))
	if c.AllDecks != nil {
		lines = appendStat(lines, a.styles, "Share", fmt.Sprintf("%.2f%% of %d decks", c.Share(), *c.AllDecks))
	}
	lines = appendStat(lines, a.styles, "Decks in identity", formatCount(c.TotalCommanderDecksOfCI))
	lines = append(lines, a.cardFacts(&c.Card)...)
	return strings.Join(lines, "\n")
}

// cardFacts lists rarity, identity and legality, skipping unknown values.
func (a App) cardFacts(c *model.Card) []string {
	var lines []string
	lines = appendStat(lines, a.styles, "Rarity", c.Rarity)
	identity := c.IdentitySlug()
	if title := a.catalog.Title(identity); title != "" {
		identity = title + " (" + identity + ")"
	}
	lines = appendStat(lines, a.styles, "Identity", identity)
	lines = appendStat(lines, a.styles, "Legal", yesNo(c.IsLegal))
	if c.IsLegalCommander {
		lines = appendStat(lines, a.styles, "Commander", "yes")
	}
	if c.IsRebalanced {
		lines = appendStat(lines, a.styles, "Rebalanced", "yes")
	}
	return lines
}

// renderDeckHeader renders the deck's commander, companion and source.
func (a App) renderDeckHeader(width int) string {
	d := a.page.deck
	lines := []string{a.styles.Title.Render("Deck " + strconv.FormatInt(d.DeckID, 10))}
	lines = appendStat(lines, a.styles, "Commander", d.Commander.Name())
	if d.Companion != nil {
		lines = appendStat(lines, a.styles, "Companion", d.Companion.Name())
	}
	lines = appendStat(lines, a.styles, "Pilot", d.Username)
	if d.DateUpdated > 0 {
		lines = appendStat(lines, a.styles, "Updated", d.Updated().Format("2006-01-02"))
	}
	lines = appendStat(lines, a.styles, "Cards", strconv.FormatInt(d.Decklist.TotalCards(), 10))
	if len(d.ColorIdentity) > 0 {
		lines = appendStat(lines, a.styles, "Identity", strings.ToLower(strings.Join(d.ColorIdentity, "")))
	}
	if d.URL != "" {
		url, _ := layout.TruncateText(d.URL, width, a.layoutConfig.Text)
		lines = append(lines, "", a.styles.Subtle.Render(url))
	}
	return strings.Join(lines, "\n")
}

// renderHelpBar renders the status line and the keyboard hints.
func (a App) renderHelpBar() string {
	width := a.contentWidth()
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	local := a.styles.HintLabel.Render("Local  ") + a.renderHints(a.getContextualHints())
	local, _ = layout.TruncateText(local, width, a.layoutConfig.Text)
	lines = append(lines, local)

	// Line 3: Global keyboard hints
	if global := a.renderHintSlice(a.getGlobalHints()); global != "" {
		global, _ = layout.TruncateText(a.styles.HintLabel.Render("Global ")+global, width, a.layoutConfig.Text)
		lines = append(lines, global)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	text, _ := layout.TruncateText(prefix+a.messageText, a.contentWidth(), a.layoutConfig.Text)
	return msgStyle.Render(text)
}

// appendStat appends "label: value" unless value is empty.
func appendStat(lines []string, styles Styles, label, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, styles.Subtle.Render(label+": ")+styles.Stat.Render(value))
}

func formatCount(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func formatRank(n *int64) string {
	if n == nil {
		return ""
	}
	return "#" + strconv.FormatInt(*n, 10)
}

func formatRatio(num, den *int64) string {
	switch {
	case num == nil:
		return ""
	case den == nil:
		return strconv.FormatInt(*num, 10)
	default:
		return fmt.Sprintf("%d of %d", *num, *den)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
