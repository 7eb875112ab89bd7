package tui

import (
	"fmt"
	"time"

	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/search"
)

// Row is one line of a page list. Header rows title a section and never
// hold the cursor.
type Row struct {
	Label  string
	Detail string
	Route  string
	Header bool

	Card    *model.Card // nil for headers and visits
	Matched []int       // byte indexes of Label matched by the filter
}

func headerRow(title string) Row {
	return Row{Label: title, Header: true}
}

// commanderRows lists commanders ranked by deck count.
func commanderRows(cards []model.CardCount, limit int) []Row {
	cards = head(cards, limit)
	rows := make([]Row, 0, len(cards))
	for i := range cards {
		c := &cards[i]
		rows = append(rows, Row{
			Label:  c.Name(),
			Detail: fmt.Sprintf("%d decks", c.Decks()),
			Route:  "/commander/" + c.Slug,
			Card:   &c.Card,
		})
	}
	return rows
}

// topCardRows lists cards ranked by inclusion rate.
func topCardRows(cards []model.TopCard, limit int) []Row {
	cards = head(cards, limit)
	rows := make([]Row, 0, len(cards))
	for i := range cards {
		c := &cards[i]
		rows = append(rows, Row{
			Label:  c.Name(),
			Detail: fmt.Sprintf("%.1f%%", c.InclusionRate()),
			Route:  "/card/" + c.Slug,
			Card:   &c.Card,
		})
	}
	return rows
}

// visitRows lists recently opened pages.
func visitRows(visits []model.Visit, now time.Time) []Row {
	rows := make([]Row, 0, len(visits))
	for _, v := range visits {
		label := v.Title
		if label == "" {
			label = v.Path
		}
		rows = append(rows, Row{
			Label:  label,
			Detail: formatTimeAgo(v.VisitedAt, now),
			Route:  v.Path,
		})
	}
	return rows
}

// commanderTopRows lists a commander's most played cards, one section per
// card type. Empty sections are skipped.
func commanderTopRows(top *model.CommanderTopCards) []Row {
	if top == nil {
		return nil
	}
	var rows []Row
	for _, section := range top.Sections() {
		if len(section.Cards) == 0 {
			continue
		}
		rows = append(rows, headerRow(section.Title))
		for i := range section.Cards {
			c := &section.Cards[i]
			rows = append(rows, Row{
				Label:  c.Name(),
				Detail: fmt.Sprintf("%.0f%% · %+.0f%% synergy", c.UsageInCommander, c.Synergy),
				Route:  "/card/" + c.Slug,
				Card:   &c.Card,
			})
		}
	}
	return rows
}

// deckRows lists a decklist by section as "N× Name" with mana costs.
func deckRows(deck *model.Deck) []Row {
	if deck == nil {
		return nil
	}
	var rows []Row
	for _, section := range deck.Decklist.Sections() {
		if len(section.Cards) == 0 {
			continue
		}
		rows = append(rows, headerRow(section.Title))
		for i := range section.Cards {
			c := &section.Cards[i]
			rows = append(rows, Row{
				Label:  fmt.Sprintf("%d× %s", c.Decks(), c.Name()),
				Detail: c.FrontFace().ManaCost,
				Route:  "/card/" + c.Slug,
				Card:   &c.Card,
			})
		}
	}
	return rows
}

// filterRows keeps the card rows whose names fuzzy-match query, best match
// first. Headers are dropped while a filter is active.
func filterRows(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}

	var cards []model.Card
	var source []Row
	for _, r := range rows {
		if r.Card == nil {
			continue
		}
		cards = append(cards, *r.Card)
		source = append(source, r)
	}

	matches := search.FilterCards(cards, query)
	filtered := make([]Row, 0, len(matches))
	for _, m := range matches {
		r := source[m.Index]
		// Deck labels carry a count prefix; shift indexes past it.
		offset := len(r.Label) - len(r.Card.Name())
		r.Matched = make([]int, len(m.MatchedIndexes))
		for i, idx := range m.MatchedIndexes {
			r.Matched[i] = idx + offset
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func head[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

// formatTimeAgo renders a compact relative time.
func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	} else if d < time.Hour {
		m := int(d.Minutes())
		if m == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", m)
	} else if d < 24*time.Hour {
		h := int(d.Hours())
		if h == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", h)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1d ago"
	}
	return fmt.Sprintf("%dd ago", days)
}
