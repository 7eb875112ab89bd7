package model

import "time"

// Deck is a single decklist scraped into BrawlHub.
type Deck struct {
	DeckID        int64    `json:"deck_id"`
	URL           string   `json:"url"`
	Username      string   `json:"username"`
	DateCreated   int64    `json:"date_created"`
	DateUpdated   int64    `json:"date_updated"`
	Commander     Card     `json:"commander"`
	Companion     *Card    `json:"companion"`
	ColorIdentity []string `json:"color_identity"`
	Decklist      Decklist `json:"decklist"`
}

// Updated returns the last update time. The API sends milliseconds.
func (d Deck) Updated() time.Time {
	return time.UnixMilli(d.DateUpdated)
}

// Decklist holds the cards of a deck grouped by type.
type Decklist struct {
	Creatures     []CardCount `json:"creatures"`
	Instants      []CardCount `json:"instants"`
	Sorceries     []CardCount `json:"sorceries"`
	Artifacts     []CardCount `json:"artifacts"`
	Enchantments  []CardCount `json:"enchantments"`
	Planeswalkers []CardCount `json:"planeswalkers"`
	Lands         []CardCount `json:"lands"`
}

// DeckSection is a titled slice of a decklist.
type DeckSection struct {
	Title string
	Cards []CardCount
}

// Sections returns the decklist sections in display order.
func (d Decklist) Sections() []DeckSection {
	return []DeckSection{
		{Title: "Creatures", Cards: d.Creatures},
		{Title: "Instants", Cards: d.Instants},
		{Title: "Sorceries", Cards: d.Sorceries},
		{Title: "Artifacts", Cards: d.Artifacts},
		{Title: "Enchantments", Cards: d.Enchantments},
		{Title: "Planeswalkers", Cards: d.Planeswalkers},
		{Title: "Lands", Cards: d.Lands},
	}
}

// TotalCards sums card counts across all sections.
func (d Decklist) TotalCards() int64 {
	var total int64
	for _, s := range d.Sections() {
		for _, c := range s.Cards {
			total += c.Decks()
		}
	}
	return total
}
