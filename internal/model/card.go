package model

import "strings"

// Card mirrors the card row served by the BrawlHub API.
// Optional fields are pointers or empty strings when the API omits them.
type Card struct {
	OracleID         string   `json:"oracle_id"`
	NameFull         string   `json:"name_full"`
	NameFront        string   `json:"name_front"`
	NameBack         *string  `json:"name_back"`
	Slug             string   `json:"slug"`
	ScryfallURI      string   `json:"scryfall_uri"`
	Layout           string   `json:"layout"`
	Rarity           string   `json:"rarity"`
	LowestRarity     string   `json:"lowest_rarity"`
	Lang             string   `json:"lang"`
	ManaCostCombined *string  `json:"mana_cost_combined"`
	ManaCostFront    *string  `json:"mana_cost_front"`
	ManaCostBack     *string  `json:"mana_cost_back"`
	CMC              float64  `json:"cmc"`
	TypeLineFull     string   `json:"type_line_full"`
	TypeLineFront    string   `json:"type_line_front"`
	TypeLineBack     *string  `json:"type_line_back"`
	OracleText       *string  `json:"oracle_text"`
	OracleTextBack   *string  `json:"oracle_text_back"`
	Colors           []string `json:"colors"`
	ColorsBack       []string `json:"colors_back"`
	ColorIdentity    []string `json:"color_identity"`
	IsLegal          bool     `json:"is_legal"`
	IsLegalCommander bool     `json:"is_legal_commander"`
	IsRebalanced     bool     `json:"is_rebalanced"`

	ImageSmall      string  `json:"image_small"`
	ImageNormal     string  `json:"image_normal"`
	ImageLarge      string  `json:"image_large"`
	ImageArtCrop    string  `json:"image_art_crop"`
	ImageBorderCrop string  `json:"image_border_crop"`
	ImageNormalBack *string `json:"image_normal_back"`
	ImageLargeBack  *string `json:"image_large_back"`
}

// Name returns the best available display name.
func (c Card) Name() string {
	if c.NameFull != "" {
		return c.NameFull
	}
	return c.NameFront
}

// IsDoubleFaced reports whether the card has a back face worth flipping to.
func (c Card) IsDoubleFaced() bool {
	return c.NameBack != nil && *c.NameBack != ""
}

// Face is one side of a card, flattened for display.
type Face struct {
	Name       string
	ManaCost   string
	TypeLine   string
	OracleText string
}

// FrontFace returns the front face of the card.
func (c Card) FrontFace() Face {
	return Face{
		Name:       c.NameFront,
		ManaCost:   deref(c.ManaCostFront),
		TypeLine:   c.TypeLineFront,
		OracleText: deref(c.OracleText),
	}
}

// BackFace returns the back face, or the front face for single-faced cards.
func (c Card) BackFace() Face {
	if !c.IsDoubleFaced() {
		return c.FrontFace()
	}
	return Face{
		Name:       *c.NameBack,
		ManaCost:   deref(c.ManaCostBack),
		TypeLine:   deref(c.TypeLineBack),
		OracleText: deref(c.OracleTextBack),
	}
}

// IdentitySlug returns the lowercase color identity letters, or "colorless".
func (c Card) IdentitySlug() string {
	if len(c.ColorIdentity) == 0 {
		return "colorless"
	}
	return strings.ToLower(strings.Join(c.ColorIdentity, ""))
}

// Route returns the page path for this card.
func (c Card) Route() string {
	if c.IsLegalCommander {
		return "/commander/" + c.Slug
	}
	return "/card/" + c.Slug
}

// CardCount is a card with the number of decks it appears in (or helms).
type CardCount struct {
	Card
	Count *int64 `json:"count"`
}

// Decks returns the count, treating a missing value as zero.
func (c CardCount) Decks() int64 {
	if c.Count == nil {
		return 0
	}
	return *c.Count
}

// TopCard is a card ranked by inclusion rate across eligible decks.
type TopCard struct {
	Card
	TotalDecksWithCard  *int64 `json:"total_decks_with_card"`
	TotalDecksCouldPlay *int64 `json:"total_decks_could_play"`
	Rank                *int64 `json:"rank"`
}

// InclusionRate returns the percentage of eligible decks playing the card.
func (t TopCard) InclusionRate() float64 {
	if t.TotalDecksWithCard == nil || t.TotalDecksCouldPlay == nil || *t.TotalDecksCouldPlay == 0 {
		return 0
	}
	return float64(*t.TotalDecksWithCard) * 100 / float64(*t.TotalDecksCouldPlay)
}

// CommanderStats is a commander with how often it is played.
type CommanderStats struct {
	Card
	TotalDecks              *int64 `json:"total_decks"`
	AllDecks                *int64 `json:"all_decks"`
	Rank                    *int64 `json:"rank"`
	TotalCommanderDecksOfCI *int64 `json:"total_commander_decks_of_ci"`
}

// Share returns the percentage of all decks helmed by this commander.
func (c CommanderStats) Share() float64 {
	if c.TotalDecks == nil || c.AllDecks == nil || *c.AllDecks == 0 {
		return 0
	}
	return float64(*c.TotalDecks) * 100 / float64(*c.AllDecks)
}

// CommanderTopCard is a card played with a specific commander.
type CommanderTopCard struct {
	Card
	Quantity         *int64  `json:"quantity"`
	UsageInCommander float64 `json:"usage_in_commander"`
	UsageInColor     float64 `json:"usage_in_color"`
	Synergy          float64 `json:"synergy"`
}

// CommanderTopCards groups a commander's most played cards by type.
type CommanderTopCards struct {
	Creatures        []CommanderTopCard `json:"creatures"`
	Instants         []CommanderTopCard `json:"instants"`
	Sorceries        []CommanderTopCard `json:"sorceries"`
	UtilityArtifacts []CommanderTopCard `json:"utility_artifacts"`
	Enchantments     []CommanderTopCard `json:"enchantments"`
	Planeswalkers    []CommanderTopCard `json:"planeswalkers"`
	ManaArtifacts    []CommanderTopCard `json:"mana_artifacts"`
	Lands            []CommanderTopCard `json:"lands"`
}

// CommanderSection is a titled slice of a commander's top cards.
type CommanderSection struct {
	Title string
	Cards []CommanderTopCard
}

// Sections returns the sections in display order.
func (t CommanderTopCards) Sections() []CommanderSection {
	return []CommanderSection{
		{Title: "Creatures", Cards: t.Creatures},
		{Title: "Instants", Cards: t.Instants},
		{Title: "Sorceries", Cards: t.Sorceries},
		{Title: "Utility Artifacts", Cards: t.UtilityArtifacts},
		{Title: "Enchantments", Cards: t.Enchantments},
		{Title: "Planeswalkers", Cards: t.Planeswalkers},
		{Title: "Mana Artifacts", Cards: t.ManaArtifacts},
		{Title: "Lands", Cards: t.Lands},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
