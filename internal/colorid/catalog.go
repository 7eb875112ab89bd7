package colorid

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownColor      = errors.New("unknown color letter")
	ErrDuplicateColor    = errors.New("duplicate color letter")
	ErrDuplicateIdentity = errors.New("duplicate color identity")
	ErrMissingColorless  = errors.New("catalog has no colorless entry")
	ErrEmptyIdentity     = errors.New("empty color identity")
)

// Combination is a named color identity.
type Combination struct {
	ColorIdentity string `json:"colorIdentity" yaml:"colorIdentity"`
	Title         string `json:"title" yaml:"title"`
}

// Catalog is the fixed list of known color identities.
type Catalog []Combination

// DefaultCatalog returns the 32 Historic Brawl color identities.
func DefaultCatalog() Catalog {
	return Catalog{
		{ColorIdentity: "w", Title: "Mono-White"},
		{ColorIdentity: "u", Title: "Mono-Blue"},
		{ColorIdentity: "b", Title: "Mono-Black"},
		{ColorIdentity: "r", Title: "Mono-Red"},
		{ColorIdentity: "g", Title: "Mono-Green"},
		{ColorIdentity: "wu", Title: "Azorious"},
		{ColorIdentity: "ub", Title: "Dimir"},
		{ColorIdentity: "br", Title: "Rakdos"},
		{ColorIdentity: "rg", Title: "Gruul"},
		{ColorIdentity: "gw", Title: "Selesnya"},
		{ColorIdentity: "wb", Title: "Orzhov"},
		{ColorIdentity: "ur", Title: "Izzet"},
		{ColorIdentity: "bg", Title: "Golgari"},
		{ColorIdentity: "rw", Title: "Boros"},
		{ColorIdentity: "gu", Title: "Simic"},
		{ColorIdentity: "wub", Title: "Esper"},
		{ColorIdentity: "ubr", Title: "Grixis"},
		{ColorIdentity: "brg", Title: "Jund"},
		{ColorIdentity: "rgw", Title: "Naya"},
		{ColorIdentity: "gwu", Title: "Bant"},
		{ColorIdentity: "wbg", Title: "Abzan"},
		{ColorIdentity: "urw", Title: "Jeskai"},
		{ColorIdentity: "bgu", Title: "Sultai"},
		{ColorIdentity: "rwb", Title: "Mardu"},
		{ColorIdentity: "gur", Title: "Temur"},
		{ColorIdentity: "wubr", Title: "Sans-Green"},
		{ColorIdentity: "ubrg", Title: "Sans-White"},
		{ColorIdentity: "brgw", Title: "Sans-Blue"},
		{ColorIdentity: "rgwu", Title: "Sans-Black"},
		{ColorIdentity: "gwub", Title: "Sans-Red"},
		{ColorIdentity: "wubrg", Title: "Five-Color"},
		{ColorIdentity: "colorless", Title: "Colorless"},
	}
}

// Find returns the entry whose identity matches identity in any letter order.
func (c Catalog) Find(identity string) (Combination, bool) {
	want := Canonicalize(identity)
	for _, combo := range c {
		if len(combo.ColorIdentity) == len(want) && Canonicalize(combo.ColorIdentity) == want {
			return combo, true
		}
	}
	return Combination{}, false
}

// Title returns the title for identity, or "" when the catalog has none.
func (c Catalog) Title(identity string) string {
	combo, ok := c.Find(identity)
	if !ok {
		return ""
	}
	return combo.Title
}

// Validate checks that every entry is a well-formed identity, that no
// identity appears twice, and that a colorless entry exists.
func (c Catalog) Validate() error {
	seen := make(map[string]string, len(c))
	hasColorless := false
	for _, combo := range c {
		id := combo.ColorIdentity
		if id == "" {
			return fmt.Errorf("%w: title %q", ErrEmptyIdentity, combo.Title)
		}
		if id == string(Colorless) {
			hasColorless = true
		} else {
			var used uint8
			for _, r := range id {
				bit, ok := colorBit(Color(r))
				if !ok {
					return fmt.Errorf("%w: %q in %q", ErrUnknownColor, r, id)
				}
				if used&bit != 0 {
					return fmt.Errorf("%w: %q in %q", ErrDuplicateColor, r, id)
				}
				used |= bit
			}
		}
		key := Canonicalize(id)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q and %q", ErrDuplicateIdentity, prev, id)
		}
		seen[key] = id
	}
	if !hasColorless {
		return ErrMissingColorless
	}
	return nil
}
