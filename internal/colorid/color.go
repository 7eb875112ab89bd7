// Package colorid resolves sets of selected mana colors to canonical
// color-identity slugs and the navigation targets built from them.
package colorid

import (
	"strings"
)

// Color is a mana color letter, or the colorless pseudo-color.
type Color string

const (
	White     Color = "w"
	Blue      Color = "u"
	Black     Color = "b"
	Red       Color = "r"
	Green     Color = "g"
	Colorless Color = "colorless"
)

// CanonicalOrder is the fixed WUBRG precedence used to normalize identities.
var CanonicalOrder = []Color{White, Blue, Black, Red, Green}

// Selection is a set of selected colors. The zero value is empty.
// Colorless never coexists with any of the five colors.
type Selection struct {
	bits      uint8
	colorless bool
}

func colorBit(c Color) (uint8, bool) {
	for i, cc := range CanonicalOrder {
		if cc == c {
			return 1 << i, true
		}
	}
	return 0, false
}

// Has reports whether c is selected.
func (s Selection) Has(c Color) bool {
	if c == Colorless {
		return s.colorless
	}
	bit, ok := colorBit(c)
	return ok && s.bits&bit != 0
}

// Toggle removes c if selected, otherwise adds it and drops colorless.
// Unknown colors leave the selection unchanged.
func (s Selection) Toggle(c Color) Selection {
	if c == Colorless {
		return s.ToggleColorless()
	}
	bit, ok := colorBit(c)
	if !ok {
		return s
	}
	if s.bits&bit != 0 {
		s.bits &^= bit
		return s
	}
	s.bits |= bit
	s.colorless = false
	return s
}

// ToggleColorless removes colorless if selected, otherwise replaces the
// whole selection with {colorless}.
func (s Selection) ToggleColorless() Selection {
	if s.colorless {
		return Selection{}
	}
	return Selection{colorless: true}
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.bits == 0 && !s.colorless
}

// IsColorless reports whether the selection is exactly {colorless}.
func (s Selection) IsColorless() bool {
	return s.colorless
}

// Colors returns the selected colors in canonical order.
func (s Selection) Colors() []Color {
	if s.colorless {
		return []Color{Colorless}
	}
	var out []Color
	for _, c := range CanonicalOrder {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns the canonical identity string of the selection:
// "colorless", the WUBRG-ordered letters, or "" when empty.
func (s Selection) String() string {
	if s.colorless {
		return string(Colorless)
	}
	var b strings.Builder
	for _, c := range s.Colors() {
		b.WriteString(string(c))
	}
	return b.String()
}

// ParseSelection seeds a selection from a route identity segment.
// Unknown letters are ignored; "colorless" selects colorless.
func ParseSelection(segment string) Selection {
	segment = strings.ToLower(strings.TrimSpace(segment))
	if segment == string(Colorless) {
		return Selection{colorless: true}
	}
	var s Selection
	for _, r := range segment {
		if bit, ok := colorBit(Color(r)); ok {
			s.bits |= bit
		}
	}
	return s
}

// Canonicalize sorts the letters of an identity into WUBRG order.
// "colorless" is returned unchanged; letters outside WUBRG are kept, in
// their original order, after the known ones so that lengths still compare.
func Canonicalize(identity string) string {
	identity = strings.ToLower(identity)
	if identity == string(Colorless) {
		return identity
	}
	var known, unknown strings.Builder
	for _, c := range CanonicalOrder {
		for _, r := range identity {
			if Color(r) == c {
				known.WriteRune(r)
			}
		}
	}
	for _, r := range identity {
		if _, ok := colorBit(Color(r)); !ok {
			unknown.WriteRune(r)
		}
	}
	return known.String() + unknown.String()
}
