package colorid

import "strings"

// Base is the page family a color filter navigates within.
type Base string

const (
	Commanders Base = "commanders"
	Cards      Base = "cards"
)

// ParseBase maps a string to a Base, defaulting to Commanders.
func ParseBase(s string) Base {
	if Base(strings.ToLower(s)) == Cards {
		return Cards
	}
	return Commanders
}

// Resolve finds the catalog entry for a selection. It reports false for the
// empty selection and for selections the catalog does not know.
func Resolve(sel Selection, catalog Catalog) (Combination, bool) {
	if sel.Empty() {
		return Combination{}, false
	}
	if sel.IsColorless() {
		for _, combo := range catalog {
			if combo.ColorIdentity == string(Colorless) {
				return combo, true
			}
		}
		return Combination{}, false
	}
	return catalog.Find(sel.String())
}

// RootPath returns the unfiltered page path for base.
func RootPath(base Base) string {
	return "/" + string(base) + "/"
}

// TargetPath returns the path a selection navigates to: the matching
// catalog identity under base, or the root path when there is none.
func TargetPath(base Base, sel Selection, catalog Catalog) string {
	combo, ok := Resolve(sel, catalog)
	if !ok {
		return RootPath(base)
	}
	return "/" + string(base) + "/" + combo.ColorIdentity
}
