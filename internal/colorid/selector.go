package colorid

import "github.com/go-logr/logr"

// Navigator pushes a new route.
type Navigator interface {
	Navigate(path string)
}

// Selector is the color filter bar. Every change to its selection
// navigates exactly once to the resolved target.
type Selector struct {
	base      Base
	catalog   Catalog
	selection Selection
	nav       Navigator
	log       logr.Logger
}

// SelectorParams holds parameters for creating a Selector.
type SelectorParams struct {
	Base      Base
	Catalog   Catalog // optional, uses DefaultCatalog if nil
	Segment   string  // identity segment of the current route, seeds the selection
	Navigator Navigator
	Logger    *logr.Logger // optional
}

// NewSelector creates a Selector seeded from the current route. It does not
// navigate; the seed already matches the page being shown.
func NewSelector(params SelectorParams) *Selector {
	catalog := params.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	log := logr.Discard()
	if params.Logger != nil {
		log = *params.Logger
	}
	return &Selector{
		base:      params.Base,
		catalog:   catalog,
		selection: ParseSelection(params.Segment),
		nav:       params.Navigator,
		log:       log,
	}
}

// Selection returns the current selection.
func (s *Selector) Selection() Selection {
	return s.selection
}

// Base returns the page family the selector navigates within.
func (s *Selector) Base() Base {
	return s.base
}

// Target returns the path for the current selection.
func (s *Selector) Target() string {
	return TargetPath(s.base, s.selection, s.catalog)
}

// Title returns the catalog title for the current selection, or "".
func (s *Selector) Title() string {
	combo, ok := Resolve(s.selection, s.catalog)
	if !ok {
		return ""
	}
	return combo.Title
}

// Toggle toggles one of the five colors.
func (s *Selector) Toggle(c Color) {
	s.set(s.selection.Toggle(c))
}

// ToggleColorless toggles the colorless pseudo-color.
func (s *Selector) ToggleColorless() {
	s.set(s.selection.ToggleColorless())
}

// Clear empties the selection.
func (s *Selector) Clear() {
	s.set(s.selection.Clear())
}

func (s *Selector) set(next Selection) {
	if next == s.selection {
		return
	}
	s.selection = next
	target := s.Target()
	s.log.V(1).Info("color selection changed", "selection", next.String(), "target", target)
	if s.nav != nil {
		s.nav.Navigate(target)
	}
}
