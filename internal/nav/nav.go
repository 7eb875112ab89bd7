// Package nav defines the navigation contract between components and the
// page host, plus route parsing and history.
package nav

import (
	"strings"

	"github.com/nikbrunner/brawlhub/internal/colorid"
)

// Navigator pushes a new route.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Queue records navigation requests for the UI loop to drain after each
// update. It is not safe for concurrent use.
type Queue struct {
	pending []string
}

// Navigate queues path.
func (q *Queue) Navigate(path string) {
	q.pending = append(q.pending, path)
}

// Drain returns and forgets all queued paths, oldest first.
func (q *Queue) Drain() []string {
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued paths.
func (q *Queue) Len() int { return len(q.pending) }

// Kind identifies a page.
type Kind int

const (
	RouteUnknown Kind = iota
	RouteHome
	RouteCommanders
	RouteCards
	RouteCommander
	RouteCard
	RouteDeck
)

func (k Kind) String() string {
	switch k {
	case RouteHome:
		return "home"
	case RouteCommanders:
		return "commanders"
	case RouteCards:
		return "cards"
	case RouteCommander:
		return "commander"
	case RouteCard:
		return "card"
	case RouteDeck:
		return "deck"
	default:
		return "unknown"
	}
}

// Route is a parsed page path.
type Route struct {
	Kind Kind
	// Param is the color identity for list pages, the slug for detail
	// pages, or the deck ID. Empty for root list pages and home.
	Param string
	Path  string
}

// Parse maps a path to a Route. Trailing slashes are ignored except
// that "/commanders/" and "/commanders" are the same root page.
func Parse(path string) Route {
	r := Route{Path: path}
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		r.Kind = RouteHome
		r.Path = "/"
		return r
	}

	head, param, _ := strings.Cut(trimmed, "/")
	if strings.Contains(param, "/") {
		return Route{Kind: RouteUnknown, Path: path}
	}

	switch head {
	case string(colorid.Commanders):
		r.Kind = RouteCommanders
	case string(colorid.Cards):
		r.Kind = RouteCards
	case "commander":
		r.Kind = RouteCommander
	case "card":
		r.Kind = RouteCard
	case "deck":
		r.Kind = RouteDeck
	default:
		return Route{Kind: RouteUnknown, Path: path}
	}

	switch r.Kind {
	case RouteCommander, RouteCard, RouteDeck:
		if param == "" {
			return Route{Kind: RouteUnknown, Path: path}
		}
	}
	r.Param = param
	return r
}

// Base returns the color filter base for list routes.
func (r Route) Base() (colorid.Base, bool) {
	switch r.Kind {
	case RouteCommanders:
		return colorid.Commanders, true
	case RouteCards:
		return colorid.Cards, true
	}
	return "", false
}

// History is a stack of visited paths.
type History struct {
	stack []string
}

// NewHistory creates a history positioned at start.
func NewHistory(start string) *History {
	return &History{stack: []string{start}}
}

// Navigate pushes path unless it is already current.
func (h *History) Navigate(path string) {
	if len(h.stack) > 0 && h.stack[len(h.stack)-1] == path {
		return
	}
	h.stack = append(h.stack, path)
}

// Back pops the current path and returns the previous one. At the first
// entry it reports false and stays put.
func (h *History) Back() (string, bool) {
	if len(h.stack) <= 1 {
		return h.Current(), false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.Current(), true
}

// Current returns the current path, or "/" when empty.
func (h *History) Current() string {
	if len(h.stack) == 0 {
		return "/"
	}
	return h.stack[len(h.stack)-1]
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.stack) }
