package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/nikbrunner/brawlhub/internal/model"
)

// NoCursor is the cursor value when no result is highlighted.
const NoCursor = -1

// Searcher resolves a non-empty query to ranked results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// Navigator pushes a new route.
type Navigator interface {
	Navigate(path string)
}

// Policy decides which resolutions may replace the current results.
type Policy int

const (
	// LastWriteWins applies every resolution in completion order.
	LastWriteWins Policy = iota
	// DropStale ignores resolutions for requests older than the newest one.
	DropStale
)

// ParsePolicy maps a config value to a Policy. Unknown values fall back
// to LastWriteWins.
func ParsePolicy(s string) Policy {
	if strings.EqualFold(s, "dropStale") {
		return DropStale
	}
	return LastWriteWins
}

func (p Policy) String() string {
	if p == DropStale {
		return "dropStale"
	}
	return "lastWriteWins"
}

// Request is one pending resolution, numbered in issue order.
type Request struct {
	Seq   uint64
	Query string
}

// Resolution is the outcome of resolving a Request.
type Resolution struct {
	Seq     uint64
	Query   string
	Results []model.SearchResult
	Err     error
}

// Box is the incremental search box state: the typed query, the latest
// results, a keyboard cursor over them and their visibility.
//
// All methods except Resolve must be called from the UI goroutine.
type Box struct {
	query   string
	results []model.SearchResult
	cursor  int
	visible bool

	seq uint64

	policy   Policy
	searcher Searcher
	nav      Navigator
	log      logr.Logger
}

// BoxParams holds parameters for creating a Box.
type BoxParams struct {
	Searcher  Searcher
	Navigator Navigator
	Policy    Policy
	Logger    *logr.Logger // optional
}

// NewBox creates an empty, hidden search box.
func NewBox(params BoxParams) *Box {
	log := logr.Discard()
	if params.Logger != nil {
		log = *params.Logger
	}
	return &Box{
		results:  []model.SearchResult{},
		cursor:   NoCursor,
		policy:   params.Policy,
		searcher: params.Searcher,
		nav:      params.Navigator,
		log:      log,
	}
}

// SetQuery replaces the query and clears the cursor. It returns the
// request to resolve, or false for an empty query, whose results are
// cleared immediately without searching.
func (b *Box) SetQuery(text string) (Request, bool) {
	b.query = text
	b.cursor = NoCursor
	b.seq++
	if text == "" {
		b.results = []model.SearchResult{}
		return Request{}, false
	}
	return Request{Seq: b.seq, Query: text}, true
}

// Resolve runs the search for req. It does not touch the box and may be
// called from any goroutine. Failures yield an empty result list with
// Err set.
func (b *Box) Resolve(ctx context.Context, req Request) Resolution {
	res := Resolution{Seq: req.Seq, Query: req.Query, Results: []model.SearchResult{}}
	if req.Query == "" || b.searcher == nil {
		return res
	}
	results, err := b.searcher.Search(ctx, req.Query)
	if err != nil {
		b.log.Error(err, "search failed", "query", req.Query, "seq", req.Seq)
		res.Err = err
		return res
	}
	if results != nil {
		res.Results = results
	}
	return res
}

// Apply replaces the results with a completed resolution and clears the
// cursor. It reports whether the resolution was applied.
func (b *Box) Apply(res Resolution) bool {
	if b.policy == DropStale && res.Seq < b.seq {
		b.log.V(1).Info("dropping stale search results", "seq", res.Seq, "latest", b.seq)
		return false
	}
	b.results = res.Results
	if b.results == nil {
		b.results = []model.SearchResult{}
	}
	b.cursor = NoCursor
	return true
}

// Run sets the query and resolves it synchronously.
func (b *Box) Run(ctx context.Context, text string) []model.SearchResult {
	req, ok := b.SetQuery(text)
	if ok {
		b.Apply(b.Resolve(ctx, req))
	}
	return b.results
}

// MoveDown advances the cursor. Past the last result it returns to no
// selection rather than wrapping to the first.
func (b *Box) MoveDown() {
	if len(b.results) == 0 {
		b.cursor = NoCursor
		return
	}
	switch {
	case b.cursor == NoCursor:
		b.cursor = 0
	case b.cursor >= len(b.results)-1:
		b.cursor = NoCursor
	default:
		b.cursor++
	}
}

// MoveUp moves the cursor back. From no selection it wraps to the last
// result; from the first it returns to no selection.
func (b *Box) MoveUp() {
	if len(b.results) == 0 {
		b.cursor = NoCursor
		return
	}
	switch {
	case b.cursor == 0:
		b.cursor = NoCursor
	case b.cursor == NoCursor:
		b.cursor = len(b.results) - 1
	default:
		b.cursor--
	}
}

// Highlight moves the cursor to result i. It reports false and leaves the
// cursor alone when i is out of range.
func (b *Box) Highlight(i int) bool {
	if i < 0 || i >= len(b.results) {
		return false
	}
	b.cursor = i
	return true
}

// Commit navigates to the highlighted result's slug. It reports whether
// a navigation happened.
func (b *Box) Commit() bool {
	sel, ok := b.Selected()
	if !ok || sel.Slug == "" || b.nav == nil {
		return false
	}
	b.log.V(1).Info("search commit", "slug", sel.Slug, "query", b.query)
	b.nav.Navigate(sel.Slug)
	return true
}

// Dismiss hides the results and clears the cursor.
func (b *Box) Dismiss() {
	b.visible = false
	b.cursor = NoCursor
}

// Activate shows the results.
func (b *Box) Activate() {
	b.visible = true
}

// Query returns the typed query.
func (b *Box) Query() string { return b.query }

// Results returns the current results.
func (b *Box) Results() []model.SearchResult { return b.results }

// Cursor returns the highlighted index, or NoCursor.
func (b *Box) Cursor() int { return b.cursor }

// Visible reports whether the results are shown.
func (b *Box) Visible() bool { return b.visible }

// Policy returns the resolution policy.
func (b *Box) Policy() Policy { return b.policy }

// Selected returns the highlighted result, if any.
func (b *Box) Selected() (model.SearchResult, bool) {
	if b.cursor < 0 || b.cursor >= len(b.results) {
		return model.SearchResult{}, false
	}
	return b.results[b.cursor], true
}

// DisplayText is what the input shows: the query, or the name of the
// highlighted result.
func (b *Box) DisplayText() string {
	if sel, ok := b.Selected(); ok {
		return sel.CardName
	}
	return b.query
}

// Ghost returns the part of the top result's name that extends past the
// typed query, matched case-insensitively as a prefix. It is empty while
// a result is highlighted or the results are hidden.
func (b *Box) Ghost() string {
	if b.cursor != NoCursor || !b.visible || len(b.results) == 0 || b.query == "" {
		return ""
	}
	name := b.results[0].CardName
	rest, ok := cutPrefixFold(name, b.query)
	if !ok {
		return ""
	}
	return rest
}

// cutPrefixFold strips prefix from s ignoring case, comparing rune by rune.
func cutPrefixFold(s, prefix string) (string, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return "", false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !strings.EqualFold(string(sr), string(pr)) {
			return "", false
		}
		i += size
	}
	return s[i:], true
}
