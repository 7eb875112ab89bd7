package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/brawlhub/internal/colorid"
	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/nav"
	"github.com/nikbrunner/brawlhub/internal/search"
)

// Rows shown per section on the home page.
const homeListLimit = 10

var (
	ErrUnknownPage = errors.New("unknown page")
	ErrBadDeckID   = errors.New("invalid deck id")
)

// Fetcher is the subset of the API client the pages read from.
type Fetcher interface {
	search.Searcher
	TopCommanders(ctx context.Context) ([]model.CardCount, error)
	CommandersByColor(ctx context.Context, identity string) ([]model.CardCount, error)
	TopCards(ctx context.Context) ([]model.TopCard, error)
	TopCardsByColor(ctx context.Context, identity string) ([]model.TopCard, error)
	Card(ctx context.Context, slug string) (*model.TopCard, error)
	Commander(ctx context.Context, slug string) (*model.CommanderStats, error)
	CommanderTopCards(ctx context.Context, oracleID string) (*model.CommanderTopCards, error)
	Deck(ctx context.Context, id int64) (*model.Deck, error)
}

// VisitStore records and lists recently opened pages.
type VisitStore interface {
	RecordVisit(ctx context.Context, path, title string) (model.Visit, error)
	RecentVisits(ctx context.Context, limit int) ([]model.Visit, error)
}

// pageLoadedMsg carries a finished page load. seq identifies the navigation
// that started it; loads for earlier navigations are discarded.
type pageLoadedMsg struct {
	seq  uint64
	page page
}

// searchResolvedMsg carries a finished search request.
type searchResolvedMsg struct {
	res search.Resolution
}

// visitRecordedMsg reports the outcome of storing a visit.
type visitRecordedMsg struct {
	err error
}

// statusMsg sets the status line from a background command.
type statusMsg struct {
	kind MessageType
	text string
}

// loader fetches the data behind a route.
type loader struct {
	fetcher Fetcher
	visits  VisitStore
	catalog colorid.Catalog
	log     logr.Logger
	now     func() time.Time
}

// loadCmd returns a command that loads route in the background.
func (l loader) loadCmd(ctx context.Context, route nav.Route, seq uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		p := l.load(ctx, route)
		if p.err != nil {
			l.log.Error(p.err, "page load failed", "path", route.Path)
		} else {
			l.log.V(1).Info("page loaded", "path", route.Path, "rows", len(p.rows), "took", time.Since(start).String())
		}
		return pageLoadedMsg{seq: seq, page: p}
	}
}

func (l loader) load(ctx context.Context, route nav.Route) page {
	p := page{route: route}
	switch route.Kind {
	case nav.RouteHome:
		p.title = "BrawlHub"
		p.rows, p.err = l.home(ctx)
	case nav.RouteCommanders:
		p.title = l.listTitle("Commanders", route.Param)
		p.rows, p.err = l.commanders(ctx, route.Param)
	case nav.RouteCards:
		p.title = l.listTitle("Top Cards", route.Param)
		p.rows, p.err = l.cards(ctx, route.Param)
	case nav.RouteCard:
		p.card, p.err = l.fetcher.Card(ctx, route.Param)
		if p.card != nil {
			p.title = p.card.Name()
		}
	case nav.RouteCommander:
		p.commander, p.top, p.err = l.commander(ctx, route.Param)
		if p.commander != nil {
			p.title = p.commander.Name()
		}
		p.rows = commanderTopRows(p.top)
	case nav.RouteDeck:
		p.deck, p.err = l.deck(ctx, route.Param)
		if p.deck != nil {
			p.title = "Deck " + strconv.FormatInt(p.deck.DeckID, 10)
			if name := p.deck.Commander.Name(); name != "" {
				p.title += ": " + name
			}
		}
		p.rows = deckRows(p.deck)
	default:
		p.title = "Not found"
		p.err = fmt.Errorf("%w: %s", ErrUnknownPage, route.Path)
	}
	return p
}

// home loads top commanders, top cards and recent visits concurrently.
// A failed visit lookup only hides that section.
func (l loader) home(ctx context.Context) ([]Row, error) {
	var (
		commanders []model.CardCount
		cards      []model.TopCard
		visits     []model.Visit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		commanders, err = l.fetcher.TopCommanders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = l.fetcher.TopCards(gctx)
		return err
	})
	if l.visits != nil {
		g.Go(func() error {
			var err error
			visits, err = l.visits.RecentVisits(gctx, homeListLimit)
			if err != nil {
				l.log.Error(err, "loading recent visits")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := []Row{headerRow("Top Commanders")}
	rows = append(rows, commanderRows(commanders, homeListLimit)...)
	rows = append(rows, headerRow("Top Cards"))
	rows = append(rows, topCardRows(cards, homeListLimit)...)
	if len(visits) > 0 {
		rows = append(rows, headerRow("Recently Viewed"))
		rows = append(rows, visitRows(visits, l.now())...)
	}
	return rows, nil
}

func (l loader) commanders(ctx context.Context, identity string) ([]Row, error) {
	var (
		cards []model.CardCount
		err   error
	)
	if identity == "" {
		cards, err = l.fetcher.TopCommanders(ctx)
	} else {
		cards, err = l.fetcher.CommandersByColor(ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	return commanderRows(cards, 0), nil
}

func (l loader) cards(ctx context.Context, identity string) ([]Row, error) {
	var (
		cards []model.TopCard
		err   error
	)
	if identity == "" {
		cards, err = l.fetcher.TopCards(ctx)
	} else {
		cards, err = l.fetcher.TopCardsByColor(ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	return topCardRows(cards, 0), nil
}

// commander loads the commander, then its top cards by oracle ID. The top
// cards are optional: a failure there still shows the commander.
func (l loader) commander(ctx context.Context, slug string) (*model.CommanderStats, *model.CommanderTopCards, error) {
	stats, err := l.fetcher.Commander(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if stats.OracleID == "" {
		return stats, nil, nil
	}
	top, err := l.fetcher.CommanderTopCards(ctx, stats.OracleID)
	if err != nil {
		l.log.Error(err, "loading commander top cards", "slug", slug)
		return stats, nil, nil
	}
	return stats, top, nil
}

func (l loader) deck(ctx context.Context, param string) (*model.Deck, error) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrBadDeckID, param)
	}
	return l.fetcher.Deck(ctx, id)
}

// listTitle is the heading of a commanders or cards page: the base name,
// plus the catalog title when filtered.
func (l loader) listTitle(base, identity string) string {
	if identity == "" {
		return base
	}
	if title := l.catalog.Title(identity); title != "" {
		return base + ": " + title
	}
	return base + ": " + identity
}

// recordVisitCmd stores a visit in the background.
func (l loader) recordVisitCmd(ctx context.Context, path, title string) tea.Cmd {
	if l.visits == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := l.visits.RecordVisit(ctx, path, title)
		if err != nil {
			l.log.Error(err, "recording visit", "path", path)
		}
		return visitRecordedMsg{err: err}
	}
}

// resolveCmd runs a search request off the UI goroutine.
func resolveCmd(ctx context.Context, box *search.Box, req search.Request) tea.Cmd {
	return func() tea.Msg {
		return searchResolvedMsg{res: box.Resolve(ctx, req)}
	}
}
