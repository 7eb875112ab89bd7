package tui_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/tui"
)

func stringPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64    { return &i }

var errNotFound = errors.New("not found")

func card(name, slug string, identity ...string) model.Card {
	return model.Card{
		OracleID:      "oracle-" + slug,
		NameFull:      name,
		NameFront:     name,
		Slug:          slug,
		ScryfallURI:   "https://scryfall.com/card/" + slug,
		Rarity:        "rare",
		ColorIdentity: identity,
		IsLegal:       true,
	}
}

func commanderCount(name, slug string, decks int64) model.CardCount {
	c := card(name, slug)
	c.IsLegalCommander = true
	return model.CardCount{Card: c, Count: int64Ptr(decks)}
}

func topCard(name, slug string, with, could int64) model.TopCard {
	return model.TopCard{
		Card:                card(name, slug),
		TotalDecksWithCard:  int64Ptr(with),
		TotalDecksCouldPlay: int64Ptr(could),
	}
}

// fakeFetcher serves canned API responses and records which identities
// the list pages asked for.
type fakeFetcher struct {
	mu sync.Mutex

	commanders []model.CardCount
	cards      []model.TopCard
	results    map[string][]model.SearchResult
	cardPages  map[string]*model.TopCard
	commander  map[string]*model.CommanderStats
	top        map[string]*model.CommanderTopCards
	decks      map[int64]*model.Deck

	searchErr    error
	colorQueries []string
	searches     []string
}

func newFakeFetcher() *fakeFetcher {
	esika := card("Esika, God of the Tree // The Prismatic Bridge", "esika-god-of-the-tree", "G")
	esika.NameFront = "Esika, God of the Tree"
	esika.NameBack = stringPtr("The Prismatic Bridge")
	esika.TypeLineFront = "Legendary Creature — God"
	esika.TypeLineBack = stringPtr("Legendary Enchantment")

	atraxa := commanderCount("Atraxa, Praetors' Voice", "atraxa-praetors-voice", 120)

	return &fakeFetcher{
		commanders: []model.CardCount{
			atraxa,
			commanderCount("Niv-Mizzet, Parun", "niv-mizzet-parun", 90),
			commanderCount("Krenko, Mob Boss", "krenko-mob-boss", 60),
		},
		cards: []model.TopCard{
			topCard("Sol Ring", "sol-ring", 80, 100),
			topCard("Arcane Signet", "arcane-signet", 70, 100),
			topCard("Command Tower", "command-tower", 50, 100),
		},
		results: map[string][]model.SearchResult{
			"a":  {{CardName: "Atraxa, Praetors' Voice", Slug: "/commander/atraxa-praetors-voice"}, {CardName: "Arcane Signet", Slug: "/card/arcane-signet"}},
			"at": {{CardName: "Atraxa, Praetors' Voice", Slug: "/commander/atraxa-praetors-voice"}},
			"ab": {{CardName: "Abrade", Slug: "/card/abrade"}},
		},
		cardPages: map[string]*model.TopCard{
			"sol-ring":              {Card: card("Sol Ring", "sol-ring"), Rank: int64Ptr(1), TotalDecksWithCard: int64Ptr(80), TotalDecksCouldPlay: int64Ptr(100)},
			"esika-god-of-the-tree": {Card: esika},
		},
		commander: map[string]*model.CommanderStats{
			"atraxa-praetors-voice": {Card: atraxa.Card, TotalDecks: int64Ptr(120), AllDecks: int64Ptr(1000), Rank: int64Ptr(1)},
		},
		top: map[string]*model.CommanderTopCards{
			"oracle-atraxa-praetors-voice": {
				Creatures: []model.CommanderTopCard{{Card: card("Evolution Sage", "evolution-sage"), UsageInCommander: 80, Synergy: 60}},
				Lands:     []model.CommanderTopCard{{Card: card("Command Tower", "command-tower"), UsageInCommander: 99, Synergy: 1}},
			},
		},
		decks: map[int64]*model.Deck{
			7: {
				DeckID:      7,
				Username:    "planeswalker",
				DateUpdated: 1700000000000,
				Commander:   atraxa.Card,
				Decklist: model.Decklist{
					Lands: []model.CardCount{{Card: card("Forest", "forest"), Count: int64Ptr(4)}},
				},
			},
		},
	}
}

func (f *fakeFetcher) Search(_ context.Context, query string) ([]model.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[query], nil
}

func (f *fakeFetcher) TopCommanders(context.Context) ([]model.CardCount, error) {
	return f.commanders, nil
}

func (f *fakeFetcher) CommandersByColor(_ context.Context, identity string) ([]model.CardCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colorQueries = append(f.colorQueries, identity)
	return f.commanders[:1], nil
}

func (f *fakeFetcher) TopCards(context.Context) ([]model.TopCard, error) {
	return f.cards, nil
}

func (f *fakeFetcher) TopCardsByColor(_ context.Context, identity string) ([]model.TopCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colorQueries = append(f.colorQueries, identity)
	return f.cards[:1], nil
}

func (f *fakeFetcher) Card(_ context.Context, slug string) (*model.TopCard, error) {
	if c, ok := f.cardPages[slug]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeFetcher) Commander(_ context.Context, slug string) (*model.CommanderStats, error) {
	if c, ok := f.commander[slug]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeFetcher) CommanderTopCards(_ context.Context, oracleID string) (*model.CommanderTopCards, error) {
	if t, ok := f.top[oracleID]; ok {
		return t, nil
	}
	return nil, errNotFound
}

func (f *fakeFetcher) Deck(_ context.Context, id int64) (*model.Deck, error) {
	if d, ok := f.decks[id]; ok {
		return d, nil
	}
	return nil, errNotFound
}

func (f *fakeFetcher) lastColorQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.colorQueries) == 0 {
		return ""
	}
	return f.colorQueries[len(f.colorQueries)-1]
}

// fakeVisits is an in-memory visit store.
type fakeVisits struct {
	mu       sync.Mutex
	recent   []model.Visit
	recorded []string
}

func (v *fakeVisits) RecordVisit(_ context.Context, path, title string) (model.Visit, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recorded = append(v.recorded, path)
	return model.NewVisit(path, title), nil
}

func (v *fakeVisits) RecentVisits(context.Context, int) ([]model.Visit, error) {
	return v.recent, nil
}

// collect executes cmd and everything it batches, returning the messages.
// Spinner ticks are dropped so nothing sleeps.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// run feeds cmd's messages back into app until nothing is left to do.
func run(t *testing.T, app tui.App, cmd tea.Cmd) tui.App {
	t.Helper()
	pending := collect(cmd)
	for steps := 0; len(pending) > 0; steps++ {
		if steps > 100 {
			t.Fatal("commands did not settle")
		}
		msg := pending[0]
		pending = pending[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		updated, next := app.Update(msg)
		app = updated.(tui.App)
		pending = append(pending, collect(next)...)
	}
	return app
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key and runs the resulting commands to completion.
func press(t *testing.T, app tui.App, keys ...string) tui.App {
	t.Helper()
	for _, k := range keys {
		updated, cmd := app.Update(keyMsg(k))
		app = run(t, updated.(tui.App), cmd)
	}
	return app
}

// typeText types text one rune at a time.
func typeText(t *testing.T, app tui.App, text string) tui.App {
	t.Helper()
	for _, r := range text {
		app = press(t, app, string(r))
	}
	return app
}

type testEnv struct {
	fetcher   *fakeFetcher
	visits    *fakeVisits
	clipboard []string
	opened    []string
	exportDir string
}

// newParams wires an app to fakes that record what it does.
func newParams(t *testing.T, path string) (tui.AppParams, *testEnv) {
	t.Helper()
	env := &testEnv{
		fetcher:   newFakeFetcher(),
		visits:    &fakeVisits{},
		exportDir: t.TempDir(),
	}
	params := tui.AppParams{
		Fetcher:   env.fetcher,
		Visits:    env.visits,
		StartPath: path,
		Clipboard: func(s string) error {
			env.clipboard = append(env.clipboard, s)
			return nil
		},
		OpenURL: func(u string) error {
			env.opened = append(env.opened, u)
			return nil
		},
		ExportPath: func(int64) (string, error) {
			return filepath.Join(env.exportDir, "deck.html"), nil
		},
		Now: func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
	return params, env
}

// newApp creates a sized app without loading anything.
func newApp(params tui.AppParams) tui.App {
	updated, _ := tui.NewApp(params).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(tui.App)
}

// start creates an app at path and runs its initial load.
func start(t *testing.T, path string, opts ...func(*tui.AppParams)) (tui.App, *testEnv) {
	t.Helper()
	params, env := newParams(t, path)
	for _, opt := range opts {
		opt(&params)
	}
	app := newApp(params)
	return run(t, app, app.Init()), env
}

// feed sends msgs to app in order, running whatever they return.
func feed(t *testing.T, app tui.App, msgs ...tea.Msg) tui.App {
	t.Helper()
	for _, msg := range msgs {
		updated, cmd := app.Update(msg)
		app = run(t, updated.(tui.App), cmd)
	}
	return app
}
