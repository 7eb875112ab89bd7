package tui_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/brawlhub/internal/colorid"
	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/nav"
	"github.com/nikbrunner/brawlhub/internal/search"
	"github.com/nikbrunner/brawlhub/internal/tui"
)

func rowLabels(app tui.App) []string {
	var labels []string
	for _, r := range app.Rows() {
		labels = append(labels, r.Label)
	}
	return labels
}

func TestApp_HomeLoadsSections(t *testing.T) {
	app, env := start(t, "/")

	if app.Loading() {
		t.Fatal("expected home page to finish loading")
	}
	if app.Title() != "BrawlHub" {
		t.Errorf("expected title BrawlHub, got %q", app.Title())
	}

	rows := app.Rows()
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d: %v", len(rows), rowLabels(app))
	}
	if !rows[0].Header || rows[0].Label != "Top Commanders" {
		t.Errorf("expected Top Commanders header first, got %+v", rows[0])
	}
	if !rows[4].Header || rows[4].Label != "Top Cards" {
		t.Errorf("expected Top Cards header at 4, got %+v", rows[4])
	}
	if rows[1].Detail != "120 decks" {
		t.Errorf("expected deck count detail, got %q", rows[1].Detail)
	}
	if rows[5].Detail != "80.0%" {
		t.Errorf("expected inclusion rate detail, got %q", rows[5].Detail)
	}

	// Cursor starts on the first selectable row
	if app.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", app.Cursor())
	}

	if len(env.visits.recorded) != 1 || env.visits.recorded[0] != "/" {
		t.Errorf("expected home visit recorded, got %v", env.visits.recorded)
	}
}

func TestApp_HomeShowsRecentVisits(t *testing.T) {
	params, env := newParams(t, "/")
	env.visits.recent = []model.Visit{
		{ID: "v1", Path: "/card/sol-ring", Title: "Sol Ring", VisitedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	app := newApp(params)
	app = run(t, app, app.Init())

	rows := app.Rows()
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d: %v", len(rows), rowLabels(app))
	}
	if !rows[8].Header || rows[8].Label != "Recently Viewed" {
		t.Errorf("expected Recently Viewed header, got %+v", rows[8])
	}
	if rows[9].Label != "Sol Ring" || rows[9].Route != "/card/sol-ring" {
		t.Errorf("unexpected visit row %+v", rows[9])
	}
}

func TestApp_Navigation_JK(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "j")
	if app.Cursor() != 2 {
		t.Errorf("after j, expected cursor 2, got %d", app.Cursor())
	}

	app = press(t, app, "k")
	if app.Cursor() != 1 {
		t.Errorf("after k, expected cursor 1, got %d", app.Cursor())
	}

	// k on the first row must not land on the header above it
	app = press(t, app, "k")
	if app.Cursor() != 1 {
		t.Errorf("k at top should stay at 1, got %d", app.Cursor())
	}

	// j skips the Top Cards header
	app = press(t, app, "j", "j", "j")
	if app.Cursor() != 5 {
		t.Errorf("expected cursor 5 past header, got %d", app.Cursor())
	}
}

func TestApp_Navigation_TopBottom(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "G")
	if app.Cursor() != 7 {
		t.Errorf("G should move to last row, got %d", app.Cursor())
	}

	app = press(t, app, "j")
	if app.Cursor() != 7 {
		t.Errorf("j at bottom should stay at 7, got %d", app.Cursor())
	}

	app = press(t, app, "home")
	if app.Cursor() != 1 {
		t.Errorf("home should move to first row, got %d", app.Cursor())
	}
}

func TestApp_OpenAndBack(t *testing.T) {
	app, env := start(t, "/")

	app = press(t, app, "enter")
	if app.Route().Kind != nav.RouteCommander || app.Route().Param != "atraxa-praetors-voice" {
		t.Fatalf("expected commander route, got %+v", app.Route())
	}
	if app.Title() != "Atraxa, Praetors' Voice" {
		t.Errorf("unexpected title %q", app.Title())
	}
	if app.History().Len() != 2 {
		t.Errorf("expected 2 history entries, got %d", app.History().Len())
	}

	want := []string{"Creatures", "Evolution Sage", "Lands", "Command Tower"}
	if got := rowLabels(app); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected rows %v, got %v", want, got)
	}
	if app.Rows()[1].Detail != "80% · +60% synergy" {
		t.Errorf("unexpected synergy detail %q", app.Rows()[1].Detail)
	}

	app = press(t, app, "h")
	if app.Route().Kind != nav.RouteHome {
		t.Errorf("expected home after h, got %+v", app.Route())
	}
	if app.History().Len() != 1 {
		t.Errorf("expected 1 history entry, got %d", app.History().Len())
	}

	if len(env.visits.recorded) != 3 {
		t.Errorf("expected a visit per loaded page, got %v", env.visits.recorded)
	}
}

func TestApp_Back_AtStart(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "h")

	msg, kind := app.Message()
	if msg != "Nothing to go back to" || kind != tui.MessageInfo {
		t.Errorf("expected info message, got %q (%v)", msg, kind)
	}
	if app.Route().Kind != nav.RouteHome {
		t.Errorf("expected to stay home, got %+v", app.Route())
	}
}

func TestApp_GlobalRoutes(t *testing.T) {
	app, _ := start(t, "/card/sol-ring")

	app = press(t, app, "C")
	if app.Route().Path != "/commanders/" {
		t.Errorf("C should open commanders, got %q", app.Route().Path)
	}

	app = press(t, app, "A")
	if app.Route().Path != "/cards/" {
		t.Errorf("A should open cards, got %q", app.Route().Path)
	}

	app = press(t, app, "H")
	if app.Route().Path != "/" {
		t.Errorf("H should open home, got %q", app.Route().Path)
	}
	if app.History().Len() != 4 {
		t.Errorf("expected 4 history entries, got %d", app.History().Len())
	}
}

func TestApp_Quit(t *testing.T) {
	app, _ := start(t, "/")

	_, cmd := app.Update(keyMsg("q"))
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected a single quit message, got %v", msgs)
	}
	if _, ok := msgs[0].(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", msgs[0])
	}
}

func TestApp_Search_TypeAndNavigate(t *testing.T) {
	app, env := start(t, "/")

	app = press(t, app, "/")
	if !app.SearchFocused() {
		t.Fatal("expected / to focus search")
	}

	app = typeText(t, app, "a")
	box := app.Search()
	if !box.Visible() {
		t.Error("expected results to be visible while typing")
	}
	if len(box.Results()) != 2 {
		t.Fatalf("expected 2 results for a, got %d", len(box.Results()))
	}
	if box.Ghost() != "traxa, Praetors' Voice" {
		t.Errorf("unexpected ghost %q", box.Ghost())
	}

	app = typeText(t, app, "t")
	box = app.Search()
	if box.Query() != "at" || len(box.Results()) != 1 {
		t.Fatalf("expected one result for at, got %q %v", box.Query(), box.Results())
	}
	if got := strings.Join(env.fetcher.searches, ","); got != "a,at" {
		t.Errorf("expected a search per keystroke, got %s", got)
	}

	// down highlights the result and shows its name
	app = press(t, app, "down")
	if app.Search().Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", app.Search().Cursor())
	}
	if app.SearchText() != "Atraxa, Praetors' Voice" {
		t.Errorf("expected highlighted name in input, got %q", app.SearchText())
	}

	// down past the last result clears the highlight instead of wrapping
	app = press(t, app, "down")
	if app.Search().Cursor() != search.NoCursor {
		t.Errorf("expected no cursor, got %d", app.Search().Cursor())
	}
	if app.SearchText() != "at" {
		t.Errorf("expected query back in input, got %q", app.SearchText())
	}

	// up from no highlight wraps to the last result
	app = press(t, app, "up")
	if app.Search().Cursor() != 0 {
		t.Errorf("expected cursor on last result, got %d", app.Search().Cursor())
	}

	app = press(t, app, "enter")
	if app.Route().Path != "/commander/atraxa-praetors-voice" {
		t.Errorf("expected commit to navigate, got %q", app.Route().Path)
	}
	if app.SearchFocused() || app.Search().Visible() {
		t.Error("expected search to close after navigating")
	}
	if app.Title() != "Atraxa, Praetors' Voice" {
		t.Errorf("expected commander page, got %q", app.Title())
	}
}

func TestApp_Search_EnterWithoutHighlight(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "/")
	app = typeText(t, app, "at")
	app = press(t, app, "enter")

	if app.Route().Kind != nav.RouteHome {
		t.Errorf("enter without a highlight should not navigate, got %+v", app.Route())
	}
	if !app.SearchFocused() {
		t.Error("expected search to keep focus")
	}
}

func TestApp_Search_TypingEditsHighlightedName(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "/")
	app = typeText(t, app, "at")
	app = press(t, app, "down")
	app = typeText(t, app, "!")

	if got := app.Search().Query(); got != "Atraxa, Praetors' Voice!" {
		t.Errorf("expected the shown name to become the query, got %q", got)
	}
	if app.Search().Cursor() != search.NoCursor {
		t.Errorf("expected cursor cleared by typing, got %d", app.Search().Cursor())
	}
}

func TestApp_Search_EmptyQueryClears(t *testing.T) {
	app, env := start(t, "/")

	app = press(t, app, "/")
	app = typeText(t, app, "a")
	app = press(t, app, "backspace")

	if len(app.Search().Results()) != 0 {
		t.Errorf("expected results cleared, got %v", app.Search().Results())
	}
	if len(env.fetcher.searches) != 1 {
		t.Errorf("empty query should not search, got %v", env.fetcher.searches)
	}
}

func TestApp_Search_EscDismisses(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "/")
	app = typeText(t, app, "a")
	app = press(t, app, "down", "esc")

	box := app.Search()
	if app.SearchFocused() || box.Visible() {
		t.Error("expected esc to dismiss search")
	}
	if box.Cursor() != search.NoCursor {
		t.Errorf("expected cursor cleared, got %d", box.Cursor())
	}

	// Normal keys work again
	app = press(t, app, "j")
	if app.Cursor() != 2 {
		t.Errorf("expected j to move the list, got %d", app.Cursor())
	}
}

func TestApp_Search_Failure(t *testing.T) {
	app, env := start(t, "/")
	env.fetcher.searchErr = errors.New("boom")

	app = press(t, app, "/")
	app = typeText(t, app, "a")

	if len(app.Search().Results()) != 0 {
		t.Errorf("expected no results after failure, got %v", app.Search().Results())
	}
	msg, kind := app.Message()
	if msg != "Search failed" || kind != tui.MessageWarning {
		t.Errorf("expected search warning, got %q (%v)", msg, kind)
	}
}

func TestApp_Search_Policy(t *testing.T) {
	tests := []struct {
		name   string
		policy search.Policy
		want   string
	}{
		{"last write wins shows the late response", search.LastWriteWins, "Atraxa, Praetors' Voice"},
		{"drop stale keeps the newest request", search.DropStale, "Abrade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := start(t, "/", func(p *tui.AppParams) { p.Policy = tt.policy })
			app = press(t, app, "/")

			updated, first := app.Update(keyMsg("a"))
			app = updated.(tui.App)
			updated, second := app.Update(keyMsg("b"))
			app = updated.(tui.App)

			// The request for "a" completes after the one for "ab".
			app = feed(t, app, collect(second)...)
			app = feed(t, app, collect(first)...)

			results := app.Search().Results()
			if len(results) == 0 || results[0].CardName != tt.want {
				t.Errorf("expected first result %q, got %v", tt.want, results)
			}
		})
	}
}

func mousePress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestApp_Mouse_OutsideDismisses(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "/")
	app = typeText(t, app, "a")
	app = feed(t, app, mousePress(5, 20))

	if app.SearchFocused() || app.Search().Visible() {
		t.Error("expected click outside to dismiss search")
	}
}

func TestApp_Mouse_InsideFocuses(t *testing.T) {
	app, _ := start(t, "/")

	app = feed(t, app, mousePress(10, 1))
	if !app.SearchFocused() || !app.Search().Visible() {
		t.Error("expected click on the search line to focus it")
	}

	// Releases and other buttons are ignored
	app = feed(t, app, tea.MouseMsg{X: 5, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if !app.SearchFocused() {
		t.Error("expected release to be ignored")
	}
}

func TestApp_Mouse_ClickResult(t *testing.T) {
	app, _ := start(t, "/")

	app = press(t, app, "/")
	app = typeText(t, app, "a")

	// Results are drawn on the rows under the search line
	app = feed(t, app, mousePress(10, 3))
	if app.Route().Path != "/card/arcane-signet" {
		t.Errorf("expected click to open second result, got %q", app.Route().Path)
	}
	if app.Search().Visible() {
		t.Error("expected search to close after navigating")
	}
}

func TestApp_ColorSelector(t *testing.T) {
	app, env := start(t, "/commanders/")

	sel, ok := app.Selection()
	if !ok || !sel.Empty() {
		t.Fatalf("expected empty selection on root page, got %v %v", sel, ok)
	}
	if app.History().Len() != 1 {
		t.Errorf("mounting the selector should not navigate, got %d entries", app.History().Len())
	}

	app = press(t, app, "r")
	if app.Route().Path != "/commanders/r" {
		t.Errorf("expected /commanders/r, got %q", app.Route().Path)
	}
	if env.fetcher.lastColorQuery() != "r" {
		t.Errorf("expected commanders fetched by r, got %q", env.fetcher.lastColorQuery())
	}

	app = press(t, app, "g", "w")
	if app.Route().Path != "/commanders/rgw" {
		t.Errorf("expected catalog identity rgw, got %q", app.Route().Path)
	}
	if app.Title() != "Commanders: Naya" {
		t.Errorf("expected Naya title, got %q", app.Title())
	}
	sel, _ = app.Selection()
	if !sel.Has(colorid.White) || !sel.Has(colorid.Red) || !sel.Has(colorid.Green) {
		t.Errorf("expected selection to survive navigation, got %v", sel.String())
	}

	app = press(t, app, "c")
	if app.Route().Path != "/commanders/colorless" {
		t.Errorf("expected colorless route, got %q", app.Route().Path)
	}

	app = press(t, app, "u")
	if app.Route().Path != "/commanders/u" {
		t.Errorf("expected a color to replace colorless, got %q", app.Route().Path)
	}

	app = press(t, app, "x")
	if app.Route().Path != "/commanders/" {
		t.Errorf("expected x to clear back to root, got %q", app.Route().Path)
	}
	if app.History().Len() != 7 {
		t.Errorf("expected one history entry per change, got %d", app.History().Len())
	}

	// Clearing an empty selection changes nothing
	app = press(t, app, "x")
	if app.History().Len() != 7 {
		t.Errorf("expected no navigation, got %d entries", app.History().Len())
	}
}

func TestApp_ColorSelector_SeededFromRoute(t *testing.T) {
	app, _ := start(t, "/cards/ub")

	sel, ok := app.Selection()
	if !ok || sel.String() != "ub" {
		t.Fatalf("expected ub selection, got %q", sel.String())
	}
	if app.Title() != "Top Cards: Dimir" {
		t.Errorf("unexpected title %q", app.Title())
	}

	app = press(t, app, "b")
	if app.Route().Path != "/cards/u" {
		t.Errorf("expected /cards/u, got %q", app.Route().Path)
	}
}

func TestApp_ColorKeys_OnlyOnListPages(t *testing.T) {
	app, _ := start(t, "/card/sol-ring")

	if _, ok := app.Selection(); ok {
		t.Error("card pages have no color selector")
	}

	app = press(t, app, "w")
	if app.Route().Path != "/card/sol-ring" {
		t.Errorf("expected w to do nothing here, got %q", app.Route().Path)
	}
}

func TestApp_Filter(t *testing.T) {
	app, _ := start(t, "/cards/")

	app = press(t, app, "f")
	app = typeText(t, app, "sol")

	if got := rowLabels(app); len(got) != 1 || got[0] != "Sol Ring" {
		t.Fatalf("expected only Sol Ring, got %v", got)
	}
	if matched := app.Rows()[0].Matched; len(matched) != 3 {
		t.Errorf("expected 3 matched indexes, got %v", matched)
	}

	// enter keeps the filter but returns keys to the list
	app = press(t, app, "enter")
	if len(app.Rows()) != 1 {
		t.Errorf("expected filter to stay applied, got %v", rowLabels(app))
	}

	app = press(t, app, "esc")
	if len(app.Rows()) != 3 {
		t.Errorf("expected esc to clear the filter, got %v", rowLabels(app))
	}
}

func TestApp_Filter_ClearedOnNavigation(t *testing.T) {
	app, _ := start(t, "/cards/")

	app = press(t, app, "f")
	app = typeText(t, app, "ring")
	app = press(t, app, "enter", "enter")

	if app.Route().Path != "/card/sol-ring" {
		t.Fatalf("expected to open Sol Ring, got %q", app.Route().Path)
	}

	app = press(t, app, "h")
	if len(app.Rows()) != 3 {
		t.Errorf("expected unfiltered list after going back, got %v", rowLabels(app))
	}
}

func TestApp_StalePageLoadIgnored(t *testing.T) {
	params, _ := newParams(t, "/")
	app := newApp(params)
	initial := app.Init()

	updated, cmd := app.Update(keyMsg("C"))
	app = updated.(tui.App)

	// The commanders page arrives first, then the slower home page.
	app = feed(t, app, collect(cmd)...)
	app = feed(t, app, collect(initial)...)

	if app.Route().Path != "/commanders/" {
		t.Errorf("expected commanders route, got %q", app.Route().Path)
	}
	if app.Title() != "Commanders" || len(app.Rows()) != 3 {
		t.Errorf("stale home load replaced the page: %q %v", app.Title(), rowLabels(app))
	}
}

func TestApp_CardFlip(t *testing.T) {
	app, _ := start(t, "/card/esika-god-of-the-tree")

	app = press(t, app, "t")
	if !app.Flipped() {
		t.Error("expected t to flip a double-faced card")
	}
	app = press(t, app, "t")
	if app.Flipped() {
		t.Error("expected second t to flip back")
	}

	app, _ = start(t, "/card/sol-ring")
	app = press(t, app, "t")
	if app.Flipped() {
		t.Error("single-faced cards do not flip")
	}
	if msg, _ := app.Message(); msg != "This card has one face" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestApp_Yank(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"card copies scryfall link", "/card/sol-ring", "https://scryfall.com/card/sol-ring"},
		{"commander copies scryfall link", "/commander/atraxa-praetors-voice", "https://scryfall.com/card/atraxa-praetors-voice"},
		{"list copies page link", "/cards/", tui.DefaultSiteURL + "/cards/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, env := start(t, tt.path)
			app = press(t, app, "Y")

			if len(env.clipboard) != 1 || env.clipboard[0] != tt.want {
				t.Errorf("expected clipboard %q, got %v", tt.want, env.clipboard)
			}
			if _, kind := app.Message(); kind != tui.MessageSuccess {
				t.Errorf("expected success message, got %v", kind)
			}
		})
	}
}

func TestApp_Deck(t *testing.T) {
	app, env := start(t, "/deck/7")

	if app.Title() != "Deck 7: Atraxa, Praetors' Voice" {
		t.Errorf("unexpected title %q", app.Title())
	}
	if got := rowLabels(app); len(got) != 2 || got[1] != "4× Forest" {
		t.Errorf("unexpected deck rows %v", got)
	}

	app = press(t, app, "Y")
	if len(env.clipboard) != 1 || !strings.Contains(env.clipboard[0], "Forest") {
		t.Errorf("expected decklist on clipboard, got %v", env.clipboard)
	}

	app = press(t, app, "e")
	msg, kind := app.Message()
	if kind != tui.MessageSuccess || !strings.HasPrefix(msg, "Exported to ") {
		t.Errorf("expected export success, got %q (%v)", msg, kind)
	}
	data, err := os.ReadFile(filepath.Join(env.exportDir, "deck.html"))
	if err != nil {
		t.Fatalf("expected export file: %v", err)
	}
	if !strings.Contains(string(data), "Forest") {
		t.Error("expected exported file to list the deck's cards")
	}
}

func TestApp_OpenInBrowser(t *testing.T) {
	app, env := start(t, "/card/sol-ring")

	press(t, app, "o")
	if len(env.opened) != 1 || env.opened[0] != tui.DefaultSiteURL+"/card/sol-ring" {
		t.Errorf("unexpected opened URLs %v", env.opened)
	}
}

func TestApp_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"bad deck id", "/deck/abc", "invalid deck id"},
		{"unknown page", "/nope", "unknown page"},
		{"missing card", "/card/nothing", "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, env := start(t, tt.path)

			msg, kind := app.Message()
			if kind != tui.MessageError || !strings.Contains(msg, tt.want) {
				t.Errorf("expected error containing %q, got %q (%v)", tt.want, msg, kind)
			}
			if len(env.visits.recorded) != 0 {
				t.Errorf("failed loads should not be recorded, got %v", env.visits.recorded)
			}
		})
	}
}
