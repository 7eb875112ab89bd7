package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/nikbrunner/brawlhub/internal/browser"
	"github.com/nikbrunner/brawlhub/internal/colorid"
	"github.com/nikbrunner/brawlhub/internal/exporter"
	"github.com/nikbrunner/brawlhub/internal/nav"
	"github.com/nikbrunner/brawlhub/internal/search"
	"github.com/nikbrunner/brawlhub/internal/tui/layout"
)

// DefaultSiteURL is the public site pages link to.
const DefaultSiteURL = "https://brawlhub.net"

// App is the main bubbletea model for browsing BrawlHub.
type App struct {
	ctx          context.Context
	loader       loader
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	log          logr.Logger

	// Navigation state
	queue    *nav.Queue
	history  *nav.History
	catalog  colorid.Catalog
	selector *colorid.Selector // nil outside the commanders and cards pages

	search  SearchState
	filter  FilterState
	spinner spinner.Model

	page    page
	loading bool
	loadSeq uint64

	siteURL    string
	clipboard  func(string) error
	openURL    func(string) error
	exportPath func(deckID int64) (string, error)

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Fetcher   Fetcher
	Visits    VisitStore      // optional, no recent visits if nil
	Catalog   colorid.Catalog // optional, uses DefaultCatalog if nil
	Policy    search.Policy
	SiteURL   string // optional, uses DefaultSiteURL if empty
	StartPath string // optional, "/" if empty

	Context context.Context      // optional, cancels in-flight loads
	Keys    *KeyMap              // optional, uses default if nil
	Styles  *Styles              // optional, uses default if nil
	Layout  *layout.LayoutConfig // optional, uses default if nil
	Logger  *logr.Logger         // optional

	Clipboard  func(string) error                 // optional, system clipboard if nil
	OpenURL    func(string) error                 // optional, system browser if nil
	ExportPath func(deckID int64) (string, error) // optional, ~/Downloads if nil
	Now        func() time.Time                   // optional
}

// NewApp creates a new App with the given parameters. The start page begins
// loading when the program calls Init.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.Layout != nil {
		layoutConfig = *params.Layout
	}

	log := logr.Discard()
	if params.Logger != nil {
		log = *params.Logger
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	catalog := params.Catalog
	if catalog == nil {
		catalog = colorid.DefaultCatalog()
	}

	siteURL := strings.TrimRight(params.SiteURL, "/")
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = browser.Open
	}

	exportPath := params.ExportPath
	if exportPath == nil {
		exportPath = exporter.DefaultExportPath
	}

	start := params.StartPath
	if start == "" {
		start = "/"
	}
	route := nav.Parse(start)

	queue := &nav.Queue{}
	box := search.NewBox(search.BoxParams{
		Searcher:  params.Fetcher,
		Navigator: queue,
		Policy:    params.Policy,
		Logger:    &log,
	})

	app := App{
		ctx: ctx,
		loader: loader{
			fetcher: params.Fetcher,
			visits:  params.Visits,
			catalog: catalog,
			log:     log,
			now:     now,
		},
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		log:          log,
		queue:        queue,
		history:      nav.NewHistory(route.Path),
		catalog:      catalog,
		search:       NewSearchState(layoutConfig, styles, box),
		filter:       NewFilterState(layoutConfig),
		spinner:      spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.Stat)),
		siteURL:      siteURL,
		clipboard:    copyText,
		openURL:      openURL,
		exportPath:   exportPath,
		width:        80,
		height:       24,
	}
	app.enter(route)
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.loader.loadCmd(a.ctx, a.page.route, a.loadSeq), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case pageLoadedMsg:
		if msg.seq != a.loadSeq {
			a.log.V(1).Info("discarding stale page load", "path", msg.page.route.Path, "seq", msg.seq, "latest", a.loadSeq)
			return a, nil
		}
		a.loading = false
		a.page = msg.page
		a.page.cursor = a.firstSelectable()
		if msg.page.err != nil {
			a.setMessage(MessageError, msg.page.err.Error())
			return a, nil
		}
		return a, a.loader.recordVisitCmd(a.ctx, a.page.route.Path, a.page.title)

	case searchResolvedMsg:
		if a.search.Box.Apply(msg.res) {
			a.search.syncInput()
		}
		if msg.res.Err != nil {
			a.setMessage(MessageWarning, "Search failed")
		}
		return a, nil

	case visitRecordedMsg:
		return a, nil

	case statusMsg:
		a.setMessage(msg.kind, msg.text)
		return a, nil

	case tea.MouseMsg:
		cmd = a.handleMouse(msg)

	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	}

	return a, tea.Batch(cmd, a.drainNavigation())
}

// drainNavigation applies the routes components pushed during this update.
// Only the last one is loaded; earlier ones still enter the history.
func (a *App) drainNavigation() tea.Cmd {
	paths := a.queue.Drain()
	if len(paths) == 0 {
		return nil
	}
	for _, path := range paths {
		a.history.Navigate(nav.Parse(path).Path)
	}
	return a.navigate(paths[len(paths)-1])
}

// navigate switches to path and starts loading it.
func (a *App) navigate(path string) tea.Cmd {
	a.enter(nav.Parse(path))
	a.log.V(1).Info("navigate", "path", a.page.route.Path, "kind", a.page.route.Kind.String(), "seq", a.loadSeq)
	return tea.Batch(a.loader.loadCmd(a.ctx, a.page.route, a.loadSeq), a.spinner.Tick)
}

// enter resets page state for route. The color selector survives when the
// route is the one it just navigated to, so a selection the catalog cannot
// name is not lost.
func (a *App) enter(route nav.Route) {
	a.loadSeq++
	a.page = page{route: route}
	a.loading = true
	a.filter.Reset()
	a.clearMessage()
	if a.search.Focused || a.search.Box.Visible() {
		a.search.blur()
	}

	base, ok := route.Base()
	if !ok {
		a.selector = nil
		return
	}
	if a.selector != nil && a.selector.Base() == base && a.selector.Target() == route.Path {
		return
	}
	a.selector = colorid.NewSelector(colorid.SelectorParams{
		Base:      base,
		Catalog:   a.catalog,
		Segment:   route.Param,
		Navigator: a.queue,
		Logger:    &a.log,
	})
}

// handleKey routes a key press to whichever input owns the keyboard.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	switch {
	case a.search.Focused:
		return a.handleSearchKey(msg)
	case a.filter.Active:
		return a.handleFilterKey(msg)
	default:
		return a.handleNormalKey(msg)
	}
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	box := a.search.Box

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.search.blur()
		return nil

	case key.Matches(msg, a.keys.SearchNext):
		box.MoveDown()
		a.search.syncInput()
		return nil

	case key.Matches(msg, a.keys.SearchPrev):
		box.MoveUp()
		a.search.syncInput()
		return nil

	case key.Matches(msg, a.keys.Confirm):
		// Navigation is drained after this update; enter blurs the box.
		box.Commit()
		return nil
	}

	before := a.search.Input.Value()
	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	text := a.search.Input.Value()
	if text == before {
		return cmd
	}

	box.Activate()
	req, ok := box.SetQuery(text)
	a.search.syncInput()
	if !ok {
		return cmd
	}
	return tea.Batch(cmd, resolveCmd(a.ctx, box, req))
}

func (a *App) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.filter.Reset()
		a.page.cursor = a.firstSelectable()
		return nil

	case key.Matches(msg, a.keys.Confirm):
		a.filter.Active = false
		a.filter.Input.Blur()
		return nil

	case key.Matches(msg, a.keys.SearchNext):
		a.moveCursor(1)
		return nil

	case key.Matches(msg, a.keys.SearchPrev):
		a.moveCursor(-1)
		return nil
	}

	before := a.filter.Query()
	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	if a.filter.Query() != before {
		a.page.cursor = a.firstSelectable()
	}
	return cmd
}

func (a *App) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	a.clearMessage()

	if a.selector != nil {
		switch {
		case key.Matches(msg, a.keys.White):
			a.selector.Toggle(colorid.White)
			return nil
		case key.Matches(msg, a.keys.Blue):
			a.selector.Toggle(colorid.Blue)
			return nil
		case key.Matches(msg, a.keys.Black):
			a.selector.Toggle(colorid.Black)
			return nil
		case key.Matches(msg, a.keys.Red):
			a.selector.Toggle(colorid.Red)
			return nil
		case key.Matches(msg, a.keys.Green):
			a.selector.Toggle(colorid.Green)
			return nil
		case key.Matches(msg, a.keys.Colorless):
			a.selector.ToggleColorless()
			return nil
		case key.Matches(msg, a.keys.ClearColor):
			a.selector.Clear()
			return nil
		}
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Search):
		return a.search.focus()

	case key.Matches(msg, a.keys.Cancel):
		if a.filter.Query() != "" {
			a.filter.Reset()
			a.page.cursor = a.firstSelectable()
		}

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Top):
		a.page.cursor = a.firstSelectable()

	case key.Matches(msg, a.keys.Bottom):
		a.page.cursor = a.lastSelectable()

	case key.Matches(msg, a.keys.Open):
		if row, ok := a.SelectedRow(); ok && row.Route != "" {
			a.queue.Navigate(row.Route)
		}

	case key.Matches(msg, a.keys.Back):
		path, ok := a.history.Back()
		if !ok {
			a.setMessage(MessageInfo, "Nothing to go back to")
			return nil
		}
		return a.navigate(path)

	case key.Matches(msg, a.keys.Filter):
		if a.loading || len(a.page.rows) == 0 {
			return nil
		}
		a.filter.Active = true
		return a.filter.Input.Focus()

	case key.Matches(msg, a.keys.Home):
		a.queue.Navigate("/")

	case key.Matches(msg, a.keys.Commanders):
		a.queue.Navigate(colorid.RootPath(colorid.Commanders))

	case key.Matches(msg, a.keys.Cards):
		a.queue.Navigate(colorid.RootPath(colorid.Cards))

	case key.Matches(msg, a.keys.Flip):
		a.flip()

	case key.Matches(msg, a.keys.Yank):
		a.yank()

	case key.Matches(msg, a.keys.Export):
		a.export()

	case key.Matches(msg, a.keys.Browser):
		url := a.siteURL + a.page.route.Path
		if err := a.openURL(url); err != nil {
			a.setMessage(MessageError, "Open failed: "+err.Error())
		}
	}

	return nil
}

// handleMouse treats the search line and its dropdown as one region: a press
// inside focuses the box (or follows a clicked result), a press anywhere else
// dismisses it.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	start, end := a.dropdownWindow()
	region := layout.CalculateSearchRegion(a.width, end-start, a.layoutConfig.Search)
	if !region.Contains(msg.X, msg.Y) {
		if a.search.Focused || a.search.Box.Visible() {
			a.search.blur()
		}
		return nil
	}

	if row := msg.Y - region.Top - 1; row >= 0 {
		if idx := start + row; idx < end && a.search.Box.Highlight(idx) && a.search.Box.Commit() {
			return nil
		}
	}
	return a.search.focus()
}

// dropdownWindow returns the slice of results on screen.
func (a App) dropdownWindow() (start, end int) {
	box := a.search.Box
	if !box.Visible() {
		return 0, 0
	}
	return layout.CalculateVisibleListItems(a.layoutConfig.Search.MaxVisible, box.Cursor(), len(box.Results()))
}

func (a *App) flip() {
	var doubleFaced bool
	switch {
	case a.page.card != nil:
		doubleFaced = a.page.card.IsDoubleFaced()
	case a.page.commander != nil:
		doubleFaced = a.page.commander.IsDoubleFaced()
	default:
		return
	}
	if !doubleFaced {
		a.setMessage(MessageInfo, "This card has one face")
		return
	}
	a.page.flipped = !a.page.flipped
}

// yank copies the Scryfall link of the current card or commander, the
// decklist in Arena format on deck pages, or the page URL elsewhere.
func (a *App) yank() {
	var text, what string
	switch {
	case a.page.card != nil && a.page.card.ScryfallURI != "":
		text, what = a.page.card.ScryfallURI, "Scryfall link"
	case a.page.commander != nil && a.page.commander.ScryfallURI != "":
		text, what = a.page.commander.ScryfallURI, "Scryfall link"
	case a.page.deck != nil:
		text, what = exporter.ExportDeckText(a.page.deck), "decklist"
	default:
		text, what = a.siteURL+a.page.route.Path, "page link"
	}

	if err := a.clipboard(text); err != nil {
		a.log.Error(err, "clipboard write failed")
		a.setMessage(MessageError, "Copy failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Copied "+what)
}

// export writes the open deck as a bookmark file.
func (a *App) export() {
	deck := a.page.deck
	if deck == nil {
		return
	}

	path, err := a.exportPath(deck.DeckID)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	if err == nil {
		err = os.WriteFile(path, []byte(exporter.ExportDeckHTML(deck, a.siteURL)), 0o644)
	}
	if err != nil {
		a.log.Error(err, "deck export failed", "deck", deck.DeckID)
		a.setMessage(MessageError, "Export failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, fmt.Sprintf("Exported to %s", path))
}

// visibleRows returns the page rows after the filter.
func (a App) visibleRows() []Row {
	return filterRows(a.page.rows, a.filter.Query())
}

func (a *App) moveCursor(delta int) {
	rows := a.visibleRows()
	for i := a.page.cursor + delta; i >= 0 && i < len(rows); i += delta {
		if !rows[i].Header {
			a.page.cursor = i
			return
		}
	}
}

func (a App) firstSelectable() int {
	for i, r := range a.visibleRows() {
		if !r.Header {
			return i
		}
	}
	return 0
}

func (a App) lastSelectable() int {
	rows := a.visibleRows()
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].Header {
			return i
		}
	}
	return 0
}

func (a *App) setMessage(kind MessageType, text string) {
	a.messageType = kind
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// Route returns the current page route.
func (a App) Route() nav.Route {
	return a.page.route
}

// Title returns the current page title.
func (a App) Title() string {
	return a.page.title
}

// Loading reports whether the current page is still loading.
func (a App) Loading() bool {
	return a.loading
}

// Cursor returns the current row index.
func (a App) Cursor() int {
	return a.page.cursor
}

// Rows returns the rows on screen, after filtering.
func (a App) Rows() []Row {
	return a.visibleRows()
}

// SelectedRow returns the row under the cursor.
func (a App) SelectedRow() (Row, bool) {
	rows := a.visibleRows()
	if a.page.cursor < 0 || a.page.cursor >= len(rows) || rows[a.page.cursor].Header {
		return Row{}, false
	}
	return rows[a.page.cursor], true
}

// Search returns the search box.
func (a App) Search() *search.Box {
	return a.search.Box
}

// SearchFocused reports whether the search line has keyboard focus.
func (a App) SearchFocused() bool {
	return a.search.Focused
}

// SearchText returns the text shown in the search line.
func (a App) SearchText() string {
	return a.search.Input.Value()
}

// Selection returns the color filter selection, if the page has one.
func (a App) Selection() (colorid.Selection, bool) {
	if a.selector == nil {
		return colorid.Selection{}, false
	}
	return a.selector.Selection(), true
}

// Flipped reports whether the card page shows the back face.
func (a App) Flipped() bool {
	return a.page.flipped
}

// Message returns the status line message.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// History returns the visited paths.
func (a App) History() *nav.History {
	return a.history
}
