package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/brawlhub/internal/api"
	"github.com/nikbrunner/brawlhub/internal/browser"
	"github.com/nikbrunner/brawlhub/internal/colorid"
	"github.com/nikbrunner/brawlhub/internal/exporter"
	"github.com/nikbrunner/brawlhub/internal/logger"
	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/nikbrunner/brawlhub/internal/nav"
	"github.com/nikbrunner/brawlhub/internal/picker"
	"github.com/nikbrunner/brawlhub/internal/prefetch"
	"github.com/nikbrunner/brawlhub/internal/search"
	"github.com/nikbrunner/brawlhub/internal/storage"
	"github.com/nikbrunner/brawlhub/internal/tui"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

// autoExportPath is the --export value used when no path is given.
const autoExportPath = "auto"

type rootOptions struct {
	apiURL     string
	configPath string
	logLevel   string
}

// session is everything a command needs to talk to the server.
type session struct {
	cfg    *storage.Config
	store  *storage.SQLiteStore
	client *api.Client
	log    logr.Logger
	ctx    context.Context
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Error(err, "closing store")
	}
}

// open loads the config, sets up logging and opens the cache database.
func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	configPath := o.configPath
	if configPath == "" {
		var err error
		if configPath, err = storage.DefaultConfigFilePath(); err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	logFile := cfg.LogFile
	if logFile == "" {
		if logFile, err = storage.DefaultLogPath(); err != nil {
			return nil, fmt.Errorf("log path: %w", err)
		}
	}
	base, err := logger.Setup(logger.Options{Level: cfg.LogLevel, File: logFile, Version: version})
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	log := base.WithValues(logger.CommandKey, cmd.Name())

	dbPath, err := storage.DefaultSQLitePath()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	client := api.NewClient(api.ClientParams{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.Timeout,
		Cache:     store,
		CacheTTL:  cfg.CacheTTL,
		UserAgent: "brawlhub/" + version,
		Logger:    &log,
	})

	log.V(1).Info("session opened", "api", client.BaseURL(), "config", configPath, "db", dbPath)
	return &session{
		cfg:    cfg,
		store:  store,
		client: client,
		log:    log,
		ctx:    logger.WithLogger(cmd.Context(), &log),
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "brawlhub [path | colors]",
		Short: "Browse BrawlHub commander and card statistics",
		Long: `brawlhub is a terminal client for the BrawlHub statistics server.

Without arguments it opens the home page. A page path such as
/commander/atraxa-praetors-voice opens that page; bare color letters
such as rgw open the default list page filtered to those colors.`,
		Example:       "  brawlhub\n  brawlhub /cards/ub\n  brawlhub rgw\n  brawlhub search atraxa",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			start := "/"
			if len(args) == 1 {
				start = startPath(args[0], colorid.ParseBase(s.cfg.DefaultBase), s.cfg.ColorCatalog())
			}
			return runTUI(s, start)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "BrawlHub server URL (overrides config and "+storage.EnvAPIURL+")")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the YAML config file (default ~/.config/brawlhub/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newSearchCmd(opts),
		newListCmd(opts, colorid.Commanders),
		newListCmd(opts, colorid.Cards),
		newDeckCmd(opts),
		newWarmCmd(opts),
		newHealthCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// startPath turns the root argument into a route. Paths pass through;
// anything else is read as a color identity under base.
func startPath(arg string, base colorid.Base, catalog colorid.Catalog) string {
	if strings.HasPrefix(arg, "/") {
		return arg
	}
	return colorid.TargetPath(base, colorid.ParseSelection(arg), catalog)
}

func runTUI(s *session, start string) error {
	app := tui.NewApp(tui.AppParams{
		Fetcher:   s.client,
		Visits:    s.store,
		Catalog:   s.cfg.ColorCatalog(),
		Policy:    search.ParsePolicy(s.cfg.Search.Policy),
		SiteURL:   s.cfg.SiteURL,
		StartPath: start,
		Context:   s.ctx,
		Logger:    &s.log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(s.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search cards by name and open the chosen one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			query := strings.Join(args, " ")
			results, err := s.client.Search(s.ctx, query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No cards found for '%s'\n", query)
				return nil
			}

			route := results[0].Slug
			if len(results) > 1 {
				p := tea.NewProgram(picker.New(results, query), tea.WithContext(s.ctx))
				final, err := p.Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				chosen := final.(picker.Picker)
				if chosen.Cancelled() {
					return nil
				}
				route = chosen.SelectedRoute()
			}
			if route == "" {
				return nil
			}

			if _, err := s.store.RecordVisit(s.ctx, route, resultName(results, route)); err != nil {
				s.log.Error(err, "recording visit", "path", route)
			}

			url := strings.TrimRight(s.cfg.SiteURL, "/") + route
			if printOnly {
				fmt.Fprintln(out, url)
				return nil
			}
			fmt.Fprintf(out, "Opening: %s\n", resultName(results, route))
			return browser.Open(url)
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "print the page URL instead of opening a browser")
	return cmd
}

func resultName(results []model.SearchResult, route string) string {
	for _, r := range results {
		if r.Slug == route {
			return r.CardName
		}
	}
	return route
}

// newListCmd builds the commanders and cards commands, which resolve a
// color selection the same way the filter bar does.
func newListCmd(opts *rootOptions, base colorid.Base) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     string(base) + " [colors]",
		Short:   "List top " + string(base) + ", optionally for a color identity",
		Example: fmt.Sprintf("  brawlhub %[1]s\n  brawlhub %[1]s wub\n  brawlhub %[1]s colorless", base),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var sel colorid.Selection
			if len(args) == 1 {
				sel = colorid.ParseSelection(args[0])
			}
			catalog := s.cfg.ColorCatalog()
			route := nav.Parse(colorid.TargetPath(base, sel, catalog))

			heading := route.Path
			if title := catalog.Title(route.Param); title != "" {
				heading += " (" + title + ")"
			}

			var rows [][]string
			switch base {
			case colorid.Cards:
				rows, err = cardTable(s, route.Param, limit)
			default:
				rows, err = commanderTable(s, route.Param, limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading)
			if len(rows) == 0 {
				fmt.Fprintln(out, "Nothing here")
				return nil
			}
			headers := []string{"#", "Name", "Decks"}
			if base == colorid.Cards {
				headers = []string{"#", "Name", "Inclusion"}
			}
			fmt.Fprintln(out, renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of rows to show (0 for all)")
	return cmd
}

func commanderTable(s *session, identity string, limit int) ([][]string, error) {
	var (
		cards []model.CardCount
		err   error
	)
	if identity == "" {
		cards, err = s.client.TopCommanders(s.ctx)
	} else {
		cards, err = s.client.CommandersByColor(s.ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	rows := make([][]string, 0, len(cards))
	for i, c := range cards {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Name(), strconv.FormatInt(c.Decks(), 10)})
	}
	return rows, nil
}

func cardTable(s *session, identity string, limit int) ([][]string, error) {
	var (
		cards []model.TopCard
		err   error
	)
	if identity == "" {
		cards, err = s.client.TopCards(s.ctx)
	} else {
		cards, err = s.client.TopCardsByColor(s.ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	rows := make([][]string, 0, len(cards))
	for i, c := range cards {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Name(), fmt.Sprintf("%.1f%%", c.InclusionRate())})
	}
	return rows, nil
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func newDeckCmd(opts *rootOptions) *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:     "deck <id>",
		Short:   "Print a decklist in Arena format, or export it as bookmarks",
		Example: "  brawlhub deck 1234\n  brawlhub deck 1234 --export\n  brawlhub deck 1234 --export=deck.html",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("%w: %q", tui.ErrBadDeckID, args[0])
			}

			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			deck, err := s.client.Deck(s.ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exportPath == "" {
				fmt.Fprint(out, exporter.ExportDeckText(deck))
				return nil
			}

			path := exportPath
			if path == autoExportPath {
				if path, err = exporter.DefaultExportPath(deck.DeckID); err != nil {
					return fmt.Errorf("export path: %w", err)
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(exporter.ExportDeckHTML(deck, s.cfg.SiteURL)), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported deck %d (%d cards) to %s\n", deck.DeckID, deck.Decklist.TotalCards(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write the deck as bookmark HTML (default ~/Downloads/brawlhub-deck-<id>-<date>.html)")
	cmd.Flags().Lookup("export").NoOptDefVal = autoExportPath
	return cmd
}

func newWarmCmd(opts *rootOptions) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Fetch every color page into the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if prune {
				removed, err := s.store.PruneResponses(s.ctx, time.Now().Add(-s.cfg.CacheTTL))
				if err != nil {
					return fmt.Errorf("prune cache: %w", err)
				}
				fmt.Fprintf(out, "Pruned %d expired responses\n", removed)
			}

			targets := prefetch.CatalogTargets(s.cfg.ColorCatalog())
			errOut := cmd.ErrOrStderr()
			results := prefetch.Warm(s.ctx, s.client.Refresh, targets, s.cfg.PrefetchConcurrency, func(completed, total int) {
				fmt.Fprintf(errOut, "\rWarming %d/%d", completed, total)
			})
			fmt.Fprintln(errOut)

			fetched, failed := prefetch.Summary(results)
			fmt.Fprintf(out, "Fetched %d pages, %d failed\n", fetched, failed)
			for _, r := range results {
				if r.Status == prefetch.Failed {
					fmt.Fprintf(out, "  %s (%s): %s\n", r.Target.Label, r.Target.Path, r.Error)
				}
			}
			s.log.Info("cache warmed", "fetched", fetched, "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d pages failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "delete cached responses older than the cache TTL first")
	return cmd
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			status, err := s.client.Health(s.ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", s.client.BaseURL(), status)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "brawlhub %s\n", version)
		},
	}
}
