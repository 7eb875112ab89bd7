package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/brawlhub/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/brawlhub-deck-<id>-YYYY-MM-DD.html
func DefaultExportPath(deckID int64) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("brawlhub-deck-%d-%s.html", deckID, time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportDeckHTML exports a deck to Netscape bookmark HTML format: the
// commander and companion first, then one folder per decklist section.
// Cards link to Scryfall, or to siteURL when the card has no Scryfall URI.
func ExportDeckHTML(deck *model.Deck, siteURL string) string {
	var b strings.Builder

	title := fmt.Sprintf("Deck %d: %s", deck.DeckID, deck.Commander.Name())

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(&b, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(title))
	b.WriteString("<DL><p>\n")

	var added int64
	if deck.DateUpdated > 0 {
		added = deck.Updated().Unix()
	}

	prefix := "    "
	if deck.URL != "" {
		writeLink(&b, prefix, deck.URL, "Source deck by "+deck.Username, added)
	}
	writeLink(&b, prefix, cardURL(deck.Commander, siteURL), "Commander: "+deck.Commander.Name(), added)
	if deck.Companion != nil {
		writeLink(&b, prefix, cardURL(*deck.Companion, siteURL), "Companion: "+deck.Companion.Name(), added)
	}

	for _, section := range deck.Decklist.Sections() {
		if len(section.Cards) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(section.Title))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		for _, c := range section.Cards {
			label := fmt.Sprintf("%d× %s", c.Decks(), c.Name())
			writeLink(&b, prefix+"    ", cardURL(c.Card, siteURL), label, added)
		}
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeLink(b *strings.Builder, prefix, href, title string, added int64) {
	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		prefix,
		html.EscapeString(href),
		added,
		html.EscapeString(title),
	)
}

func cardURL(c model.Card, siteURL string) string {
	if c.ScryfallURI != "" {
		return c.ScryfallURI
	}
	return strings.TrimRight(siteURL, "/") + c.Route()
}
