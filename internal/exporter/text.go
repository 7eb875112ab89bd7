package exporter

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/brawlhub/internal/model"
)

// ExportDeckText renders the deck in the Arena import format:
// a Commander block, an optional Companion block, then the Deck block.
func ExportDeckText(deck *model.Deck) string {
	var b strings.Builder

	b.WriteString("Commander\n")
	fmt.Fprintf(&b, "1 %s\n", deck.Commander.Name())

	if deck.Companion != nil {
		b.WriteString("\nCompanion\n")
		fmt.Fprintf(&b, "1 %s\n", deck.Companion.Name())
	}

	b.WriteString("\nDeck\n")
	for _, section := range deck.Decklist.Sections() {
		for _, c := range section.Cards {
			fmt.Fprintf(&b, "%d %s\n", c.Decks(), c.Name())
		}
	}

	return b.String()
}
