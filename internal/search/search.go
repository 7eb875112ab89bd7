package search

import (
	"github.com/nikbrunner/brawlhub/internal/model"
	"github.com/sahilm/fuzzy"
)

// Match is a card that fuzzy-matched a filter query.
type Match struct {
	Card           *model.Card
	Index          int // position in the filtered slice
	MatchedIndexes []int
	Score          int
}

// cardNames implements fuzzy.Source for a card slice.
type cardNames []model.Card

func (cn cardNames) String(i int) string {
	return cn[i].Name()
}

func (cn cardNames) Len() int {
	return len(cn)
}

// FilterCards filters an already loaded card list by name using fuzzy
// matching. Returns matches sorted by score (best first).
func FilterCards(cards []model.Card, query string) []Match {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, cardNames(cards))

	results := make([]Match, len(matches))
	for i, m := range matches {
		results[i] = Match{
			Card:           &cards[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
