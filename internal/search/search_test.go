package search

import (
	"testing"

	"github.com/nikbrunner/brawlhub/internal/model"
)

func cards(names ...string) []model.Card {
	out := make([]model.Card, len(names))
	for i, n := range names {
		out[i] = model.Card{NameFull: n, NameFront: n}
	}
	return out
}

func TestFilterCards_EmptyQuery(t *testing.T) {
	results := FilterCards(cards("Sol Ring"), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFilterCards_ExactMatch(t *testing.T) {
	results := FilterCards(cards("Sol Ring", "Arcane Signet"), "Sol Ring")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Card.Name() != "Sol Ring" {
		t.Errorf("expected Sol Ring, got %s", results[0].Card.Name())
	}
	if results[0].Index != 0 {
		t.Errorf("expected index 0, got %d", results[0].Index)
	}
}

func TestFilterCards_FuzzyMatch(t *testing.T) {
	results := FilterCards(cards("Llanowar Elves", "Elvish Mystic", "Lightning Bolt"), "llanelv")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'llanelv', got %d", len(results))
	}
	if results[0].Card.Name() != "Llanowar Elves" {
		t.Errorf("expected Llanowar Elves first, got %s", results[0].Card.Name())
	}
}

func TestFilterCards_MultipleMatches(t *testing.T) {
	results := FilterCards(cards("Swords to Plowshares", "Sword of Fire and Ice", "Counterspell"), "sword")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Card.Name() == "Counterspell" {
			t.Error("Counterspell should not match 'sword'")
		}
	}
}

func TestFilterCards_NoMatch(t *testing.T) {
	results := FilterCards(cards("Sol Ring"), "xyz")

	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestFilterCards_MatchedIndexes(t *testing.T) {
	results := FilterCards(cards("Island"), "isl")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].MatchedIndexes) != 3 {
		t.Errorf("expected 3 matched indexes, got %v", results[0].MatchedIndexes)
	}
}

func TestFilterCards_PointsIntoInput(t *testing.T) {
	in := cards("Forest", "Mountain")
	results := FilterCards(in, "mount")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Card != &in[1] {
		t.Error("expected match to point into the input slice")
	}
}
