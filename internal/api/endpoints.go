package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/nikbrunner/brawlhub/internal/model"
)

// CommandersPath returns the server path for top commanders of identity.
func CommandersPath(identity string) string {
	if identity == "" {
		return "/commanders/"
	}
	return "/commanders/" + url.PathEscape(identity)
}

// TopCardsPath returns the server path for top cards of identity.
func TopCardsPath(identity string) string {
	if identity == "" {
		return "/top_cards"
	}
	return "/top_cards/" + url.PathEscape(identity)
}

// SearchPath returns the server path searching for query.
func SearchPath(query string) string {
	return "/search/" + url.PathEscape(query)
}

// Search returns up to 20 cards whose name contains query. Result slugs
// are page routes. Search responses are never cached.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	var results []model.SearchResult
	if err := c.getJSON(ctx, SearchPath(query), false, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// TopCommanders returns the most played commanders across all colors.
func (c *Client) TopCommanders(ctx context.Context) ([]model.CardCount, error) {
	return c.CommandersByColor(ctx, "")
}

// CommandersByColor returns the most played commanders of one color
// identity ("colorless" included). An empty identity means all colors.
func (c *Client) CommandersByColor(ctx context.Context, identity string) ([]model.CardCount, error) {
	var out []model.CardCount
	if err := c.getJSON(ctx, CommandersPath(identity), true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TopCards returns the most included cards across all colors.
func (c *Client) TopCards(ctx context.Context) ([]model.TopCard, error) {
	return c.TopCardsByColor(ctx, "")
}

// TopCardsByColor returns the most included cards playable in identity.
func (c *Client) TopCardsByColor(ctx context.Context, identity string) ([]model.TopCard, error) {
	var out []model.TopCard
	if err := c.getJSON(ctx, TopCardsPath(identity), true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Card returns a single card with its inclusion statistics.
func (c *Client) Card(ctx context.Context, slug string) (*model.TopCard, error) {
	var out model.TopCard
	if err := c.getJSON(ctx, "/card/"+url.PathEscape(slug), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Commander returns a commander with its deck count and rank.
func (c *Client) Commander(ctx context.Context, slug string) (*model.CommanderStats, error) {
	var out model.CommanderStats
	if err := c.getJSON(ctx, "/commander/"+url.PathEscape(slug), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CommanderTopCards returns the cards most played with a commander.
func (c *Client) CommanderTopCards(ctx context.Context, oracleID string) (*model.CommanderTopCards, error) {
	var out model.CommanderTopCards
	if err := c.getJSON(ctx, "/commander_top_cards/"+url.PathEscape(oracleID), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Deck returns a deck by its numeric ID.
func (c *Client) Deck(ctx context.Context, id int64) (*model.Deck, error) {
	var out model.Deck
	if err := c.getJSON(ctx, "/deck/"+strconv.FormatInt(id, 10), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CommanderSlugs returns the slugs of every legal commander.
func (c *Client) CommanderSlugs(ctx context.Context) ([]string, error) {
	return c.slugs(ctx, "/commander_slugs")
}

// CardSlugs returns the slugs of every legal card.
func (c *Client) CardSlugs(ctx context.Context) ([]string, error) {
	return c.slugs(ctx, "/card_slugs")
}

func (c *Client) slugs(ctx context.Context, path string) ([]string, error) {
	var raw []*string
	if err := c.getJSON(ctx, path, true, &raw); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != nil && *s != "" {
			out = append(out, *s)
		}
	}
	return out, nil
}

// Health checks that the server answers.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.fetch(ctx, "/health")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
