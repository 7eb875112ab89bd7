package model

// SearchResult is a single match returned by the search endpoint.
// Slug is already a route ("/commander/x" or "/card/x").
type SearchResult struct {
	CardName string `json:"cardName"`
	Image    string `json:"image"`
	Slug     string `json:"slug"`
}
