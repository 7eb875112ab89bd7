package model

import "time"

// Visit records a page the user opened.
type Visit struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	VisitedAt time.Time `json:"visitedAt"`
}

// NewVisit creates a Visit with a generated UUID stamped now.
func NewVisit(path, title string) Visit {
	return Visit{
		ID:        GenerateUUID(),
		Path:      path,
		Title:     title,
		VisitedAt: time.Now(),
	}
}
