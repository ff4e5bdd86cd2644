// Package provider defines the common contract for external book-metadata
// sources. Each adapter owns the translation from its provider's wire
// format into a Record; the resolver only ever sees this package's types.
package provider

import (
	"context"
	"strings"

	"github.com/lepinkainen/shelfscan/internal/isbn"
)

// Source identifies which provider produced a Record.
type Source string

const (
	SourceGoogleBooks Source = "Google Books"
	SourceOpenLibrary Source = "Open Library"
	SourceRatingStore Source = "Goodreads"
)

// Query is a loose title/author book identity. Display casing is
// preserved; Key lower-cases for cache and comparison use.
type Query struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Key returns the lowercase cache-key form of the query.
func (q Query) Key() string {
	return strings.ToLower(strings.TrimSpace(q.Title)) + ":" + strings.ToLower(strings.TrimSpace(q.Author))
}

// Record is a normalized provider result. A Rating of 0 means "unknown",
// never "zero stars". Records are immutable once returned by an adapter.
type Record struct {
	Source       Source          `json:"source"`
	Title        string          `json:"title,omitempty"`
	Author       string          `json:"author,omitempty"`
	Rating       float64         `json:"rating"`
	RatingsCount int             `json:"ratings_count"`
	Description  string          `json:"description,omitempty"`
	Thumbnail    string          `json:"thumbnail,omitempty"`
	ISBN         isbn.Identifier `json:"isbn,omitempty"`
	InfoLink     string          `json:"info_link,omitempty"`
	PublishYear  int             `json:"publish_year,omitempty"`
}

// Bibliographic is a free-text book metadata source. Search returns
// (nil, nil) when the provider has no match; a non-nil error means
// transport or payload trouble and never carries a partial Record.
// Implementations must be safe for concurrent use.
type Bibliographic interface {
	Name() Source
	Search(ctx context.Context, query Query) (*Record, error)
}
