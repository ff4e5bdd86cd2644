// Package resolver orchestrates book-metadata resolution: it fans a query
// out to the bibliographic providers, consults the rating path cache-first,
// and reconciles everything into a single MergedBook.
package resolver

import (
	"errors"

	"github.com/lepinkainen/shelfscan/internal/isbn"
	"github.com/lepinkainen/shelfscan/internal/readinglist"
)

// ErrNotFound is returned when every source came back empty. It is
// distinct from a found book without ratings: a zero Rating on a returned
// MergedBook means "unknown", never "not found".
var ErrNotFound = errors.New("book not found in any source")

// noRatingsLabel is the RatingSource used when no source had a rating.
const noRatingsLabel = "No ratings available"

// MergedBook is the reconciled record for one resolved query. It is
// built once per resolution and never mutated concurrently; reading-list
// annotation happens on the resolver's private copy before return.
type MergedBook struct {
	Title           string                 `json:"title"`
	Author          string                 `json:"author"`
	Rating          float64                `json:"rating"`
	RatingsCount    int                    `json:"ratings_count"`
	RatingSource    string                 `json:"rating_source"`
	Description     string                 `json:"description,omitempty"`
	Thumbnail       string                 `json:"thumbnail,omitempty"`
	ISBN            isbn.Identifier        `json:"isbn,omitempty"`
	PublishYear     int                    `json:"publish_year,omitempty"`
	InfoLink        string                 `json:"info_link,omitempty"`
	GoodreadsURL    string                 `json:"goodreads_url"`
	AmazonURL       string                 `json:"amazon_url"`
	Sources         []string               `json:"sources"`
	InReadingList   bool                   `json:"in_reading_list"`
	ReadingListInfo *readinglist.MatchInfo `json:"reading_list_info,omitempty"`
}

// BatchResult is the outcome of resolving a batch of candidates. Books
// holds only the resolved subset, ranked by rating then ratings count.
type BatchResult struct {
	Books     []MergedBook `json:"books"`
	Requested int          `json:"requested"`
	Resolved  int          `json:"resolved"`
}
