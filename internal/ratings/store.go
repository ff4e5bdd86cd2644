// Package ratings provides the connector to the community rating dataset,
// a Postgres table keyed by ISBN. The store is optional: when it is
// unreachable the resolver keeps working with bibliographic ratings only.
package ratings

import (
	"context"

	"github.com/lepinkainen/shelfscan/internal/isbn"
)

// Rating is one community-rating row.
type Rating struct {
	Rating       float64 `db:"average_rating" json:"rating"`
	RatingsCount int     `db:"ratings_count" json:"ratings_count"`
}

// Store looks up community ratings by identifier variant list. Lookup
// returns (nil, nil) when no row matches or the store is unavailable;
// identifier-only lookup is the defined behavior, there is no fuzzy
// title/author fallback.
type Store interface {
	Lookup(ctx context.Context, variants []isbn.Identifier) (*Rating, error)
	Available() bool
	Close()
}
