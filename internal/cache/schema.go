package cache

// SQL schemas for the two cache tiers. Both tables use "cache_key" as the
// primary key column; keys never cross tables, so the merged-book and
// rating namespaces cannot collide.

// BookTable holds fully-merged resolution results keyed by
// "<lowercased title>:<lowercased author>".
const BookTable = "book_cache"

// RatingTable holds rating-only lookups keyed by identifier variant.
const RatingTable = "rating_cache"

const bookSchema = `
CREATE TABLE IF NOT EXISTS book_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_book_expires_at ON book_cache(expires_at);
`

const ratingSchema = `
CREATE TABLE IF NOT EXISTS rating_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rating_expires_at ON rating_cache(expires_at);
`

var allSchemas = []string{
	bookSchema,
	ratingSchema,
}

// validTableNames is the whitelist of allowed cache table names, used to
// prevent SQL injection when interpolating table names.
var validTableNames = map[string]bool{
	BookTable:   true,
	RatingTable: true,
}
