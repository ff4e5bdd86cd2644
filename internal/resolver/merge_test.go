package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/shelfscan/internal/provider"
	"github.com/lepinkainen/shelfscan/internal/ratings"
)

var mergeQuery = provider.Query{Title: "Dune", Author: "Frank Herbert"}

func TestRatingPriorityStoreWins(t *testing.T) {
	recA := &provider.Record{Source: provider.SourceGoogleBooks, Title: "Dune", Rating: 4.0, RatingsCount: 50}
	recB := &provider.Record{Source: provider.SourceOpenLibrary, Title: "Dune", Rating: 3.0, RatingsCount: 10}
	store := &ratings.Rating{Rating: 4.5, RatingsCount: 900}

	book := merge(mergeQuery, recA, recB, store, "9780441172719", "shelfscan-20")

	require.Equal(t, 4.5, book.Rating)
	require.Equal(t, 900, book.RatingsCount)
	require.Equal(t, "Goodreads (900 ratings)", book.RatingSource)
}

func TestRatingFallsBackThroughProviders(t *testing.T) {
	t.Run("provider A when store has nothing", func(t *testing.T) {
		recA := &provider.Record{Source: provider.SourceGoogleBooks, Rating: 4.0, RatingsCount: 50}
		recB := &provider.Record{Source: provider.SourceOpenLibrary, Rating: 3.0, RatingsCount: 10}

		book := merge(mergeQuery, recA, recB, nil, "", "")
		require.Equal(t, 4.0, book.Rating)
		require.Equal(t, "Google Books (50 ratings)", book.RatingSource)
	})

	t.Run("provider B when A is unrated", func(t *testing.T) {
		recA := &provider.Record{Source: provider.SourceGoogleBooks}
		recB := &provider.Record{Source: provider.SourceOpenLibrary, Rating: 3.0, RatingsCount: 10}

		book := merge(mergeQuery, recA, recB, nil, "", "")
		require.Equal(t, 3.0, book.Rating)
		require.Equal(t, "Open Library (10 ratings)", book.RatingSource)
	})

	t.Run("zero-rating store row does not win", func(t *testing.T) {
		recA := &provider.Record{Source: provider.SourceGoogleBooks, Rating: 4.0, RatingsCount: 50}
		store := &ratings.Rating{Rating: 0, RatingsCount: 0}

		book := merge(mergeQuery, recA, nil, store, "", "")
		require.Equal(t, 4.0, book.Rating)
	})

	t.Run("no ratings anywhere", func(t *testing.T) {
		recA := &provider.Record{Source: provider.SourceGoogleBooks, Title: "Dune"}

		book := merge(mergeQuery, recA, nil, nil, "", "")
		require.Equal(t, 0.0, book.Rating)
		require.Equal(t, 0, book.RatingsCount)
		require.Equal(t, "No ratings available", book.RatingSource)
	})
}

func TestRatingInvariant(t *testing.T) {
	// A positive rating always carries a non-empty source label.
	recB := &provider.Record{Source: provider.SourceOpenLibrary, Rating: 3.5, RatingsCount: 7}

	book := merge(mergeQuery, nil, recB, nil, "", "")
	require.Greater(t, book.Rating, 0.0)
	require.NotEmpty(t, book.RatingSource)
	require.GreaterOrEqual(t, book.RatingsCount, 0)
}

func TestFieldMergePrimaryWins(t *testing.T) {
	recA := &provider.Record{
		Source:      provider.SourceGoogleBooks,
		Title:       "Dune",
		Author:      "Frank Herbert",
		Thumbnail:   "https://books.google.com/thumb.jpg",
		InfoLink:    "https://books.google.com/books?id=x",
		PublishYear: 1965,
	}
	recB := &provider.Record{
		Source:      provider.SourceOpenLibrary,
		Title:       "Dune (AltTitle)",
		Author:      "Herbert, Frank",
		Thumbnail:   "https://covers.openlibrary.org/b/id/1-M.jpg",
		PublishYear: 1966,
	}

	book := merge(mergeQuery, recA, recB, nil, "9780441172719", "")

	require.Equal(t, "Dune", book.Title)
	require.Equal(t, "Frank Herbert", book.Author)
	require.Equal(t, "https://books.google.com/thumb.jpg", book.Thumbnail)
	require.Equal(t, 1965, book.PublishYear)
	require.Equal(t, "https://books.google.com/books?id=x", book.InfoLink)
}

func TestFieldMergeFallsBackToSecondary(t *testing.T) {
	recA := &provider.Record{Source: provider.SourceGoogleBooks, Title: "Dune"}
	recB := &provider.Record{
		Source:      provider.SourceOpenLibrary,
		Title:       "Dune",
		Author:      "Frank Herbert",
		Thumbnail:   "https://covers.openlibrary.org/b/id/1-M.jpg",
		PublishYear: 1965,
	}

	book := merge(mergeQuery, recA, recB, nil, "", "")

	require.Equal(t, "Frank Herbert", book.Author)
	require.Equal(t, "https://covers.openlibrary.org/b/id/1-M.jpg", book.Thumbnail)
	require.Equal(t, 1965, book.PublishYear)
}

func TestDescriptionLongerWins(t *testing.T) {
	recA := &provider.Record{Source: provider.SourceGoogleBooks, Description: "Short."}
	recB := &provider.Record{Source: provider.SourceOpenLibrary, Description: "A much longer and richer description of the book."}

	book := merge(mergeQuery, recA, recB, nil, "", "")
	require.Equal(t, "A much longer and richer description of the book.", book.Description)
}

func TestInfoLinkNeverComesFromSecondary(t *testing.T) {
	recB := &provider.Record{Source: provider.SourceOpenLibrary, Title: "Dune", InfoLink: "https://example.com/should-not-appear"}

	book := merge(mergeQuery, nil, recB, nil, "", "")
	require.Empty(t, book.InfoLink)
}

func TestSourcesInQueryOrder(t *testing.T) {
	recA := &provider.Record{Source: provider.SourceGoogleBooks}
	recB := &provider.Record{Source: provider.SourceOpenLibrary}
	store := &ratings.Rating{Rating: 4.2, RatingsCount: 11}

	book := merge(mergeQuery, recA, recB, store, "", "")
	require.Equal(t, []string{"Google Books", "Open Library", "Goodreads"}, book.Sources)

	book = merge(mergeQuery, nil, recB, nil, "", "")
	require.Equal(t, []string{"Open Library"}, book.Sources)
}

func TestQueryBackfillsIdentity(t *testing.T) {
	// A record with a rating but no title keeps the candidate's own
	// title and author for display.
	recB := &provider.Record{Source: provider.SourceOpenLibrary, Rating: 3.1, RatingsCount: 4}

	book := merge(mergeQuery, nil, recB, nil, "", "")
	require.Equal(t, "Dune", book.Title)
	require.Equal(t, "Frank Herbert", book.Author)
}
