package resolver

import (
	"fmt"

	"github.com/lepinkainen/shelfscan/internal/isbn"
	"github.com/lepinkainen/shelfscan/internal/provider"
	"github.com/lepinkainen/shelfscan/internal/ratings"
)

// merge reconciles provider records into one MergedBook. Field priority
// is fixed: the first bibliographic provider's record is primary; the
// description exception picks whichever text is longer. The rating is
// taken from the rating store first, then the bibliographic providers in
// query order.
func merge(q provider.Query, recA, recB *provider.Record, storeRating *ratings.Rating, id isbn.Identifier, affiliateTag string) *MergedBook {
	primary, secondary := recA, recB
	if primary == nil {
		primary, secondary = recB, nil
	}

	book := &MergedBook{
		Title:       pick(primary.Title, fieldOf(secondary, func(r *provider.Record) string { return r.Title })),
		Author:      pick(primary.Author, fieldOf(secondary, func(r *provider.Record) string { return r.Author })),
		Description: longer(primary.Description, fieldOf(secondary, func(r *provider.Record) string { return r.Description })),
		Thumbnail:   pick(primary.Thumbnail, fieldOf(secondary, func(r *provider.Record) string { return r.Thumbnail })),
		ISBN:        id,
	}

	if book.Title == "" {
		book.Title = q.Title
	}
	if book.Author == "" {
		book.Author = q.Author
	}

	if primary.PublishYear > 0 {
		book.PublishYear = primary.PublishYear
	} else if secondary != nil {
		book.PublishYear = secondary.PublishYear
	}

	// infoLink only ever comes from Google Books; the other providers
	// have no comparable deep link.
	if recA != nil {
		book.InfoLink = recA.InfoLink
	}

	applyRating(book, recA, recB, storeRating)

	book.GoodreadsURL = goodreadsURL(id, book.Title, book.Author)
	book.AmazonURL = amazonURL(id, book.Title, book.Author, affiliateTag)

	if recA != nil {
		book.Sources = append(book.Sources, string(recA.Source))
	}
	if recB != nil {
		book.Sources = append(book.Sources, string(recB.Source))
	}
	if storeRating != nil {
		book.Sources = append(book.Sources, string(provider.SourceRatingStore))
	}

	return book
}

// applyRating picks the first source with a known rating, in fixed
// priority order: rating store, then the bibliographic providers.
func applyRating(book *MergedBook, recA, recB *provider.Record, storeRating *ratings.Rating) {
	switch {
	case storeRating != nil && storeRating.Rating > 0:
		book.Rating = storeRating.Rating
		book.RatingsCount = storeRating.RatingsCount
		book.RatingSource = ratingLabel(string(provider.SourceRatingStore), storeRating.RatingsCount)
	case recA != nil && recA.Rating > 0:
		book.Rating = recA.Rating
		book.RatingsCount = recA.RatingsCount
		book.RatingSource = ratingLabel(string(recA.Source), recA.RatingsCount)
	case recB != nil && recB.Rating > 0:
		book.Rating = recB.Rating
		book.RatingsCount = recB.RatingsCount
		book.RatingSource = ratingLabel(string(recB.Source), recB.RatingsCount)
	default:
		book.Rating = 0
		book.RatingsCount = 0
		book.RatingSource = noRatingsLabel
	}
}

func ratingLabel(source string, count int) string {
	return fmt.Sprintf("%s (%d ratings)", source, count)
}

func pick(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}

// longer returns whichever non-empty string is longer; richer
// descriptions win regardless of provider order.
func longer(a, b string) string {
	if len(a) >= len(b) {
		return a
	}
	return b
}

func fieldOf(r *provider.Record, get func(*provider.Record) string) string {
	if r == nil {
		return ""
	}
	return get(r)
}
