package resolver

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lepinkainen/shelfscan/internal/provider"
	"github.com/lepinkainen/shelfscan/internal/readinglist"
)

// ResolveBatch resolves a batch of candidates in parallel, annotates the
// results against the reading-list snapshot, and ranks them by rating
// (descending), tie-broken by ratings count. Candidates that resolve
// nowhere are dropped; the counts report how many of the requested
// candidates made it through.
func (r *Resolver) ResolveBatch(ctx context.Context, queries []provider.Query, list []readinglist.Entry) BatchResult {
	resolved := make([]*MergedBook, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q provider.Query) {
			defer wg.Done()

			book, err := r.Resolve(ctx, q)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					r.l.Info("Candidate not found in any source", "title", q.Title, "author", q.Author)
				} else {
					r.l.Warn("Resolution failed", "title", q.Title, "error", err)
				}
				return
			}
			resolved[i] = book
		}(i, q)
	}
	wg.Wait()

	result := BatchResult{Requested: len(queries)}
	for _, book := range resolved {
		if book == nil {
			continue
		}

		if info := readinglist.Match(book.Title, book.Author, string(book.ISBN), list); info != nil {
			book.InReadingList = true
			book.ReadingListInfo = info
		}

		result.Books = append(result.Books, *book)
	}
	result.Resolved = len(result.Books)

	sort.SliceStable(result.Books, func(i, j int) bool {
		if result.Books[i].Rating != result.Books[j].Rating {
			return result.Books[i].Rating > result.Books[j].Rating
		}
		return result.Books[i].RatingsCount > result.Books[j].RatingsCount
	})

	return result
}
