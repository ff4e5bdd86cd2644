package resolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/lepinkainen/shelfscan/internal/cache"
	"github.com/lepinkainen/shelfscan/internal/isbn"
	"github.com/lepinkainen/shelfscan/internal/provider"
	"github.com/lepinkainen/shelfscan/internal/ratings"
)

// DefaultAdapterTimeout bounds each provider call so a slow upstream is
// treated the same as one that returned nothing.
const DefaultAdapterTimeout = 10 * time.Second

// Options holds the resolver's dependencies. Cache and Ratings may be
// nil; the resolver fails open without them.
type Options struct {
	Cache          *cache.DB
	GoogleBooks    provider.Bibliographic
	OpenLibrary    provider.Bibliographic
	Ratings        ratings.Store
	AffiliateTag   string
	AdapterTimeout time.Duration
	Logger         *slog.Logger
}

// Resolver coordinates providers, cache tiers and the rating store for
// book resolution. Safe for concurrent use.
type Resolver struct {
	cache          *cache.DB
	bibliographic  [2]provider.Bibliographic
	ratings        ratings.Store
	affiliateTag   string
	adapterTimeout time.Duration
	l              *slog.Logger
}

// New builds a Resolver. The bibliographic priority order is fixed:
// Google Books first, OpenLibrary second, regardless of which provider
// answers faster.
func New(opts Options) *Resolver {
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}

	timeout := opts.AdapterTimeout
	if timeout <= 0 {
		timeout = DefaultAdapterTimeout
	}

	return &Resolver{
		cache:          opts.Cache,
		bibliographic:  [2]provider.Bibliographic{opts.GoogleBooks, opts.OpenLibrary},
		ratings:        opts.Ratings,
		affiliateTag:   opts.AffiliateTag,
		adapterTimeout: timeout,
		l:              l,
	}
}

// Resolve resolves one candidate into a MergedBook. Returns ErrNotFound
// when every source came back empty.
func (r *Resolver) Resolve(ctx context.Context, q provider.Query) (*MergedBook, error) {
	key := q.Key()

	if book := r.cachedBook(key); book != nil {
		r.l.Debug("Book cache hit", "key", key)
		return book, nil
	}

	records := r.searchBibliographic(ctx, q)

	// Working identifier: first non-empty ISBN in provider priority
	// order. ISBN is the only reliable join key across providers.
	var id isbn.Identifier
	for _, rec := range records {
		if rec != nil && rec.ISBN != "" {
			id = rec.ISBN
			break
		}
	}

	var rating *ratings.Rating
	if id != "" {
		rating = r.lookupRating(ctx, id)
	}

	recA, recB := records[0], records[1]
	if recA == nil && recB == nil {
		return nil, ErrNotFound
	}

	book := merge(q, recA, recB, rating, id, r.affiliateTag)
	r.storeBook(key, book)

	return book, nil
}

// searchBibliographic queries both providers concurrently and waits for
// both. Adapter failures are logged and treated as empty results so one
// provider's outage never affects the other.
func (r *Resolver) searchBibliographic(ctx context.Context, q provider.Query) []*provider.Record {
	records := make([]*provider.Record, 2)

	var wg sync.WaitGroup
	for i, p := range r.bibliographic {
		if p == nil {
			continue
		}
		wg.Add(1)
		go func(i int, p provider.Bibliographic) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, r.adapterTimeout)
			defer cancel()

			rec, err := p.Search(callCtx, q)
			if err != nil {
				r.l.Warn("Provider search failed",
					"provider", p.Name(),
					"title", q.Title,
					"error", err,
				)
				return
			}
			records[i] = rec
		}(i, p)
	}
	wg.Wait()

	return records
}

// lookupRating consults the rating cache across every identifier variant
// before falling back to the rating store. A store hit is cached under
// the queried identifier only, with the long rating TTL.
func (r *Resolver) lookupRating(ctx context.Context, id isbn.Identifier) *ratings.Rating {
	variants := isbn.Variants(id)

	if r.cache != nil {
		for _, variant := range variants {
			data, found, err := r.cache.Get(cache.RatingTable, string(variant))
			if err != nil {
				r.l.Warn("Rating cache read failed, continuing without it", "error", err)
				break
			}
			if !found {
				continue
			}

			var rating ratings.Rating
			if err := json.Unmarshal([]byte(data), &rating); err != nil {
				r.l.Warn("Failed to unmarshal cached rating", "key", variant, "error", err)
				continue
			}
			r.l.Debug("Rating cache hit", "key", variant)
			return &rating
		}
	}

	if r.ratings == nil {
		return nil
	}

	rating, err := r.ratings.Lookup(ctx, variants)
	if err != nil {
		r.l.Warn("Rating store lookup failed", "isbn", id, "error", err)
		return nil
	}
	if rating == nil {
		return nil
	}

	if r.cache != nil {
		data, err := json.Marshal(rating)
		if err == nil {
			if err := r.cache.Set(cache.RatingTable, string(id), string(data), cache.RatingTTL); err != nil {
				r.l.Warn("Failed to cache rating", "isbn", id, "error", err)
			}
		}
	}

	return rating
}

// cachedBook returns the cached MergedBook for key, or nil on any miss
// or cache trouble. The cache always fails open.
func (r *Resolver) cachedBook(key string) *MergedBook {
	if r.cache == nil {
		return nil
	}

	data, found, err := r.cache.Get(cache.BookTable, key)
	if err != nil {
		r.l.Warn("Book cache read failed, resolving live", "key", key, "error", err)
		return nil
	}
	if !found {
		return nil
	}

	var book MergedBook
	if err := json.Unmarshal([]byte(data), &book); err != nil {
		r.l.Warn("Failed to unmarshal cached book, resolving live", "key", key, "error", err)
		return nil
	}

	return &book
}

func (r *Resolver) storeBook(key string, book *MergedBook) {
	if r.cache == nil {
		return
	}

	data, err := json.Marshal(book)
	if err != nil {
		r.l.Warn("Failed to marshal book for caching", "key", key, "error", err)
		return
	}

	if err := r.cache.Set(cache.BookTable, key, string(data), cache.BookTTL); err != nil {
		r.l.Warn("Failed to cache book", "key", key, "error", err)
	}
}
