package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lepinkainen/shelfscan/internal/cache"
	"github.com/lepinkainen/shelfscan/internal/config"
	"github.com/lepinkainen/shelfscan/internal/provider"
	"github.com/lepinkainen/shelfscan/internal/provider/googlebooks"
	"github.com/lepinkainen/shelfscan/internal/provider/openlibrary"
	"github.com/lepinkainen/shelfscan/internal/ratings"
	"github.com/lepinkainen/shelfscan/internal/readinglist"
	"github.com/lepinkainen/shelfscan/internal/resolver"
)

// buildResolver assembles the resolution engine from global config. The
// returned cleanup closes the cache and rating store connections.
func buildResolver(ctx context.Context) (*resolver.Resolver, func(), error) {
	db, err := cache.New(config.CacheDBFile)
	if err != nil {
		// A broken cache should not block resolution
		slog.Warn("Cache unavailable, resolving without it", "error", err)
		db = nil
	}

	store, err := ratings.NewPGXStore(ctx, config.DatabaseURL, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up rating store: %w", err)
	}

	r := resolver.New(resolver.Options{
		Cache:        db,
		GoogleBooks:  googlebooks.New(config.GoogleBooksAPIKey),
		OpenLibrary:  openlibrary.New(),
		Ratings:      store,
		AffiliateTag: config.AmazonAffiliateTag,
	})

	cleanup := func() {
		store.Close()
		if db != nil {
			if err := db.Close(); err != nil {
				slog.Warn("Failed to close cache", "error", err)
			}
		}
	}

	return r, cleanup, nil
}

func loadReadingList(ctx context.Context, user string) []readinglist.Entry {
	if user == "" {
		return nil
	}

	store, err := readinglist.NewSQLiteStore(config.ReadingListDBFile)
	if err != nil {
		slog.Warn("Reading list unavailable", "user", user, "error", err)
		return nil
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(ctx, user)
	if err != nil {
		slog.Warn("Failed to load reading list", "user", user, "error", err)
		return nil
	}
	return entries
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runResolve(title, author, user string) error {
	ctx := context.Background()

	r, cleanup, err := buildResolver(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	query := provider.Query{Title: title, Author: author}

	book, err := r.Resolve(ctx, query)
	if errors.Is(err, resolver.ErrNotFound) {
		return fmt.Errorf("no source knows %q", title)
	}
	if err != nil {
		return err
	}

	if list := loadReadingList(ctx, user); list != nil {
		if info := readinglist.Match(book.Title, book.Author, string(book.ISBN), list); info != nil {
			book.InReadingList = true
			book.ReadingListInfo = info
		}
	}

	return printJSON(book)
}

func runBatch(inputPath, user string) error {
	ctx := context.Background()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read candidates file: %w", err)
	}

	var queries []provider.Query
	if err := json.Unmarshal(data, &queries); err != nil {
		return fmt.Errorf("failed to parse candidates file: %w", err)
	}
	if len(queries) == 0 {
		return fmt.Errorf("candidates file %s has no entries", inputPath)
	}

	r, cleanup, err := buildResolver(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result := r.ResolveBatch(ctx, queries, loadReadingList(ctx, user))

	slog.Info("Batch resolution finished",
		"requested", result.Requested,
		"resolved", result.Resolved)

	return printJSON(result)
}

func runReadingListAdd(inputPath, user string) error {
	ctx := context.Background()

	entries, err := readinglist.LoadCSV(inputPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no usable entries in %s", inputPath)
	}

	store, err := readinglist.NewSQLiteStore(config.ReadingListDBFile)
	if err != nil {
		return fmt.Errorf("failed to open reading list store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Put(ctx, user, entries); err != nil {
		return fmt.Errorf("failed to store reading list: %w", err)
	}

	slog.Info("Reading list imported", "user", user, "entries", len(entries))
	return nil
}

func runCacheClear(all bool) error {
	db, err := cache.New(config.CacheDBFile)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer func() { _ = db.Close() }()

	for _, table := range []string{cache.BookTable, cache.RatingTable} {
		var deleted int64
		if all {
			deleted, err = db.ClearAll(table)
		} else {
			deleted, err = db.ClearExpired(table)
		}
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		slog.Info("Cache cleared", "table", table, "deleted", deleted, "all", all)
	}

	return nil
}
