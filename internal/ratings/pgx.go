package ratings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lepinkainen/shelfscan/internal/isbn"
)

const (
	connectAttempts = 3
	lookupTimeout   = 5 * time.Second
)

// connectBackoff returns the delay before the given retry attempt.
// Delays escalate 1s, 2s, 3s.
func connectBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}

// PGXStore is a pooled Postgres rating store. The pool and availability
// flag are set once at construction; a store that failed to connect keeps
// answering Lookup with nil rather than erroring.
type PGXStore struct {
	pg        *pgxpool.Pool
	g         goqu.DialectWrapper
	l         *slog.Logger
	available bool
}

var _ Store = (*PGXStore)(nil)

// NewPGXStore connects to the rating dataset with bounded retries. A nil
// error with Available()==false means the store never became reachable
// and the rating path is disabled for this process.
func NewPGXStore(ctx context.Context, connStr string, l *slog.Logger) (*PGXStore, error) {
	store := &PGXStore{g: goqu.Dialect("postgres"), l: l}

	if connStr == "" {
		l.Info("Rating store not configured, community ratings disabled")
		return store, nil
	}

	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rating store URL: %w", err)
	}

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				store.pg = pool
				store.available = true
				return store, nil
			}
			pool.Close()
		}

		l.Warn("Rating store connection failed",
			"attempt", attempt,
			"max_attempts", connectAttempts,
			"error", err,
		)

		if attempt < connectAttempts {
			select {
			case <-time.After(connectBackoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	l.Warn("Rating store unreachable, continuing without community ratings")
	return store, nil
}

// Available reports whether the store connected at startup.
func (s *PGXStore) Available() bool {
	return s.available
}

// Close releases the connection pool.
func (s *PGXStore) Close() {
	if s.pg != nil {
		s.pg.Close()
	}
}

// Lookup fetches the rating row matching any of the identifier variants.
// Returns (nil, nil) when nothing matches or the store is unavailable.
func (s *PGXStore) Lookup(ctx context.Context, variants []isbn.Identifier) (*Rating, error) {
	if !s.available || len(variants) == 0 {
		return nil, nil
	}

	keys := make([]string, len(variants))
	for i, v := range variants {
		keys[i] = string(v)
	}

	sql, params, err := s.g.From("book_rating").
		Select("average_rating", "ratings_count").
		Where(goqu.C("isbn").In(keys)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	var row Rating
	err = pgxscan.Get(ctx, s.pg, &row, sql, params...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("rating store lookup failed: %w", err)
	}

	return &row, nil
}
