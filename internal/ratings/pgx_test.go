package ratings

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/shelfscan/internal/isbn"
)

func TestUnconfiguredStoreIsUnavailable(t *testing.T) {
	store, err := NewPGXStore(context.Background(), "", slog.Default())
	require.NoError(t, err)
	require.False(t, store.Available())
}

func TestUnavailableStoreLookupReturnsNil(t *testing.T) {
	store, err := NewPGXStore(context.Background(), "", slog.Default())
	require.NoError(t, err)

	rating, err := store.Lookup(context.Background(), []isbn.Identifier{"9780306406157"})
	require.NoError(t, err)
	require.Nil(t, rating)
}

func TestConnectBackoffEscalates(t *testing.T) {
	require.Equal(t, time.Second, connectBackoff(1))
	require.Equal(t, 2*time.Second, connectBackoff(2))
	require.Equal(t, 3*time.Second, connectBackoff(3))
}

func TestInvalidConnStringFails(t *testing.T) {
	_, err := NewPGXStore(context.Background(), "this is not a connection string", slog.Default())
	require.Error(t, err)
}
