package recordstore

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/ajudejf/internal/adapter/postgrest"
	"github.com/couchcryptid/ajudejf/internal/config"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenPostgREST(t *testing.T) {
	cfg := &config.Config{
		StoreDriver:  config.DriverPostgREST,
		SupabaseURL:  "https://example.supabase.co",
		SupabaseKey:  "anon",
		StoreTimeout: time.Second,
	}

	store, closeFn, err := Open(context.Background(), cfg, observability.NewMetricsForTesting(), discardLogger())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &postgrest.Client{}, store)
}

func TestOpenPostgresBadDSN(t *testing.T) {
	cfg := &config.Config{
		StoreDriver:      config.DriverPostgres,
		DatabaseURL:      "postgres://%zz",
		DatabaseMaxConns: 1,
	}

	_, _, err := Open(context.Background(), cfg, observability.NewMetricsForTesting(), discardLogger())
	assert.ErrorContains(t, err, "parse database DSN")
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{StoreDriver: "mongo"}

	_, _, err := Open(context.Background(), cfg, observability.NewMetricsForTesting(), discardLogger())
	assert.ErrorContains(t, err, `unknown store driver "mongo"`)
}
