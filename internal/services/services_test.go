package services

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cyberdoom/internal/config"
	"github.com/dmitrijs2005/cyberdoom/internal/logging"
	"github.com/dmitrijs2005/cyberdoom/internal/store"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SessionSecret = "test-secret"
	return cfg
}

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.RunMigrations(context.Background(), db, store.DriverSQLite))

	s, err := store.New(db, store.DriverSQLite)
	require.NoError(t, err)
	return s
}

// setClock pins the package clock to ts for the duration of the test.
func setClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := nowFn
	nowFn = func() time.Time { return ts }
	t.Cleanup(func() { nowFn = prev })
}
