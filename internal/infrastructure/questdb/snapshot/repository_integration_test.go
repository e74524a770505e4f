//go:build integration

package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/book-builder/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/book-builder/pkg/logger"
	"github.com/muhammadchandra19/book-builder/pkg/migration"
	"github.com/muhammadchandra19/book-builder/pkg/questdb"
	"github.com/muhammadchandra19/book-builder/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Integration(t *testing.T) {
	ctx := context.Background()

	tc, err := questdb.NewTestContainer(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tc.Close(ctx) })

	migrationsPath, err := filepath.Abs("../../../../migrations/questdb")
	require.NoError(t, err)

	runner := migration.NewRunner(tc.Client, migrationsPath, logger.NewNopLogger())
	require.NoError(t, runner.EnsureMigrationTable(ctx))
	applied, err := runner.MigrateUp(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	repo := NewRepository(tc.Client)
	runCtx := util.WithRunID(ctx, "integration-run")

	for seq := uint32(1); seq <= 3; seq++ {
		require.NoError(t, repo.Store(runCtx, &orderbookv1.Snapshot{
			SequenceNumber: seq,
			Symbol:         "NVD",
			Depth:          2,
			Bids:           []orderbookv1.Level{{Price: 100 + int32(seq), Volume: 10}},
			Asks:           []orderbookv1.Level{},
		}))
		time.Sleep(5 * time.Millisecond)
	}

	// WAL tables apply inserts asynchronously.
	var rows []*Row
	require.Eventually(t, func() bool {
		rows, err = repo.GetByRun(ctx, "integration-run", "NVD")
		return err == nil && len(rows) == 3
	}, 30*time.Second, 200*time.Millisecond)
	assert.Equal(t, int64(1), rows[0].SequenceNumber)

	latest, err := repo.GetLatestBySymbol(ctx, "NVD")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(3), latest.SequenceNumber)

	missing, err := repo.GetLatestBySymbol(ctx, "ZZZ")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
