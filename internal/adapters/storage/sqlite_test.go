package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polypaper/internal/adapters/storage"
	"github.com/alejandrodnm/polypaper/internal/domain"
)

func TestSQLiteStore_LoadEmptyReturnsDefault(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	state, err := db.Load(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 100, state.Cash, 1e-9)
	assert.InDelta(t, 0, state.RealizedPnl, 1e-9)
	assert.NotNil(t, state.Positions)
	assert.Empty(t, state.Orders)
}

func TestSQLiteStore_SaveAndLoadRoundTrip(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	state := domain.NewPortfolio()
	state.Cash = 90.5
	state.Positions["mkt"] = domain.Position{
		MarketID:        "mkt",
		Title:           "Will it rain?",
		YesShares:       10,
		NoShares:        10,
		AveragePriceYes: 0.40,
		AveragePriceNo:  0.55,
	}
	state = state.RecordOrders(domain.Order{
		ID:       "o1",
		MarketID: "mkt",
		Side:     domain.SideYes,
		Action:   domain.ActionBuy,
		Price:    0.40,
		Size:     10,
		Status:   domain.StatusFilled,
	})
	state = state.AppendLog("mkt", "Will it rain?", "Opened hedged position")

	require.NoError(t, db.Save(ctx, state))

	loaded, err := db.Load(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 90.5, loaded.Cash, 1e-9)
	require.Contains(t, loaded.Positions, "mkt")
	assert.InDelta(t, 0.40, loaded.Positions["mkt"].AveragePriceYes, 1e-9)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, domain.StatusFilled, loaded.Orders[0].Status)
	require.Len(t, loaded.Logs, 1)
	assert.Equal(t, "Opened hedged position", loaded.Logs[0].Message)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	db, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	first := domain.NewPortfolio()
	first.Cash = 50
	require.NoError(t, db.Save(ctx, first))

	second := domain.NewPortfolio()
	second.Cash = 75
	require.NoError(t, db.Save(ctx, second))

	loaded, err := db.Load(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 75, loaded.Cash, 1e-9, "only the latest blob survives")
}

func TestSQLiteStore_FileRoundTrip(t *testing.T) {
	path := t.TempDir() + "/portfolio.db"

	db, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)

	state := domain.NewPortfolio()
	state.Cash = 42
	require.NoError(t, db.Save(context.Background(), state))
	require.NoError(t, db.Close())

	reopened, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 42, loaded.Cash, 1e-9, "state survives restart")
}
