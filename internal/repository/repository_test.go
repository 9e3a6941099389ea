package repository

import (
	"context"
	"testing"
	"time"
	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/database"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := database.NewDB(config.Database{
		Driver:   config.DriverSQLite,
		Path:     ":memory:",
		LogLevel: "Silent",
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	return NewRepository(db.DB)
}

func dateOf(y int, m time.Month, d int) *datatypes.Date {
	v := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

type entryOpt func(*model.JournalEntry)

func withBias(b model.Bias) entryOpt {
	return func(e *model.JournalEntry) { e.Bias = b }
}

func withArray(a string) entryOpt {
	return func(e *model.JournalEntry) { e.Array = a }
}

func withEmotions(s string) entryOpt {
	return func(e *model.JournalEntry) { e.Emotions = &s }
}

func withDate(d *datatypes.Date) entryOpt {
	return func(e *model.JournalEntry) { e.Date = d }
}

func createEntry(t *testing.T, repo JournalEntryRepository, pnl string, opts ...entryOpt) *model.JournalEntry {
	t.Helper()
	e := &model.JournalEntry{PnL: decimal.RequireFromString(pnl)}
	for _, opt := range opts {
		opt(e)
	}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func TestJournalEntryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t).JournalEntryRepo

	entry := createEntry(t, repo, "150.00", withBias(model.BiasBuy), withDate(dateOf(2024, 1, 15)), withArray("fvg,ob"))
	require.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	got, err := repo.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BiasBuy, got.Bias)
	assert.Equal(t, "fvg,ob", got.Array)
	assert.True(t, got.PnL.Equal(decimal.NewFromInt(150)))
	d, ok := got.DateValue()
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", d.Format(utils.DateLayout))

	got.Bias = model.BiasUnset
	got.PnL = decimal.Zero
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BiasUnset, again.Bias, "zero values must be written")
	assert.True(t, again.PnL.IsZero())

	require.NoError(t, repo.Delete(ctx, entry.ID))
	_, err = repo.Get(ctx, entry.ID)
	assert.ErrorIs(t, err, dto.ErrEntryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, entry.ID), dto.ErrEntryNotFound)
}

func TestJournalEntryListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t).JournalEntryRepo

	jan15 := createEntry(t, repo, "10", withDate(dateOf(2024, 1, 15)), withBias(model.BiasBuy))
	jan31 := createEntry(t, repo, "20", withDate(dateOf(2024, 1, 31)), withBias(model.BiasSell))
	feb1 := createEntry(t, repo, "30", withDate(dateOf(2024, 2, 1)))
	dec31 := createEntry(t, repo, "40", withDate(dateOf(2023, 12, 31)))
	undated := createEntry(t, repo, "50")

	jan := dto.Period{Year: 2024, Month: time.January}
	entries, err := repo.List(ctx, dto.JournalEntryFilter{Period: &jan})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, jan31.ID, entries[0].ID, "newest date first")
	assert.Equal(t, jan15.ID, entries[1].ID)

	all, err := repo.List(ctx, dto.JournalEntryFilter{})
	require.NoError(t, err)
	ids := make([]uint, 0, len(all))
	for _, e := range all {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []uint{jan15.ID, jan31.ID, feb1.ID, dec31.ID, undated.ID}, ids)

	buy := string(model.BiasBuy)
	onlyBuy, err := repo.List(ctx, dto.JournalEntryFilter{Period: &jan, Bias: &buy})
	require.NoError(t, err)
	require.Len(t, onlyBuy, 1)
	assert.Equal(t, jan15.ID, onlyBuy[0].ID)
}

func TestJournalEntrySameDateOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t).JournalEntryRepo

	first := createEntry(t, repo, "1", withDate(dateOf(2024, 3, 3)))
	second := createEntry(t, repo, "2", withDate(dateOf(2024, 3, 3)))

	entries, err := repo.List(ctx, dto.JournalEntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestJournalEntryAggregate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t).JournalEntryRepo

	empty, err := repo.Aggregate(ctx, dto.JournalEntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalTrades)
	assert.True(t, empty.TotalPnL.IsZero())

	createEntry(t, repo, "150.00", withDate(dateOf(2024, 1, 2)))
	createEntry(t, repo, "-50.25", withDate(dateOf(2024, 1, 3)))
	createEntry(t, repo, "0", withDate(dateOf(2024, 1, 4)))
	createEntry(t, repo, "10.10", withDate(dateOf(2024, 2, 1)))

	all, err := repo.Aggregate(ctx, dto.JournalEntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.TotalTrades)
	assert.Equal(t, int64(2), all.WinningTrades)
	assert.Equal(t, int64(1), all.LosingTrades)
	assert.Equal(t, int64(1), all.FlatTrades())
	assert.Equal(t, "109.85", all.TotalPnL.StringFixed(2))

	jan := dto.Period{Year: 2024, Month: time.January}
	month, err := repo.Aggregate(ctx, dto.JournalEntryFilter{Period: &jan})
	require.NoError(t, err)
	assert.Equal(t, int64(3), month.TotalTrades)
	assert.Equal(t, "99.75", month.TotalPnL.StringFixed(2))
}

func TestJournalEntryGroupings(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t).JournalEntryRepo

	createEntry(t, repo, "100", withBias(model.BiasBuy), withEmotions("fear"), withArray("fvg"))
	createEntry(t, repo, "-40", withBias(model.BiasBuy), withEmotions("fear"), withArray("fvg"))
	createEntry(t, repo, "25", withBias(model.BiasSell), withEmotions("fear,greed"), withArray("fvg,ob"))
	createEntry(t, repo, "5", withEmotions(""), withArray(""))
	createEntry(t, repo, "7")

	bias, err := repo.SumByBias(ctx)
	require.NoError(t, err)
	byBias := map[string]dto.BiasRow{}
	for _, row := range bias {
		byBias[row.Bias] = row
	}
	assert.Len(t, byBias, 2)
	assert.Equal(t, int64(2), byBias["buy"].Count)
	assert.Equal(t, "60.00", byBias["buy"].TotalPnL.StringFixed(2))
	assert.Equal(t, int64(1), byBias["sell"].Count)

	emotions, err := repo.GroupByEmotions(ctx)
	require.NoError(t, err)
	require.Len(t, emotions, 2)
	assert.Equal(t, "fear", emotions[0].Value)
	assert.Equal(t, int64(2), emotions[0].Count)
	assert.Equal(t, "60.00", emotions[0].TotalPnL.StringFixed(2))
	assert.Equal(t, "fear,greed", emotions[1].Value)

	arrays, err := repo.GroupByArray(ctx)
	require.NoError(t, err)
	require.Len(t, arrays, 2)
	assert.Equal(t, "fvg", arrays[0].Value)
	assert.Equal(t, int64(2), arrays[0].Count)
	assert.InDelta(t, 50.0, arrays[0].WinRate, 0.001)
	assert.Equal(t, "fvg,ob", arrays[1].Value)
	assert.InDelta(t, 100.0, arrays[1].WinRate, 0.001)
}

func TestGroupingTiesAndRoundedWinRate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t).JournalEntryRepo

	createEntry(t, repo, "30", withArray("ob"), withEmotions("greed"))
	createEntry(t, repo, "-10", withArray("ob"), withEmotions("calm"))
	createEntry(t, repo, "-5", withArray("ob"), withEmotions("greed"))
	createEntry(t, repo, "1", withArray("bos"), withEmotions("calm"))
	createEntry(t, repo, "2", withArray("fvg"), withEmotions("fear"))
	createEntry(t, repo, "3", withArray("bos"), withEmotions("fear"))

	arrays, err := repo.GroupByArray(ctx)
	require.NoError(t, err)
	require.Len(t, arrays, 3)
	assert.Equal(t, "ob", arrays[0].Value)
	assert.Equal(t, int64(3), arrays[0].Count)
	assert.Equal(t, "15.00", arrays[0].TotalPnL.StringFixed(2))
	assert.InDelta(t, 33.333, arrays[0].WinRate, 0.001)
	assert.Equal(t, "bos", arrays[1].Value, "equal counts ordered by value")
	assert.Equal(t, "fvg", arrays[2].Value)

	emotions, err := repo.GroupByEmotions(ctx)
	require.NoError(t, err)
	require.Len(t, emotions, 3)
	assert.Equal(t, []string{"calm", "fear", "greed"}, []string{emotions[0].Value, emotions[1].Value, emotions[2].Value})
	for _, row := range emotions {
		assert.Equal(t, int64(2), row.Count)
	}
}

func TestTradingStatsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t).TradingStatsRepo

	_, found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(ctx, &model.TradingStats{TotalTrades: 1, WinningTrades: 1, TotalPnL: decimal.NewFromInt(150), WinRate: decimal.NewFromInt(100)}))
	require.NoError(t, repo.Save(ctx, &model.TradingStats{ID: 99, TotalTrades: 2, WinningTrades: 1, LosingTrades: 1, TotalPnL: decimal.NewFromInt(100), WinRate: decimal.NewFromInt(50)}))

	stats, found, err := repo.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.TradingStatsID, stats.ID)
	assert.Equal(t, int64(2), stats.TotalTrades)
	assert.Equal(t, "50.00", stats.WinRate.StringFixed(2))
}

func TestUnitOfWorkRollback(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepository(t)

	err := repos.UnitOfWork.Run(ctx, func(opts ...utils.DBOption) error {
		if err := repos.JournalEntryRepo.Create(ctx, &model.JournalEntry{PnL: decimal.NewFromInt(1)}, opts...); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	entries, err := repos.JournalEntryRepo.List(ctx, dto.JournalEntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = repos.UnitOfWork.Run(ctx, func(opts ...utils.DBOption) error {
		return repos.JournalEntryRepo.Create(ctx, &model.JournalEntry{PnL: decimal.NewFromInt(1)}, opts...)
	})
	require.NoError(t, err)
	entries, err = repos.JournalEntryRepo.List(ctx, dto.JournalEntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
