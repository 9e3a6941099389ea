package repository

import (
	"context"
	"errors"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	"gorm.io/gorm"
)

const (
	// "array" is a reserved word in PostgreSQL and must stay quoted in raw
	// SQL. Builder calls such as Group take the bare name and quote it per
	// dialect.
	colArray    = `"array"`
	colArrayKey = "array"

	statsSelect = `COUNT(*) AS total_trades,
		COALESCE(SUM(CASE WHEN pnl > 0 THEN 1 ELSE 0 END), 0) AS winning_trades,
		COALESCE(SUM(CASE WHEN pnl < 0 THEN 1 ELSE 0 END), 0) AS losing_trades,
		COALESCE(SUM(pnl), 0) AS total_pnl`
)

type JournalEntryRepository interface {
	List(ctx context.Context, filter dto.JournalEntryFilter, opts ...utils.DBOption) ([]model.JournalEntry, error)
	Get(ctx context.Context, id uint, opts ...utils.DBOption) (*model.JournalEntry, error)
	Create(ctx context.Context, entry *model.JournalEntry, opts ...utils.DBOption) error
	Update(ctx context.Context, entry *model.JournalEntry, opts ...utils.DBOption) error
	Delete(ctx context.Context, id uint, opts ...utils.DBOption) error

	Aggregate(ctx context.Context, filter dto.JournalEntryFilter, opts ...utils.DBOption) (dto.StatsCounters, error)
	SumByBias(ctx context.Context, opts ...utils.DBOption) ([]dto.BiasRow, error)
	GroupByEmotions(ctx context.Context, opts ...utils.DBOption) ([]dto.GroupRow, error)
	GroupByArray(ctx context.Context, opts ...utils.DBOption) ([]dto.ArrayRow, error)
}

type journalEntryRepository struct {
	db *gorm.DB
}

func NewJournalEntryRepository(db *gorm.DB) JournalEntryRepository {
	return &journalEntryRepository{
		db: db,
	}
}

func (r *journalEntryRepository) query(ctx context.Context, opts ...utils.DBOption) *gorm.DB {
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx)
}

func applyFilter(q *gorm.DB, filter dto.JournalEntryFilter) *gorm.DB {
	if filter.Period != nil {
		start, end := filter.Period.Range()
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	if filter.Bias != nil {
		q = q.Where("bias = ?", *filter.Bias)
	}
	if filter.Array != nil {
		q = q.Where(colArray+" = ?", *filter.Array)
	}
	if filter.Emotions != nil {
		q = q.Where("emotions = ?", *filter.Emotions)
	}
	return q
}

func (r *journalEntryRepository) List(ctx context.Context, filter dto.JournalEntryFilter, opts ...utils.DBOption) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry

	q := applyFilter(r.query(ctx, opts...).Model(&model.JournalEntry{}), filter)
	if err := q.Order("date DESC").Order("created_at DESC").Order("id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *journalEntryRepository) Get(ctx context.Context, id uint, opts ...utils.DBOption) (*model.JournalEntry, error) {
	var entry model.JournalEntry

	err := r.query(ctx, opts...).Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dto.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalEntryRepository) Create(ctx context.Context, entry *model.JournalEntry, opts ...utils.DBOption) error {
	return r.query(ctx, opts...).Create(entry).Error
}

// Update writes every column of entry, zero values included.
func (r *journalEntryRepository) Update(ctx context.Context, entry *model.JournalEntry, opts ...utils.DBOption) error {
	return r.query(ctx, opts...).Save(entry).Error
}

func (r *journalEntryRepository) Delete(ctx context.Context, id uint, opts ...utils.DBOption) error {
	res := r.query(ctx, opts...).Where("id = ?", id).Delete(&model.JournalEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dto.ErrEntryNotFound
	}
	return nil
}

// Aggregate counts the filtered entries in one pass. Entries with pnl == 0
// are part of total_trades only.
func (r *journalEntryRepository) Aggregate(ctx context.Context, filter dto.JournalEntryFilter, opts ...utils.DBOption) (dto.StatsCounters, error) {
	var counters dto.StatsCounters

	q := applyFilter(r.query(ctx, opts...).Model(&model.JournalEntry{}), filter)
	if err := q.Select(statsSelect).Scan(&counters).Error; err != nil {
		return dto.StatsCounters{}, err
	}
	counters.TotalPnL = counters.TotalPnL.Round(2)
	return counters, nil
}

func (r *journalEntryRepository) SumByBias(ctx context.Context, opts ...utils.DBOption) ([]dto.BiasRow, error) {
	var rows []dto.BiasRow

	err := r.query(ctx, opts...).
		Model(&model.JournalEntry{}).
		Select("bias, COUNT(*) AS count, COALESCE(SUM(pnl), 0) AS total_pnl").
		Where("bias IN ?", []string{string(model.BiasBuy), string(model.BiasSell)}).
		Group("bias").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalPnL = rows[i].TotalPnL.Round(2)
	}
	return rows, nil
}

// GroupByEmotions groups on the raw emotions text; "fear,greed" and "fear" are
// different groups.
func (r *journalEntryRepository) GroupByEmotions(ctx context.Context, opts ...utils.DBOption) ([]dto.GroupRow, error) {
	var rows []dto.GroupRow

	err := r.query(ctx, opts...).
		Model(&model.JournalEntry{}).
		Select("emotions AS value, COUNT(*) AS count, COALESCE(SUM(pnl), 0) AS total_pnl").
		Where("emotions IS NOT NULL AND emotions <> ''").
		Group("emotions").
		Order("count DESC").
		Order("value ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalPnL = rows[i].TotalPnL.Round(2)
	}
	return rows, nil
}

func (r *journalEntryRepository) GroupByArray(ctx context.Context, opts ...utils.DBOption) ([]dto.ArrayRow, error) {
	var rows []dto.ArrayRow

	err := r.query(ctx, opts...).
		Model(&model.JournalEntry{}).
		Select(colArray + ` AS value,
			COUNT(*) AS count,
			COALESCE(SUM(pnl), 0) AS total_pnl,
			SUM(CASE WHEN pnl > 0 THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS win_rate`).
		Where(colArray + " <> ''").
		Group(colArrayKey).
		Order("count DESC").
		Order("value ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalPnL = rows[i].TotalPnL.Round(2)
	}
	return rows, nil
}
