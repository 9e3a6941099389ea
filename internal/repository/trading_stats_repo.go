package repository

import (
	"context"
	"errors"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TradingStatsRepository interface {
	// Get returns the cached row, or found=false when it was never computed.
	Get(ctx context.Context, opts ...utils.DBOption) (stats *model.TradingStats, found bool, err error)
	Save(ctx context.Context, stats *model.TradingStats, opts ...utils.DBOption) error
}

type tradingStatsRepository struct {
	db *gorm.DB
}

func NewTradingStatsRepository(db *gorm.DB) TradingStatsRepository {
	return &tradingStatsRepository{
		db: db,
	}
}

func (r *tradingStatsRepository) Get(ctx context.Context, opts ...utils.DBOption) (*model.TradingStats, bool, error) {
	var stats model.TradingStats

	err := utils.ApplyOptions(r.db, opts...).WithContext(ctx).
		Where("id = ?", model.TradingStatsID).
		First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

// Save upserts the singleton row; stats.ID is forced to TradingStatsID.
func (r *tradingStatsRepository) Save(ctx context.Context, stats *model.TradingStats, opts ...utils.DBOption) error {
	stats.ID = model.TradingStatsID
	return utils.ApplyOptions(r.db, opts...).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_trades",
				"winning_trades",
				"losing_trades",
				"total_pnl",
				"win_rate",
				"updated_at",
			}),
		}).
		Create(stats).Error
}
