package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradingStatsID is the primary key of the one trading_stats row.
const TradingStatsID uint = 1

// TradingStats caches the counters over every journal entry. It is only ever
// written by a full recompute.
type TradingStats struct {
	ID            uint            `gorm:"primaryKey"`
	TotalTrades   int64           `gorm:"not null;default:0"`
	WinningTrades int64           `gorm:"not null;default:0"`
	LosingTrades  int64           `gorm:"not null;default:0"`
	TotalPnL      decimal.Decimal `gorm:"column:total_pnl;type:numeric(12,2);not null;default:0"`
	WinRate       decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (TradingStats) TableName() string {
	return "trading_stats"
}
