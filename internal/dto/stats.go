package dto

import (
	"time"
	"trading-journal/internal/model"

	"github.com/shopspring/decimal"
)

// StatsCounters is the raw result of aggregating a set of entries.
type StatsCounters struct {
	TotalTrades   int64           `gorm:"column:total_trades"`
	WinningTrades int64           `gorm:"column:winning_trades"`
	LosingTrades  int64           `gorm:"column:losing_trades"`
	TotalPnL      decimal.Decimal `gorm:"column:total_pnl"`
}

// FlatTrades counts entries with pnl == 0: they are trades, but neither wins
// nor losses.
func (c StatsCounters) FlatTrades() int64 {
	return c.TotalTrades - c.WinningTrades - c.LosingTrades
}

// TradingStats is StatsCounters plus the derived win rate.
type TradingStats struct {
	StatsCounters
	WinRate float64
}

// StatsResponse renders money and the win rate as fixed two-decimal strings.
type StatsResponse struct {
	TotalTrades   int64           `json:"total_trades"`
	WinningTrades int64           `json:"winning_trades"`
	LosingTrades  int64           `json:"losing_trades"`
	TotalPnL      string          `json:"total_pnl"`
	WinRate       string          `json:"win_rate"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Period        *PeriodResponse `json:"period,omitempty"`
}

// NewPeriodStatsResponse renders stats computed on the fly for one month.
func NewPeriodStatsResponse(stats TradingStats, period Period, at time.Time) *StatsResponse {
	return &StatsResponse{
		TotalTrades:   stats.TotalTrades,
		WinningTrades: stats.WinningTrades,
		LosingTrades:  stats.LosingTrades,
		TotalPnL:      stats.TotalPnL.StringFixed(2),
		WinRate:       decimal.NewFromFloat(stats.WinRate).StringFixed(2),
		UpdatedAt:     at,
		Period:        NewPeriodResponse(period),
	}
}

// NewStatsResponse renders the cached all-time row.
func NewStatsResponse(stats *model.TradingStats) *StatsResponse {
	return &StatsResponse{
		TotalTrades:   stats.TotalTrades,
		WinningTrades: stats.WinningTrades,
		LosingTrades:  stats.LosingTrades,
		TotalPnL:      stats.TotalPnL.StringFixed(2),
		WinRate:       stats.WinRate.StringFixed(2),
		UpdatedAt:     stats.UpdatedAt,
	}
}
