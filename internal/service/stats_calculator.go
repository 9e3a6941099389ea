package service

import (
	"trading-journal/internal/dto"
	"trading-journal/pkg/utils"
)

// CalculateWinRate returns winning/total as a percentage rounded to two
// decimals, or 0 when there are no trades.
func CalculateWinRate(winning, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return utils.Round(float64(winning)/float64(total)*100, 2)
}

// BuildStats derives the win rate from raw counters. It has no side effects;
// the ledger decides where the result is stored.
func BuildStats(counters dto.StatsCounters) dto.TradingStats {
	return dto.TradingStats{
		StatsCounters: counters,
		WinRate:       CalculateWinRate(counters.WinningTrades, counters.TotalTrades),
	}
}
