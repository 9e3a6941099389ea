package dto

import "github.com/shopspring/decimal"

// BiasRow, GroupRow and ArrayRow are scan targets for the grouped summary
// queries.
type BiasRow struct {
	Bias     string          `gorm:"column:bias"`
	Count    int64           `gorm:"column:count"`
	TotalPnL decimal.Decimal `gorm:"column:total_pnl"`
}

type GroupRow struct {
	Value    string          `gorm:"column:value"`
	Count    int64           `gorm:"column:count"`
	TotalPnL decimal.Decimal `gorm:"column:total_pnl"`
}

type ArrayRow struct {
	GroupRow
	WinRate float64 `gorm:"column:win_rate"`
}

type SummaryOverview struct {
	TotalEntries  int64   `json:"total_entries"`
	TotalPnL      float64 `json:"total_pnl"`
	WinningTrades int64   `json:"winning_trades"`
	LosingTrades  int64   `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
}

type BiasBucket struct {
	Count    int64   `json:"count"`
	TotalPnL float64 `json:"total_pnl"`
}

type BiasAnalysis struct {
	BuyTrades  BiasBucket `json:"buy_trades"`
	SellTrades BiasBucket `json:"sell_trades"`
}

type EmotionBreakdown struct {
	Emotion  string  `json:"emotion"`
	Count    int64   `json:"count"`
	TotalPnL float64 `json:"total_pnl"`
}

type ArrayPerformance struct {
	Array    string  `json:"array"`
	Count    int64   `json:"count"`
	TotalPnL float64 `json:"total_pnl"`
	WinRate  float64 `json:"win_rate"`
}

type SummaryResponse struct {
	Overview          SummaryOverview    `json:"overview"`
	BiasAnalysis      BiasAnalysis       `json:"bias_analysis"`
	EmotionsBreakdown []EmotionBreakdown `json:"emotions_breakdown"`
	ArrayPerformance  []ArrayPerformance `json:"array_performance"`
}
