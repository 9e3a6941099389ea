package service

import (
	"context"
	"fmt"
	"sync"
	"time"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/shopspring/decimal"
)

// WriteFunc mutates journal entries. It must pass opts to every repository
// call so the mutation joins the ledger's transaction.
type WriteFunc func(opts ...utils.DBOption) error

// StatsLedger owns the trading_stats singleton. Every entry mutation goes
// through Write so the cached row never drifts from the entry table.
type StatsLedger interface {
	// Write runs fn and a full recompute in one transaction, one writer at a
	// time.
	Write(ctx context.Context, fn WriteFunc) (*model.TradingStats, error)
	// Refresh recomputes without touching any entry.
	Refresh(ctx context.Context) (*model.TradingStats, error)
	// Current returns the stored row, computing it first if it does not exist.
	Current(ctx context.Context) (*model.TradingStats, error)

	// Generation changes after every committed write. StoreSummary only
	// caches a summary computed at the current generation.
	Generation() uint64
	StoreSummary(generation uint64, summary *dto.SummaryResponse, ttl time.Duration) bool
}

type statsLedger struct {
	log              *logger.Logger
	uow              repository.UnitOfWork
	journalEntryRepo repository.JournalEntryRepository
	tradingStatsRepo repository.TradingStatsRepository
	cache            cache.Cache
	now              func() time.Time

	writeMu sync.Mutex

	cacheMu    sync.Mutex
	generation uint64
}

func NewStatsLedger(
	log *logger.Logger,
	uow repository.UnitOfWork,
	journalEntryRepo repository.JournalEntryRepository,
	tradingStatsRepo repository.TradingStatsRepository,
	inmemoryCache cache.Cache,
	now func() time.Time,
) StatsLedger {
	return &statsLedger{
		log:              log,
		uow:              uow,
		journalEntryRepo: journalEntryRepo,
		tradingStatsRepo: tradingStatsRepo,
		cache:            inmemoryCache,
		now:              now,
	}
}

func (l *statsLedger) Write(ctx context.Context, fn WriteFunc) (*model.TradingStats, error) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	var stats *model.TradingStats
	err := l.uow.Run(ctx, func(opts ...utils.DBOption) error {
		if fn != nil {
			if err := fn(opts...); err != nil {
				return err
			}
		}
		var err error
		stats, err = l.recompute(ctx, opts...)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.invalidate()
	return stats, nil
}

func (l *statsLedger) Refresh(ctx context.Context) (*model.TradingStats, error) {
	stats, err := l.Write(ctx, nil)
	if err != nil {
		return nil, err
	}
	l.log.InfoContext(ctx, "Trading stats refreshed",
		logger.IntField("total_trades", int(stats.TotalTrades)),
		logger.StringField("total_pnl", stats.TotalPnL.StringFixed(2)))
	return stats, nil
}

func (l *statsLedger) Current(ctx context.Context) (*model.TradingStats, error) {
	stats, found, err := l.tradingStatsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trading stats: %w", err)
	}
	if found {
		return stats, nil
	}

	l.log.InfoContext(ctx, "Trading stats not found, computing")
	return l.Write(ctx, nil)
}

func (l *statsLedger) recompute(ctx context.Context, opts ...utils.DBOption) (*model.TradingStats, error) {
	counters, err := l.journalEntryRepo.Aggregate(ctx, dto.JournalEntryFilter{}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal entries: %w", err)
	}
	built := BuildStats(counters)

	stats := &model.TradingStats{
		ID:            model.TradingStatsID,
		TotalTrades:   built.TotalTrades,
		WinningTrades: built.WinningTrades,
		LosingTrades:  built.LosingTrades,
		TotalPnL:      built.TotalPnL.Round(2),
		WinRate:       decimal.NewFromFloat(built.WinRate).Round(2),
		UpdatedAt:     l.now(),
	}
	if err := l.tradingStatsRepo.Save(ctx, stats, opts...); err != nil {
		return nil, fmt.Errorf("failed to save trading stats: %w", err)
	}
	return stats, nil
}

func (l *statsLedger) invalidate() {
	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()

	l.generation++
	l.cache.Delete(common.KEY_JOURNAL_SUMMARY)
}

func (l *statsLedger) Generation() uint64 {
	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()
	return l.generation
}

func (l *statsLedger) StoreSummary(generation uint64, summary *dto.SummaryResponse, ttl time.Duration) bool {
	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()

	if generation != l.generation {
		return false
	}
	l.cache.Set(common.KEY_JOURNAL_SUMMARY, summary, ttl)
	return true
}
