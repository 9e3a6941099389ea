package service

import (
	"context"
	"fmt"
	"time"
	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const refreshStatsMessage = "Statistics refreshed successfully"

type StatsService interface {
	// GetStats returns the cached all-time row for all=true, otherwise the
	// stats of one month computed on the fly. An unparsable period is an
	// error here, unlike on the entry list.
	GetStats(ctx context.Context, query dto.PeriodQuery) (*dto.StatsResponse, error)
	RefreshStats(ctx context.Context) (*dto.RefreshStatsResponse, error)
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
}

type statsService struct {
	cfg              *config.Config
	log              *logger.Logger
	journalEntryRepo repository.JournalEntryRepository
	ledger           StatsLedger
	cache            cache.Cache
	now              func() time.Time
}

func NewStatsService(
	cfg *config.Config,
	log *logger.Logger,
	journalEntryRepo repository.JournalEntryRepository,
	ledger StatsLedger,
	inmemoryCache cache.Cache,
	now func() time.Time,
) StatsService {
	return &statsService{
		cfg:              cfg,
		log:              log,
		journalEntryRepo: journalEntryRepo,
		ledger:           ledger,
		cache:            inmemoryCache,
		now:              now,
	}
}

func (s *statsService) GetStats(ctx context.Context, query dto.PeriodQuery) (*dto.StatsResponse, error) {
	if query.ShowAll() {
		stats, err := s.ledger.Current(ctx)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to get trading stats", logger.ErrorField(err))
			return nil, err
		}
		return dto.NewStatsResponse(stats), nil
	}

	now := s.now()
	period, err := query.Resolve(now)
	if err != nil {
		return nil, err
	}

	counters, err := s.journalEntryRepo.Aggregate(ctx, dto.JournalEntryFilter{Period: &period})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to aggregate monthly stats",
			logger.StringField("period", period.Name()),
			logger.ErrorField(err))
		return nil, fmt.Errorf("failed to aggregate monthly stats: %w", err)
	}
	return dto.NewPeriodStatsResponse(BuildStats(counters), period, now), nil
}

func (s *statsService) RefreshStats(ctx context.Context) (*dto.RefreshStatsResponse, error) {
	stats, err := s.ledger.Refresh(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to refresh trading stats", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to refresh trading stats: %w", err)
	}
	return &dto.RefreshStatsResponse{
		Message: refreshStatsMessage,
		Stats:   dto.NewStatsResponse(stats),
	}, nil
}

func (s *statsService) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	if summary, found := cache.GetFromCache[*dto.SummaryResponse](s.cache, common.KEY_JOURNAL_SUMMARY); found {
		return summary, nil
	}

	generation := s.ledger.Generation()

	var (
		counters dto.StatsCounters
		biasRows []dto.BiasRow
		emotions []dto.GroupRow
		arrays   []dto.ArrayRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counters, err = s.journalEntryRepo.Aggregate(gctx, dto.JournalEntryFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		biasRows, err = s.journalEntryRepo.SumByBias(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		emotions, err = s.journalEntryRepo.GroupByEmotions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		arrays, err = s.journalEntryRepo.GroupByArray(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to build journal summary", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to build journal summary: %w", err)
	}

	summary := buildSummary(counters, biasRows, emotions, arrays)
	s.ledger.StoreSummary(generation, summary, s.cfg.Cache.SummaryExpiration)
	return summary, nil
}

func buildSummary(counters dto.StatsCounters, biasRows []dto.BiasRow, emotions []dto.GroupRow, arrays []dto.ArrayRow) *dto.SummaryResponse {
	stats := BuildStats(counters)
	summary := &dto.SummaryResponse{
		Overview: dto.SummaryOverview{
			TotalEntries:  stats.TotalTrades,
			TotalPnL:      stats.TotalPnL.InexactFloat64(),
			WinningTrades: stats.WinningTrades,
			LosingTrades:  stats.LosingTrades,
			WinRate:       stats.WinRate,
		},
		EmotionsBreakdown: make([]dto.EmotionBreakdown, 0, len(emotions)),
		ArrayPerformance:  make([]dto.ArrayPerformance, 0, len(arrays)),
	}

	for _, row := range biasRows {
		bucket := dto.BiasBucket{Count: row.Count, TotalPnL: row.TotalPnL.InexactFloat64()}
		switch model.Bias(row.Bias) {
		case model.BiasBuy:
			summary.BiasAnalysis.BuyTrades = bucket
		case model.BiasSell:
			summary.BiasAnalysis.SellTrades = bucket
		}
	}

	for _, row := range emotions {
		summary.EmotionsBreakdown = append(summary.EmotionsBreakdown, dto.EmotionBreakdown{
			Emotion:  row.Value,
			Count:    row.Count,
			TotalPnL: row.TotalPnL.InexactFloat64(),
		})
	}

	for _, row := range arrays {
		summary.ArrayPerformance = append(summary.ArrayPerformance, dto.ArrayPerformance{
			Array:    row.Value,
			Count:    row.Count,
			TotalPnL: row.TotalPnL.InexactFloat64(),
			WinRate:  utils.Round(row.WinRate, 2),
		})
	}
	return summary
}
