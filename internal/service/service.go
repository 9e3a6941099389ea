package service

import (
	"time"
	"trading-journal/config"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/logger"
)

type Service struct {
	StatsLedger    StatsLedger
	JournalService JournalService
	StatsService   StatsService
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now. The returned time decides the current month.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	opts ...Option,
) *Service {
	loc, err := cfg.Journal.Location()
	if err != nil {
		log.Warn("Invalid journal time zone, falling back to local time", logger.ErrorField(err))
		loc = time.Local
	}

	o := &options{
		now: func() time.Time { return time.Now().In(loc) },
	}
	for _, opt := range opts {
		opt(o)
	}

	ledger := NewStatsLedger(log, repo.UnitOfWork, repo.JournalEntryRepo, repo.TradingStatsRepo, inmemoryCache, o.now)
	return &Service{
		StatsLedger:    ledger,
		JournalService: NewJournalService(log, repo.JournalEntryRepo, ledger, o.now),
		StatsService:   NewStatsService(cfg, log, repo.JournalEntryRepo, ledger, inmemoryCache, o.now),
	}
}
