package repository

import (
	"gorm.io/gorm"
)

type Repository struct {
	JournalEntryRepo JournalEntryRepository
	TradingStatsRepo TradingStatsRepository
	UnitOfWork       UnitOfWork
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		JournalEntryRepo: NewJournalEntryRepository(db),
		TradingStatsRepo: NewTradingStatsRepository(db),
		UnitOfWork:       NewUnitOfWork(db),
	}
}
