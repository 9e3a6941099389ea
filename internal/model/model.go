package model

// All lists every persisted model, for gorm AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&JournalEntry{},
		&TradingStats{},
	}
}
