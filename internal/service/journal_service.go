package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"
)

type JournalService interface {
	ListEntries(ctx context.Context, query dto.ListEntriesQuery) ([]dto.JournalEntryResponse, error)
	GetEntry(ctx context.Context, id uint) (*dto.JournalEntryResponse, error)
	CreateEntry(ctx context.Context, req dto.JournalEntryRequest) (*dto.JournalEntryResponse, error)
	UpdateEntry(ctx context.Context, id uint, req dto.JournalEntryRequest) (*dto.JournalEntryResponse, error)
	DeleteEntry(ctx context.Context, id uint) error
}

type journalService struct {
	log              *logger.Logger
	journalEntryRepo repository.JournalEntryRepository
	ledger           StatsLedger
	now              func() time.Time
}

func NewJournalService(
	log *logger.Logger,
	journalEntryRepo repository.JournalEntryRepository,
	ledger StatsLedger,
	now func() time.Time,
) JournalService {
	return &journalService{
		log:              log,
		journalEntryRepo: journalEntryRepo,
		ledger:           ledger,
		now:              now,
	}
}

// ListEntries returns the entries of the requested month, of the current
// month when none was given, or all of them with all=true. A malformed month
// or year yields an empty list rather than an error.
func (s *journalService) ListEntries(ctx context.Context, query dto.ListEntriesQuery) ([]dto.JournalEntryResponse, error) {
	filter := dto.JournalEntryFilter{
		Bias:     query.Bias,
		Array:    query.Array,
		Emotions: query.Emotions,
	}

	if !query.ShowAll() {
		period, err := query.Resolve(s.now())
		if err != nil {
			s.log.DebugContext(ctx, "Ignoring invalid period on entry list", logger.ErrorField(err))
			return []dto.JournalEntryResponse{}, nil
		}
		filter.Period = &period
	}

	entries, err := s.journalEntryRepo.List(ctx, filter)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list journal entries", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return dto.NewJournalEntryListResponse(entries), nil
}

func (s *journalService) GetEntry(ctx context.Context, id uint) (*dto.JournalEntryResponse, error) {
	entry, err := s.journalEntryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewJournalEntryResponse(*entry)
	return &resp, nil
}

func (s *journalService) CreateEntry(ctx context.Context, req dto.JournalEntryRequest) (*dto.JournalEntryResponse, error) {
	entry := &model.JournalEntry{}
	if err := req.ApplyTo(entry); err != nil {
		return nil, err
	}

	_, err := s.ledger.Write(ctx, func(opts ...utils.DBOption) error {
		return s.journalEntryRepo.Create(ctx, entry, opts...)
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to create journal entry", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	s.log.InfoContext(ctx, "Journal entry created",
		logger.IntField("id", int(entry.ID)),
		logger.StringField("entry", entry.String()))
	resp := dto.NewJournalEntryResponse(*entry)
	return &resp, nil
}

// UpdateEntry serves both PUT and PATCH: fields present in req replace the
// stored values, absent fields are kept.
func (s *journalService) UpdateEntry(ctx context.Context, id uint, req dto.JournalEntryRequest) (*dto.JournalEntryResponse, error) {
	var entry *model.JournalEntry

	_, err := s.ledger.Write(ctx, func(opts ...utils.DBOption) error {
		var err error
		entry, err = s.journalEntryRepo.Get(ctx, id, opts...)
		if err != nil {
			return err
		}
		if err := req.ApplyTo(entry); err != nil {
			return err
		}
		return s.journalEntryRepo.Update(ctx, entry, opts...)
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.log.ErrorContext(ctx, "Failed to update journal entry", logger.IntField("id", int(id)), logger.ErrorField(err))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.log.InfoContext(ctx, "Journal entry updated",
		logger.IntField("id", int(entry.ID)),
		logger.StringField("entry", entry.String()))
	resp := dto.NewJournalEntryResponse(*entry)
	return &resp, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, id uint) error {
	_, err := s.ledger.Write(ctx, func(opts ...utils.DBOption) error {
		return s.journalEntryRepo.Delete(ctx, id, opts...)
	})
	if err != nil {
		if isDomainError(err) {
			return err
		}
		s.log.ErrorContext(ctx, "Failed to delete journal entry", logger.IntField("id", int(id)), logger.ErrorField(err))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.log.InfoContext(ctx, "Journal entry deleted", logger.IntField("id", int(id)))
	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, dto.ErrEntryNotFound) || errors.Is(err, dto.ErrInvalidEntry)
}
