package dto

import "errors"

var (
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrInvalidPeriod = errors.New("invalid month or year")
	ErrInvalidEntry  = errors.New("invalid journal entry")
)
