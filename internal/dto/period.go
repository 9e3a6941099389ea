package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"trading-journal/pkg/utils"
)

// Period is one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Range returns [first day, first day of next month).
func (p Period) Range() (time.Time, time.Time) {
	return utils.MonthRange(p.Year, p.Month)
}

func (p Period) Name() string {
	return utils.MonthName(p.Year, p.Month)
}

// PeriodQuery carries the raw month/year/all query parameters shared by the
// entry list and the stats endpoints.
type PeriodQuery struct {
	Month string `query:"month"`
	Year  string `query:"year"`
	All   string `query:"all"`
}

func (q PeriodQuery) ShowAll() bool {
	return utils.ParseBool(q.All)
}

// HasPeriod reports whether both month and year were supplied. With only one
// of them the query falls back to the current month.
func (q PeriodQuery) HasPeriod() bool {
	return q.Month != "" && q.Year != ""
}

// Resolve returns the month the query selects. now is used when no explicit
// period was given. The error wraps ErrInvalidPeriod.
func (q PeriodQuery) Resolve(now time.Time) (Period, error) {
	if !q.HasPeriod() {
		return PeriodOf(now), nil
	}
	month, err := parseInt("month", q.Month)
	if err != nil {
		return Period{}, err
	}
	year, err := parseInt("year", q.Year)
	if err != nil {
		return Period{}, err
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: Month must be between 1 and 12", ErrInvalidPeriod)
	}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("%w: Year must be between 1 and 9999", ErrInvalidPeriod)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

func parseInt(name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidPeriod, name, raw)
	}
	return v, nil
}

type PeriodResponse struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	MonthName string `json:"month_name"`
}

func NewPeriodResponse(p Period) *PeriodResponse {
	return &PeriodResponse{
		Month:     int(p.Month),
		Year:      p.Year,
		MonthName: p.Name(),
	}
}
