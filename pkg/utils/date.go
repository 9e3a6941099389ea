package utils

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// MonthRange returns the half-open interval [start, end) covering the given
// calendar month. Bounds are UTC midnights, matching how date columns are
// stored.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthName formats a period as "January 2024".
func MonthName(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
