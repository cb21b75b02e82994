package services

import (
	"math"
	"time"
)

// NightsBetween counts whole nights in the half-open stay
// [checkIn, checkOut). Both values are date-truncated.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// StayTotal computes nights x nightly rate, rounded half-up on the
// currency minor unit. Pure and deterministic.
func StayTotal(nightlyRate float64, checkIn, checkOut time.Time) (float64, error) {
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return 0, ErrInvalidDateRange
	}
	cents := math.Round(float64(nights) * nightlyRate * 100)
	return cents / 100, nil
}

// parseStayDate accepts the plain date form the API documents plus
// RFC3339 timestamps some clients send, truncated to midnight UTC.
func parseStayDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Overlaps reports whether the half-open intervals [a1,a2) and [b1,b2)
// intersect. Checkout on day D never conflicts with check-in on day D.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}
