package calendar

import (
	"time"

	"golfcart-dashboard/internal/domain"
)

// RentalsOnDay returns the rentals whose start falls on the given calendar
// day in loc, keeping their original order. Rentals with an unparsed start
// never match.
func RentalsOnDay(rentals []domain.Rental, year int, month time.Month, day int, loc *time.Location) []domain.Rental {
	loc = orLocal(loc)
	var out []domain.Rental
	for _, r := range rentals {
		if r.Start.IsZero() {
			continue
		}
		y, m, d := r.Start.In(loc).Date()
		if y == year && m == month && d == day {
			out = append(out, r)
		}
	}
	return out
}

// GroupByDay buckets the rentals starting in (year, month) by day of month in
// one pass. Order inside each bucket follows the input.
func GroupByDay(rentals []domain.Rental, year int, month time.Month, loc *time.Location) map[int][]domain.Rental {
	loc = orLocal(loc)
	out := make(map[int][]domain.Rental)
	for _, r := range rentals {
		if r.Start.IsZero() {
			continue
		}
		y, m, d := r.Start.In(loc).Date()
		if y == year && m == month {
			out[d] = append(out[d], r)
		}
	}
	return out
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
