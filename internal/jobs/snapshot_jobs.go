package jobs

import (
	"context"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/logger"
)

// RefreshSnapshot reloads rentals, carts, clients and vendors from the store.
func (jr *JobRunner) RefreshSnapshot() {
	jr.runWithRecovery("RefreshSnapshot", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
		defer cancel()

		report := jr.calendar.Refresh(ctx)
		if err := report.Err(); err != nil {
			logger.Warn("Snapshot refreshed with failures", "failed_sources", len(report.Errors), "error", err)
			return
		}
		logger.Info("Snapshot refreshed", "counts", report.Counts)
	})
}

// ReportOverdueRentals logs rentals still marked in progress whose window has
// already ended. The backend owns the status, so nothing is written back.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		overdue := jr.overdueRentals()
		for _, e := range overdue {
			logger.Warn("Rental past its end time",
				"rental_id", e.RentalID,
				"client", e.ClientName,
				"cart", e.CartModel,
				"end", e.End,
			)
		}
		logger.Info("Overdue rentals checked", "count", len(overdue))
	})
}

func (jr *JobRunner) overdueRentals() []calendar.Entry {
	now := jr.now()
	var out []calendar.Entry
	for _, e := range jr.calendar.Rows() {
		if e.Status.Tag != domain.DisplayInProgress || e.End == nil {
			continue
		}
		if e.End.Before(now) {
			out = append(out, e)
		}
	}
	return out
}
