package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/logger"
)

const (
	ProductID = "-//golfcart-dashboard//rentas//ES"
	uidDomain = "golfcart-dashboard"
)

// EventUID is the stable VEVENT UID of a rental.
func EventUID(rentalID int) string {
	return fmt.Sprintf("renta-%d@%s", rentalID, uidDomain)
}

// ExportMonth renders every rental of a month view as a VEVENT. Entries
// without a start instant are skipped; entries without an end get no DTEND.
func ExportMonth(view calendar.MonthView, stamp time.Time) (string, error) {
	if view.Month < time.January || view.Month > time.December {
		return "", calendar.ErrInvalidMonth
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(fmt.Sprintf("Rentas %s %d", view.MonthName, view.Year))

	events, skipped := 0, 0
	for _, cell := range view.Days {
		for _, e := range cell.Entries {
			if e.Start == nil {
				skipped++
				continue
			}
			addEvent(cal, e, stamp)
			events++
		}
	}

	logger.Info("ics export completed", "year", view.Year, "month", int(view.Month), "event_count", events, "skipped", skipped)
	return cal.Serialize(), nil
}

func addEvent(cal *ical.Calendar, e calendar.Entry, stamp time.Time) {
	ev := cal.AddEvent(EventUID(e.RentalID))
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(*e.Start)
	if e.End != nil {
		ev.SetEndAt(*e.End)
	}
	ev.SetSummary(e.ClientName + " - " + e.CartModel)
	ev.SetDescription(description(e))
	ev.SetStatus(eventStatus(e.Status.Tag))
}

func description(e calendar.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vendedor: %s\n", e.VendorName)
	fmt.Fprintf(&b, "Estado: %s", e.Status.Label)
	if e.End != nil {
		fmt.Fprintf(&b, "\nTiempo restante: %s", e.Remaining)
	}
	return b.String()
}

func eventStatus(tag domain.DisplayStatus) ical.ObjectStatus {
	switch tag {
	case domain.DisplayCancelled:
		return ical.ObjectStatusCancelled
	case domain.DisplayUnknown:
		return ical.ObjectStatusTentative
	default:
		return ical.ObjectStatusConfirmed
	}
}
