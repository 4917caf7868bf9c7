package calendar

import (
	"fmt"
	"time"
)

// NoEndLabel is shown when a rental's end instant could not be parsed.
const NoEndLabel = "sin hora de término"

// Remaining returns max(0, end-now). A zero end counts as already over.
func Remaining(end, now time.Time) time.Duration {
	if end.IsZero() {
		return 0
	}
	if d := end.Sub(now); d > 0 {
		return d
	}
	return 0
}

// FormatRemaining renders d as "H horas M minutos" with both parts floored.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%d horas %d minutos", hours, minutes)
}

// FormatRemainingFor formats the time left until end, or NoEndLabel when end is unknown.
func FormatRemainingFor(end, now time.Time) string {
	if end.IsZero() {
		return NoEndLabel
	}
	return FormatRemaining(Remaining(end, now))
}
