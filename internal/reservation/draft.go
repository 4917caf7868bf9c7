package reservation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/domain"
)

const (
	StartSelectedDay = "selected_day"
	StartNow         = "now"

	DefaultGrace = 15 * time.Minute
)

var ErrCartDoubleBooked = errors.New("cart is already booked for that time")

func invalid(field, msg string) error {
	return domain.NewValidationError(field, msg)
}

// Draft is the unvalidated input of the create-reservation form.
type Draft struct {
	ClientID string `json:"clientId"`
	CartID   string `json:"cartId"`
	VendorID string `json:"vendorId"`
	Hours    string `json:"hours"`
	Status   string `json:"status,omitempty"`
	// Date is the selected calendar day as YYYY-MM-DD. Empty means today.
	Date string `json:"date,omitempty"`
}

// Options are the reservation policy knobs.
type Options struct {
	Grace     time.Duration
	StartMode string
	Location  *time.Location
}

// Reservation is a draft that passed validation.
type Reservation struct {
	ClientID int
	CartID   int
	VendorID int
	Hours    float64
	Start    time.Time
	End      time.Time
	Status   string
}

// Rental converts the reservation into the record sent to the store.
func (r Reservation) Rental() domain.Rental {
	return domain.Rental{
		ClientID: r.ClientID,
		CartID:   r.CartID,
		VendorID: r.VendorID,
		Start:    r.Start,
		End:      r.End,
		Status:   r.Status,
		Total:    r.Hours,
	}
}

// storeClockSkew bounds how far a stored start may drift from the one sent,
// since the backend may drop sub-second or second precision.
const storeClockSkew = time.Minute

// Matches reports whether a stored rental is this reservation.
func (r Reservation) Matches(rt domain.Rental) bool {
	if rt.ClientID != r.ClientID || rt.CartID != r.CartID || rt.VendorID != r.VendorID {
		return false
	}
	d := rt.Start.Sub(r.Start)
	return !rt.Start.IsZero() && d < storeClockSkew && d > -storeClockSkew
}

var maxHours = float64(math.MaxInt64) / float64(time.Hour) / 2

// ValidateDraft checks a draft and computes its rental window at now.
func ValidateDraft(d Draft, opts Options, now time.Time) (Reservation, error) {
	clientID, err := parseID("client", d.ClientID)
	if err != nil {
		return Reservation{}, err
	}
	cartID, err := parseID("cart", d.CartID)
	if err != nil {
		return Reservation{}, err
	}
	vendorID, err := parseID("vendor", d.VendorID)
	if err != nil {
		return Reservation{}, err
	}
	hours, err := ParseHours(d.Hours)
	if err != nil {
		return Reservation{}, err
	}

	status := strings.TrimSpace(d.Status)
	if status == "" {
		status = domain.StatusInProgress
	}
	if !calendar.IsCanonicalStatus(status) {
		return Reservation{}, invalid("status", fmt.Sprintf("unknown status %q", status))
	}

	start, err := startInstant(d.Date, opts, now)
	if err != nil {
		return Reservation{}, err
	}
	if opts.Grace < 0 {
		opts.Grace = 0
	}
	end := start.Add(time.Duration(hours*float64(time.Hour)) + opts.Grace)

	return Reservation{
		ClientID: clientID,
		CartID:   cartID,
		VendorID: vendorID,
		Hours:    hours,
		Start:    start,
		End:      end,
		Status:   status,
	}, nil
}

// ParseHours accepts a positive, finite decimal number of hours.
func ParseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid("hours", "is required")
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, invalid("hours", fmt.Sprintf("%q is not a number", s))
	}
	if h <= 0 {
		return 0, invalid("hours", "must be greater than zero")
	}
	if h > maxHours {
		return 0, invalid("hours", "is too large")
	}
	return h, nil
}

func parseID(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid(field, "is required")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, invalid(field, fmt.Sprintf("%q is not a valid id", s))
	}
	return id, nil
}

// startInstant is now in "now" mode, otherwise the selected day at now's
// time of day in the display zone.
func startInstant(date string, opts Options, now time.Time) (time.Time, error) {
	if opts.StartMode == StartNow || strings.TrimSpace(date) == "" {
		return now, nil
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, invalid("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", date))
	}
	local := now.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc), nil
}

// CheckOverlap fails when an active rental of the same cart intersects the
// reservation window. Cancelled and completed rentals never conflict.
func CheckOverlap(res Reservation, existing []domain.Rental) error {
	for _, r := range existing {
		if r.CartID != res.CartID || !r.HasValidWindow() {
			continue
		}
		switch calendar.Classify(r.Status).Tag {
		case domain.DisplayCancelled, domain.DisplayCompleted:
			continue
		}
		if res.Start.Before(r.End) && r.Start.Before(res.End) {
			return fmt.Errorf("%w: rental %d", ErrCartDoubleBooked, r.ID)
		}
	}
	return nil
}
