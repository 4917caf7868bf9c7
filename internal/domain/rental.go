package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Canonical rental status labels as stored by the rental backend.
const (
	StatusInProgress = "En progreso"
	StatusUpcoming   = "Próxima renta"
	StatusCancelled  = "Cancelado"
	StatusDelayed    = "Retrasado"
	StatusCompleted  = "Completado"

	// StatusUpcomingAlias is accepted on input and never written back.
	StatusUpcomingAlias = "Próximamente"
)

// DisplayStatus is the bucket a rental is drawn in.
type DisplayStatus string

const (
	DisplayInProgress DisplayStatus = "in_progress"
	DisplayUpcoming   DisplayStatus = "upcoming"
	DisplayCancelled  DisplayStatus = "cancelled"
	DisplayDelayed    DisplayStatus = "delayed"
	DisplayCompleted  DisplayStatus = "completed"
	DisplayUnknown    DisplayStatus = "unknown"
)

// Rental is a booking of one cart by one client, registered by one vendor.
// Start and End are the zero time when the backend sent an unparseable value.
type Rental struct {
	ID       int       `json:"rentaID"`
	ClientID int       `json:"clienteFK"`
	CartID   int       `json:"carritoFK"`
	VendorID int       `json:"vendedorFK"`
	Start    time.Time `json:"horaInicio"`
	End      time.Time `json:"horaFinal"`
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
}

// RentalRecord is a rental as the backend sends it, with instants still raw.
type RentalRecord struct {
	ID       int             `json:"rentaID"`
	ClientID int             `json:"clienteFK"`
	CartID   int             `json:"carritoFK"`
	VendorID int             `json:"vendedorFK"`
	Start    json.RawMessage `json:"horaInicio"`
	End      json.RawMessage `json:"horaFinal"`
	Status   string          `json:"status"`
	Total    float64         `json:"total"`
}

// Rental decodes the record's instants leniently: a bad timestamp yields the
// zero time instead of failing the whole rental list. Timestamps without a
// zone are wall-clock times in loc.
func (w RentalRecord) Rental(loc *time.Location) Rental {
	return Rental{
		ID:       w.ID,
		ClientID: w.ClientID,
		CartID:   w.CartID,
		VendorID: w.VendorID,
		Start:    decodeInstant(w.Start, loc),
		End:      decodeInstant(w.End, loc),
		Status:   w.Status,
		Total:    w.Total,
	}
}

// DecodeRentals decodes a backend rental list, reading zoneless timestamps in loc.
func DecodeRentals(data []byte, loc *time.Location) ([]Rental, error) {
	var records []RentalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	rentals := make([]Rental, 0, len(records))
	for _, rec := range records {
		rentals = append(rentals, rec.Rental(loc))
	}
	return rentals, nil
}

// UnmarshalJSON decodes a single rental with zoneless timestamps read as UTC.
func (r *Rental) UnmarshalJSON(data []byte) error {
	var w RentalRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = w.Rental(time.UTC)
	return nil
}

// MarshalJSON writes instants as RFC3339 and omits zero ones.
func (r Rental) MarshalJSON() ([]byte, error) {
	out := struct {
		ID       int     `json:"rentaID,omitempty"`
		ClientID int     `json:"clienteFK"`
		CartID   int     `json:"carritoFK"`
		VendorID int     `json:"vendedorFK"`
		Start    *string `json:"horaInicio"`
		End      *string `json:"horaFinal"`
		Status   string  `json:"status"`
		Total    float64 `json:"total"`
	}{
		ID:       r.ID,
		ClientID: r.ClientID,
		CartID:   r.CartID,
		VendorID: r.VendorID,
		Start:    encodeInstant(r.Start),
		End:      encodeInstant(r.End),
		Status:   r.Status,
		Total:    r.Total,
	}
	return json.Marshal(out)
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseInstant parses the timestamp forms the rental backend is known to emit.
// Values without a zone are read as UTC.
func ParseInstant(s string) (time.Time, error) {
	return ParseInstantIn(s, time.UTC)
}

// ParseInstantIn is ParseInstant with zoneless values read as wall-clock
// times in loc. Values carrying an offset keep it.
func ParseInstantIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func decodeInstant(raw json.RawMessage, loc *time.Location) time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	t, err := ParseInstantIn(s, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeInstant(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// HasValidWindow reports whether both instants parsed.
func (r Rental) HasValidWindow() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}
