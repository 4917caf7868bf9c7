package calendar

import (
	"fmt"
	"time"

	"golfcart-dashboard/internal/domain"
)

const (
	UnknownClient = "Cliente desconocido"
	UnknownCart   = "Modelo desconocido"
	UnknownVendor = "Vendedor desconocido"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish display name of a month.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Directory resolves foreign keys to display names. Build it once per fetch.
type Directory struct {
	Clients map[int]domain.Client
	Carts   map[int]domain.Cart
	Vendors map[int]domain.Vendor
}

func NewDirectory(clients []domain.Client, carts []domain.Cart, vendors []domain.Vendor) Directory {
	d := Directory{
		Clients: make(map[int]domain.Client, len(clients)),
		Carts:   make(map[int]domain.Cart, len(carts)),
		Vendors: make(map[int]domain.Vendor, len(vendors)),
	}
	for _, c := range clients {
		d.Clients[c.ID] = c
	}
	for _, c := range carts {
		d.Carts[c.ID] = c
	}
	for _, v := range vendors {
		d.Vendors[v.ID] = v
	}
	return d
}

func (d Directory) ClientName(id int) string {
	if c, ok := d.Clients[id]; ok {
		return c.Name
	}
	return UnknownClient
}

func (d Directory) CartModel(id int) string {
	if c, ok := d.Carts[id]; ok {
		return c.Model
	}
	return UnknownCart
}

func (d Directory) VendorName(id int) string {
	if v, ok := d.Vendors[id]; ok {
		return v.Name
	}
	return UnknownVendor
}

// Entry is one rental as drawn inside a day cell or a table row.
type Entry struct {
	RentalID   int            `json:"rentalId"`
	ClientName string         `json:"clientName"`
	CartModel  string         `json:"cartModel"`
	VendorName string         `json:"vendorName"`
	Start      *time.Time     `json:"start"`
	End        *time.Time     `json:"end"`
	Status     Classification `json:"status"`
	Remaining  string         `json:"remaining"`
	Progress   float64        `json:"progress"`
}

type DayCell struct {
	Day     int     `json:"day"`
	IsToday bool    `json:"isToday"`
	Entries []Entry `json:"entries"`
}

type MonthView struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	MonthName string     `json:"monthName"`
	Blanks    int        `json:"blanks"`
	Days      []DayCell  `json:"days"`
}

// NewEntry joins a rental with the directory and derives its display fields at now.
func NewEntry(r domain.Rental, dir Directory, loc *time.Location, now time.Time) Entry {
	loc = orLocal(loc)
	return Entry{
		RentalID:   r.ID,
		ClientName: dir.ClientName(r.ClientID),
		CartModel:  dir.CartModel(r.CartID),
		VendorName: dir.VendorName(r.VendorID),
		Start:      inLocation(r.Start, loc),
		End:        inLocation(r.End, loc),
		Status:     Classify(r.Status),
		Remaining:  FormatRemainingFor(r.End, now),
		Progress:   Progress(r, now),
	}
}

// BuildMonthView lays out a month and places each rental on the day it starts.
func BuildMonthView(year int, month time.Month, rentals []domain.Rental, dir Directory, loc *time.Location, now time.Time) (MonthView, error) {
	loc = orLocal(loc)
	grid, err := BuildMonthGrid(year, month)
	if err != nil {
		return MonthView{}, err
	}

	byDay := GroupByDay(rentals, year, month, loc)
	ty, tm, td := now.In(loc).Date()

	view := MonthView{
		Year:      year,
		Month:     month,
		MonthName: MonthName(month),
		Blanks:    len(grid.Blanks),
		Days:      make([]DayCell, 0, len(grid.Days)),
	}
	for _, day := range grid.Days {
		cell := DayCell{
			Day:     day,
			IsToday: ty == year && tm == month && td == day,
			Entries: []Entry{},
		}
		for _, r := range byDay[day] {
			cell.Entries = append(cell.Entries, NewEntry(r, dir, loc, now))
		}
		view.Days = append(view.Days, cell)
	}
	return view, nil
}

// BuildDayView returns the entries of the rentals starting on one day.
func BuildDayView(year int, month time.Month, day int, rentals []domain.Rental, dir Directory, loc *time.Location, now time.Time) ([]Entry, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	if day < 1 || day > DaysIn(year, month) {
		return nil, fmt.Errorf("%w: %d for %s %d", ErrInvalidDay, day, MonthName(month), year)
	}
	entries := []Entry{}
	for _, r := range RentalsOnDay(rentals, year, month, day, loc) {
		entries = append(entries, NewEntry(r, dir, loc, now))
	}
	return entries, nil
}

func inLocation(t time.Time, loc *time.Location) *time.Time {
	if t.IsZero() {
		return nil
	}
	lt := t.In(loc)
	return &lt
}
