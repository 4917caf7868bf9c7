package service

import (
	"context"
	"time"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/reservation"
)

// CalendarService serves the month/day views and the live countdown.
type CalendarService interface {
	Refresh(ctx context.Context) LoadReport
	MonthView(year int, month time.Month) (calendar.MonthView, error)
	DayView(year int, month time.Month, day int) ([]calendar.Entry, error)
	Summary() Summary
	Rows() []calendar.Entry
	Remaining() map[int]string
	SubscribeRemaining() (<-chan map[int]string, func())
	Close()
}

// ReservationService creates and removes rentals.
type ReservationService interface {
	CreateReservation(ctx context.Context, draft reservation.Draft) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id int) error
	PendingReservations() []reservation.PendingReservation
}

// InventoryService manages carts, clients and vendors.
type InventoryService interface {
	SearchCarts(query string, availableOnly bool) []domain.Cart
	AvailableCarts() []domain.Cart
	UpdateCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, id int) error
	Clients() []domain.Client
	CreateClient(ctx context.Context, client *domain.Client) error
	Vendors() []domain.Vendor
}

// DashboardService is everything the HTTP API needs.
type DashboardService interface {
	CalendarService
	ReservationService
	InventoryService
}
