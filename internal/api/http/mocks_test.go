package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/reservation"
	"golfcart-dashboard/internal/service"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Refresh(ctx context.Context) service.LoadReport {
	args := m.Called(ctx)
	return args.Get(0).(service.LoadReport)
}
func (m *MockDashboardService) MonthView(year int, month time.Month) (calendar.MonthView, error) {
	args := m.Called(year, month)
	return args.Get(0).(calendar.MonthView), args.Error(1)
}
func (m *MockDashboardService) DayView(year int, month time.Month, day int) ([]calendar.Entry, error) {
	args := m.Called(year, month, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calendar.Entry), args.Error(1)
}
func (m *MockDashboardService) Summary() service.Summary {
	args := m.Called()
	return args.Get(0).(service.Summary)
}
func (m *MockDashboardService) Rows() []calendar.Entry {
	args := m.Called()
	return args.Get(0).([]calendar.Entry)
}
func (m *MockDashboardService) Remaining() map[int]string {
	args := m.Called()
	return args.Get(0).(map[int]string)
}
func (m *MockDashboardService) SubscribeRemaining() (<-chan map[int]string, func()) {
	args := m.Called()
	return args.Get(0).(chan map[int]string), args.Get(1).(func())
}
func (m *MockDashboardService) Close() {
	m.Called()
}
func (m *MockDashboardService) CreateReservation(ctx context.Context, draft reservation.Draft) (*domain.Rental, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockDashboardService) DeleteRental(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDashboardService) PendingReservations() []reservation.PendingReservation {
	args := m.Called()
	return args.Get(0).([]reservation.PendingReservation)
}
func (m *MockDashboardService) SearchCarts(query string, availableOnly bool) []domain.Cart {
	args := m.Called(query, availableOnly)
	return args.Get(0).([]domain.Cart)
}
func (m *MockDashboardService) AvailableCarts() []domain.Cart {
	args := m.Called()
	return args.Get(0).([]domain.Cart)
}
func (m *MockDashboardService) UpdateCart(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}
func (m *MockDashboardService) DeleteCart(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDashboardService) Clients() []domain.Client {
	args := m.Called()
	return args.Get(0).([]domain.Client)
}
func (m *MockDashboardService) CreateClient(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockDashboardService) Vendors() []domain.Vendor {
	args := m.Called()
	return args.Get(0).([]domain.Vendor)
}
