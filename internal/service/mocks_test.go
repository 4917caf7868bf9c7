package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/repository"
)

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) List(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) List(ctx context.Context) ([]domain.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cart), args.Error(1)
}
func (m *MockCartRepo) Update(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}
func (m *MockCartRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

type MockVendorRepo struct {
	mock.Mock
}

func (m *MockVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

type mockStore struct {
	rentals *MockRentalRepo
	carts   *MockCartRepo
	clients *MockClientRepo
	vendors *MockVendorRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		rentals: new(MockRentalRepo),
		carts:   new(MockCartRepo),
		clients: new(MockClientRepo),
		vendors: new(MockVendorRepo),
	}
}

func (s *mockStore) Store() repository.Store {
	return repository.Store{Rentals: s.rentals, Carts: s.carts, Clients: s.clients, Vendors: s.vendors}
}
