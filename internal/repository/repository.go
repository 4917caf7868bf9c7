package repository

import (
	"context"
	"errors"

	"golfcart-dashboard/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type RentalRepository interface {
	List(ctx context.Context) ([]domain.Rental, error)
	// Create stores the rental and sets its ID from the store.
	Create(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id int) error
}

type CartRepository interface {
	List(ctx context.Context) ([]domain.Cart, error)
	Update(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, id int) error
}

type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
}

type VendorRepository interface {
	List(ctx context.Context) ([]domain.Vendor, error)
}

// Store groups the collaborators the dashboard reads from and writes to.
type Store struct {
	Rentals RentalRepository
	Carts   CartRepository
	Clients ClientRepository
	Vendors VendorRepository
}
