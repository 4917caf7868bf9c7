package postgres

import (
	"database/sql"

	"golfcart-dashboard/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RentalRepository
	repository.CartRepository
	repository.ClientRepository
	repository.VendorRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		RentalRepository: NewRentalRepository(db),
		CartRepository:   NewCartRepository(db),
		ClientRepository: NewClientRepository(db),
		VendorRepository: NewVendorRepository(db),
	}
}

// Repositories returns the store as the dashboard's collaborator set.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Rentals: s.RentalRepository,
		Carts:   s.CartRepository,
		Clients: s.ClientRepository,
		Vendors: s.VendorRepository,
	}
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, repository.ErrNotFound
	}
	return n, nil
}
