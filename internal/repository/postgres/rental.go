package postgres

import (
	"context"
	"database/sql"

	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/logger"
	"golfcart-dashboard/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT renta_id, cliente_fk, carrito_fk, vendedor_fk, hora_inicio, hora_final, status, total
	          FROM renta ORDER BY renta_id`
	logger.DatabaseCall("ListRentals", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListRentals", 0, err)
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		var start, end sql.NullTime
		if err := rows.Scan(&rt.ID, &rt.ClientID, &rt.CartID, &rt.VendorID, &start, &end, &rt.Status, &rt.Total); err != nil {
			logger.DatabaseResult("ListRentals", 0, err)
			return nil, err
		}
		if start.Valid {
			rt.Start = start.Time
		}
		if end.Valid {
			rt.End = end.Time
		}
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		logger.DatabaseResult("ListRentals", 0, err)
		return nil, err
	}
	logger.DatabaseResult("ListRentals", int64(len(rentals)), nil)
	return rentals, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO renta (cliente_fk, carrito_fk, vendedor_fk, hora_inicio, hora_final, status, total)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING renta_id`
	logger.DatabaseCall("CreateRental", query, "cart_id", rt.CartID)

	err := r.db.QueryRowContext(ctx, query, rt.ClientID, rt.CartID, rt.VendorID, nullTime(rt.Start), nullTime(rt.End), rt.Status, rt.Total).Scan(&rt.ID)
	logger.DatabaseResult("CreateRental", 1, err, "rental_id", rt.ID)
	return err
}

func (r *rentalRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM renta WHERE renta_id = $1`
	logger.DatabaseCall("DeleteRental", query, "rental_id", id)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("DeleteRental", 0, err)
		return err
	}
	n, err := rowsAffected(res)
	logger.DatabaseResult("DeleteRental", n, err)
	return err
}
