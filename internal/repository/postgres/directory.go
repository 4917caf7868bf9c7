package postgres

import (
	"context"
	"database/sql"
	"time"

	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/logger"
	"golfcart-dashboard/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) List(ctx context.Context) ([]domain.Cart, error) {
	query := `SELECT carrito_id, modelo, marca, precio_hora, imgurl, en_renta FROM carrito ORDER BY carrito_id`
	logger.DatabaseCall("ListCarts", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListCarts", 0, err)
		return nil, err
	}
	defer rows.Close()

	var carts []domain.Cart
	for rows.Next() {
		var c domain.Cart
		if err := rows.Scan(&c.ID, &c.Model, &c.Brand, &c.PricePerHour, &c.ImageURL, &c.InRental); err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}
	logger.DatabaseResult("ListCarts", int64(len(carts)), rows.Err())
	return carts, rows.Err()
}

func (r *cartRepository) Update(ctx context.Context, c *domain.Cart) error {
	query := `UPDATE carrito SET modelo=$1, marca=$2, precio_hora=$3, imgurl=$4, en_renta=$5 WHERE carrito_id=$6`
	logger.DatabaseCall("UpdateCart", query, "cart_id", c.ID)

	res, err := r.db.ExecContext(ctx, query, c.Model, c.Brand, c.PricePerHour, c.ImageURL, c.InRental, c.ID)
	if err != nil {
		logger.DatabaseResult("UpdateCart", 0, err)
		return err
	}
	n, err := rowsAffected(res)
	logger.DatabaseResult("UpdateCart", n, err)
	return err
}

func (r *cartRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM carrito WHERE carrito_id = $1`
	logger.DatabaseCall("DeleteCart", query, "cart_id", id)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("DeleteCart", 0, err)
		return err
	}
	n, err := rowsAffected(res)
	logger.DatabaseResult("DeleteCart", n, err)
	return err
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT cliente_id, nombre, email, telefono FROM cliente ORDER BY cliente_id`
	logger.DatabaseCall("ListClients", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListClients", 0, err)
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	logger.DatabaseResult("ListClients", int64(len(clients)), rows.Err())
	return clients, rows.Err()
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO cliente (nombre, email, telefono) VALUES ($1, $2, $3) RETURNING cliente_id`
	logger.DatabaseCall("CreateClient", query)

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone).Scan(&c.ID)
	logger.DatabaseResult("CreateClient", 1, err, "client_id", c.ID)
	return err
}

type vendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) repository.VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	query := `SELECT vendedor_id, nombre FROM vendedor ORDER BY vendedor_id`
	logger.DatabaseCall("ListVendors", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListVendors", 0, err)
		return nil, err
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	logger.DatabaseResult("ListVendors", int64(len(vendors)), rows.Err())
	return vendors, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
