package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/logger"
	"golfcart-dashboard/internal/repository"
)

// NewStore exposes the REST endpoints as the dashboard's repositories.
// Rental timestamps sent without a zone are read as wall-clock times in loc.
func NewStore(c *Client, loc *time.Location) repository.Store {
	if loc == nil {
		loc = time.UTC
	}
	return repository.Store{
		Rentals: &rentalRepository{c: c, loc: loc},
		Carts:   &cartRepository{c: c},
		Clients: &clientRepository{c: c},
		Vendors: &vendorRepository{c: c},
	}
}

type rentalRepository struct {
	c   *Client
	loc *time.Location
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	var raw json.RawMessage
	if err := r.c.get(ctx, "/Renta", &raw); err != nil {
		return nil, err
	}
	rentals, err := domain.DecodeRentals(raw, r.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	for _, rt := range rentals {
		if !rt.HasValidWindow() {
			logger.Warn("Rental has unparseable start or end", "rental_id", rt.ID)
		}
	}
	return rentals, nil
}

// Create stores rt and sets its id. A 2xx reply that carries no id is still a
// stored rental: rt.ID stays 0 and the caller has to find it on the next list.
func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	var raw json.RawMessage
	err := r.c.send(ctx, http.MethodPost, "/Renta", rt, &raw)
	if errors.Is(err, errNoResult) {
		logger.Warn("Rental backend accepted a rental without returning its id")
		rt.ID = 0
		return nil
	}
	if err != nil {
		return err
	}
	id, err := createdID(raw, "rentaID")
	if err != nil {
		logger.Warn("Rental backend accepted a rental without returning its id", "error", err)
		rt.ID = 0
		return nil
	}
	rt.ID = id
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id int) error {
	return r.c.send(ctx, http.MethodDelete, fmt.Sprintf("/Renta/%d", id), nil, nil)
}

type cartRepository struct{ c *Client }

func (r *cartRepository) List(ctx context.Context) ([]domain.Cart, error) {
	var carts []domain.Cart
	if err := r.c.get(ctx, "/Carritos", &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *cartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	return r.c.send(ctx, http.MethodPut, fmt.Sprintf("/Carritos/%d", cart.ID), cart, nil)
}

func (r *cartRepository) Delete(ctx context.Context, id int) error {
	return r.c.send(ctx, http.MethodDelete, fmt.Sprintf("/Carritos/%d", id), nil, nil)
}

type clientRepository struct{ c *Client }

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := r.c.get(ctx, "/Cliente", &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	var raw json.RawMessage
	if err := r.c.send(ctx, http.MethodPost, "/Cliente", client, &raw); err != nil {
		return err
	}
	id, err := createdID(raw, "clienteID")
	if err != nil {
		return err
	}
	client.ID = id
	return nil
}

type vendorRepository struct{ c *Client }

func (r *vendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	if err := r.c.get(ctx, "/Vendedor", &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// createdID extracts the new id from a create response, which is either the
// stored record or the bare id.
func createdID(raw json.RawMessage, idField string) (int, error) {
	var id int
	if err := json.Unmarshal(raw, &id); err == nil && id > 0 {
		return id, nil
	}
	var record map[string]json.RawMessage
	if err := json.Unmarshal(raw, &record); err == nil {
		if v, ok := record[idField]; ok {
			if err := json.Unmarshal(v, &id); err == nil && id > 0 {
				return id, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: create response has no %s", ErrUnexpectedShape, idField)
}
