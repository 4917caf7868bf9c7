package http

import (
	"net/http"
	"strconv"

	"golfcart-dashboard/internal/domain"
)

func (h *Handler) listCarts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	available := false
	if raw := q.Get("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeServiceError(w, r, domain.NewValidationError("available", "must be true or false"))
			return
		}
		available = v
	}
	writeJSON(w, http.StatusOK, h.svc.SearchCarts(q.Get("q"), available))
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var cart domain.Cart
	if err := decodeBody(w, r, &cart); err != nil {
		writeServiceError(w, r, err)
		return
	}
	cart.ID = id
	if err := h.svc.UpdateCart(r.Context(), &cart); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) deleteCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.svc.DeleteCart(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Clients())
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := decodeBody(w, r, &client); err != nil {
		writeServiceError(w, r, err)
		return
	}
	client.ID = 0
	if err := h.svc.CreateClient(r.Context(), &client); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Vendors())
}
