package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/reservation"
)

type pendingResponse struct {
	Ref       string    `json:"ref"`
	ClientID  int       `json:"clientId"`
	CartID    int       `json:"cartId"`
	VendorID  int       `json:"vendorId"`
	Hours     float64   `json:"hours"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"createdAt"`
	Stored    bool      `json:"stored"`
}

type refreshResponse struct {
	LoadedAt time.Time         `json:"loadedAt"`
	Counts   map[string]int    `json:"counts"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// decodeBody reads a JSON request body of at most maxBodyBytes.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "is required")
		}
		return domain.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

func pathID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", fmt.Sprintf("%q is not a valid id", raw))
	}
	return id, nil
}

func (h *Handler) createRental(w http.ResponseWriter, r *http.Request) {
	var draft reservation.Draft
	if err := decodeBody(w, r, &draft); err != nil {
		writeServiceError(w, r, err)
		return
	}
	rental, err := h.svc.CreateReservation(r.Context(), draft)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	// Stored without an id yet: it is confirmed by a later refresh.
	if rental.ID == 0 {
		writeJSON(w, http.StatusAccepted, rental)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *Handler) deleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.svc.DeleteRental(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	out := []pendingResponse{}
	for _, p := range h.svc.PendingReservations() {
		out = append(out, pendingResponse{
			Ref:       p.Ref.String(),
			ClientID:  p.Reservation.ClientID,
			CartID:    p.Reservation.CartID,
			VendorID:  p.Reservation.VendorID,
			Hours:     p.Reservation.Hours,
			Start:     p.Reservation.Start,
			End:       p.Reservation.End,
			CreatedAt: p.CreatedAt,
			Stored:    p.Stored,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	report := h.svc.Refresh(r.Context())
	resp := refreshResponse{LoadedAt: report.LoadedAt, Counts: report.Counts}
	if len(report.Errors) > 0 {
		resp.Errors = make(map[string]string, len(report.Errors))
		for source, err := range report.Errors {
			resp.Errors[source] = err.Error()
		}
	}

	status := http.StatusOK
	if len(report.Counts) == 0 && len(report.Errors) > 0 {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
