package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/ics"
	"golfcart-dashboard/internal/service"
)

type monthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

type monthResponse struct {
	calendar.MonthView
	Weeks    [][7]int `json:"weeks"`
	Previous monthRef `json:"previous"`
	Next     monthRef `json:"next"`
}

type dayResponse struct {
	Year    int              `json:"year"`
	Month   time.Month       `json:"month"`
	Day     int              `json:"day"`
	Entries []calendar.Entry `json:"entries"`
}

type dashboardResponse struct {
	Summary service.Summary  `json:"summary"`
	Rows    []calendar.Entry `json:"rows"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// yearMonth reads the {year}/{month} path variables. The route patterns
// only admit digits, so Atoi can fail only on overflow.
func yearMonth(r *http.Request) (int, time.Month, error) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year %q", calendar.ErrInvalidMonth, vars["year"])
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", calendar.ErrInvalidMonth, vars["month"])
	}
	return year, time.Month(month), nil
}

func (h *Handler) monthView(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	view, err := h.svc.MonthView(year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	grid, err := calendar.BuildMonthGrid(year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	py, pm := calendar.PrevMonth(year, month)
	ny, nm := calendar.NextMonth(year, month)
	writeJSON(w, http.StatusOK, monthResponse{
		MonthView: view,
		Weeks:     grid.Weeks(),
		Previous:  monthRef{Year: py, Month: pm},
		Next:      monthRef{Year: ny, Month: nm},
	})
}

func (h *Handler) dayView(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %q", calendar.ErrInvalidDay, mux.Vars(r)["day"]))
		return
	}
	entries, err := h.svc.DayView(year, month, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dayResponse{Year: year, Month: month, Day: day, Entries: entries})
}

func (h *Handler) exportMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	view, err := h.svc.MonthView(year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	body, err := ics.ExportMonth(view, h.opts.Now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rentas-%04d-%02d.ics"`, year, int(month)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dashboardResponse{
		Summary: h.svc.Summary(),
		Rows:    h.svc.Rows(),
	})
}

func (h *Handler) remaining(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Remaining())
}
