package service

import (
	"math"
	"sort"
	"time"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/domain"
)

// CartUsage counts how many rentals reference a cart.
type CartUsage struct {
	CartID  int    `json:"cartId"`
	Model   string `json:"model"`
	Brand   string `json:"brand"`
	Rentals int    `json:"rentals"`
}

// Summary backs the dashboard cards.
type Summary struct {
	TotalCarts      int                          `json:"totalCarts"`
	FreeCarts       int                          `json:"freeCarts"`
	OccupiedCarts   int                          `json:"occupiedCarts"`
	FreePercent     float64                      `json:"freePercent"`
	OccupiedPercent float64                      `json:"occupiedPercent"`
	Clients         int                          `json:"clients"`
	Vendors         int                          `json:"vendors"`
	Rentals         int                          `json:"rentals"`
	ByStatus        map[domain.DisplayStatus]int `json:"byStatus"`
	Popularity      []CartUsage                  `json:"popularity"`
	LoadedAt        *time.Time                   `json:"loadedAt,omitempty"`
}

func (s *dashboardService) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return summarize(s.carts, s.clients, s.vendors, s.rentals, s.loadedAt)
}

func summarize(carts []domain.Cart, clients []domain.Client, vendors []domain.Vendor, rentals []domain.Rental, loadedAt time.Time) Summary {
	sum := Summary{
		TotalCarts: len(carts),
		Clients:    len(clients),
		Vendors:    len(vendors),
		Rentals:    len(rentals),
		ByStatus:   map[domain.DisplayStatus]int{},
		Popularity: []CartUsage{},
	}
	if !loadedAt.IsZero() {
		sum.LoadedAt = &loadedAt
	}

	for _, c := range carts {
		if c.InRental {
			sum.OccupiedCarts++
		} else {
			sum.FreeCarts++
		}
	}
	if sum.TotalCarts > 0 {
		sum.FreePercent = percent(sum.FreeCarts, sum.TotalCarts)
		sum.OccupiedPercent = percent(sum.OccupiedCarts, sum.TotalCarts)
	}

	counts := map[int]int{}
	for _, r := range rentals {
		sum.ByStatus[calendar.Classify(r.Status).Tag]++
		counts[r.CartID]++
	}

	known := map[int]bool{}
	for _, c := range carts {
		known[c.ID] = true
		sum.Popularity = append(sum.Popularity, CartUsage{CartID: c.ID, Model: c.Model, Brand: c.Brand, Rentals: counts[c.ID]})
	}
	for id, n := range counts {
		if !known[id] {
			sum.Popularity = append(sum.Popularity, CartUsage{CartID: id, Model: calendar.UnknownCart, Rentals: n})
		}
	}
	sort.SliceStable(sum.Popularity, func(i, j int) bool {
		a, b := sum.Popularity[i], sum.Popularity[j]
		if a.Rentals != b.Rentals {
			return a.Rentals > b.Rentals
		}
		return a.CartID < b.CartID
	})
	return sum
}

// percent rounds to one decimal place.
func percent(part, whole int) float64 {
	return math.Round(float64(part)*1000/float64(whole)) / 10
}
