package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golfcart-dashboard/internal/calendar"
	"golfcart-dashboard/internal/domain"
	"golfcart-dashboard/internal/logger"
	"golfcart-dashboard/internal/repository"
	"golfcart-dashboard/internal/reservation"
)

const (
	sourceRentals = "rentals"
	sourceCarts   = "carts"
	sourceClients = "clients"
	sourceVendors = "vendors"
)

// Options configure the dashboard service.
type Options struct {
	Location       *time.Location
	Grace          time.Duration
	StartMode      string
	RejectOverlaps bool
	TickInterval   time.Duration
	Now            func() time.Time
}

// LoadReport records the outcome of each independent fetch in a refresh.
type LoadReport struct {
	LoadedAt time.Time
	Counts   map[string]int
	Errors   map[string]error
}

// Err joins the per-source errors, or returns nil when every fetch succeeded.
func (r LoadReport) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	keys := make([]string, 0, len(r.Errors))
	for k := range r.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		errs = append(errs, fmt.Errorf("%s: %w", k, r.Errors[k]))
	}
	return errors.Join(errs...)
}

type dashboardService struct {
	store     repository.Store
	opts      Options
	tracker   *reservation.Tracker
	countdown *calendar.Countdown

	// createMu serializes the overlap check with the store write.
	createMu sync.Mutex

	mu       sync.RWMutex
	rentals  []domain.Rental
	carts    []domain.Cart
	clients  []domain.Client
	vendors  []domain.Vendor
	dir      calendar.Directory
	loadedAt time.Time
}

func NewDashboardService(store repository.Store, opts Options) DashboardService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.StartMode == "" {
		opts.StartMode = reservation.StartSelectedDay
	}
	return &dashboardService{
		store:     store,
		opts:      opts,
		tracker:   reservation.NewTracker(clockFunc(opts.Now)),
		countdown: calendar.NewCountdown(opts.TickInterval, opts.Now),
		dir:       calendar.NewDirectory(nil, nil, nil),
	}
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

// Refresh fetches the four collections in parallel. A failing source keeps
// its previous contents and never blocks or clears the others.
func (s *dashboardService) Refresh(ctx context.Context) LoadReport {
	logger.EnterMethod("DashboardService.Refresh")

	var (
		wg      sync.WaitGroup
		rentals []domain.Rental
		carts   []domain.Cart
		clients []domain.Client
		vendors []domain.Vendor
		errs    [4]error
	)
	wg.Add(4)
	go func() { defer wg.Done(); rentals, errs[0] = s.store.Rentals.List(ctx) }()
	go func() { defer wg.Done(); carts, errs[1] = s.store.Carts.List(ctx) }()
	go func() { defer wg.Done(); clients, errs[2] = s.store.Clients.List(ctx) }()
	go func() { defer wg.Done(); vendors, errs[3] = s.store.Vendors.List(ctx) }()
	wg.Wait()

	report := LoadReport{
		LoadedAt: s.opts.Now(),
		Counts:   map[string]int{},
		Errors:   map[string]error{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if keep(report, sourceRentals, errs[0], len(rentals)) {
		s.rentals = rentals
		s.resolveStored()
	}
	if keep(report, sourceCarts, errs[1], len(carts)) {
		s.carts = carts
	}
	if keep(report, sourceClients, errs[2], len(clients)) {
		s.clients = clients
	}
	if keep(report, sourceVendors, errs[3], len(vendors)) {
		s.vendors = vendors
	}
	s.dir = calendar.NewDirectory(s.clients, s.carts, s.vendors)
	s.loadedAt = report.LoadedAt
	s.countdown.Load(s.rentals)

	logger.ExitMethod("DashboardService.Refresh", "rentals", len(s.rentals), "carts", len(s.carts), "failed_sources", len(report.Errors))
	return report
}

func keep(report LoadReport, source string, err error, n int) bool {
	if err != nil {
		logger.Error("Failed to load dashboard source", "source", source, "error", err)
		report.Errors[source] = err
		return false
	}
	report.Counts[source] = n
	return true
}

func (s *dashboardService) MonthView(year int, month time.Month) (calendar.MonthView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calendar.BuildMonthView(year, month, s.rentals, s.dir, s.opts.Location, s.opts.Now())
}

func (s *dashboardService) DayView(year int, month time.Month, day int) ([]calendar.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calendar.BuildDayView(year, month, day, s.rentals, s.dir, s.opts.Location, s.opts.Now())
}

// Rows returns every rental as a table row, latest start first.
func (s *dashboardService) Rows() []calendar.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.opts.Now()
	rows := make([]calendar.Entry, 0, len(s.rentals))
	for _, r := range s.rentals {
		rows = append(rows, calendar.NewEntry(r, s.dir, s.opts.Location, now))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Start, rows[j].Start
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return rows
}

func (s *dashboardService) Remaining() map[int]string {
	return s.countdown.Snapshot()
}

func (s *dashboardService) SubscribeRemaining() (<-chan map[int]string, func()) {
	return s.countdown.Subscribe()
}

// Close stops the countdown and ends every live subscription.
func (s *dashboardService) Close() {
	s.countdown.Close()
}

func (s *dashboardService) PendingReservations() []reservation.PendingReservation {
	return s.tracker.Pending()
}

// CreateReservation validates a draft, records it as pending, stores it and
// confirms it with the store's id. A store failure aborts the draft.
func (s *dashboardService) CreateReservation(ctx context.Context, draft reservation.Draft) (*domain.Rental, error) {
	logger.EnterMethod("DashboardService.CreateReservation", "cart_id", draft.CartID)

	res, err := reservation.ValidateDraft(draft, reservation.Options{
		Grace:     s.opts.Grace,
		StartMode: s.opts.StartMode,
		Location:  s.opts.Location,
	}, s.opts.Now())
	if err != nil {
		logger.ExitMethodWithError("DashboardService.CreateReservation", err)
		return nil, err
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	s.mu.RLock()
	err = s.checkReferences(res)
	if err == nil && s.opts.RejectOverlaps {
		err = reservation.CheckOverlap(res, s.bookedRentals())
	}
	s.mu.RUnlock()
	if err != nil {
		logger.ExitMethodWithError("DashboardService.CreateReservation", err)
		return nil, err
	}

	ref := s.tracker.Begin(res)
	rental := res.Rental()
	if err := s.store.Rentals.Create(ctx, &rental); err != nil {
		s.tracker.Abort(ref)
		logger.ExitMethodWithError("DashboardService.CreateReservation", err, "draft", ref.String())
		return nil, err
	}
	if rental.ID == 0 {
		return s.awaitStoredRental(ctx, ref, rental)
	}
	confirmed, err := s.tracker.Confirm(ref, rental.ID)
	if err != nil {
		logger.ExitMethodWithError("DashboardService.CreateReservation", err, "draft", ref.String())
		return nil, err
	}

	s.mu.Lock()
	s.rentals = append(append([]domain.Rental(nil), s.rentals...), rental)
	s.countdown.Load(s.rentals)
	s.mu.Unlock()

	logger.ExitMethod("DashboardService.CreateReservation", "rental", confirmed.String())
	return &rental, nil
}

// awaitStoredRental handles a rental the store accepted without returning its
// id. The rental list is fetched again to find it. Until it shows up the draft
// stays pending and the next Refresh retries the lookup. The returned rental
// has ID 0 while unconfirmed.
func (s *dashboardService) awaitStoredRental(ctx context.Context, ref domain.DraftRef, rental domain.Rental) (*domain.Rental, error) {
	if err := s.tracker.MarkStored(ref); err != nil {
		logger.ExitMethodWithError("DashboardService.CreateReservation", err, "draft", ref.String())
		return nil, err
	}

	rentals, err := s.store.Rentals.List(ctx)
	if err != nil {
		logger.Warn("Stored rental will be confirmed on the next refresh", "draft", ref.String(), "error", err)
		return &rental, nil
	}

	s.mu.Lock()
	s.rentals = rentals
	resolved := s.resolveStored()
	s.countdown.Load(s.rentals)
	s.mu.Unlock()

	if id, ok := resolved[ref]; ok {
		rental.ID = id
		logger.ExitMethod("DashboardService.CreateReservation", "rental", domain.Confirmed(id).String())
		return &rental, nil
	}
	logger.Warn("Stored rental not found in rental list yet", "draft", ref.String())
	return &rental, nil
}

// bookedRentals is the rental list plus drafts the store accepted but that
// have not shown up in it yet. Callers hold s.mu.
func (s *dashboardService) bookedRentals() []domain.Rental {
	booked := append([]domain.Rental(nil), s.rentals...)
	for _, p := range s.tracker.Pending() {
		if p.Stored {
			booked = append(booked, p.Reservation.Rental())
		}
	}
	return booked
}

// resolveStored confirms drafts stored without an id that now appear in the
// rental list. Callers hold s.mu.
func (s *dashboardService) resolveStored() map[domain.DraftRef]int {
	resolved := s.tracker.Resolve(s.rentals)
	for ref, id := range resolved {
		logger.Info("Stored draft confirmed", "draft", ref.String(), "rental_id", id)
	}
	return resolved
}

// checkReferences rejects ids missing from a loaded directory. An empty
// directory (fetch failed or not loaded yet) is not checked.
func (s *dashboardService) checkReferences(res reservation.Reservation) error {
	if len(s.dir.Clients) > 0 {
		if _, ok := s.dir.Clients[res.ClientID]; !ok {
			return domain.NewValidationError("client", fmt.Sprintf("client %d does not exist", res.ClientID))
		}
	}
	if len(s.dir.Carts) > 0 {
		if _, ok := s.dir.Carts[res.CartID]; !ok {
			return domain.NewValidationError("cart", fmt.Sprintf("cart %d does not exist", res.CartID))
		}
	}
	if len(s.dir.Vendors) > 0 {
		if _, ok := s.dir.Vendors[res.VendorID]; !ok {
			return domain.NewValidationError("vendor", fmt.Sprintf("vendor %d does not exist", res.VendorID))
		}
	}
	return nil
}

func (s *dashboardService) DeleteRental(ctx context.Context, id int) error {
	if err := s.store.Rentals.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete rental", "rental_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.Rental, 0, len(s.rentals))
	for _, r := range s.rentals {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rentals = kept
	s.countdown.Load(s.rentals)
	return nil
}

// SearchCarts matches query case-insensitively against model or brand.
func (s *dashboardService) SearchCarts(query string, availableOnly bool) []domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.Cart{}
	for _, c := range s.carts {
		if availableOnly && c.InRental {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Model), q) && !strings.Contains(strings.ToLower(c.Brand), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *dashboardService) UpdateCart(ctx context.Context, cart *domain.Cart) error {
	if strings.TrimSpace(cart.Model) == "" {
		return domain.NewValidationError("model", "is required")
	}
	if strings.TrimSpace(cart.Brand) == "" {
		return domain.NewValidationError("brand", "is required")
	}
	if cart.PricePerHour < 0 {
		return domain.NewValidationError("pricePerHour", "must not be negative")
	}
	if err := s.store.Carts.Update(ctx, cart); err != nil {
		logger.Error("Failed to update cart", "cart_id", cart.ID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	carts := append([]domain.Cart(nil), s.carts...)
	for i := range carts {
		if carts[i].ID == cart.ID {
			carts[i] = *cart
		}
	}
	s.carts = carts
	s.dir = calendar.NewDirectory(s.clients, s.carts, s.vendors)
	return nil
}

func (s *dashboardService) DeleteCart(ctx context.Context, id int) error {
	if err := s.store.Carts.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete cart", "cart_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]domain.Cart, 0, len(s.carts))
	for _, c := range s.carts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.carts = kept
	s.dir = calendar.NewDirectory(s.clients, s.carts, s.vendors)
	return nil
}

func (s *dashboardService) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Client{}, s.clients...)
}

func (s *dashboardService) CreateClient(ctx context.Context, client *domain.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if client.Email != "" && !strings.Contains(client.Email, "@") {
		return domain.NewValidationError("email", fmt.Sprintf("%q is not an email address", client.Email))
	}
	if err := s.store.Clients.Create(ctx, client); err != nil {
		logger.Error("Failed to create client", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(append([]domain.Client(nil), s.clients...), *client)
	s.dir = calendar.NewDirectory(s.clients, s.carts, s.vendors)
	return nil
}

func (s *dashboardService) Vendors() []domain.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Vendor{}, s.vendors...)
}

// AvailableCarts lists carts that are not currently out on a rental.
func (s *dashboardService) AvailableCarts() []domain.Cart {
	return s.SearchCarts("", true)
}
