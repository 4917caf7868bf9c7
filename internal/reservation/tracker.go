package reservation

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"golfcart-dashboard/internal/domain"
)

var ErrUnknownDraft = errors.New("draft not found")

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// PendingReservation is a validated draft waiting for the store's id.
// Stored drafts were accepted by the store without an id and wait to be
// found in its rental list.
type PendingReservation struct {
	Ref         domain.DraftRef
	Reservation Reservation
	CreatedAt   time.Time
	Stored      bool
}

// Tracker keeps optimistic drafts keyed by a local temp id until the store
// confirms or rejects them.
type Tracker struct {
	mu      sync.RWMutex
	pending map[uuid.UUID]PendingReservation
	clock   Clock
}

func NewTracker(clock Clock) *Tracker {
	if clock == nil {
		clock = RealClock{}
	}
	return &Tracker{
		pending: make(map[uuid.UUID]PendingReservation),
		clock:   clock,
	}
}

// Begin records a draft and returns its Pending ref.
func (t *Tracker) Begin(res Reservation) domain.DraftRef {
	ref := domain.Pending(uuid.New())

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[ref.TempID] = PendingReservation{Ref: ref, Reservation: res, CreatedAt: t.clock.Now()}
	return ref
}

// Confirm swaps a Pending ref for a Confirmed one carrying the store's id.
func (t *Tracker) Confirm(ref domain.DraftRef, serverID int) (domain.DraftRef, error) {
	if !ref.IsPending() || serverID <= 0 {
		return domain.DraftRef{}, ErrUnknownDraft
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[ref.TempID]; !ok {
		return domain.DraftRef{}, ErrUnknownDraft
	}
	delete(t.pending, ref.TempID)
	return domain.Confirmed(serverID), nil
}

// MarkStored flags a draft the store accepted without returning its id.
func (t *Tracker) MarkStored(ref domain.DraftRef) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.pending[ref.TempID]
	if !ok || !ref.IsPending() {
		return ErrUnknownDraft
	}
	p.Stored = true
	t.pending[ref.TempID] = p
	return nil
}

// Resolve confirms stored drafts against the store's rental list. Each rental
// confirms at most one draft; the newest matching rental wins.
func (t *Tracker) Resolve(rentals []domain.Rental) map[domain.DraftRef]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	claimed := map[int]bool{}
	resolved := map[domain.DraftRef]int{}
	for _, p := range t.sortedLocked() {
		if !p.Stored {
			continue
		}
		best := 0
		for _, r := range rentals {
			if r.ID > best && !claimed[r.ID] && p.Reservation.Matches(r) {
				best = r.ID
			}
		}
		if best == 0 {
			continue
		}
		claimed[best] = true
		resolved[p.Ref] = best
		delete(t.pending, p.Ref.TempID)
	}
	return resolved
}

// Abort drops a pending draft. Unknown refs are ignored.
func (t *Tracker) Abort(ref domain.DraftRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, ref.TempID)
}

// Pending lists drafts still awaiting confirmation, oldest first.
func (t *Tracker) Pending() []PendingReservation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortedLocked()
}

func (t *Tracker) sortedLocked() []PendingReservation {
	out := make([]PendingReservation, 0, len(t.pending))
	for _, p := range t.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
