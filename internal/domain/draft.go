package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// DraftRef identifies a reservation either before the store has accepted it
// (Pending, keyed by a local temp id) or after (Confirmed, keyed by the
// store's id). The zero value is an invalid ref.
type DraftRef struct {
	TempID   uuid.UUID
	ServerID int
}

// Pending returns a ref for a draft the store has not confirmed yet.
func Pending(tempID uuid.UUID) DraftRef {
	return DraftRef{TempID: tempID}
}

// Confirmed returns a ref for a stored rental.
func Confirmed(serverID int) DraftRef {
	return DraftRef{ServerID: serverID}
}

func (r DraftRef) IsPending() bool {
	return r.ServerID == 0 && r.TempID != uuid.Nil
}

func (r DraftRef) IsConfirmed() bool {
	return r.ServerID != 0
}

func (r DraftRef) String() string {
	switch {
	case r.IsConfirmed():
		return fmt.Sprintf("confirmed:%d", r.ServerID)
	case r.IsPending():
		return "pending:" + r.TempID.String()
	default:
		return "invalid"
	}
}
