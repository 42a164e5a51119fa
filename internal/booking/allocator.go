package booking

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docspot/docspot-api/internal/models"
)

// ErrSlotFull is returned when a slot has reached the doctor's capacity.
var ErrSlotFull = errors.New("slot full")

// Store is the persistence surface the allocator needs.
type Store interface {
	// CountSlot returns the number of appointments already booked for the
	// exact (doctor, date, slot) key.
	CountSlot(ctx context.Context, doctorID primitive.ObjectID, date, slot string) (int64, error)
	// Insert persists a new appointment.
	Insert(ctx context.Context, apt *models.Appointment) error
}

// Allocator assigns queue token numbers and enforces per-slot capacity.
//
// The count-compare-insert sequence is serialized per (doctor, date, slot),
// so concurrent bookings for the same slot cannot both observe a count below
// the limit; the unique (doctorId, date, slot, tokenNumber) index is a
// storage-level backstop, not the primary mechanism.
type Allocator struct {
	store Store
	locks *slotLocks
}

func NewAllocator(store Store) *Allocator {
	return &Allocator{store: store, locks: newSlotLocks()}
}

// Book counts the existing appointments for the slot, rejects with
// ErrSlotFull once the doctor's limit is reached, and otherwise inserts the
// appointment with tokenNumber = count + 1 and status pending.
func (a *Allocator) Book(ctx context.Context, apt *models.Appointment, limit int) (int, error) {
	key := apt.DoctorID.Hex() + "|" + apt.Date + "|" + apt.Slot
	release := a.locks.acquire(key)
	defer release()

	count, err := a.store.CountSlot(ctx, apt.DoctorID, apt.Date, apt.Slot)
	if err != nil {
		return 0, err
	}
	if count >= int64(limit) {
		return 0, ErrSlotFull
	}

	apt.TokenNumber = int(count) + 1
	apt.Status = models.StatusPending
	if err := a.store.Insert(ctx, apt); err != nil {
		return 0, err
	}
	return apt.TokenNumber, nil
}
