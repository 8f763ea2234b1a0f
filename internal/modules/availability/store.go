// README: Availability store contract.
package availability

import (
	"context"

	"rideshare/internal/types"
)

type Store interface {
	AddSlot(ctx context.Context, slot *Slot) error
	// RemoveSlot is idempotent; removing an absent slot is not an error.
	RemoveSlot(ctx context.Context, driverID types.ID, slotID int64) error
	ListSlots(ctx context.Context, driverID types.ID) ([]Slot, error)
}
