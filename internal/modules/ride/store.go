// README: Ride store contract; the CAS on UpdateStatus resolves accept races.
package ride

import (
	"context"
	"errors"

	"rideshare/internal/types"
)

var (
	ErrNotFound            = errors.New("ride not found")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrAlreadyTaken        = errors.New("ride already taken")
	ErrNotOwner            = errors.New("ride belongs to another rider")
	ErrNotAssignedDriver   = errors.New("ride assigned to another driver")
	ErrOutsideAvailability = errors.New("driver outside availability window")
	ErrInvalidPostcode     = errors.New("postcode must be exactly 4 digits")
	ErrBadRequest          = errors.New("bad request")
)

// Store persists rides and their transition events. UpdateStatus is an
// atomic compare-and-set keyed by ride id: the mutation applies only if the
// current status and version both match, so exactly one of N concurrent
// acceptors wins and the rest observe a failed CAS.
type Store interface {
	Create(ctx context.Context, r *Ride) error
	Get(ctx context.Context, id int64) (*Ride, error)
	UpdateStatus(ctx context.Context, id int64, from, to Status, version int, driverID *types.ID) (bool, error)
	ListByStatus(ctx context.Context, status Status) ([]*Ride, error)
	ListByRider(ctx context.Context, riderID types.ID) ([]*Ride, error)
	ListByDriver(ctx context.Context, driverID types.ID) ([]*Ride, error)
	AppendEvent(ctx context.Context, e *Event) error
}
