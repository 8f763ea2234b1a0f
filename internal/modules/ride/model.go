// README: Ride aggregate, status definitions and the transition table.
package ride

import (
	"time"

	"github.com/shopspring/decimal"

	"rideshare/internal/types"
)

type Status string

const (
	StatusNone      Status = "NONE"
	StatusRequested Status = "REQUESTED"
	StatusAccepted  Status = "ACCEPTED"
	StatusEnroute   Status = "ENROUTE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Ride ids are assigned monotonically by the store. The fare is fixed at
// request time and never recomputed. DriverID is set exactly when the status
// is ACCEPTED, ENROUTE or COMPLETED. CompletedAt is also the payment
// timestamp; escrow is released to the driver in the same transition.
type Ride struct {
	ID                  int64
	RiderID             types.ID
	DriverID            *types.ID
	Status              Status
	StatusVersion       int
	PickupPostcode      string
	DestinationPostcode string
	Fare                decimal.Decimal
	RequestedAt         time.Time
	AcceptedAt          *time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
}

// Event records one successful status transition for audit.
type Event struct {
	ID         int64
	RideID     int64
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the ride state flow as code. COMPLETED and
// CANCELLED are terminal; cancellation is only possible before acceptance.
var AllowedTransitions = map[Status][]Status{
	StatusRequested: {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusEnroute},
	StatusEnroute:   {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Active reports whether the ride is in progress from the rider's point of
// view; ACCEPTED and ENROUTE are one bucket, not two.
func (r *Ride) Active() bool {
	return r.Status == StatusAccepted || r.Status == StatusEnroute
}
