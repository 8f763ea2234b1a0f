// README: Dispatch matcher; filters open requests by driver availability.
package ride

import (
	"context"
	"time"

	"rideshare/internal/types"
)

// Matcher answers what a polling driver should see. Outside the driver's
// availability window it returns an empty list, not a disabled view: the
// driver sees nothing at all.
type Matcher struct {
	store        Store
	availability AvailabilityChecker
}

func NewMatcher(store Store, availability AvailabilityChecker) *Matcher {
	return &Matcher{store: store, availability: availability}
}

// VisibleRequests returns all REQUESTED rides visible to the driver at the
// given instant, newest first, plus whether the driver is inside a window.
func (m *Matcher) VisibleRequests(ctx context.Context, driverID types.ID, now time.Time) ([]*Ride, bool, error) {
	inside, err := m.availability.IsAvailable(ctx, driverID, now)
	if err != nil {
		return nil, false, err
	}
	if !inside {
		return []*Ride{}, false, nil
	}
	rides, err := m.store.ListByStatus(ctx, StatusRequested)
	if err != nil {
		return nil, false, err
	}
	if rides == nil {
		rides = []*Ride{}
	}
	return rides, true, nil
}
