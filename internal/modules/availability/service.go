// README: Availability index; answers whether a driver is inside a window.
package availability

import (
	"context"
	"time"

	"rideshare/internal/types"
)

const minutesPerDay = 24 * 60

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddSlot records a weekly window. Overlapping slots for the same day are
// allowed; only the start < end ordering is validated.
func (s *Service) AddSlot(ctx context.Context, driverID types.ID, day time.Weekday, startMinute, endMinute int) (*Slot, error) {
	if startMinute < 0 || endMinute > minutesPerDay || endMinute <= startMinute {
		return nil, ErrInvalidRange
	}
	slot := &Slot{DriverID: driverID, Day: day, StartMinute: startMinute, EndMinute: endMinute}
	if err := s.store.AddSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *Service) RemoveSlot(ctx context.Context, driverID types.ID, slotID int64) error {
	return s.store.RemoveSlot(ctx, driverID, slotID)
}

func (s *Service) ListSlots(ctx context.Context, driverID types.ID) ([]Slot, error) {
	return s.store.ListSlots(ctx, driverID)
}

// IsAvailable reports whether the driver can see and accept requests at the
// given instant. A driver with no slots at all is always available; that is
// the deliberate default for drivers who never configured a schedule.
func (s *Service) IsAvailable(ctx context.Context, driverID types.ID, at time.Time) (bool, error) {
	slots, err := s.store.ListSlots(ctx, driverID)
	if err != nil {
		return false, err
	}
	if len(slots) == 0 {
		return true, nil
	}
	minute := at.Hour()*60 + at.Minute()
	for _, sl := range slots {
		if sl.Day == at.Weekday() && minute >= sl.StartMinute && minute < sl.EndMinute {
			return true, nil
		}
	}
	return false, nil
}
