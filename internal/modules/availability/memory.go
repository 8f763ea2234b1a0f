// README: In-memory availability store.
package availability

import (
	"context"
	"sync"

	"rideshare/internal/types"
)

type MemoryStore struct {
	mu     sync.Mutex
	slots  map[types.ID][]Slot
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[types.ID][]Slot), nextID: 1}
}

func (s *MemoryStore) AddSlot(_ context.Context, slot *Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot.ID = s.nextID
	s.nextID++
	s.slots[slot.DriverID] = append(s.slots[slot.DriverID], *slot)
	return nil
}

func (s *MemoryStore) RemoveSlot(_ context.Context, driverID types.ID, slotID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots := s.slots[driverID]
	for i, sl := range slots {
		if sl.ID == slotID {
			s.slots[driverID] = append(slots[:i], slots[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) ListSlots(_ context.Context, driverID types.ID) ([]Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Slot, len(s.slots[driverID]))
	copy(out, s.slots[driverID])
	return out, nil
}
