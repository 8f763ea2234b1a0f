// README: In-memory ride store; CAS semantics under one mutex.
package ride

import (
	"context"
	"sort"
	"sync"
	"time"

	"rideshare/internal/types"
)

type MemoryStore struct {
	mu         sync.Mutex
	rides      map[int64]*Ride
	events     []Event
	nextID     int64
	nextEvents int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rides: make(map[int64]*Ride), nextID: 1, nextEvents: 1}
}

func (s *MemoryStore) Create(_ context.Context, r *Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	cp := *r
	s.rides[r.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (*Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rides[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// UpdateStatus applies the transition only if status and version still match
// what the caller read. Timestamps are stamped per target status, mirroring
// the SQL store.
func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, from, to Status, version int, driverID *types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rides[id]
	if !ok {
		return false, ErrNotFound
	}
	if r.Status != from || r.StatusVersion != version {
		return false, nil
	}
	r.Status = to
	r.StatusVersion++
	if driverID != nil {
		d := *driverID
		r.DriverID = &d
	}
	now := time.Now()
	switch to {
	case StatusAccepted:
		r.AcceptedAt = &now
	case StatusEnroute:
		r.StartedAt = &now
	case StatusCompleted:
		r.CompletedAt = &now
	}
	return true, nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status Status) ([]*Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Ride
	for _, r := range s.rides {
		if r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByRequestedDesc(out)
	return out, nil
}

func (s *MemoryStore) ListByRider(_ context.Context, riderID types.ID) ([]*Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Ride
	for _, r := range s.rides {
		if r.RiderID == riderID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByRequestedDesc(out)
	return out, nil
}

func (s *MemoryStore) ListByDriver(_ context.Context, driverID types.ID) ([]*Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Ride
	for _, r := range s.rides {
		if r.DriverID != nil && *r.DriverID == driverID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByRequestedDesc(out)
	return out, nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextEvents
	s.nextEvents++
	s.events = append(s.events, *e)
	return nil
}

func sortByRequestedDesc(rides []*Ride) {
	sort.Slice(rides, func(i, j int) bool {
		if rides[i].RequestedAt.Equal(rides[j].RequestedAt) {
			return rides[i].ID > rides[j].ID
		}
		return rides[i].RequestedAt.After(rides[j].RequestedAt)
	})
}
