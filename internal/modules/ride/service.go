// README: Ride service implements the lifecycle state machine and escrow flow.
package ride

import (
	"context"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	logrus "github.com/sirupsen/logrus"

	"rideshare/internal/types"
)

// Ledger is the slice of the wallet service the ride lifecycle needs. The
// fare leaves the rider's wallet at request time, returns on cancellation,
// and moves to the driver on completion; total money never changes here.
type Ledger interface {
	Hold(ctx context.Context, riderID types.ID, amount decimal.Decimal) error
	Refund(ctx context.Context, riderID types.ID, amount decimal.Decimal, rideID int64) error
	Payout(ctx context.Context, driverID types.ID, amount decimal.Decimal, rideID int64) error
}

// Fares computes the fixed fare for a postcode pair.
type Fares interface {
	Fare(pickup, destination string) decimal.Decimal
}

// AvailabilityChecker gates which drivers may see and accept open requests.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, driverID types.ID, at time.Time) (bool, error)
}

// Directory resolves display names for ride history counterparties.
type Directory interface {
	Name(ctx context.Context, id types.ID) (string, error)
}

type Service struct {
	store        Store
	ledger       Ledger
	fares        Fares
	availability AvailabilityChecker
	directory    Directory
	now          func() time.Time
}

func NewService(store Store, ledger Ledger, fares Fares, availability AvailabilityChecker, directory Directory) *Service {
	return &Service{
		store:        store,
		ledger:       ledger,
		fares:        fares,
		availability: availability,
		directory:    directory,
		now:          time.Now,
	}
}

var postcodePattern = regexp.MustCompile(`^\d{4}$`)

type RequestCommand struct {
	RiderID             types.ID
	PickupPostcode      string
	DestinationPostcode string
}

// Request validates the postcodes, escrows the fare and creates the ride.
// The debit happens first: if funds are insufficient no ride row ever
// exists, and if the create itself fails the hold is refunded.
func (s *Service) Request(ctx context.Context, cmd RequestCommand) (*Ride, error) {
	if cmd.RiderID == "" {
		return nil, ErrBadRequest
	}
	if !postcodePattern.MatchString(cmd.PickupPostcode) || !postcodePattern.MatchString(cmd.DestinationPostcode) {
		return nil, ErrInvalidPostcode
	}

	fare := s.fares.Fare(cmd.PickupPostcode, cmd.DestinationPostcode)
	if err := s.ledger.Hold(ctx, cmd.RiderID, fare); err != nil {
		return nil, err
	}

	r := &Ride{
		RiderID:             cmd.RiderID,
		Status:              StatusRequested,
		StatusVersion:       0,
		PickupPostcode:      cmd.PickupPostcode,
		DestinationPostcode: cmd.DestinationPostcode,
		Fare:                fare,
		RequestedAt:         s.now(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		if refundErr := s.ledger.Refund(ctx, cmd.RiderID, fare, 0); refundErr != nil {
			logrus.WithFields(logrus.Fields{
				"rider_id": cmd.RiderID,
				"error":    refundErr.Error(),
			}).Error("refund after failed ride create")
		}
		return nil, err
	}

	s.appendEvent(ctx, r.ID, StatusNone, StatusRequested, "rider", &cmd.RiderID)
	logrus.WithFields(logrus.Fields{
		"ride_id":  r.ID,
		"rider_id": cmd.RiderID,
		"fare":     fare.String(),
	}).Info("ride requested")
	return r, nil
}

// PreviewFare quotes a trip without creating anything.
func (s *Service) PreviewFare(pickup, destination string) (decimal.Decimal, error) {
	if !postcodePattern.MatchString(pickup) || !postcodePattern.MatchString(destination) {
		return decimal.Zero, ErrInvalidPostcode
	}
	return s.fares.Fare(pickup, destination), nil
}

// Cancel releases the escrow back to the rider. Only the requesting rider
// may cancel, and only while the ride is still REQUESTED.
func (s *Service) Cancel(ctx context.Context, rideID int64, riderID types.ID) error {
	r, err := s.store.Get(ctx, rideID)
	if err != nil {
		return err
	}
	if r.RiderID != riderID {
		return ErrNotOwner
	}
	if !CanTransition(r.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, r.ID, r.Status, StatusCancelled, r.StatusVersion, nil)
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race to an acceptor; the ride is no longer cancellable.
		return ErrInvalidState
	}
	if err := s.ledger.Refund(ctx, riderID, r.Fare, r.ID); err != nil {
		return err
	}
	s.appendEvent(ctx, r.ID, StatusRequested, StatusCancelled, "rider", &riderID)
	logrus.WithFields(logrus.Fields{"ride_id": r.ID, "rider_id": riderID}).Info("ride cancelled")
	return nil
}

// Accept assigns the ride to a driver via compare-and-set. Exactly one of N
// concurrent acceptors wins; the rest observe ErrAlreadyTaken. A driver
// outside their availability window cannot accept at all.
func (s *Service) Accept(ctx context.Context, rideID int64, driverID types.ID) error {
	r, err := s.store.Get(ctx, rideID)
	if err != nil {
		return err
	}
	if r.Status != StatusRequested {
		return ErrAlreadyTaken
	}
	inside, err := s.availability.IsAvailable(ctx, driverID, s.now())
	if err != nil {
		return err
	}
	if !inside {
		return ErrOutsideAvailability
	}
	ok, err := s.store.UpdateStatus(ctx, r.ID, StatusRequested, StatusAccepted, r.StatusVersion, &driverID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyTaken
	}
	s.appendEvent(ctx, r.ID, StatusRequested, StatusAccepted, "driver", &driverID)
	logrus.WithFields(logrus.Fields{"ride_id": r.ID, "driver_id": driverID}).Info("ride accepted")
	return nil
}

// Begin marks the trip underway. Only the assigned driver may begin.
func (s *Service) Begin(ctx context.Context, rideID int64, driverID types.ID) error {
	r, err := s.store.Get(ctx, rideID)
	if err != nil {
		return err
	}
	if r.DriverID == nil || *r.DriverID != driverID {
		return ErrNotAssignedDriver
	}
	if !CanTransition(r.Status, StatusEnroute) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, r.ID, StatusAccepted, StatusEnroute, r.StatusVersion, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}
	s.appendEvent(ctx, r.ID, StatusAccepted, StatusEnroute, "driver", &driverID)
	return nil
}

// Complete finishes the trip and releases the escrowed fare to the driver.
// The CAS commits before the payout so a duplicate complete call can never
// pay twice.
func (s *Service) Complete(ctx context.Context, rideID int64, driverID types.ID) error {
	r, err := s.store.Get(ctx, rideID)
	if err != nil {
		return err
	}
	if r.DriverID == nil || *r.DriverID != driverID {
		return ErrNotAssignedDriver
	}
	if !CanTransition(r.Status, StatusCompleted) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, r.ID, StatusEnroute, StatusCompleted, r.StatusVersion, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}
	if err := s.ledger.Payout(ctx, driverID, r.Fare, r.ID); err != nil {
		return err
	}
	s.appendEvent(ctx, r.ID, StatusEnroute, StatusCompleted, "driver", &driverID)
	logrus.WithFields(logrus.Fields{
		"ride_id":   r.ID,
		"driver_id": driverID,
		"fare":      r.Fare.String(),
	}).Info("ride completed")
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Ride, error) {
	return s.store.Get(ctx, id)
}

// HistoryEntry pairs a ride with the counterparty's display name: the driver
// for a rider's view, the rider for a driver's view.
type HistoryEntry struct {
	Ride         *Ride
	Counterparty string
}

// RiderHistory lists a rider's rides, newest first.
func (s *Service) RiderHistory(ctx context.Context, riderID types.ID) ([]HistoryEntry, error) {
	rides, err := s.store.ListByRider(ctx, riderID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(rides))
	for _, r := range rides {
		entry := HistoryEntry{Ride: r}
		if r.DriverID != nil {
			if name, err := s.directory.Name(ctx, *r.DriverID); err == nil {
				entry.Counterparty = name
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// DriverHistory lists a driver's rides, newest first.
func (s *Service) DriverHistory(ctx context.Context, driverID types.ID) ([]HistoryEntry, error) {
	rides, err := s.store.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(rides))
	for _, r := range rides {
		entry := HistoryEntry{Ride: r}
		if name, err := s.directory.Name(ctx, r.RiderID); err == nil {
			entry.Counterparty = name
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Service) appendEvent(ctx context.Context, rideID int64, from, to Status, actorType string, actorID *types.ID) {
	err := s.store.AppendEvent(ctx, &Event{
		RideID:     rideID,
		FromStatus: from,
		ToStatus:   to,
		ActorType:  actorType,
		ActorID:    actorID,
		CreatedAt:  s.now(),
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{"ride_id": rideID, "error": err.Error()}).Error("append ride event")
	}
}
