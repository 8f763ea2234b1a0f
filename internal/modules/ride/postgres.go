// README: Ride store backed by PostgreSQL.
package ride

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"rideshare/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, r *Ride) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO rides (
			rider_id, driver_id, status, status_version,
			pickup_postcode, destination_postcode, fare, requested_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		string(r.RiderID),
		toStringPtr(r.DriverID),
		string(r.Status),
		r.StatusVersion,
		r.PickupPostcode,
		r.DestinationPostcode,
		r.Fare.String(),
		r.RequestedAt,
	).Scan(&r.ID)
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*Ride, error) {
	row := s.db.QueryRow(ctx, selectRide+` WHERE id = $1`, id)
	r, err := scanRide(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// UpdateStatus is the accept-race arbiter: the WHERE clause on status and
// status_version makes the transition a compare-and-set.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, from, to Status, version int, driverID *types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE rides
		SET status = $1,
		    status_version = status_version + 1,
		    driver_id = COALESCE($2, driver_id),
		    accepted_at = CASE WHEN $1 = 'ACCEPTED' THEN NOW() ELSE accepted_at END,
		    started_at = CASE WHEN $1 = 'ENROUTE' THEN NOW() ELSE started_at END,
		    completed_at = CASE WHEN $1 = 'COMPLETED' THEN NOW() ELSE completed_at END
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		toStringPtr(driverID),
		id,
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status Status) ([]*Ride, error) {
	return s.list(ctx, selectRide+` WHERE status = $1 ORDER BY requested_at DESC, id DESC`, string(status))
}

func (s *PostgresStore) ListByRider(ctx context.Context, riderID types.ID) ([]*Ride, error) {
	return s.list(ctx, selectRide+` WHERE rider_id = $1 ORDER BY requested_at DESC, id DESC`, string(riderID))
}

func (s *PostgresStore) ListByDriver(ctx context.Context, driverID types.ID) ([]*Ride, error) {
	return s.list(ctx, selectRide+` WHERE driver_id = $1 ORDER BY requested_at DESC, id DESC`, string(driverID))
}

func (s *PostgresStore) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ride_events (ride_id, from_status, to_status, actor_type, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.RideID,
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

const selectRide = `
	SELECT id, rider_id, driver_id, status, status_version,
	       pickup_postcode, destination_postcode, fare::text,
	       requested_at, accepted_at, started_at, completed_at
	FROM rides`

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*Ride, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Ride
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRide(row pgx.Row) (*Ride, error) {
	var r Ride
	var driverID sql.NullString
	var fare string
	var acceptedAt, startedAt, completedAt sql.NullTime

	err := row.Scan(
		&r.ID, &r.RiderID, &driverID, &r.Status, &r.StatusVersion,
		&r.PickupPostcode, &r.DestinationPostcode, &fare,
		&r.RequestedAt, &acceptedAt, &startedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		d := types.ID(driverID.String)
		r.DriverID = &d
	}
	if r.Fare, err = decimal.NewFromString(fare); err != nil {
		return nil, err
	}
	r.AcceptedAt = toTimePtr(acceptedAt)
	r.StartedAt = toTimePtr(startedAt)
	r.CompletedAt = toTimePtr(completedAt)
	return &r, nil
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
