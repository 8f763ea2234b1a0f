// README: Availability store backed by PostgreSQL.
package availability

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rideshare/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AddSlot(ctx context.Context, slot *Slot) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO availability_slots (driver_id, day_of_week, start_minute, end_minute)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		string(slot.DriverID), int(slot.Day), slot.StartMinute, slot.EndMinute,
	).Scan(&slot.ID)
}

func (s *PostgresStore) RemoveSlot(ctx context.Context, driverID types.ID, slotID int64) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM availability_slots WHERE driver_id = $1 AND id = $2`,
		string(driverID), slotID,
	)
	return err
}

func (s *PostgresStore) ListSlots(ctx context.Context, driverID types.ID) ([]Slot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, driver_id, day_of_week, start_minute, end_minute
		FROM availability_slots
		WHERE driver_id = $1`,
		string(driverID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var sl Slot
		var day int
		if err := rows.Scan(&sl.ID, &sl.DriverID, &day, &sl.StartMinute, &sl.EndMinute); err != nil {
			return nil, err
		}
		sl.Day = time.Weekday(day)
		out = append(out, sl)
	}
	return out, rows.Err()
}
