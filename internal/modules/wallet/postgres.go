// README: Wallet store backed by PostgreSQL.
package wallet

import (
	"context"
	"database/sql"
	"errors"

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

func (s *PostgresStore) CreateWallet(ctx context.Context, userID types.ID) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING`,
		string(userID),
	)
	return err
}

func (s *PostgresStore) Balance(ctx context.Context, userID types.ID) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRow(ctx,
		`SELECT balance::text FROM wallets WHERE user_id = $1`, string(userID),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// Debit relies on a conditional UPDATE so the check and the subtraction are
// one statement; concurrent debits serialize on the row lock.
func (s *PostgresStore) Debit(ctx context.Context, userID types.ID, amount decimal.Decimal) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE wallets
		SET balance = balance - $2
		WHERE user_id = $1 AND balance >= $2`,
		string(userID), amount.String(),
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	// Distinguish a missing wallet from an underfunded one.
	if _, err := s.Balance(ctx, userID); err != nil {
		return false, err
	}
	return false, nil
}

func (s *PostgresStore) Credit(ctx context.Context, userID types.ID, amount decimal.Decimal) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE wallets
		SET balance = balance + $2
		WHERE user_id = $1`,
		string(userID), amount.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AppendTransaction(ctx context.Context, tx *Transaction) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO wallet_transactions (user_id, kind, amount, ride_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		string(tx.UserID), string(tx.Kind), tx.Amount.String(), tx.RideID, tx.CreatedAt,
	).Scan(&tx.ID)
}

func (s *PostgresStore) ListTransactions(ctx context.Context, userID types.ID, limit, offset int) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, kind, amount::text, ride_id, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		string(userID), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		var amount string
		var rideID sql.NullInt64
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Kind, &amount, &rideID, &tx.CreatedAt); err != nil {
			return nil, err
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if rideID.Valid {
			v := rideID.Int64
			tx.RideID = &v
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
