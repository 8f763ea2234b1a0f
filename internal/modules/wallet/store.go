// README: Wallet store contract; memory and postgres implementations.
package wallet

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"rideshare/internal/types"
)

var (
	ErrNotFound          = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// Store persists balances and transaction records. Debit must be a single
// atomic check-then-subtract so a balance can never go negative, and all
// operations on one user's balance must be linearizable with each other.
type Store interface {
	CreateWallet(ctx context.Context, userID types.ID) error
	Balance(ctx context.Context, userID types.ID) (decimal.Decimal, error)
	// Debit subtracts amount if the balance covers it. It returns false,
	// with no mutation, when funds are insufficient.
	Debit(ctx context.Context, userID types.ID, amount decimal.Decimal) (bool, error)
	Credit(ctx context.Context, userID types.ID, amount decimal.Decimal) error
	AppendTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, userID types.ID, limit, offset int) ([]Transaction, error)
}
