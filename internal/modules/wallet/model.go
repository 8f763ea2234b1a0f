// README: Wallet balance and transaction record definitions.
package wallet

import (
	"time"

	"github.com/shopspring/decimal"

	"rideshare/internal/types"
)

// Kind classifies a money move.
type Kind string

const (
	KindTopUp        Kind = "top_up"
	KindEscrowHold   Kind = "escrow_hold"
	KindEscrowRefund Kind = "escrow_refund"
	KindPayout       Kind = "payout"
)

// Transaction is an append-only record of a single balance change.
// Amount is always positive; Kind says which direction the money moved.
type Transaction struct {
	ID        int64
	UserID    types.ID
	Kind      Kind
	Amount    decimal.Decimal
	RideID    *int64
	CreatedAt time.Time
}
