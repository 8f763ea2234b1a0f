// README: Wallet ledger service; every balance move goes through here.
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	logrus "github.com/sirupsen/logrus"

	"rideshare/internal/cache"
	"rideshare/internal/types"
)

const balanceCacheTTL = 60 * time.Second

// Service is the ledger. Ride escrow moves (hold, refund, payout) and
// caller-facing top-ups all run through it so the transaction log stays
// complete and the balance cache stays coherent.
type Service struct {
	store Store
	cache *cache.Client
}

func NewService(store Store, cache *cache.Client) *Service {
	return &Service{store: store, cache: cache}
}

func (s *Service) CreateWallet(ctx context.Context, userID types.ID) error {
	return s.store.CreateWallet(ctx, userID)
}

// Balance reads through the cache; a miss or cache outage falls back to
// the store.
func (s *Service) Balance(ctx context.Context, userID types.ID) (decimal.Decimal, error) {
	key := balanceKey(userID)
	if raw, _ := s.cache.Get(ctx, key); raw != nil {
		if bal, err := decimal.NewFromString(string(raw)); err == nil {
			return bal, nil
		}
	}
	bal, err := s.store.Balance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	_ = s.cache.Set(ctx, key, []byte(bal.String()), balanceCacheTTL)
	return bal, nil
}

// TopUp credits the user's own wallet. Amount must be strictly positive.
func (s *Service) TopUp(ctx context.Context, userID types.ID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := s.credit(ctx, userID, amount, KindTopUp, nil); err != nil {
		return decimal.Zero, err
	}
	return s.store.Balance(ctx, userID)
}

// Hold debits the rider's wallet to escrow a fare at request time. The ride
// id is unknown until the ride row exists, so hold records carry none.
func (s *Service) Hold(ctx context.Context, riderID types.ID, amount decimal.Decimal) error {
	ok, err := s.store.Debit(ctx, riderID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientFunds
	}
	s.record(ctx, riderID, KindEscrowHold, amount, nil)
	return nil
}

// Refund returns an escrowed fare to the rider. A non-positive ride id means
// the hold is being unwound before any ride row existed.
func (s *Service) Refund(ctx context.Context, riderID types.ID, amount decimal.Decimal, rideID int64) error {
	var ref *int64
	if rideID > 0 {
		ref = &rideID
	}
	return s.credit(ctx, riderID, amount, KindEscrowRefund, ref)
}

// Payout releases an escrowed fare to the driver on completion.
func (s *Service) Payout(ctx context.Context, driverID types.ID, amount decimal.Decimal, rideID int64) error {
	return s.credit(ctx, driverID, amount, KindPayout, &rideID)
}

func (s *Service) History(ctx context.Context, userID types.ID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListTransactions(ctx, userID, limit, offset)
}

func (s *Service) credit(ctx context.Context, userID types.ID, amount decimal.Decimal, kind Kind, rideID *int64) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if err := s.store.Credit(ctx, userID, amount); err != nil {
		return err
	}
	s.record(ctx, userID, kind, amount, rideID)
	return nil
}

func (s *Service) record(ctx context.Context, userID types.ID, kind Kind, amount decimal.Decimal, rideID *int64) {
	_ = s.cache.Delete(ctx, balanceKey(userID))
	tx := &Transaction{UserID: userID, Kind: kind, Amount: amount, RideID: rideID, CreatedAt: time.Now()}
	if err := s.store.AppendTransaction(ctx, tx); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"kind":    kind,
			"amount":  amount.String(),
			"error":   err.Error(),
		}).Error("record wallet transaction")
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"kind":    kind,
		"amount":  amount.String(),
	}).Info("wallet transaction")
}

func balanceKey(userID types.ID) string {
	return fmt.Sprintf("wallet:balance:%s", string(userID))
}
