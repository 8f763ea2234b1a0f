// README: In-memory wallet store guarded by a single mutex.
package wallet

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"rideshare/internal/types"
)

// MemoryStore keeps balances in a map. One mutex covers every operation,
// which makes each debit/credit trivially linearizable.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[types.ID]decimal.Decimal
	txs      []Transaction
	nextTxID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{balances: make(map[types.ID]decimal.Decimal), nextTxID: 1}
}

func (s *MemoryStore) CreateWallet(_ context.Context, userID types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[userID]; !ok {
		s.balances[userID] = decimal.Zero
	}
	return nil
}

func (s *MemoryStore) Balance(_ context.Context, userID types.ID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bal, ok := s.balances[userID]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	return bal, nil
}

func (s *MemoryStore) Debit(_ context.Context, userID types.ID, amount decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bal, ok := s.balances[userID]
	if !ok {
		return false, ErrNotFound
	}
	if bal.LessThan(amount) {
		return false, nil
	}
	s.balances[userID] = bal.Sub(amount)
	return true, nil
}

func (s *MemoryStore) Credit(_ context.Context, userID types.ID, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bal, ok := s.balances[userID]
	if !ok {
		return ErrNotFound
	}
	s.balances[userID] = bal.Add(amount)
	return nil
}

func (s *MemoryStore) AppendTransaction(_ context.Context, tx *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.nextTxID
	s.nextTxID++
	s.txs = append(s.txs, *tx)
	return nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, userID types.ID, limit, offset int) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// newest first
	var out []Transaction
	for i := len(s.txs) - 1; i >= 0; i-- {
		if s.txs[i].UserID != userID {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, s.txs[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
