// README: Wallet ledger tests.
package wallet

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rideshare/internal/types"
)

func newTestWallet(t *testing.T, userID types.ID) *Service {
	t.Helper()
	svc := NewService(NewMemoryStore(), nil)
	require.NoError(t, svc.CreateWallet(context.Background(), userID))
	return svc
}

func TestNewWalletStartsAtZero(t *testing.T) {
	svc := newTestWallet(t, "u1")
	bal, err := svc.Balance(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, bal.IsZero(), "new wallet balance = %s", bal)
}

func TestBalanceUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	_, err := svc.Balance(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopUp(t *testing.T) {
	svc := newTestWallet(t, "u1")
	ctx := context.Background()

	bal, err := svc.TopUp(ctx, "u1", decimal.RequireFromString("25.50"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("25.50")))

	bal, err = svc.TopUp(ctx, "u1", decimal.RequireFromString("10"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("35.50")))
}

func TestTopUpRejectsNonPositiveAmounts(t *testing.T) {
	svc := newTestWallet(t, "u1")
	ctx := context.Background()

	for _, amount := range []string{"0", "-1", "-0.01"} {
		_, err := svc.TopUp(ctx, "u1", decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %s", amount)
	}

	bal, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, bal.IsZero(), "rejected top-ups must not move the balance")
}

func TestHoldInsufficientFunds(t *testing.T) {
	svc := newTestWallet(t, "u1")
	ctx := context.Background()

	_, err := svc.TopUp(ctx, "u1", decimal.NewFromInt(30))
	require.NoError(t, err)

	err = svc.Hold(ctx, "u1", decimal.NewFromInt(40))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// a failed hold leaves the balance untouched
	bal, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(30)))
}

func TestHoldExactBalance(t *testing.T) {
	svc := newTestWallet(t, "u1")
	ctx := context.Background()

	_, err := svc.TopUp(ctx, "u1", decimal.NewFromInt(40))
	require.NoError(t, err)
	require.NoError(t, svc.Hold(ctx, "u1", decimal.NewFromInt(40)))

	bal, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestRefundAndPayoutRestoreTotals(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()
	require.NoError(t, svc.CreateWallet(ctx, "rider"))
	require.NoError(t, svc.CreateWallet(ctx, "driver"))

	_, err := svc.TopUp(ctx, "rider", decimal.NewFromInt(100))
	require.NoError(t, err)

	fare := decimal.NewFromInt(40)
	require.NoError(t, svc.Hold(ctx, "rider", fare))
	require.NoError(t, svc.Refund(ctx, "rider", fare, 7))

	bal, err := svc.Balance(ctx, "rider")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(100)), "refund restores the held amount")

	require.NoError(t, svc.Hold(ctx, "rider", fare))
	require.NoError(t, svc.Payout(ctx, "driver", fare, 8))

	riderBal, err := svc.Balance(ctx, "rider")
	require.NoError(t, err)
	driverBal, err := svc.Balance(ctx, "driver")
	require.NoError(t, err)
	assert.True(t, riderBal.Add(driverBal).Equal(decimal.NewFromInt(100)), "hold+payout conserves total money")
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	const goroutines = 50

	svc := newTestWallet(t, "u1")
	ctx := context.Background()
	_, err := svc.TopUp(ctx, "u1", decimal.NewFromInt(10))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, goroutines)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Hold(ctx, "u1", decimal.NewFromInt(1))
		}(i)
	}
	wg.Wait()

	held := 0
	for _, err := range results {
		if err == nil {
			held++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 10, held, "exactly the funded amount can be held")

	bal, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, bal.IsZero(), "balance = %s", bal)
}

func TestHistoryRecordsEveryMove(t *testing.T) {
	svc := newTestWallet(t, "u1")
	ctx := context.Background()

	_, err := svc.TopUp(ctx, "u1", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, svc.Hold(ctx, "u1", decimal.NewFromInt(40)))
	require.NoError(t, svc.Refund(ctx, "u1", decimal.NewFromInt(40), 3))

	txs, err := svc.History(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	// newest first
	assert.Equal(t, KindEscrowRefund, txs[0].Kind)
	require.NotNil(t, txs[0].RideID)
	assert.Equal(t, int64(3), *txs[0].RideID)
	assert.Equal(t, KindEscrowHold, txs[1].Kind)
	assert.Nil(t, txs[1].RideID, "holds are recorded before a ride row exists")
	assert.Equal(t, KindTopUp, txs[2].Kind)
}

func TestHistoryPagination(t *testing.T) {
	svc := newTestWallet(t, "u1")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := svc.TopUp(ctx, "u1", decimal.NewFromInt(int64(i)))
		require.NoError(t, err)
	}

	page, err := svc.History(ctx, "u1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].Amount.Equal(decimal.NewFromInt(5)))

	page, err = svc.History(ctx, "u1", 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.True(t, page[0].Amount.Equal(decimal.NewFromInt(1)))

	// out-of-range limits fall back to the default page size
	page, err = svc.History(ctx, "u1", -1, 0)
	require.NoError(t, err)
	assert.Len(t, page, 5)
}
