// README: Concurrency test; N drivers race to accept one ride.
package ride

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"rideshare/internal/modules/user"
	"rideshare/internal/types"
)

// TestConcurrentAcceptSingleWinner fires many drivers at the same open ride.
// The compare-and-set on status_version must let exactly one through; every
// loser sees ErrAlreadyTaken.
func TestConcurrentAcceptSingleWinner(t *testing.T) {
	const drivers = 32

	f := newFixture(t)
	ctx := context.Background()
	rider := f.addUser(t, "rider", user.RoleRider, 100)

	r, err := f.svc.Request(ctx, RequestCommand{RiderID: rider, PickupPostcode: "3000", DestinationPostcode: "3010"})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	ids := make([]types.ID, drivers)
	for i := range ids {
		ids[i] = f.addUser(t, fmt.Sprintf("driver-%d", i), user.RoleDriver, 0)
	}

	var wg sync.WaitGroup
	errs := make([]error, drivers)
	wg.Add(drivers)
	for i := 0; i < drivers; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = f.svc.Accept(ctx, r.ID, ids[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, err := range errs {
		switch err {
		case nil:
			winners++
		case ErrAlreadyTaken:
		default:
			t.Errorf("driver %d: unexpected error %v", i, err)
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}

	got, err := f.svc.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusAccepted {
		t.Fatalf("status = %s, want %s", got.Status, StatusAccepted)
	}
	if got.DriverID == nil {
		t.Fatal("expected an assigned driver")
	}
	if got.StatusVersion != 1 {
		t.Fatalf("status_version = %d, want 1", got.StatusVersion)
	}
}

// TestConcurrentCompleteSinglePayout races duplicate complete calls from the
// assigned driver; the fare must be paid out exactly once.
func TestConcurrentCompleteSinglePayout(t *testing.T) {
	const attempts = 16

	f := newFixture(t)
	ctx := context.Background()
	rider := f.addUser(t, "rider", user.RoleRider, 100)
	driver := f.addUser(t, "driver", user.RoleDriver, 0)

	r, err := f.svc.Request(ctx, RequestCommand{RiderID: rider, PickupPostcode: "3000", DestinationPostcode: "3010"})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := f.svc.Accept(ctx, r.ID, driver); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := f.svc.Begin(ctx, r.ID, driver); err != nil {
		t.Fatalf("begin: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = f.svc.Complete(ctx, r.ID, driver)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		switch err {
		case nil:
			succeeded++
		case ErrInvalidState:
		default:
			t.Errorf("attempt %d: unexpected error %v", i, err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("completes = %d, want exactly 1", succeeded)
	}
	if got := f.balance(t, driver); !got.Equal(r.Fare) {
		t.Fatalf("driver balance = %s, want %s (single payout)", got, r.Fare)
	}
	if got := f.balance(t, rider); !got.Equal(decimal.NewFromInt(100).Sub(r.Fare)) {
		t.Fatalf("rider balance = %s, want %s", got, decimal.NewFromInt(100).Sub(r.Fare))
	}
}
