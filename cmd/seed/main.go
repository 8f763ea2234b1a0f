// README: Seeds demo riders and drivers for local development.
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	logrus "github.com/sirupsen/logrus"

	"rideshare/internal/config"
	"rideshare/internal/infra"
	"rideshare/internal/modules/availability"
	"rideshare/internal/modules/user"
	"rideshare/internal/modules/wallet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()
	pool, err := infra.NewDB(ctx, cfg.Store.DSN)
	if err != nil {
		logrus.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	walletSvc := wallet.NewService(wallet.NewPostgresStore(pool), nil)
	userSvc := user.NewService(user.NewPostgresStore(pool), walletSvc)
	availabilitySvc := availability.NewService(availability.NewPostgresStore(pool))

	rider, err := userSvc.Register(ctx, user.RegisterCommand{
		Name:     "Demo Rider",
		Email:    "rider@example.com",
		Password: "password",
		Role:     user.RoleRider,
	})
	if err != nil {
		logrus.Fatalf("seed rider: %v", err)
	}
	if _, err := walletSvc.TopUp(ctx, rider.ID, decimal.NewFromInt(500)); err != nil {
		logrus.Fatalf("top up rider: %v", err)
	}

	driver, err := userSvc.Register(ctx, user.RegisterCommand{
		Name:     "Demo Driver",
		Email:    "driver@example.com",
		Password: "password",
		Role:     user.RoleDriver,
	})
	if err != nil {
		logrus.Fatalf("seed driver: %v", err)
	}
	// Weekday business hours; weekends left open on purpose.
	for day := time.Monday; day <= time.Friday; day++ {
		if _, err := availabilitySvc.AddSlot(ctx, driver.ID, day, 9*60, 17*60); err != nil {
			logrus.Fatalf("seed slot: %v", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"rider_id":  rider.ID,
		"driver_id": driver.ID,
	}).Info("seed complete")
}
