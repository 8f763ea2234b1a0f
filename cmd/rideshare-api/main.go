// README: Entry point; loads config, wires stores and services, serves HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logrus "github.com/sirupsen/logrus"

	"rideshare/internal/auth"
	"rideshare/internal/cache"
	"rideshare/internal/config"
	httptransport "rideshare/internal/http"
	"rideshare/internal/infra"
	"rideshare/internal/logger"
	"rideshare/internal/modules/availability"
	"rideshare/internal/modules/pricing"
	"rideshare/internal/modules/ride"
	"rideshare/internal/modules/user"
	"rideshare/internal/modules/wallet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	logger.Setup(cfg.Log.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		userStore         user.Store
		walletStore       wallet.Store
		rideStore         ride.Store
		availabilityStore availability.Store
	)
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := infra.NewDB(ctx, cfg.Store.DSN)
		if err != nil {
			logrus.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		userStore = user.NewPostgresStore(pool)
		walletStore = wallet.NewPostgresStore(pool)
		rideStore = ride.NewPostgresStore(pool)
		availabilityStore = availability.NewPostgresStore(pool)
	default:
		userStore = user.NewMemoryStore()
		walletStore = wallet.NewMemoryStore()
		rideStore = ride.NewMemoryStore()
		availabilityStore = availability.NewMemoryStore()
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	walletSvc := wallet.NewService(walletStore, cacheClient)
	userSvc := user.NewService(userStore, walletSvc)
	pricingSvc := pricing.NewService()
	availabilitySvc := availability.NewService(availabilityStore)
	rideSvc := ride.NewService(rideStore, walletSvc, pricingSvc, availabilitySvc, userSvc)
	matcher := ride.NewMatcher(rideStore, availabilitySvc)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Users:        userSvc,
		Wallets:      walletSvc,
		Rides:        rideSvc,
		Matcher:      matcher,
		Availability: availabilitySvc,
		JWT:          jwtSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		logrus.WithField("addr", cfg.HTTP.Addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("shutdown: %v", err)
	}
}
