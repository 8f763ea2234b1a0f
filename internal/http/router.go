// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/auth"
	"rideshare/internal/http/handlers"
	"rideshare/internal/http/middleware"
	"rideshare/internal/modules/availability"
	"rideshare/internal/modules/ride"
	"rideshare/internal/modules/user"
	"rideshare/internal/modules/wallet"
)

type RouterDeps struct {
	Users        *user.Service
	Wallets      *wallet.Service
	Rides        *ride.Service
	Matcher      *ride.Matcher
	Availability *availability.Service
	JWT          *auth.JWTService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	authHandler := handlers.NewAuthHandler(deps.Users, deps.JWT)
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	authed := r.Group("/", middleware.Auth(deps.JWT))

	walletHandler := handlers.NewWalletHandler(deps.Wallets)
	authed.POST("/api/wallet/topup", walletHandler.TopUp)
	authed.GET("/api/wallet", walletHandler.Get)
	authed.GET("/api/wallet/transactions", walletHandler.Transactions)

	rideHandler := handlers.NewRideHandler(deps.Rides)
	rider := authed.Group("/", middleware.RequireRole(string(user.RoleRider)))
	rider.POST("/api/rides", rideHandler.Request)
	rider.POST("/api/rides/:id/cancel", rideHandler.Cancel)
	rider.GET("/api/rides/history", rideHandler.RiderHistory)
	authed.GET("/api/rides/preview", rideHandler.PreviewFare)
	authed.GET("/api/rides/:id", rideHandler.Get)

	driverHandler := handlers.NewDriverHandler(deps.Rides, deps.Matcher)
	availabilityHandler := handlers.NewAvailabilityHandler(deps.Availability)
	driver := authed.Group("/", middleware.RequireRole(string(user.RoleDriver)))
	driver.GET("/api/driver/rides", driverHandler.ListOpen)
	driver.POST("/api/driver/rides/:id/accept", driverHandler.Accept)
	driver.POST("/api/driver/rides/:id/begin", driverHandler.Begin)
	driver.POST("/api/driver/rides/:id/complete", driverHandler.Complete)
	driver.GET("/api/driver/rides/history", driverHandler.DriverHistory)
	driver.POST("/api/driver/availability", availabilityHandler.Add)
	driver.DELETE("/api/driver/availability/:id", availabilityHandler.Remove)
	driver.GET("/api/driver/availability", availabilityHandler.List)

	return r
}
