// README: Shared handler utilities: JSON views and error mapping.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/http/middleware"
	"rideshare/internal/modules/availability"
	"rideshare/internal/modules/ride"
	"rideshare/internal/modules/user"
	"rideshare/internal/modules/wallet"
	"rideshare/internal/types"
)

// ErrorResponse is the body of every failed request. Callers must check the
// machine-readable code, not just the HTTP status.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

// respondError maps module sentinel errors onto status + code pairs.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ride.ErrNotFound), errors.Is(err, user.ErrNotFound), errors.Is(err, wallet.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ride.ErrAlreadyTaken):
		writeError(c, http.StatusConflict, "ALREADY_TAKEN", err.Error())
	case errors.Is(err, ride.ErrInvalidState):
		writeError(c, http.StatusConflict, "STATE_CONFLICT", err.Error())
	case errors.Is(err, ride.ErrOutsideAvailability):
		writeError(c, http.StatusConflict, "OUTSIDE_AVAILABILITY", err.Error())
	case errors.Is(err, ride.ErrNotOwner):
		writeError(c, http.StatusForbidden, "NOT_OWNER", err.Error())
	case errors.Is(err, ride.ErrNotAssignedDriver):
		writeError(c, http.StatusForbidden, "NOT_ASSIGNED_DRIVER", err.Error())
	case errors.Is(err, ride.ErrInvalidPostcode),
		errors.Is(err, ride.ErrBadRequest),
		errors.Is(err, user.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, wallet.ErrInsufficientFunds):
		writeError(c, http.StatusBadRequest, "INSUFFICIENT_FUNDS", err.Error())
	case errors.Is(err, wallet.ErrInvalidAmount):
		writeError(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
	case errors.Is(err, availability.ErrInvalidRange), errors.Is(err, availability.ErrInvalidDay):
		writeError(c, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		writeError(c, http.StatusConflict, "EMAIL_TAKEN", err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, "AUTH_FAILED", err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}

func actingUser(c *gin.Context) types.ID {
	return types.ID(c.GetString(middleware.ContextUserID))
}

// rideView is the single canonical wire shape for a ride.
type rideView struct {
	ID                  int64      `json:"id"`
	RiderID             string     `json:"rider_id"`
	DriverID            *string    `json:"driver_id,omitempty"`
	Status              string     `json:"status"`
	PickupPostcode      string     `json:"pickup_postcode"`
	DestinationPostcode string     `json:"destination_postcode"`
	Fare                string     `json:"fare"`
	RequestedAt         time.Time  `json:"requested_at"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
	StartedAt           *time.Time `json:"started_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

func toRideView(r *ride.Ride) rideView {
	v := rideView{
		ID:                  r.ID,
		RiderID:             string(r.RiderID),
		Status:              string(r.Status),
		PickupPostcode:      r.PickupPostcode,
		DestinationPostcode: r.DestinationPostcode,
		Fare:                r.Fare.String(),
		RequestedAt:         r.RequestedAt,
		AcceptedAt:          r.AcceptedAt,
		StartedAt:           r.StartedAt,
		CompletedAt:         r.CompletedAt,
	}
	if r.DriverID != nil {
		d := string(*r.DriverID)
		v.DriverID = &d
	}
	return v
}

func toRideViews(rides []*ride.Ride) []rideView {
	out := make([]rideView, 0, len(rides))
	for _, r := range rides {
		out = append(out, toRideView(r))
	}
	return out
}
