// README: Driver-facing endpoints: open requests, accept, begin, complete.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/modules/ride"
)

type DriverHandler struct {
	rides   *ride.Service
	matcher *ride.Matcher
}

func NewDriverHandler(rides *ride.Service, matcher *ride.Matcher) *DriverHandler {
	return &DriverHandler{rides: rides, matcher: matcher}
}

// ListOpen returns the REQUESTED rides the polling driver may accept right
// now. Outside the availability window the item list is empty.
func (h *DriverHandler) ListOpen(c *gin.Context) {
	rides, inside, err := h.matcher.VisibleRequests(c.Request.Context(), actingUser(c), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":         toRideViews(rides),
		"inside_window": inside,
	})
}

func (h *DriverHandler) Accept(c *gin.Context) {
	id, err := rideID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid ride id")
		return
	}
	if err := h.rides.Accept(c.Request.Context(), id, actingUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": ride.StatusAccepted})
}

func (h *DriverHandler) Begin(c *gin.Context) {
	id, err := rideID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid ride id")
		return
	}
	if err := h.rides.Begin(c.Request.Context(), id, actingUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": ride.StatusEnroute})
}

func (h *DriverHandler) Complete(c *gin.Context) {
	id, err := rideID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid ride id")
		return
	}
	if err := h.rides.Complete(c.Request.Context(), id, actingUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": ride.StatusCompleted})
}

func (h *DriverHandler) DriverHistory(c *gin.Context) {
	entries, err := h.rides.DriverHistory(c.Request.Context(), actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toHistoryViews(entries)})
}
