// README: Rider-facing ride endpoints: preview, request, cancel, history.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/modules/ride"
)

type RideHandler struct {
	rides *ride.Service
}

func NewRideHandler(rides *ride.Service) *RideHandler {
	return &RideHandler{rides: rides}
}

type requestRideReq struct {
	PickupPostcode      string `json:"pickup_postcode"`
	DestinationPostcode string `json:"destination_postcode"`
}

func (h *RideHandler) Request(c *gin.Context) {
	var req requestRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	r, err := h.rides.Request(c.Request.Context(), ride.RequestCommand{
		RiderID:             actingUser(c),
		PickupPostcode:      req.PickupPostcode,
		DestinationPostcode: req.DestinationPostcode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ride": toRideView(r)})
}

func (h *RideHandler) PreviewFare(c *gin.Context) {
	fare, err := h.rides.PreviewFare(c.Query("pickup_postcode"), c.Query("destination_postcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fare": fare.String()})
}

func (h *RideHandler) Cancel(c *gin.Context) {
	id, err := rideID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid ride id")
		return
	}
	if err := h.rides.Cancel(c.Request.Context(), id, actingUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": ride.StatusCancelled})
}

func (h *RideHandler) Get(c *gin.Context) {
	id, err := rideID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid ride id")
		return
	}
	r, err := h.rides.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ride": toRideView(r)})
}

func (h *RideHandler) RiderHistory(c *gin.Context) {
	entries, err := h.rides.RiderHistory(c.Request.Context(), actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": toHistoryViews(entries)})
}

type historyView struct {
	Ride         rideView `json:"ride"`
	Counterparty string   `json:"counterparty,omitempty"`
}

func toHistoryViews(entries []ride.HistoryEntry) []historyView {
	out := make([]historyView, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyView{Ride: toRideView(e.Ride), Counterparty: e.Counterparty})
	}
	return out
}

func rideID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
