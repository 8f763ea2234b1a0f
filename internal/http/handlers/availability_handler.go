// README: Driver availability slot management.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/modules/availability"
)

type AvailabilityHandler struct {
	availability *availability.Service
}

func NewAvailabilityHandler(svc *availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{availability: svc}
}

type slotView struct {
	ID          int64  `json:"id"`
	Day         string `json:"day"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

func toSlotView(s availability.Slot) slotView {
	return slotView{
		ID:          s.ID,
		Day:         availability.FormatDay(s.Day),
		StartMinute: s.StartMinute,
		EndMinute:   s.EndMinute,
	}
}

type addSlotReq struct {
	Day         string `json:"day"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

func (h *AvailabilityHandler) Add(c *gin.Context) {
	var req addSlotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}
	day, err := availability.ParseDay(req.Day)
	if err != nil {
		respondError(c, err)
		return
	}
	slot, err := h.availability.AddSlot(c.Request.Context(), actingUser(c), day, req.StartMinute, req.EndMinute)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": toSlotView(*slot)})
}

func (h *AvailabilityHandler) Remove(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid slot id")
		return
	}
	if err := h.availability.RemoveSlot(c.Request.Context(), actingUser(c), slotID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	slots, err := h.availability.ListSlots(c.Request.Context(), actingUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]slotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, toSlotView(s))
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}
