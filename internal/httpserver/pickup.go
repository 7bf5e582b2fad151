package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kitchen-orders/internal/domain"
	pickupsvc "kitchen-orders/internal/service/pickup"
)

// pickupSlotsHandler lists active pickup slots, optionally for one day
// (?day=0..6).
func pickupSlotsHandler(svc *pickupsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			slots []domain.PickupSlot
			err   error
		)
		if raw := c.Query("day"); raw != "" {
			day, convErr := strconv.Atoi(raw)
			if convErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
				return
			}
			slots, err = svc.ActiveSlotsForDay(c.Request.Context(), day)
		} else {
			slots, err = svc.ActiveSlots(c.Request.Context())
		}
		if err != nil {
			respondError(c, err)
			return
		}
		if slots == nil {
			slots = []domain.PickupSlot{}
		}
		c.JSON(http.StatusOK, slots)
	}
}
